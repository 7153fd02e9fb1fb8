package handlers

import (
	"log"
	"strings"

	"github.com/zishang520/socket.io/v2/socket"

	"Farsante/models"
	"Farsante/services/game"
	socketio_utils "Farsante/services/socket_io/utils"
)

func HandleCastVote(gs *game.Service, client *socket.Socket,
	player *models.Player) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			socketio_utils.EmitError(client, "missing vote payload")
			return
		}
		code := strings.ToUpper(socketio_utils.GetString(payload, "roomId"))

		// Absent, null or empty targetId is an abstention.
		var target *string
		if t := socketio_utils.GetString(payload, "targetId"); t != "" {
			target = &t
		}

		if err := gs.CastVote(code, player.ID, target); err != nil {
			log.Printf("[VOTE-ERROR] player %s, room %s: %v", player.ID, code, err)
			socketio_utils.EmitError(client, err.Error())
			return
		}
	}
}
