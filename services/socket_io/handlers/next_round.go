package handlers

import (
	"log"
	"strings"

	"github.com/zishang520/socket.io/v2/socket"

	"Farsante/models"
	"Farsante/services/game"
	socketio_utils "Farsante/services/socket_io/utils"
)

func HandleNextRound(gs *game.Service, client *socket.Socket,
	player *models.Player) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			socketio_utils.EmitError(client, "missing roomId")
			return
		}
		code := strings.ToUpper(socketio_utils.GetString(payload, "roomId"))

		if err := gs.AdvanceRound(code, player.ID); err != nil {
			log.Printf("[ROUND-ERROR] player %s, room %s: %v", player.ID, code, err)
			socketio_utils.EmitError(client, err.Error())
			return
		}
	}
}
