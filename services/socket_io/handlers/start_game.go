package handlers

import (
	"log"
	"strings"

	"github.com/zishang520/socket.io/v2/socket"

	"Farsante/models"
	"Farsante/services/game"
	socketio_utils "Farsante/services/socket_io/utils"
)

func HandleStartGame(gs *game.Service, client *socket.Socket,
	player *models.Player) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[START] HandleStartGame - player: %s", player.ID)

		payload, ok := socketio_utils.Payload(args)
		if !ok {
			socketio_utils.EmitError(client, "missing roomId")
			return
		}
		code := strings.ToUpper(socketio_utils.GetString(payload, "roomId"))

		if err := gs.StartGame(code, player.ID); err != nil {
			log.Printf("[START-ERROR] player %s, room %s: %v", player.ID, code, err)
			socketio_utils.EmitError(client, err.Error())
			return
		}
		log.Printf("[START-SUCCESS] room %s started by %s", code, player.ID)
	}
}
