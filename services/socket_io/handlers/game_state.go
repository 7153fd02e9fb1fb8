package handlers

import (
	"log"
	"strings"

	"github.com/zishang520/socket.io/v2/socket"

	"Farsante/models"
	"Farsante/services/game"
	socketio_utils "Farsante/services/socket_io/utils"
)

// HandleRequestState lets a client ask for a fresh snapshot at any moment,
// typically right after reconnecting with a stored session token.
func HandleRequestState(gs *game.Service, client *socket.Socket,
	player *models.Player) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			socketio_utils.EmitError(client, "missing roomId")
			return
		}
		code := strings.ToUpper(socketio_utils.GetString(payload, "roomId"))

		if err := gs.Resync(code, player.ID); err != nil {
			log.Printf("[STATE-ERROR] player %s, room %s: %v", player.ID, code, err)
			socketio_utils.EmitError(client, err.Error())
		}
	}
}
