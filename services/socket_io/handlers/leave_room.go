package handlers

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"

	"Farsante/models"
	"Farsante/services/game"
	socketio_types "Farsante/services/socket_io/types"
	socketio_utils "Farsante/services/socket_io/utils"
)

func HandleLeaveRoom(gs *game.Service, client *socket.Socket,
	player *models.Player, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.Payload(args)
		if !ok {
			socketio_utils.EmitError(client, "missing roomId")
			return
		}
		code := strings.ToUpper(socketio_utils.GetString(payload, "roomId"))

		if err := gs.LeaveRoom(code, player.ID); err != nil {
			log.Printf("[LEAVE-ERROR] player %s, room %s: %v", player.ID, code, err)
			socketio_utils.EmitError(client, err.Error())
			return
		}

		sio.DetachFromRoom(code, player.ID)
		payloadOut := gin.H{"playerId": player.ID, "name": player.Name, "reason": "left"}
		if view, err := gs.RoomState(code); err == nil {
			payloadOut["roomState"] = view
		}
		sio.Broadcast(code, "player_left", payloadOut)
		log.Printf("[LEAVE-SUCCESS] player %s left room %s", player.ID, code)
	}
}
