package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"

	"Farsante/models"
	socketio_types "Farsante/services/socket_io/types"
)

// HandleDisconnecting cleans up the registry when a socket drops. Game
// membership is untouched: the seat survives so the player can reconnect
// with their session token and pick the game back up.
func HandleDisconnecting(client *socket.Socket, player *models.Player,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] player %s, socket %s", player.ID, client.Id())

		// A superseded socket disconnecting must not evict the live one,
		// nor announce a departure the player never made.
		if current, exists := sio.GetConnection(player.ID); !exists || current != client {
			return
		}
		sio.RemoveConnection(player.ID, client)

		if code, attached := sio.FindRoomOf(player.ID); attached {
			sio.DetachFromRoom(code, player.ID)
			sio.Broadcast(code, "player_left", gin.H{
				"playerId": player.ID,
				"name":     player.Name,
				"reason":   "disconnected",
			})
		}
	}
}
