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

func HandleJoinRoom(gs *game.Service, client *socket.Socket,
	player *models.Player, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[JOIN] HandleJoinRoom - player: %s, socket: %s", player.ID, client.Id())

		payload, ok := socketio_utils.Payload(args)
		if !ok {
			socketio_utils.EmitError(client, "missing roomId")
			return
		}
		code := strings.ToUpper(socketio_utils.GetString(payload, "roomId"))
		if code == "" {
			socketio_utils.EmitError(client, "missing roomId")
			return
		}

		view, rejoined, err := gs.JoinRoom(code, player.ID)
		if err != nil {
			log.Printf("[JOIN-ERROR] player %s, room %s: %v", player.ID, code, err)
			socketio_utils.EmitError(client, err.Error())
			return
		}

		sio.AttachToRoom(code, player.ID)
		if rejoined {
			// Reconnection: replay the player's view instead of announcing
			// a new member.
			log.Printf("[JOIN-SUCCESS] player %s rejoined room %s", player.ID, code)
			if err := gs.Resync(code, player.ID); err != nil {
				log.Printf("[JOIN-ERROR] resyncing player %s in room %s: %v", player.ID, code, err)
			}
			return
		}

		sio.Broadcast(code, "player_joined", joinAnnouncement(view, player))
		log.Printf("[JOIN-SUCCESS] player %s joined room %s", player.ID, code)
	}
}

func joinAnnouncement(view *game.RoomStateView, player *models.Player) gin.H {
	return gin.H{
		"roomState": view,
		"joinedPlayer": gin.H{
			"id":   player.ID,
			"name": player.Name,
		},
	}
}
