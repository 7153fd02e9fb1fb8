package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"

	game_constants "Farsante/constants/game"
	"Farsante/models"
	"Farsante/services/game"
	socketio_types "Farsante/services/socket_io/types"
	socketio_utils "Farsante/services/socket_io/utils"
)

func HandleCreateRoom(gs *game.Service, client *socket.Socket,
	player *models.Player, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[ROOM] HandleCreateRoom - player: %s, socket: %s", player.ID, client.Id())

		payload, ok := socketio_utils.Payload(args)
		if !ok {
			log.Printf("[ROOM-ERROR] missing payload from player %s", player.ID)
			socketio_utils.EmitError(client, "missing room configuration")
			return
		}

		params := game.CreateRoomParams{
			MaxPlayers:    socketio_utils.GetInt(payload, "maxPlayers"),
			ImpostorCount: socketio_utils.GetInt(payload, "impostorCount"),
			VoteTime:      socketio_utils.GetInt(payload, "voteTime"),
		}
		if params.MaxPlayers == 0 {
			params.MaxPlayers = game_constants.DefaultMaxPlayers
		}
		if params.ImpostorCount == 0 {
			params.ImpostorCount = game_constants.DefaultImpostorCount
		}

		view, err := gs.CreateRoom(player.ID, params)
		if err != nil {
			log.Printf("[ROOM-ERROR] player %s: %v", player.ID, err)
			socketio_utils.EmitError(client, err.Error())
			return
		}

		code := view.Room.Code
		sio.AttachToRoom(code, player.ID)
		sio.Unicast(player.ID, "room_created", gin.H{
			"roomId":    code,
			"roomState": view,
			"sessionId": player.SessionID,
		})
		log.Printf("[ROOM-SUCCESS] player %s created room %s", player.ID, code)
	}
}
