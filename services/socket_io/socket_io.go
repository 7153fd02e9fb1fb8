package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"

	"Farsante/services/game"
	"Farsante/services/socket_io/handlers"
	socketio_types "Farsante/services/socket_io/types"
	socketio_utils "Farsante/services/socket_io/utils"
)

type MySocketServer socketio_types.SocketServer

// Start wires the socket.io server into the gin router and registers the
// per-connection event handlers.
func (sio *MySocketServer) Start(router *gin.Engine, gs *game.Service) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		registry := (*socketio_types.SocketServer)(sio)

		// Resolve the handshake to a player identity before anything else.
		player, ok := socketio_utils.VerifyPlayerConnection(client, gs)
		if !ok {
			return
		}

		// A reconnecting player's old socket is closed so only one socket
		// ever speaks for them.
		if superseded := registry.AddConnection(player.ID, client); superseded != nil {
			superseded.Disconnect(true)
		}

		fmt.Println("An individual just connected!: ", player.Name)

		client.On("create_room", handlers.HandleCreateRoom(gs, client, player, registry))
		client.On("join_room", handlers.HandleJoinRoom(gs, client, player, registry))
		client.On("leave_room", handlers.HandleLeaveRoom(gs, client, player, registry))
		client.On("start_game", handlers.HandleStartGame(gs, client, player))
		client.On("cast_vote", handlers.HandleCastVote(gs, client, player))
		client.On("next_round", handlers.HandleNextRound(gs, client, player))
		client.On("request_state", handlers.HandleRequestState(gs, client, player))
		client.On("disconnecting", handlers.HandleDisconnecting(client, player, registry))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
