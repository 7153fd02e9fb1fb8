package socketio_utils

import (
	"log"

	"github.com/zishang520/socket.io/v2/socket"

	"Farsante/models"
	"Farsante/services/game"
)

// VerifyPlayerConnection resolves the connecting socket to a player using
// the handshake auth object ({name, sessionId}). A known session token
// reattaches the existing identity; otherwise a fresh player is minted. On
// failure the socket is told why and dropped.
func VerifyPlayerConnection(client *socket.Socket, gs *game.Service) (*models.Player, bool) {
	auth, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		log.Printf("[CONN-ERROR] socket %s connected without auth object", client.Id())
		EmitError(client, "missing auth: expected {name, sessionId}")
		client.Disconnect(true)
		return nil, false
	}
	name := GetString(auth, "name")
	sessionID := GetString(auth, "sessionId")

	player, err := gs.RegisterPlayer(name, sessionID)
	if err != nil {
		log.Printf("[CONN-ERROR] socket %s: %v", client.Id(), err)
		EmitError(client, err.Error())
		client.Disconnect(true)
		return nil, false
	}
	return player, true
}
