package socketio_utils

import (
	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"

	socketio_types "Farsante/services/socket_io/types"
)

// Payload extracts the object the client sent as the event's first argument.
// socket.io decodes JSON objects as map[string]interface{}.
func Payload(args []interface{}) (map[string]interface{}, bool) {
	if len(args) < 1 {
		return nil, false
	}
	payload, ok := args[0].(map[string]interface{})
	return payload, ok
}

func GetString(payload map[string]interface{}, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

// GetInt reads a numeric field. JSON numbers decode as float64, so both
// forms are accepted; anything else reads as zero.
func GetInt(payload map[string]interface{}, key string) int {
	switch v := payload[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// EmitError reports a failure back to the originating client only, in the
// same envelope every server message uses. The connection stays up.
func EmitError(client *socket.Socket, message string) {
	client.Emit("error", socketio_types.Envelope("error", gin.H{"message": message}))
}
