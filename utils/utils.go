package utils

import (
	"math/rand"

	game_constants "Farsante/constants/game"

	"github.com/gin-gonic/gin"
)

// ErrorHandler handles global errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// RandomRoomCode produces one candidate room code. Callers are responsible
// for retrying on collision with an active code.
func RandomRoomCode(rng *rand.Rand) string {
	b := make([]byte, game_constants.RoomCodeLength)
	for i := range b {
		b[i] = game_constants.RoomCodeCharset[rng.Intn(len(game_constants.RoomCodeCharset))]
	}
	return string(b)
}
