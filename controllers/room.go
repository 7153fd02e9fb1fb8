package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"Farsante/services/game"
)

type RoomController struct {
	Game *game.Service
}

// GetRoomInfo returns the public snapshot of a live room.
// @Summary Get information about a room
// @Description Current phase, round and seated players. Roles stay hidden
// @Description until the game finishes.
// @Tags rooms
// @Produce json
// @Param roomId path string true "Room code"
// @Success 200 {object} object{roomState=object}
// @Failure 404 {object} object{error=string}
// @Router /rooms/{roomId} [get]
func (rc *RoomController) GetRoomInfo(c *gin.Context) {
	code := strings.ToUpper(c.Param("roomId"))

	view, err := rc.Game.RoomState(code)
	if err != nil {
		if errors.Is(err, game.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"roomState": view})
}

// ForceVoting opens the ballot for a room in the playing phase. Calling it
// again while voting is already open is a no-op, so double-triggering from
// the frontend cannot reset the countdown.
// @Summary Start the voting phase of a room
// @Tags rooms
// @Produce json
// @Param roomId path string true "Room code"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /voting/{roomId} [post]
func (rc *RoomController) ForceVoting(c *gin.Context) {
	code := strings.ToUpper(c.Param("roomId"))

	if err := rc.Game.StartVoting(code); err != nil {
		switch {
		case errors.Is(err, game.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		case errors.Is(err, game.ErrWrongPhase):
			c.JSON(http.StatusConflict, gin.H{"error": "Room is not in the playing phase"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Voting started"})
}
