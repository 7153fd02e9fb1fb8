package postgres

import (
	"time"
)

/*
 * 'GameStats' holds a player's lifetime counters. Updated exactly once per
 * finished game, never during play.
 */
type GameStats struct {
	PlayerID      string    `gorm:"primaryKey;size:50;not null"`
	GamesPlayed   int       `gorm:"default:0"`
	GamesWon      int       `gorm:"default:0"`
	ImpostorGames int       `gorm:"default:0"`
	ImpostorWins  int       `gorm:"default:0"`
	UpdatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
