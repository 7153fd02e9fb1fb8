package postgres

import (
	"time"
)

/*
 * 'GameVote' archives one ballot of a finished game. TargetID is NULL for an
 * abstain vote.
 */
type GameVote struct {
	ID       uint    `gorm:"primaryKey;autoIncrement"`
	RoomCode string  `gorm:"size:6;not null;index:idx_game_votes_room"`
	Round    int     `gorm:"not null"`
	VoterID  string  `gorm:"size:50;not null"`
	TargetID *string `gorm:"size:50"`
	CastAt   time.Time

	GameRoom GameRoom `gorm:"foreignKey:RoomCode"`
}
