package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'GameRoom' is the archive row written when a game finishes. Live rooms are
 * held in Redis; this table only keeps the final outcome for history/stats.
 */
type GameRoom struct {
	Code          string         `gorm:"primaryKey;size:6;not null"`
	HostID        string         `gorm:"size:50;index:idx_game_rooms_host"`
	MaxPlayers    int            `gorm:"default:6"`
	ImpostorCount int            `gorm:"default:1"`
	VoteTime      int            `gorm:"default:60"`
	Rounds        int            `gorm:"default:0"`
	ImpostorsWon  bool           `gorm:"default:false"`
	LastSubject   datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	FinishedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationship with the final per-player records
	Members []*GameRoomPlayer `gorm:"foreignKey:RoomCode;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
