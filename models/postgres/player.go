package postgres

import (
	"time"
)

/*
 * 'Player' is the durable identity record. A client that reconnects with a
 * known session token is mapped back to the same player row.
 */
type Player struct {
	ID        string    `gorm:"primaryKey;size:50;not null"`
	Name      string    `gorm:"size:100;not null"`
	SessionID string    `gorm:"size:100;uniqueIndex:idx_players_session"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationship with the lifetime stats row
	Stats GameStats `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}
