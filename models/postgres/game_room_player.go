package postgres

/*
 * 'GameRoomPlayer' is the archived membership of one player in one finished
 * game: role, survival and host flag as they stood when the game ended.
 */
type GameRoomPlayer struct {
	// NOTE: composite primary key definition
	RoomCode   string `gorm:"primaryKey;size:6;not null"`
	PlayerID   string `gorm:"primaryKey;size:50;not null;index"`
	Name       string `gorm:"size:100"`
	IsImpostor bool   `gorm:"default:false"`
	IsAlive    bool   `gorm:"default:true"`
	IsHost     bool   `gorm:"default:false"`

	GameRoom GameRoom `gorm:"foreignKey:RoomCode"`
	Player   Player   `gorm:"foreignKey:PlayerID"`
}
