package repository

import (
	"errors"
	"fmt"
	"math/rand"

	"Farsante/models"
	pgmodels "Farsante/models/postgres"
	redisclient "Farsante/services/redis"
	"Farsante/utils"

	"gorm.io/gorm"
)

// Persistent splits storage the way the server deploys it: durable identity
// and lifetime stats in PostgreSQL via GORM, live room state in Redis with a
// TTL. Both halves satisfy the same narrow contract as the in-memory store.
type Persistent struct {
	db  *gorm.DB
	rdb *redisclient.RedisClient
	rng *rand.Rand
	mu  chan struct{} // serializes code sampling attempts
}

func NewPersistent(db *gorm.DB, rdb *redisclient.RedisClient, rng *rand.Rand) *Persistent {
	mu := make(chan struct{}, 1)
	mu <- struct{}{}
	return &Persistent{db: db, rdb: rdb, rng: rng, mu: mu}
}

func (s *Persistent) CreatePlayer(p *models.Player) error {
	row := pgmodels.Player{
		ID:        p.ID,
		Name:      p.Name,
		SessionID: p.SessionID,
		CreatedAt: p.CreatedAt,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("error creating player: %w", err)
	}
	return nil
}

func (s *Persistent) GetPlayer(id string) (*models.Player, error) {
	var row pgmodels.Player
	if err := s.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return playerFromRow(&row), nil
}

func (s *Persistent) GetPlayerBySession(sessionID string) (*models.Player, error) {
	var row pgmodels.Player
	if err := s.db.Where("session_id = ?", sessionID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return playerFromRow(&row), nil
}

func (s *Persistent) CreateRoom(r *models.Room) error {
	// Sample codes against the Redis active set; SADD makes the reservation
	// atomic across processes.
	<-s.mu
	defer func() { s.mu <- struct{}{} }()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := utils.RandomRoomCode(s.rng)
		reserved, err := s.rdb.ReserveRoomCode(code)
		if err != nil {
			return err
		}
		if !reserved {
			continue
		}
		r.Code = code
		return s.rdb.SaveRoom(r)
	}
	return ErrCodeExhausted
}

func (s *Persistent) GetRoom(code string) (*models.Room, error) {
	room, err := s.rdb.GetRoom(code)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrNotFound
	}
	return room, nil
}

func (s *Persistent) UpdateRoom(r *models.Room) error {
	return s.rdb.SaveRoom(r)
}

func (s *Persistent) DeleteRoom(code string) error {
	room, err := s.rdb.GetRoom(code)
	if err != nil {
		return err
	}
	if room == nil {
		return ErrNotFound
	}
	return s.rdb.DeleteRoom(code, room.CurrentRound)
}

func (s *Persistent) AddRoomMember(m *models.RoomMember) error {
	return s.rdb.SaveRoomMember(m)
}

func (s *Persistent) GetRoomMember(code, playerID string) (*models.RoomMember, error) {
	member, err := s.rdb.GetRoomMember(code, playerID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	return member, nil
}

func (s *Persistent) GetRoomMembers(code string) ([]models.RoomMember, error) {
	return s.rdb.GetRoomMembers(code)
}

func (s *Persistent) UpdateRoomMember(m *models.RoomMember) error {
	return s.rdb.SaveRoomMember(m)
}

func (s *Persistent) RemoveRoomMember(code, playerID string) error {
	return s.rdb.RemoveRoomMember(code, playerID)
}

func (s *Persistent) CastVote(v *models.Vote) error {
	inserted, err := s.rdb.SaveVote(v)
	if err != nil {
		return err
	}
	if !inserted {
		return ErrDuplicateVote
	}
	return nil
}

func (s *Persistent) GetVotes(code string, round int) ([]models.Vote, error) {
	return s.rdb.GetVotes(code, round)
}

func (s *Persistent) ClearVotes(code string, round int) error {
	return s.rdb.ClearVotes(code, round)
}

func (s *Persistent) GetStats(playerID string) (*models.GameStats, error) {
	var row pgmodels.GameStats
	if err := s.db.Where("player_id = ?", playerID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.GameStats{PlayerID: playerID}, nil
		}
		return nil, err
	}
	return &models.GameStats{
		PlayerID:      row.PlayerID,
		GamesPlayed:   row.GamesPlayed,
		GamesWon:      row.GamesWon,
		ImpostorGames: row.ImpostorGames,
		ImpostorWins:  row.ImpostorWins,
	}, nil
}

func (s *Persistent) SaveStats(st *models.GameStats) error {
	row := pgmodels.GameStats{
		PlayerID:      st.PlayerID,
		GamesPlayed:   st.GamesPlayed,
		GamesWon:      st.GamesWon,
		ImpostorGames: st.ImpostorGames,
		ImpostorWins:  st.ImpostorWins,
	}
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("error saving stats: %w", err)
	}
	return nil
}

func playerFromRow(row *pgmodels.Player) *models.Player {
	return &models.Player{
		ID:        row.ID,
		Name:      row.Name,
		SessionID: row.SessionID,
		CreatedAt: row.CreatedAt,
	}
}
