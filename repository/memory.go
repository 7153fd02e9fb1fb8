package repository

import (
	"fmt"
	"math/rand"
	"sync"

	"Farsante/models"
	"Farsante/utils"
)

// Bounded retries for code rejection sampling: 36^6 codes make collisions
// vanishingly rare at realistic room counts, so hitting the bound means the
// random source is broken.
const maxCodeAttempts = 100

// InMemory keeps everything in process memory behind one RWMutex. It is the
// repository used by tests and by single-process deployments without
// Redis/PostgreSQL.
type InMemory struct {
	mu      sync.RWMutex
	rng     *rand.Rand
	players map[string]*models.Player
	rooms   map[string]*models.Room
	members map[string][]*models.RoomMember    // room code -> join order
	votes   map[string]map[int][]*models.Vote  // room code -> round -> ballots
	stats   map[string]*models.GameStats
}

// NewInMemory builds an empty store. The random source feeds room code
// generation only.
func NewInMemory(rng *rand.Rand) *InMemory {
	return &InMemory{
		rng:     rng,
		players: make(map[string]*models.Player),
		rooms:   make(map[string]*models.Room),
		members: make(map[string][]*models.RoomMember),
		votes:   make(map[string]map[int][]*models.Vote),
		stats:   make(map[string]*models.GameStats),
	}
}

func (s *InMemory) CreatePlayer(p *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.players[p.ID] = &cp
	return nil
}

func (s *InMemory) GetPlayer(id string) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemory) GetPlayerBySession(sessionID string) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.players {
		if p.SessionID == sessionID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemory) CreateRoom(r *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := utils.RandomRoomCode(s.rng)
		if _, taken := s.rooms[code]; taken {
			continue
		}
		r.Code = code
		cp := *r
		s.rooms[code] = &cp
		return nil
	}
	return ErrCodeExhausted
}

func (s *InMemory) GetRoom(code string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *InMemory) UpdateRoom(r *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[r.Code]; !ok {
		return ErrNotFound
	}
	cp := *r
	s.rooms[r.Code] = &cp
	return nil
}

func (s *InMemory) DeleteRoom(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[code]; !ok {
		return ErrNotFound
	}
	delete(s.rooms, code)
	delete(s.members, code)
	delete(s.votes, code)
	return nil
}

func (s *InMemory) AddRoomMember(m *models.RoomMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.members[m.RoomCode] {
		if existing.PlayerID == m.PlayerID {
			return fmt.Errorf("player %s already member of room %s", m.PlayerID, m.RoomCode)
		}
	}
	cp := *m
	s.members[m.RoomCode] = append(s.members[m.RoomCode], &cp)
	return nil
}

func (s *InMemory) GetRoomMember(code, playerID string) (*models.RoomMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members[code] {
		if m.PlayerID == playerID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemory) GetRoomMembers(code string) ([]models.RoomMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.RoomMember, 0, len(s.members[code]))
	for _, m := range s.members[code] {
		out = append(out, *m)
	}
	return out, nil
}

func (s *InMemory) UpdateRoomMember(m *models.RoomMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.members[m.RoomCode] {
		if existing.PlayerID == m.PlayerID {
			cp := *m
			s.members[m.RoomCode][i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (s *InMemory) RemoveRoomMember(code, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.members[code]
	for i, m := range list {
		if m.PlayerID == playerID {
			s.members[code] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *InMemory) CastVote(v *models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rounds, ok := s.votes[v.RoomCode]
	if !ok {
		rounds = make(map[int][]*models.Vote)
		s.votes[v.RoomCode] = rounds
	}
	for _, existing := range rounds[v.Round] {
		if existing.VoterID == v.VoterID {
			return ErrDuplicateVote
		}
	}
	cp := *v
	rounds[v.Round] = append(rounds[v.Round], &cp)
	return nil
}

func (s *InMemory) GetVotes(code string, round int) ([]models.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Vote{}
	for _, v := range s.votes[code][round] {
		out = append(out, *v)
	}
	return out, nil
}

func (s *InMemory) ClearVotes(code string, round int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rounds, ok := s.votes[code]; ok {
		delete(rounds, round)
	}
	return nil
}

func (s *InMemory) GetStats(playerID string) (*models.GameStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.stats[playerID]; ok {
		cp := *st
		return &cp, nil
	}
	return &models.GameStats{PlayerID: playerID}, nil
}

func (s *InMemory) SaveStats(st *models.GameStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *st
	s.stats[st.PlayerID] = &cp
	return nil
}
