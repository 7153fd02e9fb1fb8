package repository

import (
	"errors"

	"Farsante/models"
)

// Storage-level sentinels. The game service maps these onto its own
// player-facing error kinds.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateVote = errors.New("vote already cast for this round")
	ErrCodeExhausted = errors.New("could not allocate a unique room code")
)

// Repository is the CRUD contract for everything the game coordinator keeps.
// It holds no game rules: joins, role assignment, vote acceptance and phase
// transitions are all decided by the game service, which calls down here.
type Repository interface {
	// Players
	CreatePlayer(p *models.Player) error
	GetPlayer(id string) (*models.Player, error)
	GetPlayerBySession(sessionID string) (*models.Player, error)

	// Rooms. CreateRoom assigns a code unique among currently active rooms.
	CreateRoom(r *models.Room) error
	GetRoom(code string) (*models.Room, error)
	UpdateRoom(r *models.Room) error
	DeleteRoom(code string) error

	// Memberships
	AddRoomMember(m *models.RoomMember) error
	GetRoomMember(code, playerID string) (*models.RoomMember, error)
	GetRoomMembers(code string) ([]models.RoomMember, error)
	UpdateRoomMember(m *models.RoomMember) error
	RemoveRoomMember(code, playerID string) error

	// Votes. CastVote returns ErrDuplicateVote on a second ballot from the
	// same voter in the same round.
	CastVote(v *models.Vote) error
	GetVotes(code string, round int) ([]models.Vote, error)
	ClearVotes(code string, round int) error

	// Stats. GetStats returns a zeroed record when none exists yet.
	GetStats(playerID string) (*models.GameStats, error)
	SaveStats(s *models.GameStats) error
}
