package models

import (
	"encoding/json"
	"time"
)

// GamePhase is the stage a room is currently in. Transitions only happen
// through the game service: waiting -> playing -> voting -> results ->
// (playing | finished).
type GamePhase string

const (
	PhaseWaiting  GamePhase = "waiting"
	PhasePlaying  GamePhase = "playing"
	PhaseVoting   GamePhase = "voting"
	PhaseResults  GamePhase = "results"
	PhaseFinished GamePhase = "finished"
)

// Player is a connected (or previously connected) person. The session token
// lets a reconnecting client recover its identity; the record itself is never
// deleted while the process lives.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Room is the live state of one game, identified by its 6-character code.
type Room struct {
	Code          string    `json:"id"`
	HostID        string    `json:"hostId"`
	MaxPlayers    int       `json:"maxPlayers"`
	ImpostorCount int       `json:"impostorCount"`
	VoteTime      int       `json:"voteTime"` // seconds
	Phase         GamePhase `json:"phase"`
	CurrentRound  int       `json:"currentRound"`
	// CurrentFootballer holds the serialized secret subject for the round.
	// It is never included in broadcast room state.
	CurrentFootballer json.RawMessage `json:"-"`
	// VotingEndsAt is set while the room is in the voting phase so that
	// reconnecting clients can recover the remaining countdown.
	VotingEndsAt *time.Time `json:"votingEndsAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// RoomMember is a player's participation record within one room. It survives
// disconnects; only an explicit leave removes it.
type RoomMember struct {
	RoomCode   string    `json:"roomId"`
	PlayerID   string    `json:"playerId"`
	Name       string    `json:"name"`
	IsImpostor bool      `json:"isImpostor"`
	IsAlive    bool      `json:"isAlive"`
	IsHost     bool      `json:"isHost"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// Vote is one ballot for a given room and round. A nil target is an abstain:
// it counts toward participation but never toward any player's tally.
type Vote struct {
	RoomCode string    `json:"roomId"`
	Round    int       `json:"round"`
	VoterID  string    `json:"voterId"`
	TargetID *string   `json:"targetId"`
	CastAt   time.Time `json:"castAt"`
}

// GameStats are lifetime counters per player, updated only when a game ends.
type GameStats struct {
	PlayerID      string `json:"playerId"`
	GamesPlayed   int    `json:"gamesPlayed"`
	GamesWon      int    `json:"gamesWon"`
	ImpostorGames int    `json:"impostorGames"`
	ImpostorWins  int    `json:"impostorWins"`
}
