package game

import "errors"

// Player-facing failure kinds. None of them is fatal to the connection: the
// socket layer reports them to the originating client and keeps the session.
var (
	ErrInvalidConfig    = errors.New("invalid room configuration")
	ErrRoomNotFound     = errors.New("room not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrRoomFull         = errors.New("room is full")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrNotEnoughPlayers = errors.New("need at least 3 players to start")
	ErrWrongPhase       = errors.New("action not allowed in the current phase")
	ErrNotVotingPhase   = errors.New("voting not active")
	ErrAlreadyVoted     = errors.New("already voted this round")
	ErrInvalidTarget    = errors.New("vote target is not an alive member of this room")
	ErrGameInProgress   = errors.New("game already in progress")
)
