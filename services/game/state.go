package game

import (
	"Farsante/models"
)

// MemberView is the per-player slice of a room snapshot. Role information is
// masked while the game is running so that a broadcast snapshot never leaks
// who the impostors are.
type MemberView struct {
	PlayerID   string `json:"playerId"`
	Name       string `json:"name"`
	IsImpostor bool   `json:"isImpostor"`
	IsAlive    bool   `json:"isAlive"`
	IsHost     bool   `json:"isHost"`
}

// RoomStateView is the snapshot broadcast to every client after each state
// transition. Votes are only populated while they are relevant (voting and
// results phases).
type RoomStateView struct {
	Room    models.Room   `json:"room"`
	Players []MemberView  `json:"players"`
	Votes   []models.Vote `json:"votes,omitempty"`
}

func buildRoomState(room *models.Room, members []models.RoomMember, votes []models.Vote) *RoomStateView {
	revealRoles := room.Phase == models.PhaseFinished
	view := &RoomStateView{Room: *room, Players: make([]MemberView, 0, len(members))}
	for _, m := range members {
		mv := MemberView{
			PlayerID: m.PlayerID,
			Name:     m.Name,
			IsAlive:  m.IsAlive,
			IsHost:   m.IsHost,
		}
		if revealRoles {
			mv.IsImpostor = m.IsImpostor
		}
		view.Players = append(view.Players, mv)
	}
	if room.Phase == models.PhaseVoting || room.Phase == models.PhaseResults {
		view.Votes = votes
	}
	return view
}

// RoomState loads a room and produces the masked snapshot clients can see.
func (s *Service) RoomState(code string) (*RoomStateView, error) {
	room, err := s.loadRoom(code)
	if err != nil {
		return nil, err
	}
	return s.snapshot(room)
}

func (s *Service) snapshot(room *models.Room) (*RoomStateView, error) {
	members, err := s.repo.GetRoomMembers(room.Code)
	if err != nil {
		return nil, err
	}
	var votes []models.Vote
	if room.Phase == models.PhaseVoting || room.Phase == models.PhaseResults {
		votes, err = s.repo.GetVotes(room.Code, room.CurrentRound)
		if err != nil {
			return nil, err
		}
	}
	return buildRoomState(room, members, votes), nil
}
