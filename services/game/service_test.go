package game

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Farsante/models"
	"Farsante/repository"
	"Farsante/services/catalog"
)

type recordedEvent struct {
	target  string // player ID for unicasts, room code for broadcasts
	name    string
	payload gin.H
}

type recordingNotifier struct {
	mu         sync.Mutex
	unicasts   []recordedEvent
	broadcasts []recordedEvent
}

func (n *recordingNotifier) Unicast(playerID, event string, payload gin.H) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.unicasts = append(n.unicasts, recordedEvent{playerID, event, payload})
}

func (n *recordingNotifier) Broadcast(roomCode, event string, payload gin.H) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.broadcasts = append(n.broadcasts, recordedEvent{roomCode, event, payload})
}

func (n *recordingNotifier) broadcastsNamed(event string) []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []recordedEvent
	for _, e := range n.broadcasts {
		if e.name == event {
			out = append(out, e)
		}
	}
	return out
}

func (n *recordingNotifier) unicastsNamed(event string) []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []recordedEvent
	for _, e := range n.unicasts {
		if e.name == event {
			out = append(out, e)
		}
	}
	return out
}

var testCatalog = []catalog.Footballer{
	{ID: "p1", Name: "Jugador Uno", Position: "Delantero", Country: "Argentina", ImageURL: "https://example.com/1.png", Hints: []string{"Zurdo", "Número 10"}},
	{ID: "p2", Name: "Jugador Dos", Position: "Portero", Country: "España", ImageURL: "https://example.com/2.png", Hints: []string{"Capitán"}},
	{ID: "p3", Name: "Jugador Tres", Position: "Central", Country: "Italia", ImageURL: "https://example.com/3.png", Hints: []string{"Veterano"}},
}

type fixture struct {
	repo     *repository.InMemory
	notifier *recordingNotifier
	gs       *Service
}

func newFixture(t *testing.T, seed int64) *fixture {
	t.Helper()
	// Separate sources: the store and the service draw under different locks.
	repo := repository.NewInMemory(rand.New(rand.NewSource(seed)))
	notifier := &recordingNotifier{}
	provider := catalog.NewStaticProviderWithCatalog(testCatalog, rand.New(rand.NewSource(seed)))
	return &fixture{repo: repo, notifier: notifier, gs: NewService(repo, provider, notifier, rand.New(rand.NewSource(seed+1)))}
}

// seatPlayers registers n players, has the first create a room and the rest
// join it. Returns the room code and the player IDs in seating order.
func seatPlayers(t *testing.T, fx *fixture, n, impostors, voteTime int) (string, []string) {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		p, err := fx.gs.RegisterPlayer(string(rune('A'+i))+"-player", "")
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	view, err := fx.gs.CreateRoom(ids[0], CreateRoomParams{MaxPlayers: n, ImpostorCount: impostors, VoteTime: voteTime})
	require.NoError(t, err)
	code := view.Room.Code
	for _, id := range ids[1:] {
		_, rejoined, err := fx.gs.JoinRoom(code, id)
		require.NoError(t, err)
		require.False(t, rejoined)
	}
	return code, ids
}

func splitByRole(t *testing.T, fx *fixture, code string) (impostors, innocents []string) {
	t.Helper()
	members, err := fx.repo.GetRoomMembers(code)
	require.NoError(t, err)
	for _, m := range members {
		if m.IsImpostor {
			impostors = append(impostors, m.PlayerID)
		} else {
			innocents = append(innocents, m.PlayerID)
		}
	}
	return impostors, innocents
}

func TestRegisterPlayerReusesSession(t *testing.T) {
	fx := newFixture(t, 1)
	first, err := fx.gs.RegisterPlayer("ana", "")
	require.NoError(t, err)
	assert.NotEmpty(t, first.SessionID)

	again, err := fx.gs.RegisterPlayer("ana", first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestCreateRoomRejectsBadConfig(t *testing.T) {
	fx := newFixture(t, 1)
	p, err := fx.gs.RegisterPlayer("host", "")
	require.NoError(t, err)

	_, err = fx.gs.CreateRoom(p.ID, CreateRoomParams{MaxPlayers: 2, ImpostorCount: 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = fx.gs.CreateRoom(p.ID, CreateRoomParams{MaxPlayers: 6, ImpostorCount: 4})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = fx.gs.CreateRoom(p.ID, CreateRoomParams{MaxPlayers: 6, ImpostorCount: 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCreateRoomDefaultsVoteTime(t *testing.T) {
	fx := newFixture(t, 1)
	p, err := fx.gs.RegisterPlayer("host", "")
	require.NoError(t, err)
	view, err := fx.gs.CreateRoom(p.ID, CreateRoomParams{MaxPlayers: 4, ImpostorCount: 1})
	require.NoError(t, err)
	assert.Equal(t, 60, view.Room.VoteTime)
	assert.Equal(t, models.PhaseWaiting, view.Room.Phase)
	require.Len(t, view.Players, 1)
	assert.True(t, view.Players[0].IsHost)
}

func TestJoinRoomCapacityAndPhase(t *testing.T) {
	fx := newFixture(t, 2)
	code, ids := seatPlayers(t, fx, 3, 1, 30)

	extra, err := fx.gs.RegisterPlayer("late", "")
	require.NoError(t, err)
	_, _, err = fx.gs.JoinRoom(code, extra.ID)
	assert.ErrorIs(t, err, ErrRoomFull)

	// A member joining again is a reconnection, not an error.
	view, rejoined, err := fx.gs.JoinRoom(code, ids[1])
	require.NoError(t, err)
	assert.True(t, rejoined)
	assert.Len(t, view.Players, 3)

	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	_, _, err = fx.gs.JoinRoom(code, extra.ID)
	assert.ErrorIs(t, err, ErrGameInProgress)
}

func TestJoinUnknownRoom(t *testing.T) {
	fx := newFixture(t, 3)
	p, err := fx.gs.RegisterPlayer("ana", "")
	require.NoError(t, err)
	_, _, err = fx.gs.JoinRoom("ZZZZZZ", p.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestStartGameAssignsExactlyImpostorCount(t *testing.T) {
	fx := newFixture(t, 4)
	code, ids := seatPlayers(t, fx, 6, 2, 30)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))

	impostors, innocents := splitByRole(t, fx, code)
	assert.Len(t, impostors, 2)
	assert.Len(t, innocents, 4)

	view, err := fx.gs.RoomState(code)
	require.NoError(t, err)
	assert.Equal(t, models.PhasePlaying, view.Room.Phase)
	assert.Equal(t, 1, view.Room.CurrentRound)
	// Snapshots must not reveal roles mid-game.
	for _, p := range view.Players {
		assert.False(t, p.IsImpostor)
	}

	roles := fx.notifier.unicastsNamed("role_assigned")
	require.Len(t, roles, 6)
	for _, e := range roles {
		card, ok := e.payload["footballer"].(catalog.Footballer)
		require.True(t, ok)
		if e.payload["isImpostor"].(bool) {
			assert.Empty(t, card.ImageURL)
			assert.NotEmpty(t, e.payload["hint"])
		} else {
			assert.NotEmpty(t, card.ImageURL)
			assert.NotContains(t, e.payload, "hint")
		}
	}
	assert.Len(t, fx.notifier.broadcastsNamed("game_started"), 1)
}

func TestStartGameAuthorization(t *testing.T) {
	fx := newFixture(t, 5)
	code, ids := seatPlayers(t, fx, 4, 1, 30)

	assert.ErrorIs(t, fx.gs.StartGame(code, ids[1]), ErrNotAuthorized)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	assert.ErrorIs(t, fx.gs.StartGame(code, ids[0]), ErrWrongPhase)
}

func TestStartGameNeedsThreePlayers(t *testing.T) {
	fx := newFixture(t, 6)
	p, err := fx.gs.RegisterPlayer("host", "")
	require.NoError(t, err)
	view, err := fx.gs.CreateRoom(p.ID, CreateRoomParams{MaxPlayers: 5, ImpostorCount: 1})
	require.NoError(t, err)
	other, err := fx.gs.RegisterPlayer("guest", "")
	require.NoError(t, err)
	_, _, err = fx.gs.JoinRoom(view.Room.Code, other.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, fx.gs.StartGame(view.Room.Code, p.ID), ErrNotEnoughPlayers)
}

func TestStartVotingIsIdempotent(t *testing.T) {
	fx := newFixture(t, 7)
	code, ids := seatPlayers(t, fx, 4, 1, 60)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))

	require.NoError(t, fx.gs.StartVoting(code))
	require.NoError(t, fx.gs.StartVoting(code))
	assert.Len(t, fx.notifier.broadcastsNamed("voting_started"), 1)

	view, err := fx.gs.RoomState(code)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseVoting, view.Room.Phase)
	require.NotNil(t, view.Room.VotingEndsAt)
}

func TestStartVotingRequiresPlayingPhase(t *testing.T) {
	fx := newFixture(t, 8)
	code, _ := seatPlayers(t, fx, 4, 1, 60)
	assert.ErrorIs(t, fx.gs.StartVoting(code), ErrWrongPhase)
}

func TestUnanimousVoteEliminatesTarget(t *testing.T) {
	fx := newFixture(t, 9)
	code, ids := seatPlayers(t, fx, 4, 1, 60)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	require.NoError(t, fx.gs.StartVoting(code))

	_, innocents := splitByRole(t, fx, code)
	target := innocents[0]
	for i, id := range ids {
		if i == len(ids)-1 {
			// Last ballot is an abstention; it still completes the quorum.
			require.NoError(t, fx.gs.CastVote(code, id, nil))
		} else {
			require.NoError(t, fx.gs.CastVote(code, id, &target))
		}
	}

	ended := fx.notifier.broadcastsNamed("round_ended")
	require.Len(t, ended, 1)
	assert.Equal(t, target, ended[0].payload["eliminatedPlayerId"])
	assert.Equal(t, map[string]int{target: 3}, ended[0].payload["voteCounts"])

	member, err := fx.repo.GetRoomMember(code, target)
	require.NoError(t, err)
	assert.False(t, member.IsAlive)

	view, err := fx.gs.RoomState(code)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseResults, view.Room.Phase)
	assert.Nil(t, view.Room.VotingEndsAt)
}

func TestTiedVoteEliminatesNobody(t *testing.T) {
	fx := newFixture(t, 10)
	code, ids := seatPlayers(t, fx, 4, 1, 60)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	require.NoError(t, fx.gs.StartVoting(code))

	require.NoError(t, fx.gs.CastVote(code, ids[0], &ids[1]))
	require.NoError(t, fx.gs.CastVote(code, ids[1], &ids[0]))
	require.NoError(t, fx.gs.CastVote(code, ids[2], &ids[1]))
	require.NoError(t, fx.gs.CastVote(code, ids[3], &ids[0]))

	ended := fx.notifier.broadcastsNamed("round_ended")
	require.Len(t, ended, 1)
	assert.Nil(t, ended[0].payload["eliminatedPlayerId"])

	members, err := fx.repo.GetRoomMembers(code)
	require.NoError(t, err)
	for _, m := range members {
		assert.True(t, m.IsAlive)
	}
}

func TestDuplicateVoteRejected(t *testing.T) {
	fx := newFixture(t, 11)
	code, ids := seatPlayers(t, fx, 4, 1, 60)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	require.NoError(t, fx.gs.StartVoting(code))

	require.NoError(t, fx.gs.CastVote(code, ids[0], &ids[1]))
	assert.ErrorIs(t, fx.gs.CastVote(code, ids[0], &ids[2]), ErrAlreadyVoted)
}

func TestVoteOutsideVotingPhase(t *testing.T) {
	fx := newFixture(t, 12)
	code, ids := seatPlayers(t, fx, 4, 1, 60)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	assert.ErrorIs(t, fx.gs.CastVote(code, ids[0], &ids[1]), ErrNotVotingPhase)
}

func TestVoteForDeadTargetRejected(t *testing.T) {
	fx := newFixture(t, 13)
	code, ids := seatPlayers(t, fx, 5, 1, 60)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	require.NoError(t, fx.gs.StartVoting(code))

	_, innocents := splitByRole(t, fx, code)
	dead := innocents[0]
	for _, id := range ids {
		require.NoError(t, fx.gs.CastVote(code, id, &dead))
	}
	require.NoError(t, fx.gs.AdvanceRound(code, ids[0]))
	require.NoError(t, fx.gs.StartVoting(code))

	alive := ids[0]
	if alive == dead {
		alive = ids[1]
	}
	assert.ErrorIs(t, fx.gs.CastVote(code, alive, &dead), ErrInvalidTarget)
}

func TestTimerExpiryResolvesRoundOnce(t *testing.T) {
	fx := newFixture(t, 14)
	code, ids := seatPlayers(t, fx, 4, 1, 600)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	require.NoError(t, fx.gs.StartVoting(code))

	_, innocents := splitByRole(t, fx, code)
	target := innocents[0]
	require.NoError(t, fx.gs.CastVote(code, ids[0], &target))
	require.NoError(t, fx.gs.CastVote(code, ids[1], &target))

	// Countdown ends with ballots missing: the partial tally decides.
	fx.gs.voteTimerExpired(code)
	ended := fx.notifier.broadcastsNamed("round_ended")
	require.Len(t, ended, 1)
	assert.Equal(t, target, ended[0].payload["eliminatedPlayerId"])

	// A stale callback after resolution must not tally again.
	fx.gs.voteTimerExpired(code)
	assert.Len(t, fx.notifier.broadcastsNamed("round_ended"), 1)
}

func TestAdvanceRoundStartsNextRound(t *testing.T) {
	fx := newFixture(t, 15)
	code, ids := seatPlayers(t, fx, 5, 1, 60)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	require.NoError(t, fx.gs.StartVoting(code))

	_, innocents := splitByRole(t, fx, code)
	target := innocents[0]
	for _, id := range ids {
		require.NoError(t, fx.gs.CastVote(code, id, &target))
	}
	require.NoError(t, fx.gs.AdvanceRound(code, ids[0]))

	view, err := fx.gs.RoomState(code)
	require.NoError(t, err)
	assert.Equal(t, models.PhasePlaying, view.Room.Phase)
	assert.Equal(t, 2, view.Room.CurrentRound)

	// Alive members get the new subject shaped for their role, the
	// eliminated player only the snapshot.
	started := fx.notifier.unicastsNamed("round_started")
	require.Len(t, started, 5)
	for _, e := range started {
		if e.target == target {
			assert.NotContains(t, e.payload, "footballer")
		} else {
			assert.Contains(t, e.payload, "footballer")
		}
	}
}

func TestAdvanceRoundRequiresResultsPhase(t *testing.T) {
	fx := newFixture(t, 16)
	code, ids := seatPlayers(t, fx, 4, 1, 60)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	assert.ErrorIs(t, fx.gs.AdvanceRound(code, ids[0]), ErrWrongPhase)
}

func TestInnocentsWinWhenLastImpostorFalls(t *testing.T) {
	fx := newFixture(t, 17)
	code, ids := seatPlayers(t, fx, 4, 1, 60)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	require.NoError(t, fx.gs.StartVoting(code))

	impostors, innocents := splitByRole(t, fx, code)
	impostor := impostors[0]
	for _, id := range ids {
		require.NoError(t, fx.gs.CastVote(code, id, &impostor))
	}
	require.NoError(t, fx.gs.AdvanceRound(code, ids[0]))

	ended := fx.notifier.broadcastsNamed("game_ended")
	require.Len(t, ended, 1)
	assert.Equal(t, false, ended[0].payload["impostorsWin"])

	// Final snapshot reveals roles.
	view := ended[0].payload["roomState"].(*RoomStateView)
	assert.Equal(t, models.PhaseFinished, view.Room.Phase)
	revealed := 0
	for _, p := range view.Players {
		if p.IsImpostor {
			revealed++
		}
	}
	assert.Equal(t, 1, revealed)

	// Stats recorded for every member, live room torn down.
	st, err := fx.repo.GetStats(impostor)
	require.NoError(t, err)
	assert.Equal(t, 1, st.GamesPlayed)
	assert.Equal(t, 0, st.GamesWon)
	assert.Equal(t, 1, st.ImpostorGames)
	assert.Equal(t, 0, st.ImpostorWins)
	st, err = fx.repo.GetStats(innocents[0])
	require.NoError(t, err)
	assert.Equal(t, 1, st.GamesPlayed)
	assert.Equal(t, 1, st.GamesWon)
	assert.Equal(t, 0, st.ImpostorGames)

	_, err = fx.gs.RoomState(code)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestImpostorsWinOnParity(t *testing.T) {
	fx := newFixture(t, 18)
	code, ids := seatPlayers(t, fx, 3, 1, 60)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	require.NoError(t, fx.gs.StartVoting(code))

	impostors, innocents := splitByRole(t, fx, code)
	target := innocents[0]
	for _, id := range ids {
		require.NoError(t, fx.gs.CastVote(code, id, &target))
	}
	require.NoError(t, fx.gs.AdvanceRound(code, ids[0]))

	ended := fx.notifier.broadcastsNamed("game_ended")
	require.Len(t, ended, 1)
	assert.Equal(t, true, ended[0].payload["impostorsWin"])

	st, err := fx.repo.GetStats(impostors[0])
	require.NoError(t, err)
	assert.Equal(t, 1, st.GamesWon)
	assert.Equal(t, 1, st.ImpostorWins)
}

func TestLeaveRoomInLobbyFreesSeat(t *testing.T) {
	fx := newFixture(t, 19)
	code, ids := seatPlayers(t, fx, 3, 1, 60)

	require.NoError(t, fx.gs.LeaveRoom(code, ids[1]))
	members, err := fx.repo.GetRoomMembers(code)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	extra, err := fx.gs.RegisterPlayer("late", "")
	require.NoError(t, err)
	_, _, err = fx.gs.JoinRoom(code, extra.ID)
	assert.NoError(t, err)
}

func TestHostLeavingLobbyClosesRoom(t *testing.T) {
	fx := newFixture(t, 20)
	code, ids := seatPlayers(t, fx, 3, 1, 60)
	require.NoError(t, fx.gs.LeaveRoom(code, ids[0]))
	_, err := fx.gs.RoomState(code)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestLeaveMidGameKeepsMembershipButKills(t *testing.T) {
	fx := newFixture(t, 21)
	code, ids := seatPlayers(t, fx, 4, 1, 60)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))

	require.NoError(t, fx.gs.LeaveRoom(code, ids[2]))
	member, err := fx.repo.GetRoomMember(code, ids[2])
	require.NoError(t, err)
	assert.False(t, member.IsAlive)
}

func TestLeaveDuringVotingCompletesQuorum(t *testing.T) {
	fx := newFixture(t, 22)
	code, ids := seatPlayers(t, fx, 4, 1, 60)
	require.NoError(t, fx.gs.StartGame(code, ids[0]))
	require.NoError(t, fx.gs.StartVoting(code))

	_, innocents := splitByRole(t, fx, code)
	target := innocents[0]
	voters := make([]string, 0, 3)
	for _, id := range ids {
		if id != innocents[1] {
			voters = append(voters, id)
		}
	}
	for _, id := range voters {
		require.NoError(t, fx.gs.CastVote(code, id, &target))
	}
	require.Empty(t, fx.notifier.broadcastsNamed("round_ended"))

	// The only member without a ballot walks away; the round resolves.
	require.NoError(t, fx.gs.LeaveRoom(code, innocents[1]))
	assert.Len(t, fx.notifier.broadcastsNamed("round_ended"), 1)
}

// Room creation samples codes inside the store while StartGame shuffles seats
// and draws hints inside the service. Both must stay race-free when rooms
// progress in parallel.
func TestConcurrentRoomsStartIndependently(t *testing.T) {
	fx := newFixture(t, 23)

	const rooms = 8
	errs := make(chan error, rooms)
	var wg sync.WaitGroup
	for i := 0; i < rooms; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ids := make([]string, 0, 3)
			for j := 0; j < 3; j++ {
				p, err := fx.gs.RegisterPlayer(fmt.Sprintf("player-%d-%d", n, j), "")
				if err != nil {
					errs <- err
					return
				}
				ids = append(ids, p.ID)
			}
			view, err := fx.gs.CreateRoom(ids[0], CreateRoomParams{MaxPlayers: 3, ImpostorCount: 1, VoteTime: 60})
			if err != nil {
				errs <- err
				return
			}
			for _, id := range ids[1:] {
				if _, _, err := fx.gs.JoinRoom(view.Room.Code, id); err != nil {
					errs <- err
					return
				}
			}
			errs <- fx.gs.StartGame(view.Room.Code, ids[0])
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Len(t, fx.notifier.broadcastsNamed("game_started"), rooms)
}
