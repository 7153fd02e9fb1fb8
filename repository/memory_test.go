package repository

import (
	"math/rand"
	"testing"

	"Farsante/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *InMemory {
	return NewInMemory(rand.New(rand.NewSource(1)))
}

func TestPlayerLookupBySession(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.CreatePlayer(&models.Player{ID: "p1", Name: "Ana", SessionID: "tok-1"}))

	p, err := s.GetPlayerBySession("tok-1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	_, err = s.GetPlayerBySession("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoomCodesUniqueAmongActiveRooms(t *testing.T) {
	s := newTestStore()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		r := &models.Room{Phase: models.PhaseWaiting, MaxPlayers: 4, ImpostorCount: 1}
		require.NoError(t, s.CreateRoom(r))
		assert.Len(t, r.Code, 6)
		for _, c := range r.Code {
			assert.Contains(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", string(c))
		}
		assert.False(t, seen[r.Code], "duplicate active code %s", r.Code)
		seen[r.Code] = true
	}
}

func TestMembershipLifecycle(t *testing.T) {
	s := newTestStore()
	r := &models.Room{Phase: models.PhaseWaiting, MaxPlayers: 4, ImpostorCount: 1}
	require.NoError(t, s.CreateRoom(r))

	m := &models.RoomMember{RoomCode: r.Code, PlayerID: "p1", Name: "Ana", IsAlive: true, IsHost: true}
	require.NoError(t, s.AddRoomMember(m))
	assert.Error(t, s.AddRoomMember(m), "second membership for same pair must fail")

	m.IsAlive = false
	require.NoError(t, s.UpdateRoomMember(m))
	got, err := s.GetRoomMember(r.Code, "p1")
	require.NoError(t, err)
	assert.False(t, got.IsAlive)
	assert.True(t, got.IsHost)

	require.NoError(t, s.RemoveRoomMember(r.Code, "p1"))
	_, err = s.GetRoomMember(r.Code, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateVoteRejected(t *testing.T) {
	s := newTestStore()
	target := "p2"
	v := &models.Vote{RoomCode: "ROOM01", Round: 1, VoterID: "p1", TargetID: &target}
	require.NoError(t, s.CastVote(v))

	other := "p3"
	dup := &models.Vote{RoomCode: "ROOM01", Round: 1, VoterID: "p1", TargetID: &other}
	assert.ErrorIs(t, s.CastVote(dup), ErrDuplicateVote)

	votes, err := s.GetVotes("ROOM01", 1)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, "p2", *votes[0].TargetID)

	// Same voter, next round: fine.
	next := &models.Vote{RoomCode: "ROOM01", Round: 2, VoterID: "p1", TargetID: &target}
	assert.NoError(t, s.CastVote(next))
}

func TestClearVotesScopedToRound(t *testing.T) {
	s := newTestStore()
	target := "p2"
	require.NoError(t, s.CastVote(&models.Vote{RoomCode: "R", Round: 1, VoterID: "a", TargetID: &target}))
	require.NoError(t, s.CastVote(&models.Vote{RoomCode: "R", Round: 2, VoterID: "a", TargetID: &target}))

	require.NoError(t, s.ClearVotes("R", 1))

	v1, _ := s.GetVotes("R", 1)
	v2, _ := s.GetVotes("R", 2)
	assert.Empty(t, v1)
	assert.Len(t, v2, 1)
}

func TestStatsZeroedWhenAbsent(t *testing.T) {
	s := newTestStore()
	st, err := s.GetStats("ghost")
	require.NoError(t, err)
	assert.Equal(t, "ghost", st.PlayerID)
	assert.Zero(t, st.GamesPlayed)

	st.GamesPlayed = 3
	st.GamesWon = 1
	require.NoError(t, s.SaveStats(st))

	again, err := s.GetStats("ghost")
	require.NoError(t, err)
	assert.Equal(t, 3, again.GamesPlayed)
	assert.Equal(t, 1, again.GamesWon)
}
