package sync

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Farsante/models"
)

func archivedFixture() (*models.Room, []models.RoomMember, []models.Vote) {
	subject, _ := json.Marshal(map[string]string{"id": "messi", "name": "Lionel Messi"})
	room := &models.Room{
		Code:              "ABC123",
		HostID:            "host-1",
		MaxPlayers:        4,
		ImpostorCount:     1,
		VoteTime:          60,
		Phase:             models.PhaseFinished,
		CurrentRound:      2,
		CurrentFootballer: subject,
	}
	members := []models.RoomMember{
		{RoomCode: "ABC123", PlayerID: "host-1", Name: "ana", IsHost: true, IsAlive: true},
		{RoomCode: "ABC123", PlayerID: "p-2", Name: "bea", IsImpostor: true, IsAlive: false},
	}
	target := "p-2"
	votes := []models.Vote{
		{RoomCode: "ABC123", Round: 1, VoterID: "host-1", TargetID: &target, CastAt: time.Now()},
		{RoomCode: "ABC123", Round: 2, VoterID: "p-2", TargetID: nil, CastAt: time.Now()},
	}
	return room, members, votes
}

func TestArchiveRoomWritesEverythingInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	room, members, votes := archivedFixture()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO game_rooms").
		WithArgs(room.Code, room.HostID, room.MaxPlayers, room.ImpostorCount, room.VoteTime,
			room.CurrentRound, true, []byte(room.CurrentFootballer), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM game_room_players").
		WithArgs(room.Code).
		WillReturnResult(sqlmock.NewResult(0, 0))
	for _, m := range members {
		mock.ExpectExec("INSERT INTO game_room_players").
			WithArgs(room.Code, m.PlayerID, m.Name, m.IsImpostor, m.IsAlive, m.IsHost).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec("DELETE FROM game_votes").
		WithArgs(room.Code).
		WillReturnResult(sqlmock.NewResult(0, 0))
	for _, v := range votes {
		mock.ExpectExec("INSERT INTO game_votes").
			WithArgs(v.RoomCode, v.Round, v.VoterID, v.TargetID, v.CastAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	sm := NewSyncManager(db)
	err = sm.ArchiveRoom(room, members, votes, true)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveRoomRollsBackOnMemberInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	room, members, votes := archivedFixture()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO game_rooms").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM game_room_players").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO game_room_players").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	sm := NewSyncManager(db)
	err = sm.ArchiveRoom(room, members, votes, true)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
