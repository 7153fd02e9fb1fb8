package sync

import (
	"database/sql"
	"fmt"
	"time"

	"Farsante/models"
)

// SyncManager copies a finished game out of the live store into PostgreSQL.
// Live room state lives in Redis with a TTL; everything worth keeping after
// the TTL (the game record, who played which role, every ballot) lands here
// in one transaction.
type SyncManager struct {
	db *sql.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(db *sql.DB) *SyncManager {
	return &SyncManager{db: db}
}

// ArchiveRoom writes the room, its memberships and all rounds' votes as one
// transaction. Safe to re-run for the same room: the room insert upserts and
// memberships/votes are replaced.
func (sm *SyncManager) ArchiveRoom(room *models.Room, members []models.RoomMember, votes []models.Vote, impostorsWin bool) error {
	tx, err := sm.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %v", err)
	}
	defer tx.Rollback()

	roomQuery := `
		INSERT INTO game_rooms
			(code, host_id, max_players, impostor_count, vote_time, rounds, impostors_won, last_subject, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (code) DO UPDATE SET
			rounds = EXCLUDED.rounds,
			impostors_won = EXCLUDED.impostors_won,
			last_subject = EXCLUDED.last_subject,
			finished_at = EXCLUDED.finished_at
	`
	var lastSubject interface{}
	if len(room.CurrentFootballer) > 0 {
		lastSubject = []byte(room.CurrentFootballer)
	}
	_, err = tx.Exec(roomQuery,
		room.Code,
		room.HostID,
		room.MaxPlayers,
		room.ImpostorCount,
		room.VoteTime,
		room.CurrentRound,
		impostorsWin,
		lastSubject,
		time.Now())
	if err != nil {
		return fmt.Errorf("error archiving room in PostgreSQL: %v", err)
	}

	if _, err = tx.Exec(`DELETE FROM game_room_players WHERE room_code = $1`, room.Code); err != nil {
		return fmt.Errorf("error clearing archived memberships: %v", err)
	}
	memberQuery := `
		INSERT INTO game_room_players (room_code, player_id, name, is_impostor, is_alive, is_host)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, m := range members {
		if _, err = tx.Exec(memberQuery, room.Code, m.PlayerID, m.Name, m.IsImpostor, m.IsAlive, m.IsHost); err != nil {
			return fmt.Errorf("error archiving membership of %s: %v", m.PlayerID, err)
		}
	}

	if _, err = tx.Exec(`DELETE FROM game_votes WHERE room_code = $1`, room.Code); err != nil {
		return fmt.Errorf("error clearing archived votes: %v", err)
	}
	voteQuery := `
		INSERT INTO game_votes (room_code, round, voter_id, target_id, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, v := range votes {
		if _, err = tx.Exec(voteQuery, v.RoomCode, v.Round, v.VoterID, v.TargetID, v.CastAt); err != nil {
			return fmt.Errorf("error archiving vote by %s: %v", v.VoterID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %v", err)
	}
	return nil
}
