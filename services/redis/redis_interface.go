package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"Farsante/models"
	redis_utils "Farsante/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// Live game state lives in Redis with a TTL: a room that sees no activity for
// a day is garbage. Durable records (players, stats, finished games) are in
// PostgreSQL instead.
const liveStateTTL = 24 * time.Hour

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// ReserveRoomCode atomically claims a code in the active set. Returns false
// when the code is already taken, in which case the caller samples again.
func (rc *RedisClient) ReserveRoomCode(code string) (bool, error) {
	added, err := rc.client.SAdd(rc.ctx, redis_utils.ActiveRoomCodesKey, code).Result()
	if err != nil {
		return false, fmt.Errorf("error reserving room code: %v", err)
	}
	return added > 0, nil
}

// ReleaseRoomCode frees a code once its room is torn down.
func (rc *RedisClient) ReleaseRoomCode(code string) error {
	if err := rc.client.SRem(rc.ctx, redis_utils.ActiveRoomCodesKey, code).Err(); err != nil {
		return fmt.Errorf("error releasing room code: %v", err)
	}
	return nil
}

// storedRoom is the Redis representation of a room. The secret subject is
// excluded from the room's client-facing JSON, so storage carries it in a
// separate field.
type storedRoom struct {
	models.Room
	Subject json.RawMessage `json:"subject,omitempty"`
}

// SaveRoom stores a room's live state
// Key format: "room:{code}"
// TTL: 24 hours
func (rc *RedisClient) SaveRoom(room *models.Room) error {
	key := redis_utils.FormatRoomKey(room.Code)
	data, err := json.Marshal(storedRoom{Room: *room, Subject: room.CurrentFootballer})
	if err != nil {
		return fmt.Errorf("error marshaling room data: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, liveStateTTL).Err()
}

// GetRoom retrieves a room's live state
// Key format: "room:{code}"
// Returns redis.Nil via the wrapped error when the room does not exist.
func (rc *RedisClient) GetRoom(roomCode string) (*models.Room, error) {
	key := redis_utils.FormatRoomKey(roomCode)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting room data: %v", err)
	}

	var stored storedRoom
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("error unmarshaling room data: %v", err)
	}
	room := stored.Room
	room.CurrentFootballer = stored.Subject
	return &room, nil
}

// DeleteRoom removes a room, its member hash and its active-code reservation
// in one pipeline.
func (rc *RedisClient) DeleteRoom(roomCode string, rounds int) error {
	pipe := rc.client.Pipeline()
	pipe.Del(rc.ctx, redis_utils.FormatRoomKey(roomCode))
	pipe.Del(rc.ctx, redis_utils.FormatRoomMembersKey(roomCode))
	for round := 1; round <= rounds; round++ {
		pipe.Del(rc.ctx, redis_utils.FormatRoundVotesKey(roomCode, round))
	}
	pipe.SRem(rc.ctx, redis_utils.ActiveRoomCodesKey, roomCode)

	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error deleting room data: %v", err)
	}
	return nil
}

// SaveRoomMember upserts one membership record in the room's member hash.
// Key format: "room:{code}:members", field: player id
func (rc *RedisClient) SaveRoomMember(member *models.RoomMember) error {
	key := redis_utils.FormatRoomMembersKey(member.RoomCode)
	data, err := json.Marshal(member)
	if err != nil {
		return fmt.Errorf("error marshaling member data: %v", err)
	}
	pipe := rc.client.Pipeline()
	pipe.HSet(rc.ctx, key, member.PlayerID, data)
	pipe.Expire(rc.ctx, key, liveStateTTL)
	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error saving member data: %v", err)
	}
	return nil
}

// GetRoomMember retrieves one membership record, nil when absent.
func (rc *RedisClient) GetRoomMember(roomCode, playerID string) (*models.RoomMember, error) {
	key := redis_utils.FormatRoomMembersKey(roomCode)
	data, err := rc.client.HGet(rc.ctx, key, playerID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting member data: %v", err)
	}

	var member models.RoomMember
	if err := json.Unmarshal(data, &member); err != nil {
		return nil, fmt.Errorf("error unmarshaling member data: %v", err)
	}
	return &member, nil
}

// GetRoomMembers retrieves all memberships of a room, ordered by join time.
func (rc *RedisClient) GetRoomMembers(roomCode string) ([]models.RoomMember, error) {
	key := redis_utils.FormatRoomMembersKey(roomCode)
	raw, err := rc.client.HGetAll(rc.ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting room members: %v", err)
	}

	members := make([]models.RoomMember, 0, len(raw))
	for _, data := range raw {
		var member models.RoomMember
		if err := json.Unmarshal([]byte(data), &member); err != nil {
			return nil, fmt.Errorf("error unmarshaling member data: %v", err)
		}
		members = append(members, member)
	}
	sortMembersByJoin(members)
	return members, nil
}

// RemoveRoomMember deletes one membership record (explicit leave only,
// disconnects keep the record for reconnection).
func (rc *RedisClient) RemoveRoomMember(roomCode, playerID string) error {
	key := redis_utils.FormatRoomMembersKey(roomCode)
	if err := rc.client.HDel(rc.ctx, key, playerID).Err(); err != nil {
		return fmt.Errorf("error removing member data: %v", err)
	}
	return nil
}

// SaveVote records one ballot for the given round. HSetNX keyed by voter id
// rejects a second ballot from the same voter at the storage level.
// Key format: "room:{code}:round:{n}:votes", field: voter id
func (rc *RedisClient) SaveVote(vote *models.Vote) (bool, error) {
	key := redis_utils.FormatRoundVotesKey(vote.RoomCode, vote.Round)
	data, err := json.Marshal(vote)
	if err != nil {
		return false, fmt.Errorf("error marshaling vote data: %v", err)
	}
	inserted, err := rc.client.HSetNX(rc.ctx, key, vote.VoterID, data).Result()
	if err != nil {
		return false, fmt.Errorf("error saving vote data: %v", err)
	}
	if inserted {
		rc.client.Expire(rc.ctx, key, liveStateTTL)
	}
	return inserted, nil
}

// GetVotes retrieves all ballots of a room's round.
func (rc *RedisClient) GetVotes(roomCode string, round int) ([]models.Vote, error) {
	key := redis_utils.FormatRoundVotesKey(roomCode, round)
	raw, err := rc.client.HGetAll(rc.ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting votes: %v", err)
	}

	votes := make([]models.Vote, 0, len(raw))
	for _, data := range raw {
		var vote models.Vote
		if err := json.Unmarshal([]byte(data), &vote); err != nil {
			return nil, fmt.Errorf("error unmarshaling vote data: %v", err)
		}
		votes = append(votes, vote)
	}
	return votes, nil
}

// ClearVotes drops all ballots of a room's round.
func (rc *RedisClient) ClearVotes(roomCode string, round int) error {
	key := redis_utils.FormatRoundVotesKey(roomCode, round)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error clearing votes: %v", err)
	}
	return nil
}

func sortMembersByJoin(members []models.RoomMember) {
	// Insertion sort: member lists are tiny (room capacity bounded).
	for i := 1; i < len(members); i++ {
		for j := i; j > 0 && members[j].JoinedAt.Before(members[j-1].JoinedAt); j-- {
			members[j], members[j-1] = members[j-1], members[j]
		}
	}
}
