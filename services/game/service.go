package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	game_constants "Farsante/constants/game"
	"Farsante/models"
	"Farsante/repository"
	"Farsante/services/catalog"
)

// Notifier is how the coordinator pushes game events out to clients. The
// socket layer implements it; the service never touches sockets directly so
// timer-driven transitions can notify without a client request in flight.
type Notifier interface {
	Unicast(playerID string, event string, payload gin.H)
	Broadcast(roomCode string, event string, payload gin.H)
}

// Archiver receives a finished game for durable storage. Archiving is best
// effort: a failure is logged and the game still ends.
type Archiver interface {
	ArchiveRoom(room *models.Room, members []models.RoomMember, votes []models.Vote, impostorsWin bool) error
}

// CreateRoomParams carries the host-chosen room configuration. Zero or
// negative VoteTime falls back to the default countdown.
type CreateRoomParams struct {
	MaxPlayers    int
	ImpostorCount int
	VoteTime      int
}

// Service owns every game rule: room lifecycle, role assignment, the voting
// countdown, tallies, eliminations and win detection. All mutations of one
// room run under that room's lock, so a last-ballot tally and a countdown
// expiry can never both eliminate someone.
type Service struct {
	repo     repository.Repository
	subjects catalog.Provider
	notifier Notifier
	archiver Archiver

	locks  *roomLocks
	timers *voteTimers

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewService(repo repository.Repository, subjects catalog.Provider, notifier Notifier, rng *rand.Rand) *Service {
	return &Service{
		repo:     repo,
		subjects: subjects,
		notifier: notifier,
		locks:    newRoomLocks(),
		timers:   newVoteTimers(),
		rng:      rng,
	}
}

// SetArchiver wires the finished-game sink. Kept out of the constructor
// because the in-memory deployment runs without one.
func (s *Service) SetArchiver(a Archiver) {
	s.archiver = a
}

// RegisterPlayer resolves a session token to a player, creating both when
// the token is unknown or absent. The returned player carries the token the
// client must present on reconnection.
func (s *Service) RegisterPlayer(name, sessionID string) (*models.Player, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty player name", ErrInvalidConfig)
	}
	if sessionID != "" {
		p, err := s.repo.GetPlayerBySession(sessionID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	p := &models.Player{
		ID:        uuid.NewString(),
		Name:      name,
		SessionID: sessionID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreatePlayer(p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateRoom validates the configuration, allocates a unique room code and
// seats the host as the first member.
func (s *Service) CreateRoom(hostID string, params CreateRoomParams) (*RoomStateView, error) {
	host, err := s.repo.GetPlayer(hostID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if params.MaxPlayers < game_constants.MinPlayersToStart {
		return nil, fmt.Errorf("%w: capacity must be at least %d", ErrInvalidConfig, game_constants.MinPlayersToStart)
	}
	if params.ImpostorCount < game_constants.MinImpostorCount || params.ImpostorCount > params.MaxPlayers/2 {
		return nil, fmt.Errorf("%w: impostor count must be between %d and half the capacity", ErrInvalidConfig, game_constants.MinImpostorCount)
	}
	if params.VoteTime <= 0 {
		params.VoteTime = game_constants.DefaultVoteTime
	}

	room := &models.Room{
		HostID:        hostID,
		MaxPlayers:    params.MaxPlayers,
		ImpostorCount: params.ImpostorCount,
		VoteTime:      params.VoteTime,
		Phase:         models.PhaseWaiting,
		CurrentRound:  0,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.CreateRoom(room); err != nil {
		return nil, err
	}
	member := &models.RoomMember{
		RoomCode: room.Code,
		PlayerID: hostID,
		Name:     host.Name,
		IsHost:   true,
		IsAlive:  true,
		JoinedAt: time.Now(),
	}
	if err := s.repo.AddRoomMember(member); err != nil {
		return nil, err
	}
	return s.snapshot(room)
}

// JoinRoom seats a player in a waiting room, or re-admits a player who is
// already a member (reconnection). The second return reports the rejoin
// case so the caller can skip the player_joined broadcast.
func (s *Service) JoinRoom(code, playerID string) (*RoomStateView, bool, error) {
	player, err := s.repo.GetPlayer(playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrPlayerNotFound
		}
		return nil, false, err
	}

	lk := s.locks.get(code)
	lk.Lock()
	defer lk.Unlock()

	room, err := s.loadRoom(code)
	if err != nil {
		return nil, false, err
	}
	if _, err := s.repo.GetRoomMember(code, playerID); err == nil {
		view, err := s.snapshot(room)
		return view, true, err
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}
	if room.Phase != models.PhaseWaiting {
		return nil, false, ErrGameInProgress
	}
	members, err := s.repo.GetRoomMembers(code)
	if err != nil {
		return nil, false, err
	}
	if len(members) >= room.MaxPlayers {
		return nil, false, ErrRoomFull
	}
	member := &models.RoomMember{
		RoomCode: code,
		PlayerID: playerID,
		Name:     player.Name,
		IsAlive:  true,
		JoinedAt: time.Now(),
	}
	if err := s.repo.AddRoomMember(member); err != nil {
		return nil, false, err
	}
	view, err := s.snapshot(room)
	return view, false, err
}

// LeaveRoom removes a player for good. In the lobby the seat is freed; mid
// game the membership stays (stats still count the game) but the player is
// marked dead so tallies and win checks ignore them. An empty or hostless
// lobby is torn down.
func (s *Service) LeaveRoom(code, playerID string) error {
	lk := s.locks.get(code)
	lk.Lock()
	defer lk.Unlock()

	room, err := s.loadRoom(code)
	if err != nil {
		return err
	}
	member, err := s.repo.GetRoomMember(code, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}

	if room.Phase == models.PhaseWaiting {
		if err := s.repo.RemoveRoomMember(code, playerID); err != nil {
			return err
		}
		members, err := s.repo.GetRoomMembers(code)
		if err != nil {
			return err
		}
		if len(members) == 0 || member.IsHost {
			return s.teardownRoom(code)
		}
		return nil
	}

	if member.IsAlive {
		member.IsAlive = false
		if err := s.repo.UpdateRoomMember(member); err != nil {
			return err
		}
	}
	if room.Phase == models.PhaseVoting {
		return s.maybeFinishVoting(room)
	}
	return nil
}

// StartGame shuffles roles, draws the first subject and moves the room into
// the playing phase. Only the host can start, and only from the lobby.
func (s *Service) StartGame(code, requesterID string) error {
	lk := s.locks.get(code)
	lk.Lock()
	defer lk.Unlock()

	room, err := s.loadRoom(code)
	if err != nil {
		return err
	}
	if room.Phase != models.PhaseWaiting {
		return ErrWrongPhase
	}
	requester, err := s.repo.GetRoomMember(code, requesterID)
	if err != nil || !requester.IsHost {
		return ErrNotAuthorized
	}
	members, err := s.repo.GetRoomMembers(code)
	if err != nil {
		return err
	}
	if len(members) < game_constants.MinPlayersToStart {
		return ErrNotEnoughPlayers
	}

	// Shuffle seat order, then the first ImpostorCount seats are impostors.
	order := make([]int, len(members))
	for i := range order {
		order[i] = i
	}
	s.rngMu.Lock()
	s.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	s.rngMu.Unlock()
	for rank, idx := range order {
		members[idx].IsImpostor = rank < room.ImpostorCount
		members[idx].IsAlive = true
		if err := s.repo.UpdateRoomMember(&members[idx]); err != nil {
			return err
		}
	}

	subject := s.subjects.Random()
	raw, err := json.Marshal(subject)
	if err != nil {
		return err
	}
	room.CurrentFootballer = raw
	room.Phase = models.PhasePlaying
	room.CurrentRound = 1
	if err := s.repo.UpdateRoom(room); err != nil {
		return err
	}

	for i := range members {
		s.sendRole(&members[i], subject, "role_assigned")
	}
	view, err := s.snapshot(room)
	if err != nil {
		return err
	}
	s.notifier.Broadcast(code, "game_started", gin.H{"roomState": view})
	log.Printf("[GAME-START] room %s started with %d players, %d impostors", code, len(members), room.ImpostorCount)
	return nil
}

// StartVoting opens the ballot and arms the countdown. Calling it while a
// vote is already open is a no-op, so a stray second trigger cannot reset
// the clock.
func (s *Service) StartVoting(code string) error {
	lk := s.locks.get(code)
	lk.Lock()
	defer lk.Unlock()

	room, err := s.loadRoom(code)
	if err != nil {
		return err
	}
	if room.Phase == models.PhaseVoting {
		return nil
	}
	if room.Phase != models.PhasePlaying {
		return ErrWrongPhase
	}

	ends := time.Now().Add(time.Duration(room.VoteTime) * time.Second)
	room.Phase = models.PhaseVoting
	room.VotingEndsAt = &ends
	if err := s.repo.ClearVotes(code, room.CurrentRound); err != nil {
		return err
	}
	if err := s.repo.UpdateRoom(room); err != nil {
		return err
	}
	s.timers.arm(code, time.Until(ends), func() { s.voteTimerExpired(code) })

	view, err := s.snapshot(room)
	if err != nil {
		return err
	}
	s.notifier.Broadcast(code, "voting_started", gin.H{"roomState": view})
	return nil
}

// CastVote records one ballot. A nil target is an abstention: it counts
// toward "everyone has voted" but never toward a candidate. When the last
// alive member votes the round resolves immediately.
func (s *Service) CastVote(code, voterID string, targetID *string) error {
	lk := s.locks.get(code)
	lk.Lock()
	defer lk.Unlock()

	room, err := s.loadRoom(code)
	if err != nil {
		return err
	}
	if room.Phase != models.PhaseVoting {
		return ErrNotVotingPhase
	}
	voter, err := s.repo.GetRoomMember(code, voterID)
	if err != nil || !voter.IsAlive {
		return ErrNotAuthorized
	}
	if targetID != nil {
		target, err := s.repo.GetRoomMember(code, *targetID)
		if err != nil || !target.IsAlive {
			return ErrInvalidTarget
		}
	}

	vote := &models.Vote{
		RoomCode: code,
		Round:    room.CurrentRound,
		VoterID:  voterID,
		TargetID: targetID,
		CastAt:   time.Now(),
	}
	if err := s.repo.CastVote(vote); err != nil {
		if errors.Is(err, repository.ErrDuplicateVote) {
			return ErrAlreadyVoted
		}
		return err
	}

	view, err := s.snapshot(room)
	if err != nil {
		return err
	}
	s.notifier.Broadcast(code, "vote_cast", gin.H{"roomState": view, "voterId": voterID})
	return s.maybeFinishVoting(room)
}

// AdvanceRound is the host acknowledging the results screen: either the
// game ends on a win condition, or a fresh round begins with a new subject.
func (s *Service) AdvanceRound(code, requesterID string) error {
	lk := s.locks.get(code)
	lk.Lock()
	defer lk.Unlock()

	room, err := s.loadRoom(code)
	if err != nil {
		return err
	}
	if room.Phase != models.PhaseResults {
		return ErrWrongPhase
	}
	if _, err := s.repo.GetRoomMember(code, requesterID); err != nil {
		return ErrNotAuthorized
	}
	members, err := s.repo.GetRoomMembers(code)
	if err != nil {
		return err
	}

	aliveImpostors, aliveInnocents := 0, 0
	for _, m := range members {
		if !m.IsAlive {
			continue
		}
		if m.IsImpostor {
			aliveImpostors++
		} else {
			aliveInnocents++
		}
	}
	switch {
	case aliveImpostors == 0:
		return s.finishGame(room, members, false)
	case aliveImpostors >= aliveInnocents:
		return s.finishGame(room, members, true)
	}

	subject := s.subjects.Random()
	raw, err := json.Marshal(subject)
	if err != nil {
		return err
	}
	room.CurrentFootballer = raw
	room.CurrentRound++
	room.Phase = models.PhasePlaying
	room.VotingEndsAt = nil
	if err := s.repo.UpdateRoom(room); err != nil {
		return err
	}

	// The new subject is role-sensitive, so round_started fans out per
	// member instead of broadcasting the full card to the room.
	view, err := s.snapshot(room)
	if err != nil {
		return err
	}
	for i := range members {
		if !members[i].IsAlive {
			s.notifier.Unicast(members[i].PlayerID, "round_started", gin.H{"roomState": view})
			continue
		}
		s.sendRole(&members[i], subject, "round_started")
	}
	return nil
}

// Resync replays the player's current view after a reconnection: the full
// room snapshot, plus their role card when a round is underway. The card
// comes from the stored subject, not a fresh draw.
func (s *Service) Resync(code, playerID string) error {
	lk := s.locks.get(code)
	lk.Lock()
	defer lk.Unlock()

	room, err := s.loadRoom(code)
	if err != nil {
		return err
	}
	member, err := s.repo.GetRoomMember(code, playerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	view, err := s.snapshot(room)
	if err != nil {
		return err
	}
	s.notifier.Unicast(playerID, "game_state", gin.H{"roomState": view})

	inRound := room.Phase == models.PhasePlaying || room.Phase == models.PhaseVoting || room.Phase == models.PhaseResults
	if inRound && member.IsAlive && len(room.CurrentFootballer) > 0 {
		var subject catalog.Footballer
		if err := json.Unmarshal(room.CurrentFootballer, &subject); err != nil {
			return err
		}
		s.sendRole(member, subject, "role_assigned")
	}
	return nil
}

// loadRoom maps the storage sentinel onto the player-facing error.
func (s *Service) loadRoom(code string) (*models.Room, error) {
	room, err := s.repo.GetRoom(code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// sendRole unicasts the round's subject shaped for the recipient: innocents
// get the full card, impostors get it stripped of the image plus one hint.
func (s *Service) sendRole(m *models.RoomMember, subject catalog.Footballer, event string) {
	payload := gin.H{"isImpostor": m.IsImpostor}
	if m.IsImpostor {
		payload["footballer"] = subject.WithoutImage()
		if hint := s.pickHint(subject); hint != "" {
			payload["hint"] = hint
		}
	} else {
		payload["footballer"] = subject
	}
	s.notifier.Unicast(m.PlayerID, event, payload)
}

func (s *Service) pickHint(subject catalog.Footballer) string {
	if len(subject.Hints) == 0 {
		return ""
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return subject.Hints[s.rng.Intn(len(subject.Hints))]
}

// maybeFinishVoting resolves the round early once every alive member has a
// ballot in. Caller holds the room lock.
func (s *Service) maybeFinishVoting(room *models.Room) error {
	members, err := s.repo.GetRoomMembers(room.Code)
	if err != nil {
		return err
	}
	votes, err := s.repo.GetVotes(room.Code, room.CurrentRound)
	if err != nil {
		return err
	}
	voted := make(map[string]bool, len(votes))
	for _, v := range votes {
		voted[v.VoterID] = true
	}
	for _, m := range members {
		if m.IsAlive && !voted[m.PlayerID] {
			return nil
		}
	}
	return s.finishVoting(room, members, votes)
}

// voteTimerExpired is the countdown callback. The phase check under the
// room lock makes it a no-op when the round already resolved early.
func (s *Service) voteTimerExpired(code string) {
	lk := s.locks.get(code)
	lk.Lock()
	defer lk.Unlock()

	room, err := s.loadRoom(code)
	if err != nil {
		log.Printf("[VOTE-TIMER] room %s expired but could not be loaded: %v", code, err)
		return
	}
	if room.Phase != models.PhaseVoting {
		return
	}
	members, err := s.repo.GetRoomMembers(code)
	if err != nil {
		log.Printf("[VOTE-TIMER] room %s: loading members: %v", code, err)
		return
	}
	votes, err := s.repo.GetVotes(code, room.CurrentRound)
	if err != nil {
		log.Printf("[VOTE-TIMER] room %s: loading votes: %v", code, err)
		return
	}
	if err := s.finishVoting(room, members, votes); err != nil {
		log.Printf("[VOTE-TIMER] room %s: resolving round: %v", code, err)
	}
}

// finishVoting tallies the round, applies the elimination and moves the
// room to results. Caller holds the room lock.
func (s *Service) finishVoting(room *models.Room, members []models.RoomMember, votes []models.Vote) error {
	s.timers.stop(room.Code)

	alive := make(map[string]bool, len(members))
	for _, m := range members {
		if m.IsAlive {
			alive[m.PlayerID] = true
		}
	}
	eliminated, counts := TallyVotes(votes, alive)
	if eliminated != nil {
		for i := range members {
			if members[i].PlayerID == *eliminated {
				members[i].IsAlive = false
				if err := s.repo.UpdateRoomMember(&members[i]); err != nil {
					return err
				}
				break
			}
		}
	}

	room.Phase = models.PhaseResults
	room.VotingEndsAt = nil
	if err := s.repo.UpdateRoom(room); err != nil {
		return err
	}
	view, err := s.snapshot(room)
	if err != nil {
		return err
	}
	payload := gin.H{"roomState": view, "voteCounts": counts}
	if eliminated != nil {
		payload["eliminatedPlayerId"] = *eliminated
	} else {
		payload["eliminatedPlayerId"] = nil
	}
	s.notifier.Broadcast(room.Code, "round_ended", payload)
	return nil
}

// finishGame closes the room: final phase, stats, archive, broadcast,
// cleanup. Caller holds the room lock.
func (s *Service) finishGame(room *models.Room, members []models.RoomMember, impostorsWin bool) error {
	s.timers.stop(room.Code)

	room.Phase = models.PhaseFinished
	room.VotingEndsAt = nil
	if err := s.repo.UpdateRoom(room); err != nil {
		return err
	}
	if err := s.applyGameStats(members, impostorsWin); err != nil {
		log.Printf("[STATS-ERROR] room %s: %v", room.Code, err)
	}

	view, err := s.snapshot(room)
	if err != nil {
		return err
	}
	s.notifier.Broadcast(room.Code, "game_ended", gin.H{"roomState": view, "impostorsWin": impostorsWin})
	log.Printf("[GAME-END] room %s finished after %d rounds, impostorsWin=%v", room.Code, room.CurrentRound, impostorsWin)

	if s.archiver != nil {
		var all []models.Vote
		for round := 1; round <= room.CurrentRound; round++ {
			vs, err := s.repo.GetVotes(room.Code, round)
			if err != nil {
				log.Printf("[ARCHIVE-ERROR] room %s: loading round %d votes: %v", room.Code, round, err)
				continue
			}
			all = append(all, vs...)
		}
		if err := s.archiver.ArchiveRoom(room, members, all, impostorsWin); err != nil {
			log.Printf("[ARCHIVE-ERROR] room %s: %v", room.Code, err)
		}
	}
	return s.teardownRoom(room.Code)
}

// teardownRoom drops the live state and the room's lock entry. The lock
// itself is still held by the caller; dropping the map entry only stops new
// waiters from piling onto a dead room.
func (s *Service) teardownRoom(code string) error {
	s.timers.stop(code)
	if err := s.repo.DeleteRoom(code); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	s.locks.drop(code)
	return nil
}
