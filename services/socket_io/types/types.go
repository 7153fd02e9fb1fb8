package socketio_types

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is the connection registry: which socket currently speaks for
// each player, and which players are attached to each room for broadcasts.
// Room attachment is presence only; game membership lives in storage.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track player ID -> socket connection
	UserConnections map[string]*socket.Socket
	// Map to track room code -> attached player IDs
	RoomMembers map[string]map[string]struct{}
	mutex       sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
		RoomMembers:     make(map[string]map[string]struct{}),
	}
}

// AddConnection registers the socket as the player's live connection and
// returns the superseded socket, if any, so the caller can close it. A
// reconnecting player always wins over their stale socket.
func (s *SocketServer) AddConnection(playerID string, client *socket.Socket) *socket.Socket {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	old := s.UserConnections[playerID]
	s.UserConnections[playerID] = client
	if old == client {
		return nil
	}
	return old
}

// RemoveConnection forgets the player's socket, but only when the given
// socket is still the current one. A disconnect event from a superseded
// socket must not tear down the replacement.
func (s *SocketServer) RemoveConnection(playerID string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if current, exists := s.UserConnections[playerID]; exists && current == client {
		delete(s.UserConnections, playerID)
	}
}

func (s *SocketServer) GetConnection(playerID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.UserConnections[playerID]
	return client, exists
}

func (s *SocketServer) AttachToRoom(roomCode, playerID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	members, exists := s.RoomMembers[roomCode]
	if !exists {
		members = make(map[string]struct{})
		s.RoomMembers[roomCode] = members
	}
	members[playerID] = struct{}{}
}

func (s *SocketServer) DetachFromRoom(roomCode, playerID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if members, exists := s.RoomMembers[roomCode]; exists {
		delete(members, playerID)
		if len(members) == 0 {
			delete(s.RoomMembers, roomCode)
		}
	}
}

func (s *SocketServer) RoomAttachments(roomCode string) []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]string, 0, len(s.RoomMembers[roomCode]))
	for id := range s.RoomMembers[roomCode] {
		out = append(out, id)
	}
	return out
}

// FindRoomOf reports which room the player is currently attached to.
// Players sit in at most one room at a time.
func (s *SocketServer) FindRoomOf(playerID string) (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for code, members := range s.RoomMembers {
		if _, exists := members[playerID]; exists {
			return code, true
		}
	}
	return "", false
}

// Unicast delivers one enveloped event to a single player. Delivery is at
// most once: a player with no live socket simply misses the event and
// resyncs on reconnection.
func (s *SocketServer) Unicast(playerID string, event string, payload gin.H) {
	client, exists := s.GetConnection(playerID)
	if !exists {
		return
	}
	client.Emit(event, Envelope(event, payload))
}

// Broadcast fans one enveloped event out to every attached player in the
// room that currently has a live socket.
func (s *SocketServer) Broadcast(roomCode string, event string, payload gin.H) {
	msg := Envelope(event, payload)
	for _, playerID := range s.RoomAttachments(roomCode) {
		if client, exists := s.GetConnection(playerID); exists {
			client.Emit(event, msg)
		}
	}
}

// Envelope wraps a payload in the wire format every server message uses.
func Envelope(event string, payload gin.H) gin.H {
	return gin.H{
		"type":      event,
		"payload":   payload,
		"timestamp": time.Now().UnixMilli(),
	}
}
