package game

import "sync"

// roomLocks hands out one mutex per room code so that every mutation of a
// room's state (joins, votes, timer expiries) runs in a per-room critical
// section without serializing unrelated rooms.
type roomLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{m: make(map[string]*sync.Mutex)}
}

func (l *roomLocks) get(code string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk, ok := l.m[code]
	if !ok {
		lk = &sync.Mutex{}
		l.m[code] = lk
	}
	return lk
}

func (l *roomLocks) drop(code string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.m, code)
}
