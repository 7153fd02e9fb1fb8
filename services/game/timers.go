package game

import (
	"sync"
	"time"
)

// voteTimers tracks the running countdown per room. Arming replaces and stops
// any previous timer for the same room, so a re-triggered voting phase or an
// early tally can never leave a stale callback behind.
type voteTimers struct {
	mu sync.Mutex
	m  map[string]*time.Timer
}

func newVoteTimers() *voteTimers {
	return &voteTimers{m: make(map[string]*time.Timer)}
}

func (t *voteTimers) arm(code string, d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.m[code]; ok {
		old.Stop()
	}
	t.m[code] = time.AfterFunc(d, fn)
}

func (t *voteTimers) stop(code string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.m[code]; ok {
		old.Stop()
		delete(t.m, code)
	}
}
