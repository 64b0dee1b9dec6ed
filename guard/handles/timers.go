package handles

import (
	"sync"
	"time"
)

// TimerSet is a mutable mapping of id to one-shot timer handle. It is safe for
// concurrent use: effects register timers from their own goroutines while the
// teardown path drains the set.
type TimerSet struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewTimerSet returns an empty set.
func NewTimerSet() *TimerSet {
	return &TimerSet{
		timers: make(map[string]*time.Timer),
	}
}

// Put registers a timer handle under id, replacing any previous handle with
// that id. A nil handle is tolerated and skipped at StopAll.
func (s *TimerSet) Put(id string, t *time.Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[id] = t
}

// After schedules fn on its own goroutine after d, records the handle under
// id, and returns it. Convenience over time.AfterFunc plus Put.
func (s *TimerSet) After(id string, d time.Duration, fn func()) *time.Timer {
	t := time.AfterFunc(d, fn)
	s.Put(id, t)
	return t
}

// Delete removes the handle under id without stopping it.
func (s *TimerSet) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, id)
}

// Len returns the number of registered handles.
func (s *TimerSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// StopAll stops and removes every registered timer. Nil, already-fired, and
// already-stopped handles are tolerated silently; calling StopAll again is a
// no-op.
func (s *TimerSet) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		if t != nil {
			t.Stop()
		}
		delete(s.timers, id)
	}
}
