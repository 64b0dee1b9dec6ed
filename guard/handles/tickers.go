package handles

import (
	"sync"
	"time"
)

// interval is one recurring entry: its ticker plus the stop signal for the
// goroutine Every spawned, if any.
type interval struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (iv *interval) stop() {
	iv.once.Do(func() {
		if iv.ticker != nil {
			iv.ticker.Stop()
		}
		if iv.done != nil {
			close(iv.done)
		}
	})
}

// TickerSet is the recurring-work counterpart of TimerSet: a mutable mapping
// of id to interval handle, safe for concurrent use.
type TickerSet struct {
	mu        sync.Mutex
	intervals map[string]*interval
}

// NewTickerSet returns an empty set.
func NewTickerSet() *TickerSet {
	return &TickerSet{
		intervals: make(map[string]*interval),
	}
}

// Put registers a caller-owned ticker under id, replacing any previous entry
// with that id. StopAll will stop the ticker; the caller's receive loop must
// watch its own done signal, or use Every instead.
func (s *TickerSet) Put(id string, t *time.Ticker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intervals[id] = &interval{ticker: t}
}

// Every starts a goroutine invoking fn once per period d, records the entry
// under id, and returns a stop function. Stopping either via the returned
// function or via StopAll ends the goroutine; doing both is harmless.
// An entry already registered under id is stopped before being replaced, so a
// discarded earlier Every cannot keep ticking unseen.
func (s *TickerSet) Every(id string, d time.Duration, fn func()) (stop func()) {
	iv := &interval{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	if old, ok := s.intervals[id]; ok {
		old.stop()
	}
	s.intervals[id] = iv
	s.mu.Unlock()

	ready := make(chan struct{})
	go func() {
		close(ready)
		for {
			select {
			case <-iv.ticker.C:
				fn()
			case <-iv.done:
				return
			}
		}
	}()
	<-ready

	return iv.stop
}

// Delete removes the entry under id without stopping it.
func (s *TickerSet) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.intervals, id)
}

// Len returns the number of registered entries.
func (s *TickerSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.intervals)
}

// StopAll stops and removes every registered interval. Already-stopped entries
// are tolerated silently; calling StopAll again is a no-op.
func (s *TickerSet) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, iv := range s.intervals {
		iv.stop()
		delete(s.intervals, id)
	}
}
