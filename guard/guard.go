package guard

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AbortSource is a fetch-style cancellation primitive: something holding an
// in-flight operation that can be aborted. Abort may panic; the guard swallows
// it.
type AbortSource interface {
	Abort()
}

// AbortFunc adapts a bare function to an AbortSource.
type AbortFunc func()

func (f AbortFunc) Abort() { f() }

// CancelTokenSource is a legacy token-style cancellation primitive. The
// returned error is discarded: cancellation is best-effort and never surfaces
// to the caller of Clean.
type CancelTokenSource interface {
	Cancel() error
}

// Guard owns the shared stalled flag and the cancellation handles of one
// effect run. Allocate with New; the zero value is usable but has nothing to
// cancel.
//
// The flag is atomic: wrapped mutators may be invoked from any goroutine, and
// Clean may race with them. Once Clean has returned, no wrapped call forwards.
type Guard struct {
	id      string
	stalled atomic.Bool

	teardown sync.Once

	abort     AbortSource
	token     CancelTokenSource
	timeouts  stopAller
	intervals stopAller

	onClean func()
	logger  *zap.Logger

	bornAt    time.Time
	cleanedAt atomic.Pointer[time.Time]
}

var nopLogger = zap.NewNop()

// log tolerates zero-value guards that never went through New.
func (g *Guard) log() *zap.Logger {
	if g.logger == nil {
		return nopLogger
	}
	return g.logger
}

// New allocates a guard in the active state. Construction has no side effects
// beyond allocating the interceptor state; none of the supplied cancellation
// handles are touched until Clean.
func New(opts ...Option) *Guard {
	g := &Guard{
		id:     uuid.New().String(),
		logger: zap.NewNop(),
		bornAt: time.Now(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger.Debug("guard created", zap.String("guardId", g.id))
	return g
}

// Id returns the guard's correlation id.
func (g *Guard) Id() string { return g.id }

// Stalled reports whether Clean has begun. A true result is permanent.
func (g *Guard) Stalled() bool { return g.stalled.Load() }

// Clean moves the guard to the stalled state and best-effort-cancels every
// handle it was configured with, in order: abort source, cancel token source,
// timeout handles, interval handles, then the onClean hook.
//
// The flag flip comes first and is unconditional, so all wrapped mutators are
// inert from that point even if a cancellation primitive misbehaves. Every
// external cancel call is individually isolated; Clean never panics. Repeated
// calls are no-ops beyond the first.
func (g *Guard) Clean() {
	g.stalled.Store(true)
	g.teardown.Do(func() {
		now := time.Now()
		g.cleanedAt.Store(&now)

		if g.abort != nil {
			g.attempt("abort source", func() { g.abort.Abort() })
		}
		if g.token != nil {
			g.attempt("cancel token source", func() {
				if err := g.token.Cancel(); err != nil {
					g.log().Debug("cancel token refused",
						zap.String("guardId", g.id), zap.Error(err))
				}
			})
		}
		// Handle sets are shared containers, read here and not before: handles
		// registered after construction are still stopped.
		if g.timeouts != nil {
			g.attempt("timeout handles", g.timeouts.StopAll)
		}
		if g.intervals != nil {
			g.attempt("interval handles", g.intervals.StopAll)
		}
		if g.onClean != nil {
			g.attempt("onClean hook", func() { g.onClean() })
		}
		g.log().Debug("guard cleaned", zap.String("guardId", g.id))
	})
}

// attempt runs one externally-owned teardown step, swallowing any panic so a
// failing resource cannot block cancellation of the others.
func (g *Guard) attempt(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			g.log().Debug("teardown step failed",
				zap.String("guardId", g.id),
				zap.String("step", step),
				zap.Any("recovered", r),
			)
		}
	}()
	fn()
}
