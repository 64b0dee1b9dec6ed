package guard

import (
	"context"

	"github.com/on-the-ground/effect_guard_go/guard/handles"
	"go.uber.org/zap"
)

// stopAller is what Clean needs from a handle container. Both handle set types
// satisfy it, as can any caller-supplied container.
type stopAller interface {
	StopAll()
}

// Option configures a Guard. All options are optional; an unconfigured guard
// still intercepts, it just has nothing to cancel.
type Option func(*Guard)

// WithAbortSource attaches the cancellation primitive of one outstanding
// fetch-style operation. Clean calls its Abort once, swallowing any panic.
func WithAbortSource(src AbortSource) Option {
	return func(g *Guard) {
		g.abort = src
	}
}

// CancelFuncSource adapts a context.CancelFunc to an AbortSource. Cancelling
// the context of an in-flight request is the usual way to abort it here.
func CancelFuncSource(cancel context.CancelFunc) AbortSource {
	return AbortFunc(cancel)
}

// WithCancelTokenSource attaches a legacy token-style source. Clean calls its
// Cancel once; the error, if any, is discarded.
func WithCancelTokenSource(src CancelTokenSource) Option {
	return func(g *Guard) {
		g.token = src
	}
}

// WithTimeouts shares a timer handle container with the guard. The guard keeps
// the container itself, not a snapshot: timers the caller registers after
// construction are still stopped by Clean.
func WithTimeouts(set *handles.TimerSet) Option {
	return func(g *Guard) {
		// A typed-nil pointer would box into a non-nil stopAller and defeat
		// the presence check in Clean.
		if set != nil {
			g.timeouts = set
		}
	}
}

// WithIntervals shares a ticker handle container with the guard. Same late
// binding as WithTimeouts.
func WithIntervals(set *handles.TickerSet) Option {
	return func(g *Guard) {
		if set != nil {
			g.intervals = set
		}
	}
}

// WithOnClean registers a hook invoked by Clean after all cancellation
// attempts, successful or not. It runs at most once.
func WithOnClean(fn func()) Option {
	return func(g *Guard) {
		g.onClean = fn
	}
}

// WithLogger sets the logger used for teardown diagnostics. Defaults to a nop
// logger; the guard never logs above debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}
