// Package guard protects effect-scoped state mutators from stale asynchronous
// callbacks.
//
// A component's effect typically kicks off asynchronous work — a request, a
// timeout, a polling loop — whose continuations eventually write back into the
// component's state. When the effect is invalidated (the component unmounts, or
// the effect re-runs), those continuations may still be in flight. A Guard wraps
// the state mutators in interceptors that share one terminal flag: once the
// guard's Clean has run, every wrapped mutator becomes a permanent no-op, and
// the guard best-effort-cancels whatever cancellation handles it was given.
//
// # What a Guard is not
//
// It is not a task-cancellation framework and it cannot stop work already in
// flight: an outstanding request keeps running in the background after Clean.
// The guard only (a) signals the work's own cooperative cancellation primitive
// if one was wired up, and (b) guarantees that when the work's continuation
// finally calls a wrapped mutator, the call is discarded.
//
// # Lifecycle
//
// A guard has exactly two states, active and stalled, and one transition
// between them. Clean flips the flag first, unconditionally, then drives the
// cancellation steps; a misbehaving cancellation primitive can never keep the
// guard from reaching the stalled state. Clean never panics and is idempotent.
//
// Example:
//
//	g := guard.New(
//	    guard.WithAbortSource(guard.CancelFuncSource(cancel)),
//	    guard.WithTimeouts(timers),
//	)
//	setUser := guard.Wrap(g, c.setUser)
//
//	go func() {
//	    u, err := fetchUser(ctx, id)
//	    if err == nil {
//	        setUser(u) // discarded if the effect was invalidated meanwhile
//	    }
//	}()
//
//	// on effect invalidation:
//	g.Clean()
package guard
