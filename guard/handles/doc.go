// Package handles provides the shared timer-handle containers a Guard drains
// at teardown.
//
// The containers are deliberately passed around by pointer and read late: a
// guard configured with a TimerSet stops whatever the set holds at Clean time,
// including handles the effect registered long after the guard was built.
// Callers must keep registering into the same container, never swap in a fresh
// one, or the guard will drain the wrong (stale) container.
package handles
