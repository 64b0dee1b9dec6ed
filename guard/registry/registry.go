// Package registry tracks one guard per owner for hosts that mount many
// component instances at once.
//
// Each owner id (a component instance key, a session, a route) maps to a
// single guard. The map is striped by hash of the owner id so that effects
// mounting and unmounting on different owners do not contend on one lock.
package registry

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/on-the-ground/effect_guard_go/guard"
)

const defaultStripes = 8

type stripe struct {
	mu     sync.Mutex
	guards map[string]*guard.Guard
}

// Registry is a striped owner-to-guard map. Guards are created on first use
// with the option set given at construction.
type Registry struct {
	stripes []*stripe
	opts    []guard.Option
}

// New returns a registry with the given stripe count; numStripes <= 0 selects
// the default. Every guard the registry creates is configured with opts.
func New(numStripes int, opts ...guard.Option) *Registry {
	if numStripes <= 0 {
		numStripes = defaultStripes
	}
	stripes := make([]*stripe, numStripes)
	for i := range stripes {
		stripes[i] = &stripe{guards: make(map[string]*guard.Guard)}
	}
	return &Registry{
		stripes: stripes,
		opts:    opts,
	}
}

func (r *Registry) stripeOf(owner string) *stripe {
	if len(r.stripes) == 1 {
		return r.stripes[0]
	}
	return r.stripes[xxhash.Sum64String(owner)%uint64(len(r.stripes))]
}

// For returns the guard registered for owner, creating it on first use.
// Repeated calls with the same owner return the same guard until it is
// dropped.
func (r *Registry) For(owner string) *guard.Guard {
	st := r.stripeOf(owner)
	st.mu.Lock()
	defer st.mu.Unlock()
	g, ok := st.guards[owner]
	if !ok {
		g = guard.New(r.opts...)
		st.guards[owner] = g
	}
	return g
}

// Clean stalls and drops the guard for owner. Reports whether a guard was
// registered. A later For with the same owner starts a fresh, active guard.
func (r *Registry) Clean(owner string) bool {
	st := r.stripeOf(owner)
	st.mu.Lock()
	g, ok := st.guards[owner]
	delete(st.guards, owner)
	st.mu.Unlock()
	if !ok {
		return false
	}
	g.Clean()
	return true
}

// Drop removes the guard for owner without cleaning it. The caller takes over
// the teardown responsibility.
func (r *Registry) Drop(owner string) *guard.Guard {
	st := r.stripeOf(owner)
	st.mu.Lock()
	defer st.mu.Unlock()
	g := st.guards[owner]
	delete(st.guards, owner)
	return g
}

// CleanAll stalls and drops every registered guard. Used on host shutdown.
func (r *Registry) CleanAll() {
	for _, st := range r.stripes {
		st.mu.Lock()
		guards := make([]*guard.Guard, 0, len(st.guards))
		for owner, g := range st.guards {
			guards = append(guards, g)
			delete(st.guards, owner)
		}
		st.mu.Unlock()

		// Clean outside the stripe lock: onClean hooks may call back into
		// the registry.
		for _, g := range guards {
			g.Clean()
		}
	}
}

// Len returns the number of registered guards across all stripes.
func (r *Registry) Len() int {
	n := 0
	for _, st := range r.stripes {
		st.mu.Lock()
		n += len(st.guards)
		st.mu.Unlock()
	}
	return n
}
