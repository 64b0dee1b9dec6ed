package guard

// MutatorSet is a named collection of single-argument mutators, the map form
// of the component-state setters an effect hands out.
type MutatorSet[T any] map[string]func(T)

// WrapSet returns a new set with every mutator replaced by its interceptor,
// plus the companion teardown. The result has exactly the keys of ms; the
// originals stay caller-owned and untouched. The returned clean is the guard's
// Clean, so invalidating the effect stalls every wrapper in the set at once.
func WrapSet[T any](g *Guard, ms MutatorSet[T]) (MutatorSet[T], func()) {
	wrapped := make(MutatorSet[T], len(ms))
	for name, fn := range ms {
		wrapped[name] = Wrap(g, fn)
	}
	return wrapped, g.Clean
}

// NewSet is the one-call form: allocate a guard from opts, wrap ms with it,
// and return the wrapped set with its teardown.
func NewSet[T any](ms MutatorSet[T], opts ...Option) (MutatorSet[T], func()) {
	return WrapSet(New(opts...), ms)
}
