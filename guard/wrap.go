package guard

// Each Wrap variant decorates one mutator with a stalled-flag check. While the
// guard is active the wrapper forwards synchronously and transparently; once
// stalled it returns without calling the original, forever. The mutator set is
// known at the call site, so plain generic decorators suffice — no reflection.
//
// Method values keep their bound receiver through wrapping: Wrap(g, c.setUser)
// forwards to c exactly as a direct call would.

// Wrap0 guards a niladic mutator.
func Wrap0(g *Guard, fn func()) func() {
	return func() {
		if g.stalled.Load() {
			return
		}
		fn()
	}
}

// Wrap guards a single-argument mutator, the common setState shape.
func Wrap[T any](g *Guard, fn func(T)) func(T) {
	return func(v T) {
		if g.stalled.Load() {
			return
		}
		fn(v)
	}
}

// Wrap2 guards a two-argument mutator.
func Wrap2[A, B any](g *Guard, fn func(A, B)) func(A, B) {
	return func(a A, b B) {
		if g.stalled.Load() {
			return
		}
		fn(a, b)
	}
}

// Wrap3 guards a three-argument mutator.
func Wrap3[A, B, C any](g *Guard, fn func(A, B, C)) func(A, B, C) {
	return func(a A, b B, c C) {
		if g.stalled.Load() {
			return
		}
		fn(a, b, c)
	}
}

// WrapRet0 guards a niladic value-returning mutator. Once stalled it returns
// the zero value of R without calling the original.
func WrapRet0[R any](g *Guard, fn func() R) func() R {
	return func() (zero R) {
		if g.stalled.Load() {
			return zero
		}
		return fn()
	}
}

// WrapRet guards a value-returning mutator of one argument.
func WrapRet[T, R any](g *Guard, fn func(T) R) func(T) R {
	return func(v T) (zero R) {
		if g.stalled.Load() {
			return zero
		}
		return fn(v)
	}
}

// WrapRet2 guards a value-returning mutator of two arguments.
func WrapRet2[A, B, R any](g *Guard, fn func(A, B) R) func(A, B) R {
	return func(a A, b B) (zero R) {
		if g.stalled.Load() {
			return zero
		}
		return fn(a, b)
	}
}
