package guard

import (
	"context"
	"fmt"

	sharedHelper "github.com/on-the-ground/effect_guard_go/shared/helper"
	"go.uber.org/zap"
)

type ctxKey struct{}

// ErrNoGuard indicates that no guard is registered in the context.
var ErrNoGuard = fmt.Errorf("no guard registered in context")

// WithGuard allocates a guard, registers it in the context, and returns the
// teardown the host's effect-invalidation path should invoke.
//
// Usage:
//
//	ctx, g, clean := guard.WithGuard(ctx, guard.WithTimeouts(timers))
//	defer clean()
func WithGuard(ctx context.Context, opts ...Option) (context.Context, *Guard, func()) {
	g := New(opts...)
	ctxWith := context.WithValue(ctx, ctxKey{}, g)
	g.logger.Debug("guard registered in context", zap.String("guardId", g.id))
	return ctxWith, g, g.Clean
}

// FromContext retrieves the guard registered by WithGuard.
// Returns ErrNoGuard if none is present.
func FromContext(ctx context.Context) (*Guard, error) {
	raw := ctx.Value(ctxKey{})
	if raw == nil {
		return nil, ErrNoGuard
	}
	g, ok := raw.(*Guard)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected type %T", ErrNoGuard, raw)
	}
	return g, nil
}

// MustFromContext is the panic-on-failure variant of FromContext.
// Use when the guard is guaranteed to be registered.
func MustFromContext(ctx context.Context) *Guard {
	return sharedHelper.MustGetTypedValue[*Guard](
		func() (any, error) {
			return FromContext(ctx)
		},
	)
}
