package guard_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/on-the-ground/effect_guard_go/guard"
	"github.com/on-the-ground/effect_guard_go/guard/handles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAbort struct {
	calls int
	panic bool
}

func (a *recordingAbort) Abort() {
	a.calls++
	if a.panic {
		panic(errors.New("x"))
	}
}

type recordingToken struct {
	calls int
	err   error
}

func (tk *recordingToken) Cancel() error {
	tk.calls++
	return tk.err
}

func TestGuard_ForwardsBeforeClean(t *testing.T) {
	g := guard.New()

	var got []int
	setUser := guard.Wrap(g, func(v int) { got = append(got, v) })

	setUser(5)
	require.Equal(t, []int{5}, got)
	require.False(t, g.Stalled())
}

func TestGuard_NoOpAfterClean(t *testing.T) {
	g := guard.New()

	calls := 0
	var last int
	setUser := guard.Wrap(g, func(v int) {
		calls++
		last = v
	})

	setUser(5)
	g.Clean()
	setUser(6)

	require.True(t, g.Stalled())
	require.Equal(t, 1, calls, "original must not be invoked after Clean")
	require.Equal(t, 5, last)
}

func TestGuard_CleanCancelsEverything(t *testing.T) {
	abort := &recordingAbort{}
	token := &recordingToken{}
	timers := handles.NewTimerSet()
	tickers := handles.NewTickerSet()
	cleaned := 0

	timers.Put("a", time.NewTimer(time.Hour))
	tickers.Put("b", time.NewTicker(time.Hour))

	g := guard.New(
		guard.WithAbortSource(abort),
		guard.WithCancelTokenSource(token),
		guard.WithTimeouts(timers),
		guard.WithIntervals(tickers),
		guard.WithOnClean(func() { cleaned++ }),
	)

	g.Clean()

	assert.Equal(t, 1, abort.calls)
	assert.Equal(t, 1, token.calls)
	assert.Equal(t, 0, timers.Len())
	assert.Equal(t, 0, tickers.Len())
	assert.Equal(t, 1, cleaned)
}

func TestGuard_CleanIdempotent(t *testing.T) {
	abort := &recordingAbort{}
	token := &recordingToken{}
	cleaned := 0

	g := guard.New(
		guard.WithAbortSource(abort),
		guard.WithCancelTokenSource(token),
		guard.WithOnClean(func() { cleaned++ }),
	)

	g.Clean()
	g.Clean()

	require.True(t, g.Stalled())
	assert.Equal(t, 1, abort.calls, "abort must fire once")
	assert.Equal(t, 1, token.calls, "token cancel must fire once")
	assert.Equal(t, 1, cleaned, "onClean must fire once")
}

func TestGuard_AbortPanicDoesNotEscape(t *testing.T) {
	abort := &recordingAbort{panic: true}
	token := &recordingToken{}
	timers := handles.NewTimerSet()
	timers.Put("a", time.NewTimer(time.Hour))
	cleaned := false

	g := guard.New(
		guard.WithAbortSource(abort),
		guard.WithCancelTokenSource(token),
		guard.WithTimeouts(timers),
		guard.WithOnClean(func() { cleaned = true }),
	)

	require.NotPanics(t, g.Clean)

	assert.True(t, g.Stalled())
	assert.Equal(t, 1, token.calls, "token cancel must still run after abort panic")
	assert.Equal(t, 0, timers.Len(), "timers must still be cleared after abort panic")
	assert.True(t, cleaned, "onClean must still run after abort panic")
}

func TestGuard_CancelTokenErrorSwallowed(t *testing.T) {
	token := &recordingToken{err: errors.New("already cancelled")}
	cleaned := false

	g := guard.New(
		guard.WithCancelTokenSource(token),
		guard.WithOnClean(func() { cleaned = true }),
	)

	require.NotPanics(t, g.Clean)
	assert.True(t, cleaned)
}

func TestGuard_TeardownOrder(t *testing.T) {
	var order []string

	g := guard.New(
		guard.WithAbortSource(guard.AbortFunc(func() { order = append(order, "abort") })),
		guard.WithCancelTokenSource(cancelFunc(func() error {
			order = append(order, "token")
			return nil
		})),
		guard.WithOnClean(func() { order = append(order, "onClean") }),
	)

	g.Clean()

	require.Equal(t, []string{"abort", "token", "onClean"}, order)
}

type cancelFunc func() error

func (f cancelFunc) Cancel() error { return f() }

func TestGuard_LateBoundHandles(t *testing.T) {
	timers := handles.NewTimerSet()
	g := guard.New(guard.WithTimeouts(timers))

	// Registered after construction: the guard drains the shared container at
	// Clean time, not a snapshot taken at New.
	fired := make(chan struct{}, 1)
	timers.After("late", 30*time.Millisecond, func() { fired <- struct{}{} })

	g.Clean()

	select {
	case <-fired:
		t.Fatal("late-bound timer fired despite Clean")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestGuard_CleanRacesWrappedCalls(t *testing.T) {
	g := guard.New()

	var mu sync.Mutex
	calls := 0
	bump := guard.Wrap0(g, func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 1000; j++ {
				bump()
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		g.Clean()
	}()

	close(start)
	wg.Wait()

	// Once Clean has returned, forwarding has stopped for good.
	mu.Lock()
	settled := calls
	mu.Unlock()
	bump()
	mu.Lock()
	after := calls
	mu.Unlock()
	require.Equal(t, settled, after)
}

func TestGuard_NilHandleSetsDoNotPanicClean(t *testing.T) {
	cleaned := false
	g := guard.New(
		guard.WithTimeouts((*handles.TimerSet)(nil)),
		guard.WithIntervals((*handles.TickerSet)(nil)),
		guard.WithOnClean(func() { cleaned = true }),
	)

	require.NotPanics(t, g.Clean)
	require.True(t, g.Stalled())
	require.True(t, cleaned)
}

func TestGuard_ZeroValueHasNothingToCancel(t *testing.T) {
	var g guard.Guard

	called := false
	set := guard.Wrap0(&g, func() { called = true })
	set()
	require.True(t, called)

	require.NotPanics(t, g.Clean)
	called = false
	set()
	require.False(t, called)
}
