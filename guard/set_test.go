package guard_test

import (
	"testing"

	"github.com/on-the-ground/effect_guard_go/guard"
	"github.com/stretchr/testify/require"
)

func TestWrapSet_SameKeysPlusClean(t *testing.T) {
	g := guard.New()

	got := map[string]int{}
	ms := guard.MutatorSet[int]{
		"setUser":  func(v int) { got["setUser"] = v },
		"setCount": func(v int) { got["setCount"] = v },
	}

	wrapped, clean := guard.WrapSet(g, ms)

	require.Len(t, wrapped, len(ms))
	for name := range ms {
		require.Contains(t, wrapped, name)
	}

	wrapped["setUser"](5)
	require.Equal(t, 5, got["setUser"])

	clean()
	wrapped["setUser"](6)
	wrapped["setCount"](1)
	require.Equal(t, 5, got["setUser"], "stalled mutator must not forward")
	require.NotContains(t, got, "setCount")
}

func TestWrapSet_OriginalsStayCallerOwned(t *testing.T) {
	g := guard.New()

	calls := 0
	ms := guard.MutatorSet[int]{"set": func(int) { calls++ }}
	_, clean := guard.WrapSet(g, ms)
	clean()

	// The caller's own map still holds the unwrapped originals.
	ms["set"](1)
	require.Equal(t, 1, calls)
}

func TestNewSet_OneCallForm(t *testing.T) {
	cleaned := false
	wrapped, clean := guard.NewSet(
		guard.MutatorSet[string]{"setName": func(string) {}},
		guard.WithOnClean(func() { cleaned = true }),
	)

	require.Contains(t, wrapped, "setName")
	clean()
	require.True(t, cleaned)
}
