package guard

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// TimeSpan is the interval type used for guard lifetimes.
type TimeSpan = timespan.TimeSpan

// Lifespan returns the span from the guard's construction to its Clean, or to
// now while it is still active. Intended for teardown diagnostics, e.g. spotting
// effects that stay mounted far longer than their work needs.
func (g *Guard) Lifespan() TimeSpan {
	end := time.Now()
	if cleaned := g.cleanedAt.Load(); cleaned != nil {
		end = *cleaned
	}
	return timespan.BetweenTimes(g.bornAt, end)
}
