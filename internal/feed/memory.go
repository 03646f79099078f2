package feed

import (
	"sort"
	"time"

	"github.com/parasxparkash/pyBackTester/internal/types"
	"github.com/parasxparkash/pyBackTester/pkg/errors"
)

// MemoryFeed replays bars held in memory. The calendar is the sorted union
// of every symbol's timestamps; gaps are forward-filled from the last known
// bar at construction time so Advance stays an O(symbols) step.
type MemoryFeed struct {
	symbols  []string
	calendar []time.Time
	// padded holds one slot per calendar tick per symbol; nil before the
	// symbol's first observation.
	padded   map[string][]*types.Bar
	observed map[string][]types.Bar
	cursor   int
}

var _ BarFeed = (*MemoryFeed)(nil)

// NewMemoryFeed builds a feed from per-symbol bar series. Input series are
// sorted by timestamp; symbols iterate in lexicographic order so reruns are
// deterministic.
func NewMemoryFeed(bars map[string][]types.Bar) *MemoryFeed {
	symbols := make([]string, 0, len(bars))
	for s := range bars {
		symbols = append(symbols, s)
	}

	sort.Strings(symbols)

	// Build the common calendar from the union of all timestamps.
	seen := make(map[time.Time]struct{})

	var calendar []time.Time

	for _, s := range symbols {
		series := bars[s]
		sort.Slice(series, func(i, j int) bool {
			return series[i].Timestamp.Before(series[j].Timestamp)
		})
		bars[s] = series

		for _, b := range series {
			if _, ok := seen[b.Timestamp]; !ok {
				seen[b.Timestamp] = struct{}{}
				calendar = append(calendar, b.Timestamp)
			}
		}
	}

	sort.Slice(calendar, func(i, j int) bool { return calendar[i].Before(calendar[j]) })

	// Reindex every symbol onto the calendar, padding forward.
	padded := make(map[string][]*types.Bar, len(symbols))
	observed := make(map[string][]types.Bar, len(symbols))

	for _, s := range symbols {
		series := bars[s]
		slots := make([]*types.Bar, len(calendar))

		var last *types.Bar

		next := 0

		for i, ts := range calendar {
			if next < len(series) && series[next].Timestamp.Equal(ts) {
				b := series[next]
				last = &b
				next++
			} else if last != nil {
				// Forward fill: reuse the last known bar restamped to the
				// calendar tick.
				filled := *last
				filled.Timestamp = ts
				last = &filled
			}

			if last != nil {
				b := *last
				slots[i] = &b
			}
		}

		padded[s] = slots
		observed[s] = nil
	}

	return &MemoryFeed{
		symbols:  symbols,
		calendar: calendar,
		padded:   padded,
		observed: observed,
		cursor:   0,
	}
}

// Advance implements BarFeed.
func (f *MemoryFeed) Advance() bool {
	if f.cursor >= len(f.calendar) {
		return false
	}

	for _, s := range f.symbols {
		if bar := f.padded[s][f.cursor]; bar != nil {
			f.observed[s] = append(f.observed[s], *bar)
		}
	}

	f.cursor++

	return true
}

// LatestBars implements BarFeed.
func (f *MemoryFeed) LatestBars(symbol string, n int) ([]types.Bar, error) {
	history, ok := f.observed[symbol]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownSymbol, "symbol %s is not in the tracked set", symbol)
	}

	if n <= 0 || len(history) == 0 {
		return nil, nil
	}

	if n > len(history) {
		n = len(history)
	}

	out := make([]types.Bar, n)
	copy(out, history[len(history)-n:])

	return out, nil
}

// Symbols implements BarFeed.
func (f *MemoryFeed) Symbols() []string {
	out := make([]string, len(f.symbols))
	copy(out, f.symbols)

	return out
}

// CurrentTime returns the calendar timestamp of the most recent Advance.
// It reports false before the first Advance.
func (f *MemoryFeed) CurrentTime() (time.Time, bool) {
	if f.cursor == 0 {
		return time.Time{}, false
	}

	return f.calendar[f.cursor-1], true
}

// Remaining returns the number of calendar ticks not yet replayed.
func (f *MemoryFeed) Remaining() int {
	return len(f.calendar) - f.cursor
}

// Len returns the total number of calendar ticks.
func (f *MemoryFeed) Len() int {
	return len(f.calendar)
}
