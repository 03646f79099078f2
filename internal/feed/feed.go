// Package feed provides sequential replay of OHLCV bars across one or more
// symbols. Symbols are synchronized on a common calendar built from the union
// of all observed timestamps; a symbol lacking an observation for a calendar
// timestamp reuses its last known bar.
package feed

import (
	"github.com/parasxparkash/pyBackTester/internal/types"
)

// BarFeed is the capability contract consumed by the engine, portfolio,
// strategies and the execution simulator.
type BarFeed interface {
	// Advance pulls the next synchronized bar for every tracked symbol,
	// appends it to each symbol's observed history, and returns true.
	// It returns false once the underlying series are exhausted, at which
	// point the engine must stop. This is the normal termination signal,
	// not an error.
	Advance() bool

	// LatestBars returns the last n observed bars for symbol, fewer if the
	// history is shorter, empty before the first Advance. Callers must treat
	// "fewer than requested" as a valid, common case. Requesting a symbol
	// outside the tracked set is a hard error (ErrCodeUnknownSymbol).
	LatestBars(symbol string, n int) ([]types.Bar, error)

	// Symbols returns the tracked symbols in deterministic order.
	Symbols() []string
}
