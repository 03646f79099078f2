package strategy

import (
	"github.com/parasxparkash/pyBackTester/internal/feed"
	"github.com/parasxparkash/pyBackTester/internal/types"
)

// BuyAndHold goes LONG every symbol as soon as its first bar is observed and
// never exits.
type BuyAndHold struct {
	bought map[string]bool
}

var _ Strategy = (*BuyAndHold)(nil)

func NewBuyAndHold() *BuyAndHold {
	return &BuyAndHold{
		bought: make(map[string]bool),
	}
}

// Name implements Strategy.
func (s *BuyAndHold) Name() string { return NameBuyAndHold }

// OnMarket implements Strategy. One LONG signal per symbol, ever.
func (s *BuyAndHold) OnMarket(bars feed.BarFeed) []types.SignalEvent {
	var signals []types.SignalEvent

	for _, symbol := range bars.Symbols() {
		if s.bought[symbol] {
			continue
		}

		latest, err := bars.LatestBars(symbol, 1)
		if err != nil || len(latest) == 0 {
			continue
		}

		signals = append(signals, types.SignalEvent{
			StrategyID: s.Name(),
			Symbol:     symbol,
			Timestamp:  latest[0].Timestamp,
			Direction:  types.SignalDirectionLong,
			Strength:   1.0,
		})
		s.bought[symbol] = true
	}

	return signals
}
