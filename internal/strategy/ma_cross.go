package strategy

import (
	"github.com/cinar/indicator"
	"github.com/parasxparkash/pyBackTester/internal/feed"
	"github.com/parasxparkash/pyBackTester/internal/types"
)

// MovingAverageCross trades a 9/26 simple moving average crossover on the
// adjusted close. A short SMA above the long SMA while out of the market
// emits LONG; a short SMA below the long SMA while in the market emits EXIT.
// Fewer than longWindow observed bars emits nothing.
type MovingAverageCross struct {
	shortWindow int
	longWindow  int
	inMarket    map[string]bool
}

var _ Strategy = (*MovingAverageCross)(nil)

func NewMovingAverageCross() *MovingAverageCross {
	return NewMovingAverageCrossWindows(9, 26)
}

func NewMovingAverageCrossWindows(short, long int) *MovingAverageCross {
	return &MovingAverageCross{
		shortWindow: short,
		longWindow:  long,
		inMarket:    make(map[string]bool),
	}
}

// Name implements Strategy.
func (s *MovingAverageCross) Name() string { return NameMovingAverageCross }

// OnMarket implements Strategy.
func (s *MovingAverageCross) OnMarket(bars feed.BarFeed) []types.SignalEvent {
	var signals []types.SignalEvent

	for _, symbol := range bars.Symbols() {
		history, err := bars.LatestBars(symbol, s.longWindow)
		if err != nil || len(history) < s.longWindow {
			continue
		}

		closes := make([]float64, len(history))
		for i, bar := range history {
			closes[i] = bar.AdjClose
		}

		shortSMA := lastValue(indicator.Sma(s.shortWindow, closes))
		longSMA := lastValue(indicator.Sma(s.longWindow, closes))
		timestamp := history[len(history)-1].Timestamp

		switch {
		case shortSMA > longSMA && !s.inMarket[symbol]:
			signals = append(signals, types.SignalEvent{
				StrategyID: s.Name(),
				Symbol:     symbol,
				Timestamp:  timestamp,
				Direction:  types.SignalDirectionLong,
				Strength:   1.0,
			})
			s.inMarket[symbol] = true
		case shortSMA < longSMA && s.inMarket[symbol]:
			signals = append(signals, types.SignalEvent{
				StrategyID: s.Name(),
				Symbol:     symbol,
				Timestamp:  timestamp,
				Direction:  types.SignalDirectionExit,
				Strength:   1.0,
			})
			s.inMarket[symbol] = false
		}
	}

	return signals
}

func lastValue(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}

	return series[len(series)-1]
}
