package portfolio

import (
	"github.com/moznion/go-optional"
	"github.com/parasxparkash/pyBackTester/internal/execution/commission"
	"github.com/parasxparkash/pyBackTester/internal/feed"
	"github.com/parasxparkash/pyBackTester/internal/types"
	"github.com/parasxparkash/pyBackTester/internal/utils"
)

// OrderSizer maps an advisory signal to at most one order. Risk sizing is a
// pluggable policy point; the engine never inspects the mapping.
type OrderSizer interface {
	Size(signal types.SignalEvent) optional.Option[types.OrderEvent]
}

// DefaultOrderQuantity is the fixed size used by the naive policy.
const DefaultOrderQuantity int64 = 100

// NaiveSizer requests a constant quantity for every signal, ignoring signal
// strength. LONG buys, SHORT sells, EXIT sells to close.
type NaiveSizer struct {
	Quantity int64
}

var _ OrderSizer = (*NaiveSizer)(nil)

func NewNaiveSizer() *NaiveSizer {
	return &NaiveSizer{Quantity: DefaultOrderQuantity}
}

// Size implements OrderSizer.
func (s *NaiveSizer) Size(signal types.SignalEvent) optional.Option[types.OrderEvent] {
	var direction types.Direction

	switch signal.Direction {
	case types.SignalDirectionLong:
		direction = types.DirectionBuy
	case types.SignalDirectionShort, types.SignalDirectionExit:
		direction = types.DirectionSell
	default:
		return optional.None[types.OrderEvent]()
	}

	return optional.Some(types.OrderEvent{
		Symbol:    signal.Symbol,
		Kind:      types.OrderKindMarket,
		Quantity:  s.Quantity,
		Direction: direction,
	})
}

// PercentageSizer commits a fixed fraction of available cash per entry
// signal, net of the expected commission. Exit signals close the whole
// tracked position.
type PercentageSizer struct {
	Bars    feed.BarFeed
	Fee     commission.Fee
	Percent float64

	// Cash reports the live cash balance; Position the live signed
	// quantity for a symbol. Both are bound to the owning portfolio.
	Cash     func() float64
	Position func(symbol string) int64
}

var _ OrderSizer = (*PercentageSizer)(nil)

// Size implements OrderSizer.
func (s *PercentageSizer) Size(signal types.SignalEvent) optional.Option[types.OrderEvent] {
	if signal.Direction == types.SignalDirectionExit {
		held := s.Position(signal.Symbol)
		if held <= 0 {
			return optional.None[types.OrderEvent]()
		}

		return optional.Some(types.OrderEvent{
			Symbol:    signal.Symbol,
			Kind:      types.OrderKindMarket,
			Quantity:  held,
			Direction: types.DirectionSell,
		})
	}

	latest, err := s.Bars.LatestBars(signal.Symbol, 1)
	if err != nil || len(latest) == 0 {
		return optional.None[types.OrderEvent]()
	}

	quantity := utils.CalculateOrderQuantityByPercentage(s.Cash(), latest[0].AdjClose, s.Fee, s.Percent)
	if quantity == 0 {
		return optional.None[types.OrderEvent]()
	}

	var direction types.Direction

	switch signal.Direction {
	case types.SignalDirectionLong:
		direction = types.DirectionBuy
	case types.SignalDirectionShort:
		direction = types.DirectionSell
	default:
		return optional.None[types.OrderEvent]()
	}

	return optional.Some(types.OrderEvent{
		Symbol:    signal.Symbol,
		Kind:      types.OrderKindMarket,
		Quantity:  quantity,
		Direction: direction,
	})
}
