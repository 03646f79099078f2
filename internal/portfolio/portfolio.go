// Package portfolio maintains the time-indexed position and holdings ledger
// for one simulation run. The ledger is append-only, grows by exactly one
// row per market event, and is owned exclusively by the Portfolio until the
// engine hands it, read-only, to the performance analyzer.
package portfolio

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"github.com/parasxparkash/pyBackTester/internal/feed"
	"github.com/parasxparkash/pyBackTester/internal/logger"
	"github.com/parasxparkash/pyBackTester/internal/types"
	"go.uber.org/zap"
)

type Portfolio struct {
	bars  feed.BarFeed
	sizer OrderSizer
	log   *logger.Logger

	symbols        []string
	startDate      time.Time
	initialCapital float64

	cash       float64
	commission float64 // cumulative

	currentPositions map[string]int64
	positions        []PositionSnapshot
	holdings         []HoldingsSnapshot
	trades           []types.TradeRecord

	// lastFillPrice is a one-slot-per-symbol memo used for realized profit.
	// Overwritten on every fill; intentionally not a lot-matching cost basis.
	lastFillPrice map[string]float64
}

// New creates a portfolio with the seeded start-date ledger row. The first
// holdings row always carries Total == initialCapital.
func New(bars feed.BarFeed, sizer OrderSizer, startDate time.Time, initialCapital float64, log *logger.Logger) *Portfolio {
	symbols := bars.Symbols()

	currentPositions := make(map[string]int64, len(symbols))
	seedQuantities := make(map[string]int64, len(symbols))
	seedValues := make(map[string]float64, len(symbols))

	for _, s := range symbols {
		currentPositions[s] = 0
		seedQuantities[s] = 0
		seedValues[s] = 0
	}

	return &Portfolio{
		bars:           bars,
		sizer:          sizer,
		log:            log,
		symbols:        symbols,
		startDate:      startDate,
		initialCapital: initialCapital,

		cash:       initialCapital,
		commission: 0,

		currentPositions: currentPositions,
		positions: []PositionSnapshot{{
			Timestamp:  startDate,
			Quantities: seedQuantities,
		}},
		holdings: []HoldingsSnapshot{{
			Timestamp:    startDate,
			MarketValues: seedValues,
			Cash:         initialCapital,
			Commission:   0,
			Total:        initialCapital,
		}},
		trades:        nil,
		lastFillPrice: make(map[string]float64),
	}
}

// UpdateTimeindex appends one position row and one holdings row for the
// current bar tick, valuing current positions at each symbol's latest
// adjusted close.
//
// This runs while the market event is being processed, before any fill the
// same bar produces is applied. The ledger therefore lags fills by exactly
// one bar: a fill during bar t mutates cash and positions immediately, but
// its effect first shows in bar t+1's holdings row. Load-bearing contract,
// do not reorder.
func (p *Portfolio) UpdateTimeindex() error {
	timestamp, ok := p.latestTimestamp()
	if !ok {
		// No symbol has observed a bar yet.
		return nil
	}

	quantities := make(map[string]int64, len(p.symbols))
	for _, s := range p.symbols {
		quantities[s] = p.currentPositions[s]
	}

	p.positions = append(p.positions, PositionSnapshot{
		Timestamp:  timestamp,
		Quantities: quantities,
	})

	values := make(map[string]float64, len(p.symbols))
	total := p.cash - p.commission

	for _, s := range p.symbols {
		values[s] = 0

		latest, err := p.bars.LatestBars(s, 1)
		if err != nil {
			return err
		}

		if len(latest) == 0 {
			// No price observed yet for this symbol; valued at zero.
			continue
		}

		marketValue := float64(p.currentPositions[s]) * latest[0].AdjClose
		values[s] = marketValue
		total += marketValue
	}

	p.holdings = append(p.holdings, HoldingsSnapshot{
		Timestamp:    timestamp,
		MarketValues: values,
		Cash:         p.cash,
		Commission:   p.commission,
		Total:        total,
	})

	return nil
}

// SetSizer replaces the sizing policy. Policies that read live portfolio
// state are bound here, after construction.
func (p *Portfolio) SetSizer(sizer OrderSizer) {
	p.sizer = sizer
}

// UpdateSignal maps a signal to at most one order via the sizing policy.
func (p *Portfolio) UpdateSignal(signal types.SignalEvent) optional.Option[types.OrderEvent] {
	return p.sizer.Size(signal)
}

// UpdateFill applies a completed trade to the running account state and
// appends a trade record. Realized profit uses the single most recent fill
// price seen for the symbol: a SELL realizes against it directly, a BUY
// realizes only when it closes a short position.
func (p *Portfolio) UpdateFill(fill types.FillEvent) {
	sign := fill.Direction.Sign()
	quantity := decimal.NewFromInt(fill.Quantity)
	price := decimal.NewFromFloat(fill.FillPrice)

	var profit float64

	if last, ok := p.lastFillPrice[fill.Symbol]; ok {
		lastPrice := decimal.NewFromFloat(last)

		switch {
		case fill.Direction == types.DirectionSell:
			profit, _ = price.Sub(lastPrice).Mul(quantity).Float64()
		case p.currentPositions[fill.Symbol] < 0:
			// A buy closing a short position.
			profit, _ = lastPrice.Sub(price).Mul(quantity).Float64()
		}
	}

	p.lastFillPrice[fill.Symbol] = fill.FillPrice

	p.trades = append(p.trades, types.TradeRecord{
		ID:         fill.ID,
		Symbol:     fill.Symbol,
		Direction:  fill.Direction,
		Quantity:   fill.Quantity,
		Price:      fill.FillPrice,
		Commission: fill.Commission,
		Profit:     profit,
		Timestamp:  fill.Timestamp,
	})

	p.currentPositions[fill.Symbol] += sign * fill.Quantity

	cost, _ := price.Mul(quantity).Float64()
	p.cash -= float64(sign) * cost
	p.commission += fill.Commission
	p.cash -= fill.Commission

	p.log.Debug("fill applied",
		zap.String("symbol", fill.Symbol),
		zap.String("direction", string(fill.Direction)),
		zap.Int64("quantity", fill.Quantity),
		zap.Float64("price", fill.FillPrice),
		zap.Float64("profit", profit),
	)
}

// latestTimestamp returns the calendar timestamp of the current bar tick,
// taken from the first symbol with an observed bar. Forward filling restamps
// padded bars, so every observed latest bar shares the same timestamp.
func (p *Portfolio) latestTimestamp() (time.Time, bool) {
	for _, s := range p.symbols {
		latest, err := p.bars.LatestBars(s, 1)
		if err == nil && len(latest) > 0 {
			return latest[0].Timestamp, true
		}
	}

	return time.Time{}, false
}

// Positions returns the position ledger.
func (p *Portfolio) Positions() []PositionSnapshot { return p.positions }

// Holdings returns the holdings ledger.
func (p *Portfolio) Holdings() []HoldingsSnapshot { return p.holdings }

// Trades returns the trade records in fill order.
func (p *Portfolio) Trades() []types.TradeRecord { return p.trades }

// CurrentPosition returns the live signed quantity for a symbol.
func (p *Portfolio) CurrentPosition(symbol string) int64 {
	return p.currentPositions[symbol]
}

// Cash returns the live cash balance.
func (p *Portfolio) Cash() float64 { return p.cash }

// InitialCapital returns the seeded starting capital.
func (p *Portfolio) InitialCapital() float64 { return p.initialCapital }
