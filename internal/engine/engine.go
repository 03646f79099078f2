// Package engine drives one complete simulation run: it advances the bar
// feed, drains the event queue in strict FIFO order, and routes each event
// to the component that owns its type. Single-threaded and synchronous by
// design; every component call runs to completion before control returns.
package engine

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/parasxparkash/pyBackTester/internal/execution"
	"github.com/parasxparkash/pyBackTester/internal/execution/commission"
	"github.com/parasxparkash/pyBackTester/internal/feed"
	"github.com/parasxparkash/pyBackTester/internal/logger"
	"github.com/parasxparkash/pyBackTester/internal/performance"
	"github.com/parasxparkash/pyBackTester/internal/portfolio"
	"github.com/parasxparkash/pyBackTester/internal/strategy"
	"github.com/parasxparkash/pyBackTester/internal/types"
	"github.com/parasxparkash/pyBackTester/pkg/errors"
	"go.uber.org/zap"
)

type State string

const (
	// StateRunning: the engine is between bar ticks and will ask the feed
	// to advance.
	StateRunning State = "RUNNING"
	// StateDraining: the engine is popping events until the queue is empty.
	StateDraining State = "DRAINING"
	// StateFinished: the feed is exhausted. Terminal.
	StateFinished State = "FINISHED"
)

// OnBarCallback reports progress after each fully drained bar tick. total is
// -1 when the feed cannot report its length.
type OnBarCallback func(current int, total int)

type Engine struct {
	config    Config
	feed      feed.BarFeed
	strategy  strategy.Strategy
	portfolio *portfolio.Portfolio
	executor  *execution.Simulator
	log       *logger.Logger

	state    State
	queue    eventQueue
	counters types.RunCounters
	analyzer *performance.Analyzer
}

// New wires the engine from its capability contracts. The portfolio and
// execution simulator are constructed here so one engine instance owns one
// complete, isolated simulation run.
func New(config Config, barFeed feed.BarFeed, strat strategy.Strategy, log *logger.Logger) (*Engine, error) {
	if barFeed == nil {
		return nil, errors.New(errors.ErrCodeEngineNoFeed, "no bar feed set")
	}

	if strat == nil {
		return nil, errors.New(errors.ErrCodeEngineNoStrategy, "no strategy set")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	startDate := config.StartTime.TakeOr(time.Time{})
	fee := commission.GetFeeHandler(config.Broker)
	sizer := &portfolio.NaiveSizer{Quantity: config.OrderQuantity}
	port := portfolio.New(barFeed, sizer, startDate, config.InitialCapital, log)

	if config.Sizing == SizingPercentage {
		port.SetSizer(&portfolio.PercentageSizer{
			Bars:     barFeed,
			Fee:      fee,
			Percent:  config.OrderPercentage,
			Cash:     port.Cash,
			Position: port.CurrentPosition,
		})
	}

	return &Engine{
		config:    config,
		feed:      barFeed,
		strategy:  strat,
		portfolio: port,
		executor:  execution.NewSimulator(barFeed, fee, log),
		log:       log,
		state:     StateRunning,
	}, nil
}

// Run executes the simulation to feed exhaustion and returns the metrics
// mapping. The queue always reaches empty before the clock moves forward
// one bar. Run is single-shot; a finished engine cannot be rerun.
func (e *Engine) Run(onBar optional.Option[OnBarCallback]) (map[string]float64, error) {
	if e.state == StateFinished {
		return nil, errors.New(errors.ErrCodeEngineFinished, "engine already finished")
	}

	total := -1
	if sized, ok := e.feed.(interface{ Len() int }); ok {
		total = sized.Len()
	}

	current := 0

	for e.feed.Advance() {
		current++

		e.queue.push(types.MarketEvent{})
		e.state = StateDraining

		for {
			event, ok := e.queue.pop()
			if !ok {
				break
			}

			if err := e.dispatch(event); err != nil {
				return nil, err
			}
		}

		e.state = StateRunning

		if onBar.IsSome() {
			onBar.Unwrap()(current, total)
		}
	}

	e.state = StateFinished
	e.analyzer = performance.NewAnalyzer(e.portfolio.Holdings(), e.portfolio.Trades())

	e.log.Info("backtest finished",
		zap.Int("bars", current),
		zap.Int("signals", e.counters.Signals),
		zap.Int("orders", e.counters.Orders),
		zap.Int("fills", e.counters.Fills),
	)

	return e.analyzer.SummaryStats(), nil
}

// dispatch routes one event to its owning component. Components return any
// derived events, which are appended to the queue in order.
func (e *Engine) dispatch(event types.Event) error {
	switch ev := event.(type) {
	case types.MarketEvent:
		// The strategy sees the bar first; the ledger row is written before
		// any signal from this bar is acted on. This ordering is what makes
		// the one-bar-lag accounting contract hold.
		signals := e.strategy.OnMarket(e.feed)

		if err := e.portfolio.UpdateTimeindex(); err != nil {
			return err
		}

		for _, signal := range signals {
			e.queue.push(signal)
		}

	case types.SignalEvent:
		e.counters.Signals++

		if order := e.portfolio.UpdateSignal(ev); order.IsSome() {
			e.queue.push(order.Unwrap())
		}

	case types.OrderEvent:
		e.counters.Orders++

		if err := ev.Validate(); err != nil {
			return err
		}

		e.queue.push(e.executor.Execute(ev))

	case types.FillEvent:
		e.counters.Fills++
		e.portfolio.UpdateFill(ev)
	}

	return nil
}

// State returns the engine's lifecycle state.
func (e *Engine) State() State { return e.state }

// Counters returns the per-run event counters. Observability only.
func (e *Engine) Counters() types.RunCounters { return e.counters }

// Portfolio exposes the ledger for custom reporting after the run.
func (e *Engine) Portfolio() *portfolio.Portfolio { return e.portfolio }

// Analyzer returns the performance analyzer; nil before the run finishes.
func (e *Engine) Analyzer() *performance.Analyzer { return e.analyzer }
