// Package strategy defines the strategy capability contract plus the two
// reference strategies used to exercise the engine: buy-and-hold and a
// moving-average crossover.
package strategy

import (
	"github.com/parasxparkash/pyBackTester/internal/feed"
	"github.com/parasxparkash/pyBackTester/internal/types"
	"github.com/parasxparkash/pyBackTester/pkg/errors"
)

// Strategy consumes the bar-feed view on every market event and produces
// zero or more advisory signals. Implementations run to completion before
// control returns to the engine; they must not retain the feed.
type Strategy interface {
	Name() string
	OnMarket(bars feed.BarFeed) []types.SignalEvent
}

const (
	NameBuyAndHold         = "buy-and-hold"
	NameMovingAverageCross = "ma-cross"
)

// New returns a fresh strategy instance by name.
func New(name string) (Strategy, error) {
	switch name {
	case NameBuyAndHold:
		return NewBuyAndHold(), nil
	case NameMovingAverageCross:
		return NewMovingAverageCross(), nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnknownStrategy, "unknown strategy: %s", name)
	}
}
