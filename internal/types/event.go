package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/parasxparkash/pyBackTester/pkg/errors"
)

type EventType string

const (
	EventTypeMarket EventType = "MARKET"
	EventTypeSignal EventType = "SIGNAL"
	EventTypeOrder  EventType = "ORDER"
	EventTypeFill   EventType = "FILL"
)

// Event is the vocabulary of the simulation pipeline. Each concrete event
// carries the payload for exactly one stage of the
// market -> signal -> order -> fill chain.
type Event interface {
	EventType() EventType
}

type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// Sign returns +1 for BUY and -1 for SELL.
func (d Direction) Sign() int64 {
	if d == DirectionSell {
		return -1
	}

	return 1
}

type SignalDirection string

const (
	SignalDirectionLong  SignalDirection = "LONG"
	SignalDirectionShort SignalDirection = "SHORT"
	SignalDirectionExit  SignalDirection = "EXIT"
)

type OrderKind string

const (
	OrderKindMarket OrderKind = "MKT"
)

// MarketEvent signals that a new bar is available for all tracked symbols.
// It carries no payload.
type MarketEvent struct{}

func (MarketEvent) EventType() EventType { return EventTypeMarket }

// SignalEvent is advisory output from a strategy, not yet an order.
type SignalEvent struct {
	StrategyID string          `yaml:"strategy_id" json:"strategy_id" validate:"required"`
	Symbol     string          `yaml:"symbol" json:"symbol" validate:"required"`
	Timestamp  time.Time       `yaml:"timestamp" json:"timestamp" validate:"required"`
	Direction  SignalDirection `yaml:"direction" json:"direction" validate:"required,oneof=LONG SHORT EXIT"`
	Strength   float64         `yaml:"strength" json:"strength" validate:"gte=0,lte=1"`
}

func (SignalEvent) EventType() EventType { return EventTypeSignal }

// OrderEvent is a request to trade a fixed quantity of one symbol.
type OrderEvent struct {
	Symbol    string    `yaml:"symbol" json:"symbol" validate:"required"`
	Kind      OrderKind `yaml:"kind" json:"kind" validate:"required,oneof=MKT"`
	Quantity  int64     `yaml:"quantity" json:"quantity" validate:"required,gt=0"`
	Direction Direction `yaml:"direction" json:"direction" validate:"required,oneof=BUY SELL"`
}

func (OrderEvent) EventType() EventType { return EventTypeOrder }

// Validate validates the OrderEvent struct.
func (o *OrderEvent) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid order", err)
	}

	return nil
}

// FillEvent is a completed simulated trade.
type FillEvent struct {
	ID         string    `yaml:"id" json:"id"`
	Timestamp  time.Time `yaml:"timestamp" json:"timestamp" validate:"required"`
	Symbol     string    `yaml:"symbol" json:"symbol" validate:"required"`
	Exchange   string    `yaml:"exchange" json:"exchange" validate:"required"`
	Quantity   int64     `yaml:"quantity" json:"quantity" validate:"required,gt=0"`
	Direction  Direction `yaml:"direction" json:"direction" validate:"required,oneof=BUY SELL"`
	FillPrice  float64   `yaml:"fill_price" json:"fill_price" validate:"gte=0"`
	Commission float64   `yaml:"commission" json:"commission" validate:"gte=0"`
}

func (FillEvent) EventType() EventType { return EventTypeFill }

// Validate validates the FillEvent struct.
func (f *FillEvent) Validate() error {
	validate := validator.New()
	if err := validate.Struct(f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFill, "invalid fill", err)
	}

	return nil
}
