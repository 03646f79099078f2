package types

import "time"

// TradeRecord is appended by the portfolio on every fill. Profit is realized
// against the single most recent fill price seen for the same symbol, not a
// FIFO/LIFO cost basis. This is a deliberate approximation carried over from
// the naive portfolio model.
type TradeRecord struct {
	ID         string    `yaml:"id" json:"id" csv:"id"`
	Symbol     string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Direction  Direction `yaml:"direction" json:"direction" csv:"direction"`
	Quantity   int64     `yaml:"quantity" json:"quantity" csv:"quantity"`
	Price      float64   `yaml:"price" json:"price" csv:"price"`
	Commission float64   `yaml:"commission" json:"commission" csv:"commission"`
	Profit     float64   `yaml:"profit" json:"profit" csv:"profit"`
	Timestamp  time.Time `yaml:"timestamp" json:"timestamp" csv:"timestamp"`
}
