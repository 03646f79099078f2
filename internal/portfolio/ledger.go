package portfolio

import "time"

// PositionSnapshot is one position ledger row: signed quantity per symbol at
// one bar tick. Positive quantities are long, negative short.
type PositionSnapshot struct {
	Timestamp  time.Time        `yaml:"timestamp" json:"timestamp"`
	Quantities map[string]int64 `yaml:"quantities" json:"quantities"`
}

// HoldingsSnapshot is one holdings ledger row: mark-to-market value per
// symbol plus the scalar account fields.
//
// Total = Cash - Commission + sum of market values, where Commission is the
// cumulative commission paid so far.
type HoldingsSnapshot struct {
	Timestamp    time.Time          `yaml:"timestamp" json:"timestamp"`
	MarketValues map[string]float64 `yaml:"market_values" json:"market_values"`
	Cash         float64            `yaml:"cash" json:"cash"`
	Commission   float64            `yaml:"commission" json:"commission"`
	Total        float64            `yaml:"total" json:"total"`
}
