package types

import "time"

// Bar is one OHLCV observation for a symbol at a timestamp. AdjClose is the
// split/dividend adjusted close used for valuation and fill pricing.
type Bar struct {
	Timestamp time.Time `yaml:"timestamp" json:"timestamp" csv:"timestamp"`
	Open      float64   `yaml:"open" json:"open" csv:"open"`
	High      float64   `yaml:"high" json:"high" csv:"high"`
	Low       float64   `yaml:"low" json:"low" csv:"low"`
	Close     float64   `yaml:"close" json:"close" csv:"close"`
	AdjClose  float64   `yaml:"adj_close" json:"adj_close" csv:"adj_close"`
	Volume    float64   `yaml:"volume" json:"volume" csv:"volume"`
}
