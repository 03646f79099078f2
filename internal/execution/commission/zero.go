package commission

// ZeroFee implements Fee with zero commission.
type ZeroFee struct{}

// NewZeroFee creates a new zero commission fee.
func NewZeroFee() Fee {
	return &ZeroFee{}
}

// Calculate returns 0 for any quantity.
func (c *ZeroFee) Calculate(quantity int64) float64 {
	return 0.0
}
