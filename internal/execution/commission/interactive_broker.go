package commission

type InteractiveBrokerFee struct {
}

func NewInteractiveBrokerFee() Fee {
	return &InteractiveBrokerFee{}
}

func (c *InteractiveBrokerFee) Calculate(quantity int64) float64 {
	fee := 0.005 * float64(quantity)
	if fee < 1.0 {
		return 1.0
	}

	return fee
}
