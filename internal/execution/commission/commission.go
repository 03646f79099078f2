// Package commission models per-trade commission charges. The reference
// simulation charges none; the interactive broker model exists for runs that
// want a realistic fixed-tier fee.
package commission

type Fee interface {
	// Calculate returns the commission in USD for a trade of the given
	// quantity.
	Calculate(quantity int64) float64
}

type Broker string

const (
	BrokerZero              Broker = "zero_commission"
	BrokerInteractiveBroker Broker = "interactive_broker"
)

var AllBrokers = []any{
	BrokerZero,
	BrokerInteractiveBroker,
}

func GetFeeHandler(broker Broker) Fee {
	switch broker {
	case BrokerInteractiveBroker:
		return NewInteractiveBrokerFee()
	case BrokerZero:
		return NewZeroFee()
	default:
		return NewZeroFee()
	}
}
