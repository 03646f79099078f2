package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroFee(t *testing.T) {
	fee := NewZeroFee()

	assert.Equal(t, 0.0, fee.Calculate(0))
	assert.Equal(t, 0.0, fee.Calculate(100))
	assert.Equal(t, 0.0, fee.Calculate(1000000))
}

func TestInteractiveBrokerFee(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		want     float64
	}{
		{name: "below minimum", quantity: 100, want: 1.0},
		{name: "at minimum boundary", quantity: 200, want: 1.0},
		{name: "above minimum", quantity: 1000, want: 5.0},
	}

	fee := NewInteractiveBrokerFee()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fee.Calculate(tc.quantity))
		})
	}
}

func TestGetFeeHandler(t *testing.T) {
	assert.IsType(t, &ZeroFee{}, GetFeeHandler(BrokerZero))
	assert.IsType(t, &InteractiveBrokerFee{}, GetFeeHandler(BrokerInteractiveBroker))
	assert.IsType(t, &ZeroFee{}, GetFeeHandler(Broker("unknown")))
}
