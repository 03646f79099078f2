package utils

import (
	"testing"

	"github.com/parasxparkash/pyBackTester/internal/execution/commission"
	"github.com/stretchr/testify/suite"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsTestSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestCalculateMaxQuantity() {
	tests := []struct {
		name        string
		balance     float64
		price       float64
		fee         commission.Fee
		expectedQty int64
	}{
		{
			name:        "simple case with no commission",
			balance:     1000.0,
			price:       100.0,
			fee:         commission.NewZeroFee(),
			expectedQty: 10,
		},
		{
			name:        "commission pushes quantity down",
			balance:     1000.5,
			price:       100.0,
			fee:         commission.NewInteractiveBrokerFee(),
			expectedQty: 9,
		},
		{
			name:        "commission fits within balance",
			balance:     1001.0,
			price:       100.0,
			fee:         commission.NewInteractiveBrokerFee(),
			expectedQty: 10,
		},
		{
			name:        "zero balance",
			balance:     0,
			price:       100.0,
			fee:         commission.NewZeroFee(),
			expectedQty: 0,
		},
		{
			name:        "zero price",
			balance:     1000.0,
			price:       0,
			fee:         commission.NewZeroFee(),
			expectedQty: 0,
		},
		{
			name:        "balance below one share",
			balance:     50.0,
			price:       100.0,
			fee:         commission.NewZeroFee(),
			expectedQty: 0,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expectedQty, CalculateMaxQuantity(tc.balance, tc.price, tc.fee))
		})
	}
}

func (suite *UtilsTestSuite) TestCalculateOrderQuantityByPercentage() {
	fee := commission.NewZeroFee()

	suite.Equal(int64(5), CalculateOrderQuantityByPercentage(1000, 100, fee, 0.5))
	suite.Equal(int64(10), CalculateOrderQuantityByPercentage(1000, 100, fee, 1.0))
	suite.Equal(int64(10), CalculateOrderQuantityByPercentage(1000, 100, fee, 2.0))
	suite.Equal(int64(0), CalculateOrderQuantityByPercentage(1000, 100, fee, 0))
	suite.Equal(int64(0), CalculateOrderQuantityByPercentage(1000, 100, fee, -0.5))
}
