package execution

import (
	"testing"
	"time"

	"github.com/parasxparkash/pyBackTester/internal/execution/commission"
	"github.com/parasxparkash/pyBackTester/internal/feed"
	"github.com/parasxparkash/pyBackTester/internal/logger"
	"github.com/parasxparkash/pyBackTester/internal/types"
	"github.com/stretchr/testify/suite"
)

// SimulatorTestSuite is a test suite for Simulator
type SimulatorTestSuite struct {
	suite.Suite
	feed      *feed.MemoryFeed
	simulator *Simulator
}

// TestSimulatorSuite runs the test suite
func TestSimulatorSuite(t *testing.T) {
	suite.Run(t, new(SimulatorTestSuite))
}

func (suite *SimulatorTestSuite) SetupTest() {
	suite.feed = feed.NewMemoryFeed(map[string][]types.Bar{
		"AAPL": {
			{
				Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				Open:      100,
				High:      102,
				Low:       99,
				Close:     101,
				AdjClose:  100.5,
				Volume:    1000,
			},
		},
		"GHST": nil,
	})
	suite.simulator = NewSimulator(suite.feed, commission.NewZeroFee(), logger.NewNopLogger())
}

func marketOrder(symbol string) types.OrderEvent {
	return types.OrderEvent{
		Symbol:    symbol,
		Kind:      types.OrderKindMarket,
		Quantity:  100,
		Direction: types.DirectionBuy,
	}
}

func (suite *SimulatorTestSuite) TestExecuteFillsAtLatestAdjClose() {
	suite.Require().True(suite.feed.Advance())

	fill := suite.simulator.Execute(marketOrder("AAPL"))

	suite.Equal("fill-000001", fill.ID)
	suite.Equal("AAPL", fill.Symbol)
	suite.Equal(DefaultExchange, fill.Exchange)
	suite.Equal(int64(100), fill.Quantity)
	suite.Equal(types.DirectionBuy, fill.Direction)
	suite.Equal(100.5, fill.FillPrice)
	suite.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), fill.Timestamp)
	suite.Equal(0.0, fill.Commission)
}

func (suite *SimulatorTestSuite) TestExecuteFallsBackWithoutPriceData() {
	suite.Require().True(suite.feed.Advance())

	fill := suite.simulator.Execute(marketOrder("GHST"))

	suite.Equal(FallbackFillPrice, fill.FillPrice)
	suite.True(fill.Timestamp.IsZero())
}

func (suite *SimulatorTestSuite) TestFillIDsAreSequential() {
	suite.Require().True(suite.feed.Advance())

	first := suite.simulator.Execute(marketOrder("AAPL"))
	second := suite.simulator.Execute(marketOrder("AAPL"))

	suite.Equal("fill-000001", first.ID)
	suite.Equal("fill-000002", second.ID)
}

func (suite *SimulatorTestSuite) TestCommissionApplied() {
	suite.Require().True(suite.feed.Advance())

	simulator := NewSimulator(suite.feed, commission.NewInteractiveBrokerFee(), logger.NewNopLogger())

	fill := simulator.Execute(marketOrder("AAPL"))
	suite.Equal(1.0, fill.Commission)
}
