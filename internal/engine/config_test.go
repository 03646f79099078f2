package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/parasxparkash/pyBackTester/internal/execution/commission"
	"github.com/parasxparkash/pyBackTester/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite is a test suite for the engine Config
type ConfigTestSuite struct {
	suite.Suite
}

// TestConfigSuite runs the test suite
func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultConfigIsValid() {
	config := DefaultConfig()
	suite.Require().NoError(config.Validate())
	suite.Equal(100000.0, config.InitialCapital)
	suite.Equal(commission.BrokerZero, config.Broker)
	suite.Equal(SizingNaive, config.Sizing)
	suite.Equal(int64(100), config.OrderQuantity)
	suite.True(config.StartTime.IsNone())
	suite.True(config.EndTime.IsNone())
}

func (suite *ConfigTestSuite) TestParseConfigSizingPolicy() {
	config, err := ParseConfig("sizing: percentage\norder_percentage: 0.5\n")
	suite.Require().NoError(err)
	suite.Equal(SizingPercentage, config.Sizing)
	suite.Equal(0.5, config.OrderPercentage)

	_, err = ParseConfig("sizing: martingale\n")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestParseConfigFillsDefaults() {
	config, err := ParseConfig("initial_capital: 50000\n")
	suite.Require().NoError(err)

	suite.Equal(50000.0, config.InitialCapital)
	suite.Equal(commission.BrokerZero, config.Broker)
	suite.Equal(int64(100), config.OrderQuantity)
}

func (suite *ConfigTestSuite) TestParseConfigFull() {
	content := `
initial_capital: 250000
broker: interactive_broker
order_quantity: 50
risk_free_rate: 0.02
start_time: 2020-01-01T00:00:00Z
end_time: 2020-12-31T00:00:00Z
`

	config, err := ParseConfig(content)
	suite.Require().NoError(err)

	suite.Equal(250000.0, config.InitialCapital)
	suite.Equal(commission.BrokerInteractiveBroker, config.Broker)
	suite.Equal(int64(50), config.OrderQuantity)
	suite.Equal(0.02, config.RiskFreeRate)

	suite.Require().True(config.StartTime.IsSome())
	suite.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), config.StartTime.Unwrap().UTC())

	suite.Require().True(config.EndTime.IsSome())
	suite.Equal(time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), config.EndTime.Unwrap().UTC())
}

func (suite *ConfigTestSuite) TestParseConfigRejectsNegativeCapital() {
	_, err := ParseConfig("initial_capital: -5\n")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestParseConfigRejectsMalformedYAML() {
	_, err := ParseConfig("initial_capital: [\n")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	config := DefaultConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	suite.Require().NoError(err)

	suite.True(strings.Contains(schemaJSON, "initial_capital"))
	suite.True(strings.Contains(schemaJSON, "order_quantity"))
	suite.True(strings.Contains(schemaJSON, string(commission.BrokerZero)))
	suite.True(strings.Contains(schemaJSON, string(commission.BrokerInteractiveBroker)))
}
