package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/parasxparkash/pyBackTester/internal/execution/commission"
	"github.com/parasxparkash/pyBackTester/internal/portfolio"
	"github.com/parasxparkash/pyBackTester/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Sizing selects the order sizing policy.
type Sizing string

const (
	SizingNaive      Sizing = "naive"
	SizingPercentage Sizing = "percentage"
)

type Config struct {
	InitialCapital  float64                    `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,description=Starting capital for the simulation in USD,minimum=0" validate:"gt=0"`
	Broker          commission.Broker          `yaml:"broker" json:"broker" jsonschema:"title=Broker,description=The broker to use for commission calculations"`
	Sizing          Sizing                     `yaml:"sizing" json:"sizing" jsonschema:"title=Sizing,description=Order sizing policy,enum=naive,enum=percentage" validate:"omitempty,oneof=naive percentage"`
	OrderQuantity   int64                      `yaml:"order_quantity" json:"order_quantity" jsonschema:"title=Order Quantity,description=Fixed quantity requested by the naive sizing policy,minimum=1" validate:"gt=0"`
	OrderPercentage float64                    `yaml:"order_percentage" json:"order_percentage" jsonschema:"title=Order Percentage,description=Fraction of cash committed per entry by the percentage sizing policy,minimum=0,maximum=1" validate:"gte=0,lte=1"`
	RiskFreeRate    float64                    `yaml:"risk_free_rate" json:"risk_free_rate" jsonschema:"title=Risk Free Rate,description=Annual risk-free rate used for excess returns"`
	StartTime       optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time for the simulation period"`
	EndTime         optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time for the simulation period"`
}

// UnmarshalYAML implements custom unmarshaling for Config
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain struct {
		InitialCapital  float64           `yaml:"initial_capital"`
		Broker          commission.Broker `yaml:"broker"`
		Sizing          Sizing            `yaml:"sizing"`
		OrderQuantity   int64             `yaml:"order_quantity"`
		OrderPercentage float64           `yaml:"order_percentage"`
		RiskFreeRate    float64           `yaml:"risk_free_rate"`
		StartTime       *time.Time        `yaml:"start_time"`
		EndTime         *time.Time        `yaml:"end_time"`
	}

	var config plain
	if err := unmarshal(&config); err != nil {
		return err
	}

	c.InitialCapital = config.InitialCapital
	c.Broker = config.Broker
	c.Sizing = config.Sizing
	c.OrderQuantity = config.OrderQuantity
	c.OrderPercentage = config.OrderPercentage
	c.RiskFreeRate = config.RiskFreeRate

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// ParseConfig parses a YAML config, fills defaults and validates it.
func ParseConfig(content string) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if config.InitialCapital == 0 {
		config.InitialCapital = DefaultConfig().InitialCapital
	}

	if config.OrderQuantity == 0 {
		config.OrderQuantity = DefaultConfig().OrderQuantity
	}

	if config.Broker == "" {
		config.Broker = DefaultConfig().Broker
	}

	if config.Sizing == "" {
		config.Sizing = DefaultConfig().Sizing
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate validates the config.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}
			if strings.Contains(t.String(), "commission.Broker") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: commission.AllBrokers,
				}
			}
			if strings.Contains(t.String(), "engine.Sizing") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: []any{SizingNaive, SizingPercentage},
				}
			}
			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "backtest-engine-config"
	schema.Description = "Configuration schema for the backtest engine"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates a JSON schema string for the Config
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema := c.GenerateSchema()

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		InitialCapital:  100000,
		Broker:          commission.BrokerZero,
		Sizing:          SizingNaive,
		OrderQuantity:   portfolio.DefaultOrderQuantity,
		OrderPercentage: 0,
		RiskFreeRate:    0,
		StartTime:       optional.None[time.Time](),
		EndTime:         optional.None[time.Time](),
	}
}
