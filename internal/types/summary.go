package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RunCounters tracks how many events of each derived type the engine
// dispatched. Observability only, never consulted by the engine.
type RunCounters struct {
	Signals int `yaml:"signals" json:"signals"`
	Orders  int `yaml:"orders" json:"orders"`
	Fills   int `yaml:"fills" json:"fills"`
}

// Summary is the serializable result of one backtest run.
type Summary struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Strategy is the name of the strategy that produced these results.
	Strategy string `yaml:"strategy" json:"strategy"`
	// DataPath is the path to the market data used for this run.
	DataPath string `yaml:"data_path" json:"data_path"`
	// Counters are the per-run event counters.
	Counters RunCounters `yaml:"counters" json:"counters"`
	// Metrics is the risk/return statistics mapping.
	Metrics map[string]float64 `yaml:"metrics" json:"metrics"`
}

// WriteSummary writes a run summary to the given path as YAML.
func WriteSummary(path string, summary Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary to file: %w", err)
	}

	return nil
}
