package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.yaml")

	summary := Summary{
		ID:        "run-1",
		Timestamp: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		Strategy:  "buy-and-hold",
		DataPath:  "./data/*.csv",
		Counters:  RunCounters{Signals: 1, Orders: 1, Fills: 1},
		Metrics: map[string]float64{
			"Total Return": 12.5,
			"Sharpe Ratio": 1.8,
		},
	}

	require.NoError(t, WriteSummary(path, summary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Summary
	require.NoError(t, yaml.Unmarshal(data, &got))

	assert.Equal(t, summary.ID, got.ID)
	assert.Equal(t, summary.Strategy, got.Strategy)
	assert.Equal(t, summary.Counters, got.Counters)
	assert.Equal(t, summary.Metrics, got.Metrics)
}

func TestWriteSummaryBadPath(t *testing.T) {
	err := WriteSummary(filepath.Join(t.TempDir(), "missing", "summary.yaml"), Summary{})
	assert.Error(t, err)
}
