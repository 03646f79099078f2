package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/parasxparkash/pyBackTester/internal/engine"
	"github.com/parasxparkash/pyBackTester/internal/feed"
	"github.com/parasxparkash/pyBackTester/internal/logger"
	"github.com/parasxparkash/pyBackTester/internal/strategy"
	"github.com/parasxparkash/pyBackTester/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"
)

// runAction loads the bar data, wires up the engine and runs the backtest.
func runAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	dataGlob := cmd.String("data")
	strategyName := cmd.String("strategy")
	outputPath := cmd.String("output")
	logPath := cmd.String("log")

	// Load the engine configuration, falling back to defaults when no
	// config file is given.
	config := engine.DefaultConfig()

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		parsed, err := engine.ParseConfig(string(content))
		if err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}

		config = parsed
	}

	files, err := filepath.Glob(dataGlob)
	if err != nil {
		return fmt.Errorf("failed to list data files: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no data files match %q", dataGlob)
	}

	bars, err := loadBars(files, config)
	if err != nil {
		return err
	}

	barFeed := feed.NewMemoryFeed(bars)

	strat, err := strategy.New(strategyName)
	if err != nil {
		return err
	}

	engineLogger, err := newLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	eng, err := engine.New(config, barFeed, strat, engineLogger)
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(barFeed.Len()), fmt.Sprintf("Backtesting %s", strings.Join(barFeed.Symbols(), ", ")))

	stats, err := eng.Run(optional.Some[engine.OnBarCallback](func(current, total int) {
		_ = bar.Set(current)
	}))
	if err != nil {
		return err
	}

	printStats(stats)

	if outputPath != "" {
		summary := types.Summary{
			ID:        uuid.New().String(),
			Timestamp: time.Now().UTC(),
			Strategy:  strat.Name(),
			DataPath:  dataGlob,
			Counters:  eng.Counters(),
			Metrics:   stats,
		}

		if err := types.WriteSummary(outputPath, summary); err != nil {
			return err
		}

		log.Printf("Summary written to %s", outputPath)
	}

	return nil
}

// loadBars reads the given files into per-symbol bar series, dispatching on
// the file extension.
func loadBars(files []string, config engine.Config) (map[string][]types.Bar, error) {
	switch strings.ToLower(filepath.Ext(files[0])) {
	case ".parquet":
		return feed.LoadParquetFiles(files, config.StartTime, config.EndTime)
	case ".csv":
		return feed.LoadCSVFiles(files, config.StartTime, config.EndTime)
	default:
		return nil, fmt.Errorf("unsupported data file extension %q", filepath.Ext(files[0]))
	}
}

func newLogger(logPath string) (*logger.Logger, error) {
	if logPath != "" {
		return logger.NewFileLogger(logPath), nil
	}

	return logger.NewLogger()
}

func printStats(stats map[string]float64) {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%-28s %12.4f\n", name, stats[name])
	}
}

// schemaAction writes the JSON schema for the engine configuration, plus a
// sample config when none exists yet.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	outputDir := cmd.String("output")

	config := engine.DefaultConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	schemaName := "backtest-config.json"
	schemaPath := filepath.Join(outputDir, schemaName)
	samplePath := filepath.Join(outputDir, "backtest-config.yaml")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		sample, err := yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to marshal sample config: %w", err)
		}

		sample = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), sample...)

		if err := os.WriteFile(samplePath, sample, 0644); err != nil {
			return fmt.Errorf("failed to write sample config: %w", err)
		}

		log.Printf("Sample config generated at %s", samplePath)
	}

	log.Printf("Schema generated at %s", schemaPath)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Run event driven backtests over historical bar data",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a backtest over a set of bar files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Glob of bar files to backtest, e.g. ./data/*.csv",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "Strategy name",
						Value:   strategy.NameBuyAndHold,
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the engine config YAML",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write the run summary YAML",
					},
					&cli.StringFlag{
						Name:  "log",
						Usage: "Path to a rotating log file (defaults to stdout)",
					},
				},
				Action: runAction,
			},
			{
				Name:  "schema",
				Usage: "Generate the JSON schema and a sample config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory to write the schema into",
						Value:   "./config",
					},
				},
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
