package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/parasxparkash/pyBackTester/internal/feed"
	"github.com/parasxparkash/pyBackTester/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// downloadAction fetches daily bars from the Alpaca market data API and
// writes one parquet file per symbol.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	symbolsFlag := cmd.String("symbols")
	startDate := cmd.Timestamp("start")
	endDate := cmd.Timestamp("end")
	outputDir := cmd.String("output")

	symbols := strings.Split(strings.ToUpper(symbolsFlag), ",")

	if !endDate.After(startDate) {
		return errors.Newf(errors.ErrCodeInvalidTimeRange, "end date %s is not after start date %s",
			endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	client := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    os.Getenv("APCA_API_KEY_ID"),
		APISecret: os.Getenv("APCA_API_SECRET_KEY"),
	})

	bar := progressbar.NewOptions(len(symbols),
		progressbar.OptionSetDescription("Downloading daily bars"),
		progressbar.OptionShowCount())

	for _, symbol := range symbols {
		if err := downloadSymbol(client, symbol, startDate, endDate, outputDir); err != nil {
			return err
		}

		_ = bar.Add(1)
	}

	log.Printf("Downloaded %d symbols to %s", len(symbols), outputDir)

	return nil
}

func downloadSymbol(client *marketdata.Client, symbol string, start, end time.Time, outputDir string) error {
	// Request fully adjusted bars so the close tracks splits and
	// dividends the way the feed expects.
	alpacaBars, err := client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.All,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDownloadFailed, err, "failed to download bars for %s", symbol)
	}

	if len(alpacaBars) == 0 {
		return errors.Newf(errors.ErrCodeNoData, "no bars returned for %s", symbol)
	}

	records := make([]feed.BarRecord, 0, len(alpacaBars))

	for _, ab := range alpacaBars {
		records = append(records, feed.BarRecord{
			Symbol:    symbol,
			Timestamp: ab.Timestamp.UTC().UnixMilli(),
			Open:      ab.Open,
			High:      ab.High,
			Low:       ab.Low,
			Close:     ab.Close,
			AdjClose:  ab.Close,
			Volume:    float64(ab.Volume),
		})
	}

	return feed.WriteParquet(filepath.Join(outputDir, symbol+".parquet"), records)
}

func main() {
	cmd := &cli.Command{
		Name:  "download",
		Usage: "Download historical daily bars for backtesting",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "symbols",
				Aliases:  []string{"s"},
				Usage:    "Comma separated ticker symbols, e.g. SPY,AAPL",
				Required: true,
			},
			&cli.TimestampFlag{
				Name:     "start",
				Usage:    "Start date in `YYYY-MM-DD` format",
				Required: true,
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.TimestampFlag{
				Name:  "end",
				Usage: "End date in `YYYY-MM-DD` format. Defaults to today.",
				Value: time.Now(),
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory to write parquet files into",
				Value:   "./data",
			},
		},
		Action: downloadAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
