package feed

import (
	"path/filepath"
	"time"

	"github.com/moznion/go-optional"
	"github.com/parquet-go/parquet-go"
	"github.com/parasxparkash/pyBackTester/internal/types"
	"github.com/parasxparkash/pyBackTester/pkg/errors"
)

// BarRecord is the on-disk parquet schema for daily bar data, one file per
// symbol. The downloader writes this layout and the feed reads it back.
type BarRecord struct {
	Symbol    string  `parquet:"symbol"`
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
	AdjClose  float64 `parquet:"adj_close"`
	Volume    float64 `parquet:"volume"`
}

// Bar converts the parquet record to the in-memory bar representation.
func (r BarRecord) Bar() types.Bar {
	return types.Bar{
		Timestamp: time.UnixMilli(r.Timestamp).UTC(),
		Open:      r.Open,
		High:      r.High,
		Low:       r.Low,
		Close:     r.Close,
		AdjClose:  r.AdjClose,
		Volume:    r.Volume,
	}
}

// WriteParquet writes bar records to a parquet file at path.
func WriteParquet(path string, records []BarRecord) error {
	if err := parquet.WriteFile(path, records); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write parquet file", err)
	}

	return nil
}

// LoadParquetDir loads one SYMBOL.parquet file per symbol from dir,
// optionally restricted to [start, end].
func LoadParquetDir(dir string, symbols []string, start, end optional.Option[time.Time]) (map[string][]types.Bar, error) {
	bars := make(map[string][]types.Bar, len(symbols))

	for _, symbol := range symbols {
		path := filepath.Join(dir, symbol+".parquet")

		series, err := loadParquet(path, start, end)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeDataLoadFailed, err, "failed to read parquet bars for %s", symbol)
		}

		bars[symbol] = series
	}

	return bars, nil
}

// LoadParquetFiles loads the given parquet files, deriving each symbol from
// the file name (TICKER.parquet -> TICKER).
func LoadParquetFiles(paths []string, start, end optional.Option[time.Time]) (map[string][]types.Bar, error) {
	bars := make(map[string][]types.Bar, len(paths))

	for _, path := range paths {
		symbol := SymbolFromPath(path)

		series, err := loadParquet(path, start, end)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeDataLoadFailed, err, "failed to read parquet bars for %s", symbol)
		}

		bars[symbol] = series
	}

	return bars, nil
}

func loadParquet(path string, start, end optional.Option[time.Time]) ([]types.Bar, error) {
	records, err := parquet.ReadFile[BarRecord](path)
	if err != nil {
		return nil, err
	}

	var series []types.Bar

	for _, record := range records {
		bar := record.Bar()

		if start.IsSome() && bar.Timestamp.Before(start.Unwrap()) {
			continue
		}

		if end.IsSome() && bar.Timestamp.After(end.Unwrap()) {
			continue
		}

		series = append(series, bar)
	}

	return series, nil
}
