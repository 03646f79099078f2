package feed

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/parasxparkash/pyBackTester/internal/types"
	"github.com/parasxparkash/pyBackTester/pkg/errors"
)

// CSV files use the Yahoo Finance daily layout:
// Date,Open,High,Low,Close,Adj Close,Volume — one file per symbol,
// named SYMBOL.csv.

// LoadCSVDir loads one CSV file per symbol from dir and returns the
// per-symbol bar series, optionally restricted to [start, end].
func LoadCSVDir(dir string, symbols []string, start, end optional.Option[time.Time]) (map[string][]types.Bar, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoadFailed, "failed to open duckdb", err)
	}
	defer db.Close()

	bars := make(map[string][]types.Bar, len(symbols))

	for _, symbol := range symbols {
		path := filepath.Join(dir, symbol+".csv")

		series, err := loadCSV(db, path, start, end)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeDataLoadFailed, err, "failed to load bars for %s", symbol)
		}

		bars[symbol] = series
	}

	return bars, nil
}

// LoadCSVFiles loads the given CSV files, deriving each symbol from the
// file name (TICKER.csv -> TICKER).
func LoadCSVFiles(paths []string, start, end optional.Option[time.Time]) (map[string][]types.Bar, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoadFailed, "failed to open duckdb", err)
	}
	defer db.Close()

	bars := make(map[string][]types.Bar, len(paths))

	for _, path := range paths {
		symbol := SymbolFromPath(path)

		series, err := loadCSV(db, path, start, end)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeDataLoadFailed, err, "failed to load bars for %s", symbol)
		}

		bars[symbol] = series
	}

	return bars, nil
}

// SymbolFromPath derives the uppercase ticker from a data file path.
func SymbolFromPath(path string) string {
	base := filepath.Base(path)

	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}

func loadCSV(db *sql.DB, path string, start, end optional.Option[time.Time]) ([]types.Bar, error) {
	sq := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	query := sq.
		Select("Date", "Open", "High", "Low", "Close", `"Adj Close"`, "Volume").
		From(fmt.Sprintf("read_csv_auto('%s')", path)).
		OrderBy("Date ASC")

	if start.IsSome() {
		query = query.Where(squirrel.GtOrEq{"Date": start.Unwrap()})
	}

	if end.IsSome() {
		query = query.Where(squirrel.LtOrEq{"Date": end.Unwrap()})
	}

	rows, err := query.RunWith(db).Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query CSV data", err)
	}
	defer rows.Close()

	var bars []types.Bar

	for rows.Next() {
		var bar types.Bar

		err := rows.Scan(
			&bar.Timestamp,
			&bar.Open,
			&bar.High,
			&bar.Low,
			&bar.Close,
			&bar.AdjClose,
			&bar.Volume,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar", err)
		}

		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating bars", err)
	}

	return bars, nil
}
