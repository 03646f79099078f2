package feed

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

// ParquetStoreTestSuite is a test suite for the parquet bar store
type ParquetStoreTestSuite struct {
	suite.Suite
	dir string
}

// TestParquetStoreSuite runs the test suite
func TestParquetStoreSuite(t *testing.T) {
	suite.Run(t, new(ParquetStoreTestSuite))
}

func (suite *ParquetStoreTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()

	records := []BarRecord{
		{Symbol: "SPY", Timestamp: day(1).UnixMilli(), Open: 100, High: 101, Low: 99, Close: 100.5, AdjClose: 100.4, Volume: 1000},
		{Symbol: "SPY", Timestamp: day(2).UnixMilli(), Open: 101, High: 102, Low: 100, Close: 101.5, AdjClose: 101.4, Volume: 1100},
		{Symbol: "SPY", Timestamp: day(3).UnixMilli(), Open: 102, High: 103, Low: 101, Close: 102.5, AdjClose: 102.4, Volume: 1200},
	}

	err := WriteParquet(filepath.Join(suite.dir, "SPY.parquet"), records)
	suite.Require().NoError(err)
}

func (suite *ParquetStoreTestSuite) TestLoadParquetDir() {
	bars, err := LoadParquetDir(suite.dir, []string{"SPY"}, optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Require().Len(bars["SPY"], 3)

	suite.Equal(day(1), bars["SPY"][0].Timestamp)
	suite.Equal(100.4, bars["SPY"][0].AdjClose)
}

func (suite *ParquetStoreTestSuite) TestLoadParquetFilesWithRange() {
	start := optional.Some(day(2))

	bars, err := LoadParquetFiles([]string{filepath.Join(suite.dir, "SPY.parquet")}, start, optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Require().Len(bars["SPY"], 2)
	suite.Equal(day(2), bars["SPY"][0].Timestamp)
}

func (suite *ParquetStoreTestSuite) TestLoadParquetMissingFile() {
	_, err := LoadParquetDir(suite.dir, []string{"NOPE"}, optional.None[time.Time](), optional.None[time.Time]())
	suite.Error(err)
}
