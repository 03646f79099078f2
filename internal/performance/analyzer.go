// Package performance derives the equity curve and risk/return statistics
// from a finished holdings ledger. Every metric is a pure function of the
// ledger and trade list; nothing here mutates its inputs.
package performance

import (
	"math"
	"time"

	"github.com/moznion/go-optional"
	"github.com/parasxparkash/pyBackTester/internal/portfolio"
	"github.com/parasxparkash/pyBackTester/internal/types"
)

const (
	// TradingPeriodsPerYear is the annualization constant for daily bars.
	TradingPeriodsPerYear = 252
)

// EquityPoint is one row of the equity curve. Return is NaN for the first
// row; Equity is the running product of (1 + Return) starting at 1.0.
type EquityPoint struct {
	Timestamp time.Time
	Total     float64
	Return    float64
	Equity    float64
}

// Analyzer computes summary statistics for one finished run.
//
// Division-by-zero policy: a ratio with an exactly zero denominator reports
// +Inf; trade-derived metrics report 0 when there are no trades; every
// metric over an empty return series reports 0 rather than NaN.
type Analyzer struct {
	curve  []EquityPoint
	trades []types.TradeRecord
}

// NewAnalyzer builds the equity curve from the holdings ledger. The ledger
// must be complete; the analyzer never observes a partially built run.
func NewAnalyzer(holdings []portfolio.HoldingsSnapshot, trades []types.TradeRecord) *Analyzer {
	curve := make([]EquityPoint, 0, len(holdings))
	equity := 1.0

	for i, row := range holdings {
		point := EquityPoint{
			Timestamp: row.Timestamp,
			Total:     row.Total,
			Return:    math.NaN(),
			Equity:    equity,
		}

		if i > 0 {
			point.Return = row.Total/holdings[i-1].Total - 1
			equity *= 1 + point.Return
			point.Equity = equity
		}

		curve = append(curve, point)
	}

	return &Analyzer{
		curve:  curve,
		trades: trades,
	}
}

// EquityCurve returns the per-bar equity curve.
func (a *Analyzer) EquityCurve() []EquityPoint { return a.curve }

// returns yields the defined per-bar returns, i.e. everything after the
// seeded first row.
func (a *Analyzer) returns() []float64 {
	if len(a.curve) < 2 {
		return nil
	}

	out := make([]float64, 0, len(a.curve)-1)
	for _, p := range a.curve[1:] {
		out = append(out, p.Return)
	}

	return out
}

func (a *Analyzer) lastEquity() float64 {
	if len(a.curve) == 0 {
		return 1.0
	}

	return a.curve[len(a.curve)-1].Equity
}

// TotalReturn is the cumulative return in percent.
func (a *Analyzer) TotalReturn() float64 {
	return (a.lastEquity() - 1.0) * 100
}

// SharpeRatio is the annualized mean excess return over its sample standard
// deviation. Zero std with real data reports +Inf; an empty or
// single-element return series reports 0.
func (a *Analyzer) SharpeRatio(riskFreeRate float64) float64 {
	excess := excessReturns(a.returns(), riskFreeRate)
	if len(excess) == 0 {
		return 0
	}

	std := sampleStd(excess)
	if math.IsNaN(std) {
		return 0
	}

	if std == 0 {
		return math.Inf(1)
	}

	return math.Sqrt(TradingPeriodsPerYear) * mean(excess) / std
}

// SortinoRatio is the annualized return over the downside deviation.
func (a *Analyzer) SortinoRatio(riskFreeRate float64) float64 {
	excess := excessReturns(a.returns(), riskFreeRate)
	if len(excess) == 0 {
		return 0
	}

	downside := downsideDeviation(excess)
	annualized := math.Pow(1+mean(excess), TradingPeriodsPerYear) - 1

	if downside > 0 {
		return annualized / downside
	}

	return math.Inf(1)
}

// DownsideDeviation is the annualized sample std of negative returns only.
// Fewer than two negative returns reports 0.
func (a *Analyzer) DownsideDeviation() float64 {
	return downsideDeviation(a.returns())
}

// MaxDrawdown returns the deepest peak-to-trough decline of the equity curve
// as a negative fraction, plus the timestamp at which it occurs. A curve
// that never declines reports 0 and no timestamp.
func (a *Analyzer) MaxDrawdown() (float64, optional.Option[time.Time]) {
	maxDD := 0.0
	at := optional.None[time.Time]()
	runningMax := math.Inf(-1)

	for _, p := range a.curve {
		if p.Equity > runningMax {
			runningMax = p.Equity
		}

		dd := (p.Equity - runningMax) / runningMax
		if dd < maxDD {
			maxDD = dd
			at = optional.Some(p.Timestamp)
		}
	}

	return maxDD, at
}

// CAGR is the compound annual growth rate as a fraction. Zero elapsed days
// reports 0.
func (a *Analyzer) CAGR() float64 {
	if len(a.curve) < 2 {
		return 0
	}

	days := a.curve[len(a.curve)-1].Timestamp.Sub(a.curve[0].Timestamp).Hours() / 24
	if days == 0 {
		return 0
	}

	return math.Pow(a.lastEquity(), 365.0/days) - 1
}

// Volatility is the annualized sample std of returns, in percent.
func (a *Analyzer) Volatility() float64 {
	returns := a.returns()
	if len(returns) == 0 {
		return 0
	}

	std := sampleStd(returns)
	if math.IsNaN(std) {
		return 0
	}

	return std * math.Sqrt(TradingPeriodsPerYear) * 100
}

// CalmarRatio is CAGR over the magnitude of the max drawdown.
func (a *Analyzer) CalmarRatio() float64 {
	if len(a.returns()) == 0 {
		return 0
	}

	maxDD, _ := a.MaxDrawdown()
	if maxDD == 0 {
		return math.Inf(1)
	}

	return a.CAGR() / math.Abs(maxDD)
}

// UlcerIndex is the root mean square of percentage drawdowns.
func (a *Analyzer) UlcerIndex() float64 {
	if len(a.curve) == 0 {
		return 0
	}

	runningMax := math.Inf(-1)
	sumSquares := 0.0

	for _, p := range a.curve {
		if p.Equity > runningMax {
			runningMax = p.Equity
		}

		ddPct := (p.Equity - runningMax) / runningMax * 100
		sumSquares += ddPct * ddPct
	}

	return math.Sqrt(sumSquares / float64(len(a.curve)))
}

// RecoveryFactor is the net return over the magnitude of the max drawdown.
func (a *Analyzer) RecoveryFactor() float64 {
	if len(a.returns()) == 0 {
		return 0
	}

	maxDD, _ := a.MaxDrawdown()
	if maxDD == 0 {
		return math.Inf(1)
	}

	return (a.lastEquity() - 1.0) / math.Abs(maxDD)
}

// GainToPainRatio is the sum of positive returns over the magnitude of the
// sum of negative returns.
func (a *Analyzer) GainToPainRatio() float64 {
	returns := a.returns()
	if len(returns) == 0 {
		return 0
	}

	gains, losses := 0.0, 0.0

	for _, r := range returns {
		if r > 0 {
			gains += r
		} else if r < 0 {
			losses += -r
		}
	}

	if losses == 0 {
		return math.Inf(1)
	}

	return gains / losses
}

// WinRatio is the percentage of trades with positive realized profit.
func (a *Analyzer) WinRatio() float64 {
	if len(a.trades) == 0 {
		return 0
	}

	wins := 0

	for _, t := range a.trades {
		if t.Profit > 0 {
			wins++
		}
	}

	return float64(wins) / float64(len(a.trades)) * 100
}

// ProfitFactor is gross profit over gross loss across trades.
func (a *Analyzer) ProfitFactor() float64 {
	if len(a.trades) == 0 {
		return 0
	}

	grossProfit, grossLoss := 0.0, 0.0

	for _, t := range a.trades {
		if t.Profit > 0 {
			grossProfit += t.Profit
		} else if t.Profit < 0 {
			grossLoss += -t.Profit
		}
	}

	if grossLoss == 0 {
		return math.Inf(1)
	}

	return grossProfit / grossLoss
}

// Expectancy is the mean realized profit per trade.
func (a *Analyzer) Expectancy() float64 {
	if len(a.trades) == 0 {
		return 0
	}

	total := 0.0
	for _, t := range a.trades {
		total += t.Profit
	}

	return total / float64(len(a.trades))
}

// AverageWinningTrade is the mean profit of winning trades.
func (a *Analyzer) AverageWinningTrade() float64 {
	sum, count := 0.0, 0

	for _, t := range a.trades {
		if t.Profit > 0 {
			sum += t.Profit
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return sum / float64(count)
}

// AverageLosingTrade is the mean magnitude of losing trades.
func (a *Analyzer) AverageLosingTrade() float64 {
	sum, count := 0.0, 0

	for _, t := range a.trades {
		if t.Profit < 0 {
			sum += -t.Profit
			count++
		}
	}

	if count == 0 {
		return 0
	}

	return sum / float64(count)
}

// PayoffRatio is the average winning trade over the average losing trade.
func (a *Analyzer) PayoffRatio() float64 {
	if len(a.trades) == 0 {
		return 0
	}

	losing := a.AverageLosingTrade()
	if losing == 0 {
		return math.Inf(1)
	}

	return a.AverageWinningTrade() / losing
}

// SummaryStats returns the full metrics mapping.
func (a *Analyzer) SummaryStats() map[string]float64 {
	maxDD, _ := a.MaxDrawdown()

	return map[string]float64{
		"Total Return":             a.TotalReturn(),
		"Sharpe Ratio":             a.SharpeRatio(0),
		"Sortino Ratio":            a.SortinoRatio(0),
		"Downside Deviation":       a.DownsideDeviation(),
		"Max Drawdown":             maxDD,
		"Max Drawdown %":           maxDD * 100,
		"CAGR":                     a.CAGR() * 100,
		"Volatility":               a.Volatility(),
		"CAR/MDD":                  a.CalmarRatio(),
		"Calmar Ratio":             a.CalmarRatio(),
		"Ulcer Index":              a.UlcerIndex(),
		"Recovery Factor":          a.RecoveryFactor(),
		"Gain to Pain Ratio":       a.GainToPainRatio(),
		"Win Ratio":                a.WinRatio(),
		"Profit Factor":            a.ProfitFactor(),
		"Payoff Ratio":             a.PayoffRatio(),
		"Expectancy":               a.Expectancy(),
		"Average Trade Net Profit": a.Expectancy(),
		"Average Winning Trade":    a.AverageWinningTrade(),
		"Average Losing Trade":     a.AverageLosingTrade(),
	}
}

func excessReturns(returns []float64, riskFreeRate float64) []float64 {
	if len(returns) == 0 {
		return nil
	}

	perPeriod := riskFreeRate / TradingPeriodsPerYear
	out := make([]float64, len(returns))

	for i, r := range returns {
		out[i] = r - perPeriod
	}

	return out
}

func downsideDeviation(returns []float64) float64 {
	var negatives []float64

	for _, r := range returns {
		if r < 0 {
			negatives = append(negatives, r)
		}
	}

	std := sampleStd(negatives)
	if math.IsNaN(std) {
		return 0
	}

	return math.Sqrt(TradingPeriodsPerYear) * std
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// sampleStd is the ddof=1 standard deviation; NaN for fewer than two values.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}

	m := mean(values)
	sum := 0.0

	for _, v := range values {
		d := v - m
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(values)-1))
}
