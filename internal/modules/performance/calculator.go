// Package performance computes annualized risk and return metrics from
// daily return series.
package performance

import (
	"math"
	"time"

	"github.com/verdantlab/verdant/internal/domain"
	"github.com/verdantlab/verdant/pkg/formulas"
)

// RiskFreeRate is the annual risk-free rate used for Sharpe and alpha.
const RiskFreeRate = 0.02

// Compute calculates performance metrics from daily portfolio returns.
//
// Beta and alpha are only set when a benchmark series is provided; they
// are computed over the dates the two series share. A benchmark with no
// return variance yields beta 1 and alpha 0 rather than a division by
// zero. Empty portfolio returns yield zeroed metrics.
func Compute(returns, benchmark domain.ReturnSeries) domain.PerformanceMetrics {
	var metrics domain.PerformanceMetrics
	if len(returns) == 0 {
		return metrics
	}

	values := returns.Values()

	metrics.AnnualizedReturn = formulas.AnnualizedReturn(values)
	metrics.AnnualizedVolatility = formulas.AnnualizedVolatility(values)
	metrics.SharpeRatio = formulas.SharpeRatio(values, RiskFreeRate)
	metrics.MaxDrawdown = formulas.MaxDrawdown(values)

	if len(benchmark) == 0 {
		return metrics
	}

	beta, alpha := betaAlpha(returns, benchmark, metrics.AnnualizedReturn)
	metrics.Beta = &beta
	metrics.Alpha = &alpha

	return metrics
}

// betaAlpha computes CAPM beta and annualized alpha against a benchmark,
// pairing the two series on their shared dates.
func betaAlpha(returns, benchmark domain.ReturnSeries, annualizedReturn float64) (float64, float64) {
	benchByDate := make(map[time.Time]float64, len(benchmark))
	for _, point := range benchmark {
		benchByDate[point.Date] = point.Return
	}

	var paired, pairedBench []float64
	for _, point := range returns {
		if benchReturn, ok := benchByDate[point.Date]; ok {
			paired = append(paired, point.Return)
			pairedBench = append(pairedBench, benchReturn)
		}
	}

	benchVariance := formulas.Variance(pairedBench)
	if benchVariance == 0 {
		return 1.0, 0.0
	}

	beta := formulas.Covariance(paired, pairedBench) / benchVariance

	benchAnnualized := math.Pow(1+formulas.Mean(pairedBench), formulas.TradingDaysPerYear) - 1
	alpha := (annualizedReturn - RiskFreeRate) - beta*(benchAnnualized-RiskFreeRate)

	return beta, alpha
}
