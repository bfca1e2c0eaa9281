package formulas

import "math"

// SharpeRatio calculates the annualized Sharpe ratio from daily returns.
//
// Formula:
//
//	Sharpe = sqrt(252) x mean(r - riskFree/252) / stddev(r)
//
// riskFreeRate is annual (e.g. 0.02 for 2%). A zero standard deviation
// returns 0, never NaN.
func SharpeRatio(dailyReturns []float64, riskFreeRate float64) float64 {
	if len(dailyReturns) == 0 {
		return 0
	}

	stdDev := StdDev(dailyReturns)
	if stdDev == 0 {
		return 0
	}

	periodicRiskFree := riskFreeRate / TradingDaysPerYear

	excess := make([]float64, len(dailyReturns))
	for i, r := range dailyReturns {
		excess[i] = r - periodicRiskFree
	}

	return math.Sqrt(TradingDaysPerYear) * Mean(excess) / stdDev
}
