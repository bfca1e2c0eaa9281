package formulas

// MaxDrawdown calculates the maximum drawdown from a series of daily
// returns.
//
// The cumulative value is the running product of (1 + return); the
// drawdown at each step is measured against the expanding running
// maximum of that cumulative value (not a fixed lookback window).
//
// Returns the most negative drawdown, e.g. -0.25 for a 25% peak-to-trough
// loss, or 0 for an empty series.
func MaxDrawdown(dailyReturns []float64) float64 {
	if len(dailyReturns) == 0 {
		return 0
	}

	cum := 1.0
	runningMax := 0.0
	maxDrawdown := 0.0

	for _, r := range dailyReturns {
		cum *= 1 + r
		if cum > runningMax {
			runningMax = cum
		}
		if runningMax > 0 {
			drawdown := cum/runningMax - 1
			if drawdown < maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return maxDrawdown
}

// CumulativeValues returns the running product of (1 + return) scaled by
// base, one value per return. A base of 100 gives the conventional
// indexed value series.
func CumulativeValues(dailyReturns []float64, base float64) []float64 {
	if len(dailyReturns) == 0 {
		return []float64{}
	}

	values := make([]float64, len(dailyReturns))
	cum := base
	for i, r := range dailyReturns {
		cum *= 1 + r
		values[i] = cum
	}

	return values
}
