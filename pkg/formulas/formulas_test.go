package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateReturns(t *testing.T) {
	prices := []float64{100, 101, 99.99, 102.99}
	returns := CalculateReturns(prices)

	assert.Len(t, returns, 3)
	assert.InDelta(t, 0.01, returns[0], 1e-9)
	assert.InDelta(t, -0.01, returns[1], 1e-9)
	assert.InDelta(t, 0.03, returns[2], 1e-9)
}

func TestCalculateReturns_InsufficientData(t *testing.T) {
	assert.Empty(t, CalculateReturns(nil))
	assert.Empty(t, CalculateReturns([]float64{100}))
}

func TestCalculateReturns_ZeroPrice(t *testing.T) {
	// A zero price must not produce Inf
	returns := CalculateReturns([]float64{0, 100, 110})
	assert.Equal(t, 0.0, returns[0])
	assert.InDelta(t, 0.10, returns[1], 1e-9)
}

func TestMeanAndStdDev_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{0.5}))
	assert.Equal(t, 0.0, Variance([]float64{0.5}))
}

func TestAnnualizedReturn(t *testing.T) {
	// Constant 0.1% daily return compounds to (1.001)^252 - 1
	returns := []float64{0.001, 0.001, 0.001}
	expected := math.Pow(1.001, 252) - 1
	assert.InDelta(t, expected, AnnualizedReturn(returns), 1e-9)
}

func TestAnnualizedVolatility(t *testing.T) {
	returns := []float64{0.01, -0.01, 0.02, -0.02}
	expected := StdDev(returns) * math.Sqrt(252)
	assert.InDelta(t, expected, AnnualizedVolatility(returns), 1e-12)
}

func TestSharpeRatio_ZeroStdDev(t *testing.T) {
	// Constant returns have zero deviation; Sharpe must be exactly 0
	returns := []float64{0.01, 0.01, 0.01}
	assert.Equal(t, 0.0, SharpeRatio(returns, 0.02))
}

func TestSharpeRatio(t *testing.T) {
	returns := []float64{0.01, -0.005, 0.02, 0.003}

	periodicRF := 0.02 / 252.0
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - periodicRF
	}
	expected := math.Sqrt(252) * Mean(excess) / StdDev(returns)

	assert.InDelta(t, expected, SharpeRatio(returns, 0.02), 1e-12)
}

func TestMaxDrawdown(t *testing.T) {
	// Cumulative values: 1.01, 0.9898, 1.0195
	// Worst drawdown is 0.9898/1.01 - 1 = -0.0200...
	returns := []float64{0.01, -0.02, 0.03}
	assert.InDelta(t, -0.02, MaxDrawdown(returns), 1e-9)
}

func TestMaxDrawdown_MonotonicGains(t *testing.T) {
	returns := []float64{0.01, 0.02, 0.005}
	assert.Equal(t, 0.0, MaxDrawdown(returns))
}

func TestMaxDrawdown_Empty(t *testing.T) {
	assert.Equal(t, 0.0, MaxDrawdown(nil))
}

func TestCumulativeValues(t *testing.T) {
	values := CumulativeValues([]float64{0.01, -0.02}, 100)

	assert.Len(t, values, 2)
	assert.InDelta(t, 101.0, values[0], 1e-9)
	assert.InDelta(t, 98.98, values[1], 1e-9)
}

func TestCovariance_MismatchedLengths(t *testing.T) {
	assert.Equal(t, 0.0, Covariance([]float64{1, 2}, []float64{1, 2, 3}))
}
