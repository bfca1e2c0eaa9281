package performance

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlab/verdant/internal/domain"
	"github.com/verdantlab/verdant/pkg/formulas"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func series(start int, returns ...float64) domain.ReturnSeries {
	out := make(domain.ReturnSeries, len(returns))
	for i, r := range returns {
		out[i] = domain.ReturnPoint{Date: day(start + i), Return: r}
	}
	return out
}

func TestCompute_Empty(t *testing.T) {
	metrics := Compute(nil, nil)

	assert.Zero(t, metrics.AnnualizedReturn)
	assert.Zero(t, metrics.AnnualizedVolatility)
	assert.Zero(t, metrics.SharpeRatio)
	assert.Zero(t, metrics.MaxDrawdown)
	assert.Nil(t, metrics.Beta)
	assert.Nil(t, metrics.Alpha)
}

func TestCompute_NoBenchmark(t *testing.T) {
	returns := series(0, 0.01, -0.02, 0.03, 0.005)
	metrics := Compute(returns, nil)

	mean := formulas.Mean(returns.Values())
	assert.InDelta(t, math.Pow(1+mean, 252)-1, metrics.AnnualizedReturn, 1e-9)
	assert.InDelta(t, formulas.StdDev(returns.Values())*math.Sqrt(252), metrics.AnnualizedVolatility, 1e-9)
	assert.InDelta(t, -0.02, metrics.MaxDrawdown, 1e-9)
	assert.Nil(t, metrics.Beta)
	assert.Nil(t, metrics.Alpha)
}

func TestCompute_BetaOnMatchingBenchmark(t *testing.T) {
	// Portfolio returns are exactly twice the benchmark's on shared dates
	benchmark := series(0, 0.01, -0.01, 0.02, 0.005)
	returns := series(0, 0.02, -0.02, 0.04, 0.01)

	metrics := Compute(returns, benchmark)

	require.NotNil(t, metrics.Beta)
	assert.InDelta(t, 2.0, *metrics.Beta, 1e-9)
	require.NotNil(t, metrics.Alpha)
}

func TestCompute_BetaPairsByDate(t *testing.T) {
	// Benchmark is shifted by one day; only the overlap should be paired
	returns := series(0, 0.02, -0.02, 0.04)
	benchmark := series(1, -0.01, 0.02, 0.005)

	metrics := Compute(returns, benchmark)

	// Shared dates are day 1 and day 2: returns (-0.02, 0.04) vs
	// benchmark (-0.01, 0.02), a perfect 2x relationship
	require.NotNil(t, metrics.Beta)
	assert.InDelta(t, 2.0, *metrics.Beta, 1e-9)
}

func TestCompute_FlatBenchmark(t *testing.T) {
	returns := series(0, 0.01, -0.02, 0.03)
	benchmark := series(0, 0.0, 0.0, 0.0)

	metrics := Compute(returns, benchmark)

	require.NotNil(t, metrics.Beta)
	assert.Equal(t, 1.0, *metrics.Beta)
	require.NotNil(t, metrics.Alpha)
	assert.Equal(t, 0.0, *metrics.Alpha)
}

func TestCompute_ZeroVolatilitySharpe(t *testing.T) {
	returns := series(0, 0.001, 0.001, 0.001)
	metrics := Compute(returns, nil)

	assert.Zero(t, metrics.SharpeRatio)
	assert.Zero(t, metrics.AnnualizedVolatility)
}
