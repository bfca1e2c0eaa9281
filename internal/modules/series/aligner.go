// Package series builds portfolio return and value series from per-asset
// close prices. Assets are joined on calendar date rather than position,
// so gaps in one asset's history never shift another asset's returns.
package series

import (
	"sort"
	"time"

	"github.com/verdantlab/verdant/internal/domain"
	"github.com/verdantlab/verdant/pkg/formulas"
)

// BaseValue is the starting level of every value series.
const BaseValue = 100.0

// WeightedCloses pairs an asset's target weight with its close history.
type WeightedCloses struct {
	Ticker string
	Weight float64
	Closes domain.CloseSeries
}

// Returns computes daily simple returns from a close series. Each return
// is dated to the later of the two closes. A non-positive previous close
// yields a zero return, the same convention as formulas.CalculateReturns.
func Returns(closes domain.CloseSeries) domain.ReturnSeries {
	if len(closes) < 2 {
		return nil
	}

	returns := make(domain.ReturnSeries, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		var ret float64
		if prev := closes[i-1].Close; prev > 0 {
			ret = closes[i].Close/prev - 1
		}
		returns = append(returns, domain.ReturnPoint{
			Date:   closes[i].Date,
			Return: ret,
		})
	}

	return returns
}

// PortfolioSeries builds the weighted portfolio value and return series
// from per-asset close histories.
//
// Assets with no close data are dropped and the remaining weights are
// renormalized to sum to one. Dates are joined as a union across assets;
// an asset with no return on a given date contributes zero that day.
// The value series starts at BaseValue on the earliest close date.
func PortfolioSeries(assets []WeightedCloses) (domain.ValueSeries, domain.ReturnSeries) {
	// Keep only assets that actually have price history
	usable := make([]WeightedCloses, 0, len(assets))
	var weightSum float64
	for _, asset := range assets {
		if len(asset.Closes) == 0 {
			continue
		}
		usable = append(usable, asset)
		weightSum += asset.Weight
	}

	if len(usable) == 0 || weightSum == 0 {
		return nil, nil
	}

	// Weighted returns joined on date
	combined := make(map[time.Time]float64)
	firstClose := usable[0].Closes[0].Date
	for _, asset := range usable {
		if asset.Closes[0].Date.Before(firstClose) {
			firstClose = asset.Closes[0].Date
		}
		weight := asset.Weight / weightSum
		for _, point := range Returns(asset.Closes) {
			combined[point.Date] += weight * point.Return
		}
	}

	if len(combined) == 0 {
		return nil, nil
	}

	dates := make([]time.Time, 0, len(combined))
	for date := range combined {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	returns := make(domain.ReturnSeries, len(dates))
	for i, date := range dates {
		returns[i] = domain.ReturnPoint{Date: date, Return: combined[date]}
	}

	return Values(returns, firstClose), returns
}

// BenchmarkSeries builds the indexed value and return series for a
// single benchmark close history. The value series is normalized to
// BaseValue at the first close.
func BenchmarkSeries(closes domain.CloseSeries) (domain.ValueSeries, domain.ReturnSeries) {
	returns := Returns(closes)
	if len(returns) == 0 {
		return nil, nil
	}
	return Values(returns, closes[0].Date), returns
}

// Values compounds a return series into a value series starting at
// BaseValue on startDate. Empty returns yield an empty value series.
func Values(returns domain.ReturnSeries, startDate time.Time) domain.ValueSeries {
	if len(returns) == 0 {
		return nil
	}

	values := make(domain.ValueSeries, 0, len(returns)+1)
	values = append(values, domain.ValuePoint{Date: startDate, Value: BaseValue})

	levels := formulas.CumulativeValues(returnValues(returns), BaseValue)
	for i, point := range returns {
		values = append(values, domain.ValuePoint{Date: point.Date, Value: levels[i]})
	}

	return values
}

func returnValues(returns domain.ReturnSeries) []float64 {
	out := make([]float64, len(returns))
	for i, p := range returns {
		out[i] = p.Return
	}
	return out
}
