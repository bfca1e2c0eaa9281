// Package domain provides core domain models and types.
package domain

import (
	"strings"
	"time"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// Strategy is a named sustainability preference. It is a closed
// enumeration: unknown names fall back to StrategyDefault.
type Strategy string

const (
	// StrategyNetZero targets carbon neutrality; excludes anything but
	// excellent environmental performers.
	StrategyNetZero Strategy = "net_zero"
	// StrategyMultiThematic balances all three ESG pillars.
	StrategyMultiThematic Strategy = "multi_thematic_esg"
	// StrategySolidarity prioritizes social impact and governance.
	StrategySolidarity Strategy = "solidarity"
	// StrategyDefault applies the permissive baseline screen.
	StrategyDefault Strategy = ""
)

// ParseStrategy maps a strategy name to its enum value. Unrecognized
// names map to StrategyDefault rather than failing.
func ParseStrategy(name string) Strategy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "net_zero", "netzero", "net zero":
		return StrategyNetZero
	case "multi_thematic_esg", "multithematicesg", "multi-thematic esg":
		return StrategyMultiThematic
	case "solidarity":
		return StrategySolidarity
	default:
		return StrategyDefault
	}
}

// ESGScores holds provider ESG risk scores. Lower is better: the values
// are risk scores, not quality scores. Total is sum-like and unbounded
// above roughly 35. A missing sub-score is 0.
type ESGScores struct {
	Total         float64 `json:"esg_score"`
	Environmental float64 `json:"environmental_score"`
	Social        float64 `json:"social_score"`
	Governance    float64 `json:"governance_score"`
}

// AssetRecord is an immutable snapshot of one ticker's fundamentals and
// ESG scores as delivered by the data source. The core only reads it.
type AssetRecord struct {
	Ticker         string    `json:"ticker"`
	Name           string    `json:"name"`
	Sector         string    `json:"sector"`
	Industry       string    `json:"industry"`
	Country        string    `json:"country"`
	MarketCap      float64   `json:"market_cap"`
	Beta           float64   `json:"beta"`
	Volatility     float64   `json:"volatility"` // trailing annualized, fractional
	ESG            ESGScores `json:"esg"`
	Price          float64   `json:"price"`
	Currency       Currency  `json:"currency"`
	TrailingReturn float64   `json:"returns_1y"` // trailing 1y annualized, percent
}

// PortfolioWeights maps ticker to a non-negative weight. Weights are not
// required to sum to 1; every consumer renormalizes over the tickers it
// can actually resolve.
type PortfolioWeights map[string]float64

// ClosePoint is one daily closing price.
type ClosePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// CloseSeries is a date-ordered sequence of closing prices.
type CloseSeries []ClosePoint

// ReturnPoint is one daily fractional return.
type ReturnPoint struct {
	Date   time.Time `json:"date"`
	Return float64   `json:"return"`
}

// ReturnSeries is a date-ordered sequence of fractional returns. The
// return at a date is close[i]/close[i-1] - 1; the first close date
// carries no return and is dropped.
type ReturnSeries []ReturnPoint

// Values extracts the raw return values in date order.
func (s ReturnSeries) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Return
	}
	return values
}

// ValuePoint is one point of a normalized cumulative value series.
type ValuePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ValueSeries is a base-100 indexed cumulative value series.
type ValueSeries []ValuePoint

// PerformanceMetrics holds risk/performance statistics derived from a
// return series. Beta and Alpha are present only when a benchmark return
// series with nonzero variance was supplied.
type PerformanceMetrics struct {
	AnnualizedReturn     float64  `json:"annualized_return"`
	AnnualizedVolatility float64  `json:"annualized_volatility"`
	SharpeRatio          float64  `json:"sharpe_ratio"`
	MaxDrawdown          float64  `json:"max_drawdown"`
	Beta                 *float64 `json:"beta,omitempty"`
	Alpha                *float64 `json:"alpha,omitempty"`
}

// PortfolioMetrics is the aggregate result for one portfolio: weighted
// ESG scores, exposure maps and embedded performance metrics. It is
// constructed fresh on every call and never mutated after return.
type PortfolioMetrics struct {
	ESGScore           float64            `json:"esg_score"`
	EnvironmentalScore float64            `json:"environmental_score"`
	SocialScore        float64            `json:"social_score"`
	GovernanceScore    float64            `json:"governance_score"`
	SectorExposure     map[string]float64 `json:"sector_exposure"`
	CountryExposure    map[string]float64 `json:"country_exposure"`
	Performance        PerformanceMetrics `json:"performance_metrics"`
}

// NewPortfolioMetrics returns a zero-valued result with initialized
// exposure maps. "No portfolio" conditions return this, never an error.
func NewPortfolioMetrics() PortfolioMetrics {
	return PortfolioMetrics{
		SectorExposure:  make(map[string]float64),
		CountryExposure: make(map[string]float64),
	}
}

// DateRange is a half-open calendar window [Start, End) for historical
// series. Default-window conventions ("last 365 days") belong to the
// caller.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Day normalizes a timestamp to its UTC calendar date. Series joins are
// keyed on this so that intraday timestamps from different providers
// still align.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
