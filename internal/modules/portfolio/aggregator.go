// Package portfolio orchestrates portfolio-level aggregation: it resolves
// tickers through an asset source, builds the weighted return series and
// merges ESG, exposure and performance metrics into one result.
package portfolio

import (
	"github.com/rs/zerolog"

	"github.com/verdantlab/verdant/internal/domain"
	"github.com/verdantlab/verdant/internal/modules/performance"
	"github.com/verdantlab/verdant/internal/modules/screening"
	"github.com/verdantlab/verdant/internal/modules/series"
)

// AggregateRequest describes one portfolio analysis run.
type AggregateRequest struct {
	Weights   domain.PortfolioWeights `json:"weights"`
	Range     domain.DateRange        `json:"range"`
	Benchmark string                  `json:"benchmark,omitempty"`
	// Strategy only takes effect when Screen is true.
	Strategy domain.Strategy `json:"strategy,omitempty"`
	Screen   bool            `json:"screen,omitempty"`
}

// Result carries the aggregate metrics plus the indexed series behind
// them, for charting.
type Result struct {
	Metrics         domain.PortfolioMetrics `json:"metrics"`
	PortfolioValues domain.ValueSeries      `json:"portfolio_values,omitempty"`
	BenchmarkValues domain.ValueSeries      `json:"benchmark_values,omitempty"`
}

// Aggregator computes portfolio metrics from an asset source.
type Aggregator struct {
	source domain.AssetSource
	log    zerolog.Logger
}

// NewAggregator creates a new portfolio aggregator.
func NewAggregator(source domain.AssetSource, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		source: source,
		log:    log.With().Str("component", "portfolio_aggregator").Logger(),
	}
}

// Aggregate resolves every weighted ticker and merges ESG, exposure and
// performance metrics.
//
// Tickers the source cannot resolve are dropped, not errors. The metric
// families renormalize independently: performance uses the tickers with
// price history, ESG and exposure use the tickers with a fundamentals
// record. A portfolio where nothing resolves yields zero-valued metrics.
func (a *Aggregator) Aggregate(req AggregateRequest) Result {
	result := Result{Metrics: domain.NewPortfolioMetrics()}
	if len(req.Weights) == 0 {
		return result
	}

	records := a.resolveRecords(req)

	weighted := make([]series.WeightedCloses, 0, len(req.Weights))
	for ticker, weight := range req.Weights {
		if weight <= 0 {
			continue
		}
		if req.Screen {
			record, ok := records[ticker]
			if !ok || !screening.Passes(record.ESG, req.Strategy) {
				continue
			}
		}
		closes, err := a.source.FetchCloseSeries(ticker, req.Range)
		if err != nil {
			a.log.Debug().Err(err).Str("ticker", ticker).Msg("No close series, dropping from performance")
			continue
		}
		weighted = append(weighted, series.WeightedCloses{
			Ticker: ticker,
			Weight: weight,
			Closes: closes,
		})
	}

	values, returns := series.PortfolioSeries(weighted)
	result.PortfolioValues = values

	var benchmarkReturns domain.ReturnSeries
	if req.Benchmark != "" {
		if closes, err := a.source.FetchCloseSeries(req.Benchmark, req.Range); err != nil {
			a.log.Warn().Err(err).Str("benchmark", req.Benchmark).Msg("Benchmark unavailable")
		} else {
			result.BenchmarkValues, benchmarkReturns = series.BenchmarkSeries(closes)
		}
	}

	result.Metrics.Performance = performance.Compute(returns, benchmarkReturns)

	a.mergeESGAndExposure(&result.Metrics, req, records)

	a.log.Info().
		Int("tickers", len(req.Weights)).
		Int("priced", len(weighted)).
		Int("resolved", len(records)).
		Msg("Aggregated portfolio metrics")

	return result
}

func (a *Aggregator) resolveRecords(req AggregateRequest) map[string]domain.AssetRecord {
	records := make(map[string]domain.AssetRecord, len(req.Weights))
	for ticker := range req.Weights {
		record, err := a.source.FetchAssetRecord(ticker)
		if err != nil || record == nil {
			a.log.Debug().Err(err).Str("ticker", ticker).Msg("No asset record, dropping from ESG aggregates")
			continue
		}
		records[ticker] = *record
	}
	return records
}

// mergeESGAndExposure fills the weighted ESG scores and sector/country
// exposure maps, renormalizing over the tickers that resolved to a record.
func (a *Aggregator) mergeESGAndExposure(metrics *domain.PortfolioMetrics, req AggregateRequest, records map[string]domain.AssetRecord) {
	var weightSum float64
	for ticker, weight := range req.Weights {
		if weight <= 0 {
			continue
		}
		record, ok := records[ticker]
		if !ok {
			continue
		}
		if req.Screen && !screening.Passes(record.ESG, req.Strategy) {
			continue
		}
		weightSum += weight
	}
	if weightSum == 0 {
		return
	}

	for ticker, weight := range req.Weights {
		if weight <= 0 {
			continue
		}
		record, ok := records[ticker]
		if !ok {
			continue
		}
		if req.Screen && !screening.Passes(record.ESG, req.Strategy) {
			continue
		}

		w := weight / weightSum
		metrics.ESGScore += w * record.ESG.Total
		metrics.EnvironmentalScore += w * record.ESG.Environmental
		metrics.SocialScore += w * record.ESG.Social
		metrics.GovernanceScore += w * record.ESG.Governance
		metrics.SectorExposure[orUnknown(record.Sector)] += w
		metrics.CountryExposure[orUnknown(record.Country)] += w
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
