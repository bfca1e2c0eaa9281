package universe

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/verdantlab/verdant/internal/domain"
)

// RefreshJob re-resolves every universe security through the asset
// source so screening endpoints serve current market and ESG data.
type RefreshJob struct {
	repo   *Repository
	source domain.AssetSource
	log    zerolog.Logger
}

// NewRefreshJob creates a new universe refresh job.
func NewRefreshJob(repo *Repository, source domain.AssetSource, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		repo:   repo,
		source: source,
		log:    log.With().Str("component", "universe_refresh_job").Logger(),
	}
}

// Name returns the job name for scheduler logging.
func (j *RefreshJob) Name() string {
	return "universe_refresh"
}

// Run refreshes market and ESG data for every security. Fetch failures
// for individual tickers are logged and skipped; the run only fails on
// storage errors.
func (j *RefreshJob) Run() error {
	securities, err := j.repo.List(ListFilter{})
	if err != nil {
		return fmt.Errorf("failed to list universe: %w", err)
	}

	var refreshed, skipped int
	for _, security := range securities {
		record, err := j.source.FetchAssetRecord(security.Ticker)
		if err != nil || record == nil {
			j.log.Warn().Err(err).Str("ticker", security.Ticker).Msg("Skipping refresh, no data")
			skipped++
			continue
		}

		security.Sector = record.Sector
		security.Industry = record.Industry
		security.Country = record.Country
		security.Currency = record.Currency
		security.MarketCap = record.MarketCap
		security.Beta = record.Beta
		security.Volatility = record.Volatility
		security.Price = record.Price
		security.TrailingReturn = record.TrailingReturn
		security.ESG = record.ESG

		if err := j.repo.Upsert(security); err != nil {
			return fmt.Errorf("failed to store refreshed security %s: %w", security.Ticker, err)
		}
		refreshed++
	}

	j.log.Info().
		Int("refreshed", refreshed).
		Int("skipped", skipped).
		Msg("Universe refresh complete")

	return nil
}
