package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verdantlab/verdant/internal/domain"
)

func record(ticker string, total, env, soc, gov float64) domain.AssetRecord {
	return domain.AssetRecord{
		Ticker: ticker,
		ESG: domain.ESGScores{
			Total:         total,
			Environmental: env,
			Social:        soc,
			Governance:    gov,
		},
	}
}

func tickers(records []domain.AssetRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Ticker
	}
	return out
}

func TestFilter_NetZero(t *testing.T) {
	records := []domain.AssetRecord{
		record("CLEAN", 15.0, 2.0, 8.0, 5.0),  // passes
		record("DIRTY", 15.0, 5.0, 3.0, 3.0),  // env too high
		record("RISKY", 25.0, 2.0, 8.0, 5.0),  // total too high
		record("SOCBAD", 15.0, 2.0, 13.0, 5.0), // social too high
	}

	passed := Filter(records, domain.StrategyNetZero)
	assert.Equal(t, []string{"CLEAN"}, tickers(passed))
}

func TestFilter_MultiThematic(t *testing.T) {
	records := []domain.AssetRecord{
		// Balanced with a governance strength
		record("GOOD", 18.0, 7.0, 7.0, 4.0),
		// All pillars under cap but no pillar is a strength
		record("NOSTRENGTH", 21.0, 9.0, 9.0, 9.0),
		// One pillar over the cap
		record("PILLAR", 18.0, 11.0, 3.0, 3.0),
	}

	passed := Filter(records, domain.StrategyMultiThematic)
	assert.Equal(t, []string{"GOOD"}, tickers(passed))
}

func TestFilter_Solidarity(t *testing.T) {
	records := []domain.AssetRecord{
		record("SOCIAL", 20.0, 14.0, 5.0, 4.0), // passes despite high env
		record("GOVBAD", 20.0, 2.0, 5.0, 7.0),  // governance too high
	}

	passed := Filter(records, domain.StrategySolidarity)
	assert.Equal(t, []string{"SOCIAL"}, tickers(passed))
}

func TestFilter_Default(t *testing.T) {
	records := []domain.AssetRecord{
		record("OK", 24.0, 14.0, 10.0, 8.0),
		record("TOTALBAD", 26.0, 5.0, 5.0, 5.0),
		record("PILLARBAD", 20.0, 16.0, 5.0, 5.0),
	}

	passed := Filter(records, domain.StrategyDefault)
	assert.Equal(t, []string{"OK"}, tickers(passed))
}

// Missing sub-scores are stored as zero and zero risk passes every
// threshold, so uncovered pillars never exclude a security.
func TestFilter_MissingScoresPass(t *testing.T) {
	records := []domain.AssetRecord{
		record("NODATA", 0, 0, 0, 0),
	}

	for _, strategy := range []domain.Strategy{
		domain.StrategyNetZero,
		domain.StrategyMultiThematic,
		domain.StrategySolidarity,
		domain.StrategyDefault,
	} {
		passed := Filter(records, strategy)
		assert.Len(t, passed, 1, "strategy %q should pass zero scores", strategy)
	}
}

func TestFilter_ExactThresholdExcluded(t *testing.T) {
	// Comparisons are strict: a score exactly at the threshold fails
	records := []domain.AssetRecord{
		record("EDGE", 25.0, 5.0, 5.0, 5.0),
	}
	passed := Filter(records, domain.StrategyDefault)
	assert.Empty(t, passed)
}

func TestFilter_PreservesOrderAndIdempotent(t *testing.T) {
	records := []domain.AssetRecord{
		record("B", 10.0, 2.0, 2.0, 2.0),
		record("A", 12.0, 3.0, 3.0, 3.0),
		record("C", 11.0, 1.0, 1.0, 1.0),
	}

	first := Filter(records, domain.StrategyDefault)
	assert.Equal(t, []string{"B", "A", "C"}, tickers(first))

	second := Filter(first, domain.StrategyDefault)
	assert.Equal(t, first, second)
}

func TestFilter_EmptyInput(t *testing.T) {
	passed := Filter(nil, domain.StrategyNetZero)
	assert.Empty(t, passed)
}
