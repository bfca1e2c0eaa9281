// Package screening implements sustainability screening of asset records
// against strategy-specific ESG risk thresholds. Scores are risk scores:
// lower is better, and a score of zero (including missing sub-scores)
// is treated as favorable.
package screening

import (
	"math"

	"github.com/verdantlab/verdant/internal/domain"
)

// Net-zero strategy thresholds. Strict on environmental risk, lenient
// on the social/governance pillars.
const (
	netZeroMaxEnv    = 4.0
	netZeroMaxTotal  = 20.0
	netZeroMaxSocGov = 12.0
)

// Multi-thematic strategy thresholds. Balanced across pillars but
// requires at least one pillar to be a clear strength.
const (
	multiThematicMaxTotal     = 22.0
	multiThematicMaxPillar    = 10.0
	multiThematicStrongEnv    = 8.0
	multiThematicStrongSocial = 8.0
	multiThematicStrongGov    = 5.0
)

// Solidarity strategy thresholds. Strict on social and governance risk.
const (
	solidarityMaxSocial = 8.0
	solidarityMaxGov    = 6.0
	solidarityMaxTotal  = 25.0
)

// Default thresholds applied when no strategy is selected.
const (
	defaultMaxTotal  = 25.0
	defaultMaxPillar = 15.0
)

// Filter returns the subset of records that pass the ESG thresholds for
// the given strategy. Input order is preserved and the input slice is
// never modified.
func Filter(records []domain.AssetRecord, strategy domain.Strategy) []domain.AssetRecord {
	passed := make([]domain.AssetRecord, 0, len(records))
	for _, record := range records {
		if Passes(record.ESG, strategy) {
			passed = append(passed, record)
		}
	}
	return passed
}

// Passes reports whether a set of ESG risk scores clears the thresholds
// for the given strategy.
func Passes(scores domain.ESGScores, strategy domain.Strategy) bool {
	switch strategy {
	case domain.StrategyNetZero:
		return scores.Environmental < netZeroMaxEnv &&
			scores.Total < netZeroMaxTotal &&
			math.Max(scores.Social, scores.Governance) < netZeroMaxSocGov

	case domain.StrategyMultiThematic:
		maxPillar := math.Max(scores.Environmental, math.Max(scores.Social, scores.Governance))
		hasStrength := scores.Environmental < multiThematicStrongEnv ||
			scores.Social < multiThematicStrongSocial ||
			scores.Governance < multiThematicStrongGov
		return scores.Total < multiThematicMaxTotal &&
			maxPillar < multiThematicMaxPillar &&
			hasStrength

	case domain.StrategySolidarity:
		return scores.Social < solidarityMaxSocial &&
			scores.Governance < solidarityMaxGov &&
			scores.Total < solidarityMaxTotal

	default:
		maxPillar := math.Max(scores.Environmental, math.Max(scores.Social, scores.Governance))
		return scores.Total < defaultMaxTotal && maxPillar < defaultMaxPillar
	}
}
