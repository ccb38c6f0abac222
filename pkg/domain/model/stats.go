package model

import (
	"fmt"
	"time"

	"github.com/grc-lab/riskreg/pkg/domain/types"
)

func errInvalidLevel(v string) error {
	return fmt.Errorf("invalid risk level: %s", v)
}

// RiskStats is a derived view over the full risk collection, recomputed on
// demand rather than incrementally maintained.
type RiskStats struct {
	Total       int
	ByStatus    map[types.RiskStatus]int
	ByCategory  map[types.CategoryID]int
	ByPriority  map[types.RiskLevel]int
	ByRiskLevel map[types.RiskLevel]int
	AvgScore    float64
	HighRisks   int // risks banded high or critical on the current score
	Overdue     int // risks whose scheduled review has passed
}

// ComputeStats builds collection-level statistics. Safe on an empty
// collection: no division by zero, average 0.
func ComputeStats(risks []*Risk, now time.Time) *RiskStats {
	stats := &RiskStats{
		Total:       len(risks),
		ByStatus:    make(map[types.RiskStatus]int),
		ByCategory:  make(map[types.CategoryID]int),
		ByPriority:  make(map[types.RiskLevel]int),
		ByRiskLevel: make(map[types.RiskLevel]int),
	}

	var scoreSum int
	for _, r := range risks {
		stats.ByStatus[r.Status]++
		stats.ByCategory[r.Category]++
		stats.ByPriority[r.Level()]++
		stats.ByRiskLevel[r.ResidualLevel()]++

		scoreSum += r.Score
		switch r.Level() {
		case types.RiskLevelHigh, types.RiskLevelCritical:
			stats.HighRisks++
		}
		if r.ReviewOverdue(now) {
			stats.Overdue++
		}
	}

	if len(risks) > 0 {
		stats.AvgScore = float64(scoreSum) / float64(len(risks))
	}

	return stats
}
