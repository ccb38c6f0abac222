package model

import (
	"time"

	"github.com/grc-lab/riskreg/pkg/domain/types"
)

// Risk represents one entry in the risk register. Probability, Impact and
// Progress are the raw inputs; InherentRisk, Score and ResidualRisk are
// derived through ComputeScores and must not be set directly.
type Risk struct {
	ID          int64
	Title       string
	Description string
	Category    types.CategoryID
	Owner       string // Employee ID, resolved via the directory service for display
	Status      types.RiskStatus
	Treatment   types.Treatment

	Probability int // 1-5 ordinal
	Impact      int // 1-5 ordinal
	Progress    int // 0-100 treatment completion percent, independent of the action ledger

	InherentRisk int // Probability x Impact at identification, fixed thereafter
	Score        int // Probability x Impact, recomputed on input change
	ResidualRisk int // Score discounted by treatment progress, capped at 50% reduction

	IdentifiedAt time.Time
	NextReviewAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Level returns the band of the current score
func (r *Risk) Level() types.RiskLevel {
	return types.RiskLevelOf(r.Score)
}

// ResidualLevel returns the band of the residual score
func (r *Risk) ResidualLevel() types.RiskLevel {
	return types.RiskLevelOf(r.ResidualRisk)
}

// ReviewOverdue reports whether the scheduled review date has passed.
// This is the single overdue predicate for review schedules; stats and the
// controller must not re-derive it.
func (r *Risk) ReviewOverdue(now time.Time) bool {
	return !r.NextReviewAt.IsZero() && r.NextReviewAt.Before(now)
}

// Recompute refreshes the derived score fields and the review schedule from
// the current inputs. The inherent score is preserved once set, and the
// schedule is anchored to IdentifiedAt so recomputation is idempotent.
func (r *Risk) Recompute() {
	scores := ComputeScores(r.Probability, r.Impact, r.Progress, r.InherentRisk)
	r.InherentRisk = scores.Inherent
	r.Score = scores.Current
	r.ResidualRisk = scores.Residual
	r.NextReviewAt = NextReviewDate(r.IdentifiedAt, r.Score)
}
