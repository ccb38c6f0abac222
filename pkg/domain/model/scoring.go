package model

import "math"

// maxTreatmentDiscount is the policy cap on how much completed treatment can
// reduce the realized score: at most half. Not user-configurable.
const maxTreatmentDiscount = 0.5

// Scores holds the three derived risk scores
type Scores struct {
	Inherent int // score before any treatment, fixed at first computation
	Current  int // probability x impact as of the latest inputs
	Residual int // current score discounted by treatment progress
}

// ComputeScores derives the inherent, current and residual scores from the
// raw inputs. prevInherent carries the stored inherent score through
// recomputation; pass 0 to baseline it to the current score (first
// computation or explicit re-baseline).
//
// Inputs are clamped: probability and impact to [1,5], progress to [0,100].
// Callers are expected to validate before invoking.
func ComputeScores(probability, impact, progress, prevInherent int) Scores {
	probability = clamp(probability, 1, 5)
	impact = clamp(impact, 1, 5)
	progress = clamp(progress, 0, 100)

	current := probability * impact

	inherent := prevInherent
	if inherent == 0 {
		inherent = current
	}

	discount := float64(progress) / 100 * maxTreatmentDiscount
	residual := int(math.Round(float64(current) * (1 - discount)))
	if residual < 1 {
		residual = 1
	}

	return Scores{
		Inherent: inherent,
		Current:  current,
		Residual: residual,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
