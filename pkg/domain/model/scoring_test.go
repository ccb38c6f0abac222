package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grc-lab/riskreg/pkg/domain/model"
)

func TestComputeScores(t *testing.T) {
	t.Run("score is probability times impact for the full domain", func(t *testing.T) {
		for probability := 1; probability <= 5; probability++ {
			for impact := 1; impact <= 5; impact++ {
				scores := model.ComputeScores(probability, impact, 0, 0)
				gt.Value(t, scores.Current).Equal(probability * impact)
				gt.Bool(t, scores.Current >= 1 && scores.Current <= 25).True()
			}
		}
	})

	t.Run("inherent baselines to current on first computation", func(t *testing.T) {
		scores := model.ComputeScores(4, 5, 0, 0)
		gt.Value(t, scores.Inherent).Equal(20)
		gt.Value(t, scores.Current).Equal(20)
		gt.Value(t, scores.Residual).Equal(20)
	})

	t.Run("inherent is preserved through recomputation", func(t *testing.T) {
		scores := model.ComputeScores(2, 2, 0, 20)
		gt.Value(t, scores.Inherent).Equal(20)
		gt.Value(t, scores.Current).Equal(4)
	})

	t.Run("full progress halves the score", func(t *testing.T) {
		scores := model.ComputeScores(4, 5, 100, 20)
		gt.Value(t, scores.Residual).Equal(10)
	})

	t.Run("residual is bounded and monotone in progress", func(t *testing.T) {
		prev := 26
		for progress := 0; progress <= 100; progress++ {
			scores := model.ComputeScores(5, 5, progress, 0)
			gt.Bool(t, scores.Residual <= scores.Current).True()
			gt.Bool(t, scores.Residual >= 1).True()
			gt.Bool(t, scores.Residual <= prev).True()
			prev = scores.Residual
		}
	})

	t.Run("residual never drops below one", func(t *testing.T) {
		scores := model.ComputeScores(1, 1, 100, 0)
		gt.Value(t, scores.Residual).Equal(1)
	})

	t.Run("out of range inputs are clamped", func(t *testing.T) {
		scores := model.ComputeScores(9, 0, 200, 0)
		gt.Value(t, scores.Current).Equal(5) // 5 x 1
		gt.Value(t, scores.Residual).Equal(3)
	})
}
