package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/grc-lab/riskreg/pkg/domain/model"
	"github.com/grc-lab/riskreg/pkg/domain/types"
)

func TestRiskActionEffectiveStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("past due and not completed is overdue", func(t *testing.T) {
		action := &model.RiskAction{
			Status:  types.ActionStatusInProgress,
			DueDate: now.AddDate(0, 0, -1),
		}
		gt.Value(t, action.EffectiveStatus(now)).Equal(types.ActionStatusOverdue)
	})

	t.Run("past due but completed stays completed", func(t *testing.T) {
		action := &model.RiskAction{
			Status:  types.ActionStatusCompleted,
			DueDate: now.AddDate(0, 0, -1),
		}
		gt.Value(t, action.EffectiveStatus(now)).Equal(types.ActionStatusCompleted)
	})

	t.Run("future due date keeps stored status", func(t *testing.T) {
		action := &model.RiskAction{
			Status:  types.ActionStatusPending,
			DueDate: now.AddDate(0, 0, 7),
		}
		gt.Value(t, action.EffectiveStatus(now)).Equal(types.ActionStatusPending)
	})

	t.Run("zero due date never goes overdue", func(t *testing.T) {
		action := &model.RiskAction{
			Status: types.ActionStatusPending,
		}
		gt.Value(t, action.EffectiveStatus(now)).Equal(types.ActionStatusPending)
	})
}
