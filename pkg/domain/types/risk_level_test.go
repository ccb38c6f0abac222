package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grc-lab/riskreg/pkg/domain/types"
)

func TestRiskLevelOf(t *testing.T) {
	testCases := []struct {
		score    int
		expected types.RiskLevel
	}{
		{1, types.RiskLevelLow},
		{6, types.RiskLevelLow},
		{7, types.RiskLevelMedium},
		{12, types.RiskLevelMedium},
		{13, types.RiskLevelHigh},
		{20, types.RiskLevelHigh},
		{21, types.RiskLevelCritical},
		{25, types.RiskLevelCritical},
	}

	for _, tc := range testCases {
		gt.Value(t, types.RiskLevelOf(tc.score)).Equal(tc.expected)
	}
}

func TestRiskStatus(t *testing.T) {
	t.Run("all statuses are valid", func(t *testing.T) {
		for _, status := range types.AllRiskStatuses() {
			gt.Bool(t, status.IsValid()).True()
		}
	})

	t.Run("unknown status is invalid", func(t *testing.T) {
		gt.Bool(t, types.RiskStatus("escalated").IsValid()).False()
		_, err := types.ParseRiskStatus("escalated")
		gt.Error(t, err)
	})

	t.Run("terminal states", func(t *testing.T) {
		gt.Bool(t, types.RiskStatusClosed.IsTerminal()).True()
		gt.Bool(t, types.RiskStatusTransferred.IsTerminal()).True()
		gt.Bool(t, types.RiskStatusMonitoring.IsTerminal()).False()
	})

	t.Run("empty normalizes to identified", func(t *testing.T) {
		gt.Value(t, types.RiskStatus("").Normalize()).Equal(types.RiskStatusIdentified)
	})
}

func TestActionStatus(t *testing.T) {
	t.Run("overdue is valid but not storable", func(t *testing.T) {
		gt.Bool(t, types.ActionStatusOverdue.IsValid()).True()
		gt.Bool(t, types.ActionStatusOverdue.IsStorable()).False()
	})

	t.Run("stored statuses are storable", func(t *testing.T) {
		gt.Bool(t, types.ActionStatusPending.IsStorable()).True()
		gt.Bool(t, types.ActionStatusInProgress.IsStorable()).True()
		gt.Bool(t, types.ActionStatusCompleted.IsStorable()).True()
	})
}
