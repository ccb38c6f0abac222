package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grc-lab/riskreg/pkg/domain/model"
	"github.com/grc-lab/riskreg/pkg/domain/types"
	"github.com/grc-lab/riskreg/pkg/repository/memory"
	"github.com/grc-lab/riskreg/pkg/service/directory"
	"github.com/grc-lab/riskreg/pkg/usecase"
)

func seedRisks(t *testing.T, uc *usecase.UseCases) {
	t.Helper()
	ctx := context.Background()

	inputs := []usecase.CreateRiskInput{
		{Title: "Unpatched VPN gateway", Description: "Known RCE in firmware", Category: "technology",
			Owner: "emp-001", Probability: 4, Impact: 5, Treatment: types.TreatmentMitigate},
		{Title: "Single supplier dependency", Description: "No second source for controllers", Category: "supply-chain",
			Owner: "emp-002", Probability: 3, Impact: 4, Treatment: types.TreatmentAccept},
		{Title: "Office flooding", Description: "Server room below flood line", Category: "facilities",
			Owner: "emp-001", Probability: 2, Impact: 3, Treatment: types.TreatmentTransfer},
	}
	for _, in := range inputs {
		_, err := uc.Risk.CreateRisk(ctx, testActor, in)
		gt.NoError(t, err).Required()
	}

	status := types.RiskStatusClosed
	_, err := uc.Risk.UpdateRisk(ctx, testActor, 3, usecase.UpdateRiskInput{Status: &status})
	gt.NoError(t, err).Required()
}

func TestRiskUseCase_QueryRisks(t *testing.T) {
	t.Run("no filters returns all risks in insertion order", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedRisks(t, uc)

		risks, err := uc.Risk.QueryRisks(context.Background(), model.RiskFilters{})
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(3)
		gt.Value(t, risks[0].ID).Equal(int64(1))
		gt.Value(t, risks[2].ID).Equal(int64(3))
	})

	t.Run("filters AND-combine", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedRisks(t, uc)

		risks, err := uc.Risk.QueryRisks(context.Background(), model.RiskFilters{
			Owner:  "emp-001",
			Status: "identified",
		})
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(1)
		gt.Value(t, risks[0].Title).Equal("Unpatched VPN gateway")
	})

	t.Run("search matches the resolved owner name", func(t *testing.T) {
		dir := directory.NewStatic(map[string]string{"emp-002": "Bob Tanaka"})
		uc := usecase.New(memory.New(), usecase.WithDirectory(dir))
		seedRisks(t, uc)

		risks, err := uc.Risk.QueryRisks(context.Background(), model.RiskFilters{Search: "tanaka"})
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(1)
		gt.Value(t, risks[0].Owner).Equal("emp-002")
	})

	t.Run("invalid filter value is rejected", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Risk.QueryRisks(context.Background(), model.RiskFilters{Status: "paused"})
		gt.Error(t, err).Is(usecase.ErrInvalidInput)
	})

	t.Run("queries leave no audit trace", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedRisks(t, uc)
		ctx := context.Background()

		before, err := uc.Audit.GetAuditLog(ctx, 0)
		gt.NoError(t, err).Required()

		_, err = uc.Risk.QueryRisks(ctx, model.RiskFilters{})
		gt.NoError(t, err).Required()

		after, err := uc.Audit.GetAuditLog(ctx, 0)
		gt.NoError(t, err).Required()
		gt.Value(t, len(after)).Equal(len(before))
	})
}

func TestRiskUseCase_GetStats(t *testing.T) {
	t.Run("aggregates the current collection", func(t *testing.T) {
		uc := usecase.New(memory.New())
		seedRisks(t, uc)

		stats, err := uc.Risk.GetStats(context.Background())
		gt.NoError(t, err).Required()

		gt.Value(t, stats.Total).Equal(3)
		gt.Value(t, stats.ByStatus[types.RiskStatusIdentified]).Equal(2)
		gt.Value(t, stats.ByStatus[types.RiskStatusClosed]).Equal(1)
		gt.Value(t, stats.ByCategory[types.CategoryID("technology")]).Equal(1)
		gt.Value(t, stats.ByPriority[types.RiskLevelHigh]).Equal(1)
		gt.Value(t, stats.HighRisks).Equal(1)
	})

	t.Run("empty register yields zeroed stats", func(t *testing.T) {
		uc := usecase.New(memory.New())

		stats, err := uc.Risk.GetStats(context.Background())
		gt.NoError(t, err).Required()
		gt.Value(t, stats.Total).Equal(0)
		gt.Value(t, stats.AvgScore).Equal(0.0)
	})
}
