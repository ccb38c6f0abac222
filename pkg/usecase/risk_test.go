package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/grc-lab/riskreg/pkg/domain/model"
	"github.com/grc-lab/riskreg/pkg/domain/types"
	"github.com/grc-lab/riskreg/pkg/repository/memory"
	"github.com/grc-lab/riskreg/pkg/usecase"
)

var testActor = model.Actor{ID: "emp-001", Name: "Alice"}

func validCreateInput() usecase.CreateRiskInput {
	return usecase.CreateRiskInput{
		Title:        "Unpatched VPN gateway",
		Description:  "Gateway firmware two releases behind, known RCE",
		Category:     types.CategoryID("technology"),
		Owner:        "emp-001",
		Probability:  4,
		Impact:       5,
		Treatment:    types.TreatmentMitigate,
		IdentifiedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestRiskUseCase_CreateRisk(t *testing.T) {
	t.Run("computes scores and review schedule", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, testActor, validCreateInput())
		gt.NoError(t, err).Required()

		gt.Value(t, created.Status).Equal(types.RiskStatusIdentified)
		gt.Value(t, created.Score).Equal(20)
		gt.Value(t, created.InherentRisk).Equal(20)
		gt.Value(t, created.ResidualRisk).Equal(20)
		gt.Value(t, created.Level()).Equal(types.RiskLevelHigh)

		// Score 20 sits in the high band, reviewed every six months
		gt.Value(t, created.NextReviewAt).Equal(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC))
	})

	t.Run("emits a CREATE audit entry", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, testActor, validCreateInput())
		gt.NoError(t, err).Required()

		entries, err := uc.Audit.GetAuditLog(ctx, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].Action).Equal(types.AuditActionCreate)
		gt.Value(t, entries[0].Entity).Equal(types.EntityTypeRisk)
		gt.Value(t, entries[0].EntityID).Equal("1")
		gt.Value(t, entries[0].UserID).Equal(testActor.ID)
		gt.Value(t, created.ID).Equal(int64(1))
	})

	t.Run("attributes to anonymous when no actor given", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		_, err := uc.Risk.CreateRisk(ctx, model.Actor{}, validCreateInput())
		gt.NoError(t, err).Required()

		entries, err := uc.Audit.GetAuditLog(ctx, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].UserID).Equal("anonymous")
	})

	t.Run("rejects invalid input before any state change", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		cases := []func(*usecase.CreateRiskInput){
			func(in *usecase.CreateRiskInput) { in.Title = "" },
			func(in *usecase.CreateRiskInput) { in.Description = "" },
			func(in *usecase.CreateRiskInput) { in.Owner = "" },
			func(in *usecase.CreateRiskInput) { in.Category = "Not Valid!" },
			func(in *usecase.CreateRiskInput) { in.Probability = 0 },
			func(in *usecase.CreateRiskInput) { in.Impact = 6 },
			func(in *usecase.CreateRiskInput) { in.Progress = 101 },
			func(in *usecase.CreateRiskInput) { in.Treatment = "ignore" },
		}
		for _, mutate := range cases {
			input := validCreateInput()
			mutate(&input)
			_, err := uc.Risk.CreateRisk(ctx, testActor, input)
			gt.Error(t, err).Is(usecase.ErrInvalidInput)
		}

		// Nothing stored, nothing audited
		risks, err := uc.Risk.QueryRisks(ctx, model.RiskFilters{})
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(0)

		entries, err := uc.Audit.GetAuditLog(ctx, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(0)
	})
}

func TestRiskUseCase_UpdateRisk(t *testing.T) {
	t.Run("recomputes scores but preserves the inherent score", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, testActor, validCreateInput())
		gt.NoError(t, err).Required()

		probability := 2
		progress := 100
		updated, err := uc.Risk.UpdateRisk(ctx, testActor, created.ID, usecase.UpdateRiskInput{
			Probability: &probability,
			Progress:    &progress,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Score).Equal(10)
		gt.Value(t, updated.InherentRisk).Equal(20)
		gt.Value(t, updated.ResidualRisk).Equal(5)
		gt.Value(t, updated.IdentifiedAt).Equal(created.IdentifiedAt)

		// Score 10 moved down to the medium band: reviews stretch to nine
		// months, still anchored to the identification date
		gt.Value(t, updated.NextReviewAt).Equal(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	})

	t.Run("records a field-level change summary", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, testActor, validCreateInput())
		gt.NoError(t, err).Required()

		title := "Unpatched VPN gateway (both regions)"
		status := types.RiskStatusTreatmentPlanned
		_, err = uc.Risk.UpdateRisk(ctx, testActor, created.ID, usecase.UpdateRiskInput{
			Title:  &title,
			Status: &status,
		})
		gt.NoError(t, err).Required()

		entries, err := uc.Audit.GetAuditLog(ctx, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].Action).Equal(types.AuditActionUpdate)

		titleChange := gt.Cast[map[string]any](t, entries[0].Changes["title"])
		gt.Value(t, titleChange["from"]).Equal("Unpatched VPN gateway")
		gt.Value(t, titleChange["to"]).Equal("Unpatched VPN gateway (both regions)")

		statusChange := gt.Cast[map[string]any](t, entries[0].Changes["status"])
		gt.Value(t, statusChange["to"]).Equal("treatment-planned")
	})

	t.Run("unchanged fields do not appear in the summary", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, testActor, validCreateInput())
		gt.NoError(t, err).Required()

		sameTitle := created.Title
		owner := "emp-002"
		_, err = uc.Risk.UpdateRisk(ctx, testActor, created.ID, usecase.UpdateRiskInput{
			Title: &sameTitle,
			Owner: &owner,
		})
		gt.NoError(t, err).Required()

		entries, err := uc.Audit.GetAuditLog(ctx, 1)
		gt.NoError(t, err).Required()
		gt.Value(t, len(entries[0].Changes)).Equal(1)
		gt.Value(t, entries[0].Changes["title"]).Nil()
	})

	t.Run("unknown risk returns not found", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		title := "ghost"
		_, err := uc.Risk.UpdateRisk(context.Background(), testActor, 999, usecase.UpdateRiskInput{Title: &title})
		gt.Error(t, err).Is(usecase.ErrRiskNotFound)
	})

	t.Run("invalid patch leaves the risk untouched", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, testActor, validCreateInput())
		gt.NoError(t, err).Required()

		probability := 9
		_, err = uc.Risk.UpdateRisk(ctx, testActor, created.ID, usecase.UpdateRiskInput{Probability: &probability})
		gt.Error(t, err).Is(usecase.ErrInvalidInput)

		got, err := uc.Risk.GetRisk(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Probability).Equal(4)
	})
}

func TestRiskUseCase_DeleteRisk(t *testing.T) {
	t.Run("cascades to the mitigation ledger and audits once", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		created, err := uc.Risk.CreateRisk(ctx, testActor, validCreateInput())
		gt.NoError(t, err).Required()

		_, err = uc.Risk.AddAction(ctx, testActor, created.ID, usecase.AddActionInput{
			Description: "Schedule firmware upgrade window",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Risk.DeleteRisk(ctx, testActor, created.ID)).Required()

		_, err = uc.Risk.GetRisk(ctx, created.ID)
		gt.Error(t, err).Is(usecase.ErrRiskNotFound)

		actions, err := repo.RiskAction().ListByRisk(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, actions).Length(0)

		entries, err := uc.Audit.GetAuditLog(ctx, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].Action).Equal(types.AuditActionDelete)
		gt.Value(t, entries[0].Entity).Equal(types.EntityTypeRisk)
		gt.Value(t, entries[0].EntityID).Equal("1")
	})

	t.Run("unknown risk returns not found", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		err := uc.Risk.DeleteRisk(context.Background(), testActor, 999)
		gt.Error(t, err).Is(usecase.ErrRiskNotFound)
	})
}
