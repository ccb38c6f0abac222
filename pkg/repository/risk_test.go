package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/grc-lab/riskreg/pkg/domain/interfaces"
	"github.com/grc-lab/riskreg/pkg/domain/model"
	"github.com/grc-lab/riskreg/pkg/domain/types"
	"github.com/grc-lab/riskreg/pkg/repository/firestore"
	"github.com/grc-lab/riskreg/pkg/repository/memory"
)

func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	prefix := fmt.Sprintf("test-%d", time.Now().UnixNano())
	repo, err := firestore.New(context.Background(), projectID, os.Getenv("FIRESTORE_DATABASE_ID"),
		firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})

	return repo
}

func runRiskRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns sequential IDs and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created1, err := repo.Risk().Create(ctx, &model.Risk{
			Title:       "Unpatched VPN gateway",
			Category:    types.CategoryID("technology"),
			Status:      types.RiskStatusIdentified,
			Probability: 4,
			Impact:      5,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created1.ID).NotEqual(int64(0))
		gt.Bool(t, created1.CreatedAt.IsZero()).False()
		gt.Bool(t, created1.UpdatedAt.IsZero()).False()

		created2, err := repo.Risk().Create(ctx, &model.Risk{
			Title:  "Single supplier dependency",
			Status: types.RiskStatusIdentified,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created2.ID).Equal(created1.ID + 1)
	})

	t.Run("Get retrieves a stored risk", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Risk().Create(ctx, &model.Risk{
			Title:        "Data center flooding",
			Description:  "Basement server room below flood line",
			Category:     types.CategoryID("facilities"),
			Owner:        "emp-001",
			Status:       types.RiskStatusAssessed,
			Treatment:    types.TreatmentMitigate,
			Probability:  2,
			Impact:       5,
			Progress:     30,
			InherentRisk: 10,
			Score:        10,
			ResidualRisk: 9,
		})
		gt.NoError(t, err).Required()

		got, err := repo.Risk().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal("Data center flooding")
		gt.Value(t, got.Owner).Equal("emp-001")
		gt.Value(t, got.Treatment).Equal(types.TreatmentMitigate)
		gt.Value(t, got.InherentRisk).Equal(10)
		gt.Value(t, got.ResidualRisk).Equal(9)
	})

	t.Run("Get returns not found for unknown ID", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Risk().Get(context.Background(), 99999)
		gt.Value(t, err).NotNil()
	})

	t.Run("List returns risks oldest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			_, err := repo.Risk().Create(ctx, &model.Risk{
				Title:  fmt.Sprintf("Risk %d", i),
				Status: types.RiskStatusIdentified,
			})
			gt.NoError(t, err).Required()
		}

		risks, err := repo.Risk().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(3)
		gt.Value(t, risks[0].Title).Equal("Risk 0")
		gt.Value(t, risks[2].Title).Equal("Risk 2")
	})

	t.Run("Update rewrites fields but preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Risk().Create(ctx, &model.Risk{
			Title:  "Credential stuffing",
			Status: types.RiskStatusIdentified,
		})
		gt.NoError(t, err).Required()

		created.Title = "Credential stuffing against customer portal"
		created.Status = types.RiskStatusTreatmentImplemented
		created.Progress = 40

		updated, err := repo.Risk().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Title).Equal("Credential stuffing against customer portal")
		gt.Value(t, updated.Status).Equal(types.RiskStatusTreatmentImplemented)
		gt.Value(t, updated.Progress).Equal(40)
		gt.Value(t, updated.CreatedAt.Unix()).Equal(created.CreatedAt.Unix())
	})

	t.Run("Update unknown risk returns not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Risk().Update(context.Background(), &model.Risk{ID: 99999, Title: "ghost"})
		gt.Value(t, err).NotNil()
	})

	t.Run("Delete removes the risk", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Risk().Create(ctx, &model.Risk{
			Title:  "To be deleted",
			Status: types.RiskStatusClosed,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Risk().Delete(ctx, created.ID)).Required()

		_, err = repo.Risk().Get(ctx, created.ID)
		gt.Value(t, err).NotNil()

		gt.Value(t, repo.Risk().Delete(ctx, created.ID)).NotNil()
	})
}

func TestRiskRepository_Memory(t *testing.T) {
	runRiskRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestRiskRepository_Firestore(t *testing.T) {
	runRiskRepositoryTest(t, newFirestoreRepo)
}
