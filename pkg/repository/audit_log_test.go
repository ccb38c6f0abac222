package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grc-lab/riskreg/pkg/domain/interfaces"
	"github.com/grc-lab/riskreg/pkg/domain/model"
	"github.com/grc-lab/riskreg/pkg/domain/types"
	"github.com/grc-lab/riskreg/pkg/repository/memory"
)

func runAuditLogRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Append stores an entry with generated ID and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.AuditLog().Append(ctx, &model.AuditLogEntry{
			UserID:   "emp-001",
			UserName: "Alice",
			Action:   types.AuditActionCreate,
			Entity:   types.EntityTypeRisk,
			EntityID: "1",
			Changes:  map[string]any{"title": "Unpatched VPN gateway"},
		})
		gt.NoError(t, err).Required()

		entries, err := repo.AuditLog().List(ctx, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Value(t, entries[0].ID.String()).NotEqual("")
		gt.Bool(t, entries[0].Timestamp.IsZero()).False()
		gt.Value(t, entries[0].Action).Equal(types.AuditActionCreate)
		gt.Value(t, entries[0].Changes["title"]).Equal("Unpatched VPN gateway")
	})

	t.Run("List returns entries newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			err := repo.AuditLog().Append(ctx, &model.AuditLogEntry{
				UserID:   "emp-001",
				Action:   types.AuditActionUpdate,
				Entity:   types.EntityTypeRisk,
				EntityID: fmt.Sprintf("%d", i),
			})
			gt.NoError(t, err).Required()
		}

		entries, err := repo.AuditLog().List(ctx, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(3)
		gt.Value(t, entries[0].EntityID).Equal("2")
		gt.Value(t, entries[2].EntityID).Equal("0")
	})

	t.Run("List truncates to limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			err := repo.AuditLog().Append(ctx, &model.AuditLogEntry{
				UserID:   "emp-001",
				Action:   types.AuditActionDelete,
				Entity:   types.EntityTypeRiskAction,
				EntityID: fmt.Sprintf("%d", i),
			})
			gt.NoError(t, err).Required()
		}

		entries, err := repo.AuditLog().List(ctx, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2)
		gt.Value(t, entries[0].EntityID).Equal("4")
		gt.Value(t, entries[1].EntityID).Equal("3")
	})

	t.Run("Append beyond capacity evicts the oldest entry", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < model.AuditLogCapacity+1; i++ {
			err := repo.AuditLog().Append(ctx, &model.AuditLogEntry{
				UserID:   "emp-001",
				Action:   types.AuditActionUpdate,
				Entity:   types.EntityTypeRisk,
				EntityID: fmt.Sprintf("%d", i),
			})
			gt.NoError(t, err).Required()
		}

		entries, err := repo.AuditLog().List(ctx, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(model.AuditLogCapacity)

		// Newest retained, the very first append gone
		gt.Value(t, entries[0].EntityID).Equal(fmt.Sprintf("%d", model.AuditLogCapacity))
		gt.Value(t, entries[len(entries)-1].EntityID).Equal("1")
	})
}

func TestAuditLogRepository_Memory(t *testing.T) {
	runAuditLogRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestAuditLogRepository_Firestore(t *testing.T) {
	runAuditLogRepositoryTest(t, newFirestoreRepo)
}
