package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskreg/pkg/domain/interfaces"
	"github.com/grc-lab/riskreg/pkg/domain/model"
	"github.com/grc-lab/riskreg/pkg/domain/types"
	"github.com/grc-lab/riskreg/pkg/utils/errutil"
)

// AuditUseCase records mutation events into the bounded audit trail. The
// trail is best-effort telemetry: Record never fails the caller, it logs and
// moves on. Reads are not audited.
type AuditUseCase struct {
	repo interfaces.Repository
}

func NewAuditUseCase(repo interfaces.Repository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// Record appends one entry describing a mutation. Failures are logged, never
// returned; the primary mutation has already committed and must stand.
func (uc *AuditUseCase) Record(ctx context.Context, actor model.Actor, action types.AuditAction, entity types.EntityType, entityID string, changes map[string]any) {
	if actor.ID == "" {
		actor = model.AnonymousActor()
	}

	entry := &model.AuditLogEntry{
		ID:        model.NewAuditLogID(),
		UserID:    actor.ID,
		UserName:  actor.Name,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Changes:   changes,
		Timestamp: time.Now().UTC(),
	}

	if err := uc.repo.AuditLog().Append(ctx, entry); err != nil {
		_ = errutil.Handle(ctx, err, "failed to append audit entry")
	}
}

// GetAuditLog returns retained entries newest-first, truncated to limit
// (limit <= 0 returns all retained entries).
func (uc *AuditUseCase) GetAuditLog(ctx context.Context, limit int) ([]*model.AuditLogEntry, error) {
	entries, err := uc.repo.AuditLog().List(ctx, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list audit entries")
	}
	return entries, nil
}
