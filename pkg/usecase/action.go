package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskreg/pkg/domain/model"
	"github.com/grc-lab/riskreg/pkg/domain/types"
)

// AddActionInput carries the fields of a new mitigation action
type AddActionInput struct {
	Description string
	Responsible string
	DueDate     time.Time
	Status      types.ActionStatus
	Progress    int
	Notes       string
}

// AddAction appends a mitigation action to a risk's ledger. Status defaults
// to pending and progress to 0. The ledger does not feed back into the
// parent risk's Progress field; the two are tracked independently.
func (uc *RiskUseCase) AddAction(ctx context.Context, actor model.Actor, riskID int64, input AddActionInput) (*model.RiskAction, error) {
	if _, err := uc.repo.Risk().Get(ctx, riskID); err != nil {
		return nil, goerr.Wrap(ErrRiskNotFound, "risk not found", goerr.V(RiskIDKey, riskID))
	}

	if input.Description == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "action description is required", goerr.V(FieldKey, "description"))
	}

	status := input.Status
	if status == "" {
		status = types.ActionStatusPending
	}
	if !status.IsStorable() {
		return nil, goerr.Wrap(ErrInvalidInput, "action status cannot be stored",
			goerr.V(FieldKey, "status"), goerr.V("value", status.String()))
	}
	if input.Progress < 0 || input.Progress > 100 {
		return nil, goerr.Wrap(ErrInvalidInput, "progress must be between 0 and 100",
			goerr.V(FieldKey, "progress"), goerr.V("value", input.Progress))
	}

	progress := input.Progress
	if status == types.ActionStatusCompleted {
		progress = 100
	}

	action := &model.RiskAction{
		ID:          model.NewActionID(),
		RiskID:      riskID,
		Description: input.Description,
		Responsible: input.Responsible,
		DueDate:     input.DueDate,
		Status:      status,
		Progress:    progress,
		Notes:       input.Notes,
	}

	created, err := uc.repo.RiskAction().Create(ctx, action)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create action", goerr.V(RiskIDKey, riskID))
	}

	uc.audit.Record(ctx, actor, types.AuditActionCreate, types.EntityTypeRiskAction, created.ID.String(), nil)

	return created, nil
}

// UpdateActionInput is a partial patch: nil fields are left unchanged
type UpdateActionInput struct {
	Description *string
	Responsible *string
	DueDate     *time.Time
	Status      *types.ActionStatus
	Progress    *int
	Notes       *string
}

// UpdateAction merges a partial update into a ledger entry. Transitioning to
// completed forces progress to 100. Overdue is a derived display state and
// is rejected as a stored target.
func (uc *RiskUseCase) UpdateAction(ctx context.Context, actor model.Actor, riskID int64, actionID model.ActionID, patch UpdateActionInput) (*model.RiskAction, error) {
	existing, err := uc.repo.RiskAction().Get(ctx, riskID, actionID)
	if err != nil {
		return nil, goerr.Wrap(ErrActionNotFound, "action not found",
			goerr.V(RiskIDKey, riskID), goerr.V(ActionIDKey, actionID))
	}

	if patch.Description != nil && *patch.Description == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "action description cannot be empty", goerr.V(FieldKey, "description"))
	}
	if patch.Status != nil && !patch.Status.IsStorable() {
		return nil, goerr.Wrap(ErrInvalidInput, "action status cannot be stored",
			goerr.V(FieldKey, "status"), goerr.V("value", patch.Status.String()))
	}
	if patch.Progress != nil && (*patch.Progress < 0 || *patch.Progress > 100) {
		return nil, goerr.Wrap(ErrInvalidInput, "progress must be between 0 and 100",
			goerr.V(FieldKey, "progress"), goerr.V("value", *patch.Progress))
	}

	changes := map[string]any{}
	updated := *existing

	applyString(changes, "description", &updated.Description, patch.Description)
	applyString(changes, "responsible", &updated.Responsible, patch.Responsible)
	applyString(changes, "notes", &updated.Notes, patch.Notes)
	if patch.DueDate != nil && !patch.DueDate.Equal(updated.DueDate) {
		changes["dueDate"] = changeOf(updated.DueDate, *patch.DueDate)
		updated.DueDate = *patch.DueDate
	}
	if patch.Status != nil && *patch.Status != updated.Status {
		changes["status"] = changeOf(updated.Status.String(), patch.Status.String())
		updated.Status = *patch.Status
	}
	if patch.Progress != nil && *patch.Progress != updated.Progress {
		changes["progress"] = changeOf(updated.Progress, *patch.Progress)
		updated.Progress = *patch.Progress
	}

	// completed implies fully progressed
	if updated.Status == types.ActionStatusCompleted && updated.Progress != 100 {
		changes["progress"] = changeOf(updated.Progress, 100)
		updated.Progress = 100
	}

	saved, err := uc.repo.RiskAction().Update(ctx, &updated)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update action",
			goerr.V(RiskIDKey, riskID), goerr.V(ActionIDKey, actionID))
	}

	uc.audit.Record(ctx, actor, types.AuditActionUpdate, types.EntityTypeRiskAction, actionID.String(), changes)

	return saved, nil
}

// RemoveAction deletes a ledger entry from a risk
func (uc *RiskUseCase) RemoveAction(ctx context.Context, actor model.Actor, riskID int64, actionID model.ActionID) error {
	if err := uc.repo.RiskAction().Delete(ctx, riskID, actionID); err != nil {
		return goerr.Wrap(ErrActionNotFound, "action not found",
			goerr.V(RiskIDKey, riskID), goerr.V(ActionIDKey, actionID))
	}

	uc.audit.Record(ctx, actor, types.AuditActionDelete, types.EntityTypeRiskAction, actionID.String(), nil)

	return nil
}

// ListActions returns the mitigation ledger of a risk, oldest first
func (uc *RiskUseCase) ListActions(ctx context.Context, riskID int64) ([]*model.RiskAction, error) {
	if _, err := uc.repo.Risk().Get(ctx, riskID); err != nil {
		return nil, goerr.Wrap(ErrRiskNotFound, "risk not found", goerr.V(RiskIDKey, riskID))
	}

	actions, err := uc.repo.RiskAction().ListByRisk(ctx, riskID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list actions", goerr.V(RiskIDKey, riskID))
	}
	return actions, nil
}
