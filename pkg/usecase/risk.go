package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskreg/pkg/domain/interfaces"
	"github.com/grc-lab/riskreg/pkg/domain/model"
	"github.com/grc-lab/riskreg/pkg/domain/types"
	"github.com/grc-lab/riskreg/pkg/service/directory"
	"github.com/grc-lab/riskreg/pkg/utils/logging"
)

// RiskUseCase is the command layer over the risk register: it validates
// inputs, applies lifecycle mutations, keeps the derived scores and review
// schedule consistent, and emits one audit entry per mutation.
type RiskUseCase struct {
	repo      interfaces.Repository
	audit     *AuditUseCase
	directory directory.Service
}

func NewRiskUseCase(repo interfaces.Repository, audit *AuditUseCase, dir directory.Service) *RiskUseCase {
	return &RiskUseCase{
		repo:      repo,
		audit:     audit,
		directory: dir,
	}
}

// CreateRiskInput carries the fields required to register a risk
type CreateRiskInput struct {
	Title        string
	Description  string
	Category     types.CategoryID
	Owner        string
	Probability  int
	Impact       int
	Progress     int
	Treatment    types.Treatment
	IdentifiedAt time.Time
}

func (in *CreateRiskInput) validate() error {
	if in.Title == "" {
		return goerr.Wrap(ErrInvalidInput, "risk title is required", goerr.V(FieldKey, "title"))
	}
	if in.Description == "" {
		return goerr.Wrap(ErrInvalidInput, "risk description is required", goerr.V(FieldKey, "description"))
	}
	if err := in.Category.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidInput, "invalid risk category", goerr.V(FieldKey, "category"))
	}
	if in.Owner == "" {
		return goerr.Wrap(ErrInvalidInput, "risk owner is required", goerr.V(FieldKey, "owner"))
	}
	if in.Probability < 1 || in.Probability > 5 {
		return goerr.Wrap(ErrInvalidInput, "probability must be between 1 and 5",
			goerr.V(FieldKey, "probability"), goerr.V("value", in.Probability))
	}
	if in.Impact < 1 || in.Impact > 5 {
		return goerr.Wrap(ErrInvalidInput, "impact must be between 1 and 5",
			goerr.V(FieldKey, "impact"), goerr.V("value", in.Impact))
	}
	if in.Progress < 0 || in.Progress > 100 {
		return goerr.Wrap(ErrInvalidInput, "progress must be between 0 and 100",
			goerr.V(FieldKey, "progress"), goerr.V("value", in.Progress))
	}
	if !in.Treatment.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid treatment", goerr.V(FieldKey, "treatment"))
	}
	return nil
}

// CreateRisk registers a new risk: status starts at identified, the scores
// and the review schedule are computed, and a CREATE audit entry is emitted.
func (uc *RiskUseCase) CreateRisk(ctx context.Context, actor model.Actor, input CreateRiskInput) (*model.Risk, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	identifiedAt := input.IdentifiedAt
	if identifiedAt.IsZero() {
		identifiedAt = time.Now().UTC()
	}

	risk := &model.Risk{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Owner:        input.Owner,
		Status:       types.RiskStatusIdentified,
		Treatment:    input.Treatment,
		Probability:  input.Probability,
		Impact:       input.Impact,
		Progress:     input.Progress,
		IdentifiedAt: identifiedAt,
	}
	risk.Recompute()

	created, err := uc.repo.Risk().Create(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk")
	}

	uc.audit.Record(ctx, actor, types.AuditActionCreate, types.EntityTypeRisk, formatRiskID(created.ID), nil)

	return created, nil
}

// UpdateRiskInput is a partial patch: nil fields are left unchanged
type UpdateRiskInput struct {
	Title       *string
	Description *string
	Category    *types.CategoryID
	Owner       *string
	Status      *types.RiskStatus
	Treatment   *types.Treatment
	Probability *int
	Impact      *int
	Progress    *int
}

// UpdateRisk applies a partial update. Validation happens before any state
// changes; when probability, impact or progress move, the scores and the
// review schedule are recomputed (the inherent score and the identification
// date are preserved). The UPDATE audit entry carries a field-level change
// summary.
func (uc *RiskUseCase) UpdateRisk(ctx context.Context, actor model.Actor, id int64, patch UpdateRiskInput) (*model.Risk, error) {
	existing, err := uc.repo.Risk().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrRiskNotFound, "risk not found", goerr.V(RiskIDKey, id))
	}

	if err := patch.validate(); err != nil {
		return nil, err
	}

	if existing.Status.IsTerminal() {
		logging.From(ctx).Warn("updating a risk in a terminal state",
			"risk_id", id, "status", existing.Status)
	}

	changes := map[string]any{}
	updated := *existing

	applyString(changes, "title", &updated.Title, patch.Title)
	applyString(changes, "description", &updated.Description, patch.Description)
	applyString(changes, "owner", &updated.Owner, patch.Owner)
	if patch.Category != nil && *patch.Category != updated.Category {
		changes["category"] = changeOf(updated.Category.String(), patch.Category.String())
		updated.Category = *patch.Category
	}
	if patch.Status != nil && *patch.Status != updated.Status {
		changes["status"] = changeOf(updated.Status.String(), patch.Status.String())
		updated.Status = *patch.Status
	}
	if patch.Treatment != nil && *patch.Treatment != updated.Treatment {
		changes["treatment"] = changeOf(updated.Treatment.String(), patch.Treatment.String())
		updated.Treatment = *patch.Treatment
	}

	recompute := false
	applyInt(changes, "probability", &updated.Probability, patch.Probability, &recompute)
	applyInt(changes, "impact", &updated.Impact, patch.Impact, &recompute)
	applyInt(changes, "progress", &updated.Progress, patch.Progress, &recompute)

	if recompute {
		updated.Recompute()
	}

	saved, err := uc.repo.Risk().Update(ctx, &updated)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V(RiskIDKey, id))
	}

	uc.audit.Record(ctx, actor, types.AuditActionUpdate, types.EntityTypeRisk, formatRiskID(id), changes)

	return saved, nil
}

func (in *UpdateRiskInput) validate() error {
	if in.Title != nil && *in.Title == "" {
		return goerr.Wrap(ErrInvalidInput, "risk title cannot be empty", goerr.V(FieldKey, "title"))
	}
	if in.Description != nil && *in.Description == "" {
		return goerr.Wrap(ErrInvalidInput, "risk description cannot be empty", goerr.V(FieldKey, "description"))
	}
	if in.Category != nil {
		if err := in.Category.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidInput, "invalid risk category", goerr.V(FieldKey, "category"))
		}
	}
	if in.Owner != nil && *in.Owner == "" {
		return goerr.Wrap(ErrInvalidInput, "risk owner cannot be empty", goerr.V(FieldKey, "owner"))
	}
	if in.Status != nil && !in.Status.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid risk status",
			goerr.V(FieldKey, "status"), goerr.V("value", in.Status.String()))
	}
	if in.Treatment != nil && !in.Treatment.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid treatment", goerr.V(FieldKey, "treatment"))
	}
	if in.Probability != nil && (*in.Probability < 1 || *in.Probability > 5) {
		return goerr.Wrap(ErrInvalidInput, "probability must be between 1 and 5",
			goerr.V(FieldKey, "probability"), goerr.V("value", *in.Probability))
	}
	if in.Impact != nil && (*in.Impact < 1 || *in.Impact > 5) {
		return goerr.Wrap(ErrInvalidInput, "impact must be between 1 and 5",
			goerr.V(FieldKey, "impact"), goerr.V("value", *in.Impact))
	}
	if in.Progress != nil && (*in.Progress < 0 || *in.Progress > 100) {
		return goerr.Wrap(ErrInvalidInput, "progress must be between 0 and 100",
			goerr.V(FieldKey, "progress"), goerr.V("value", *in.Progress))
	}
	return nil
}

// DeleteRisk removes a risk and its mitigation ledger, then emits a DELETE
// audit entry.
func (uc *RiskUseCase) DeleteRisk(ctx context.Context, actor model.Actor, id int64) error {
	if _, err := uc.repo.Risk().Get(ctx, id); err != nil {
		return goerr.Wrap(ErrRiskNotFound, "risk not found", goerr.V(RiskIDKey, id))
	}

	if err := uc.repo.RiskAction().DeleteByRisk(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete risk actions", goerr.V(RiskIDKey, id))
	}

	if err := uc.repo.Risk().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V(RiskIDKey, id))
	}

	uc.audit.Record(ctx, actor, types.AuditActionDelete, types.EntityTypeRisk, formatRiskID(id), nil)

	return nil
}

// GetRisk retrieves a single risk by ID
func (uc *RiskUseCase) GetRisk(ctx context.Context, id int64) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrRiskNotFound, "risk not found", goerr.V(RiskIDKey, id))
	}
	return risk, nil
}

func changeOf(from, to any) map[string]any {
	return map[string]any{"from": from, "to": to}
}

func applyString(changes map[string]any, field string, dst *string, src *string) {
	if src == nil || *src == *dst {
		return
	}
	changes[field] = changeOf(*dst, *src)
	*dst = *src
}

func applyInt(changes map[string]any, field string, dst *int, src *int, touched *bool) {
	if src == nil || *src == *dst {
		return
	}
	changes[field] = changeOf(*dst, *src)
	*dst = *src
	*touched = true
}
