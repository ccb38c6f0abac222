package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskreg/pkg/domain/model"
)

func formatRiskID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// QueryRisks applies the declarative filter set to the full collection.
// Read-only: no audit entry is emitted.
func (uc *RiskUseCase) QueryRisks(ctx context.Context, filters model.RiskFilters) ([]*model.Risk, error) {
	if err := filters.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid filters", goerr.V("reason", err.Error()))
	}

	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks")
	}

	return filters.Apply(risks, uc.resolveOwner()), nil
}

// GetStats recomputes collection-level statistics from the current state
func (uc *RiskUseCase) GetStats(ctx context.Context) (*model.RiskStats, error) {
	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks")
	}

	return model.ComputeStats(risks, time.Now().UTC()), nil
}

func (uc *RiskUseCase) resolveOwner() func(string) string {
	if uc.directory == nil {
		return nil
	}
	return uc.directory.DisplayName
}

// ResolveOwner returns the display name for an employee ID, or an empty
// string when no directory is configured
func (uc *RiskUseCase) ResolveOwner(id string) string {
	if uc.directory == nil {
		return ""
	}
	return uc.directory.DisplayName(id)
}
