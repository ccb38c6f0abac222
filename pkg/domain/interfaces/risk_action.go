package interfaces

import (
	"context"

	"github.com/grc-lab/riskreg/pkg/domain/model"
)

type RiskActionRepository interface {
	// Create creates a new mitigation action under a risk
	Create(ctx context.Context, action *model.RiskAction) (*model.RiskAction, error)

	// Get retrieves an action by risk ID and action ID
	Get(ctx context.Context, riskID int64, actionID model.ActionID) (*model.RiskAction, error)

	// ListByRisk retrieves all actions of a risk, oldest first
	ListByRisk(ctx context.Context, riskID int64) ([]*model.RiskAction, error)

	// Update updates an existing action
	Update(ctx context.Context, action *model.RiskAction) (*model.RiskAction, error)

	// Delete deletes an action
	Delete(ctx context.Context, riskID int64, actionID model.ActionID) error

	// DeleteByRisk deletes all actions of a risk (cascade on risk deletion)
	DeleteByRisk(ctx context.Context, riskID int64) error
}
