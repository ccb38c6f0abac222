package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskreg/pkg/domain/model"
)

type actionRepository struct {
	mu      sync.RWMutex
	actions map[int64]map[model.ActionID]*model.RiskAction
}

func newActionRepository() *actionRepository {
	return &actionRepository{
		actions: make(map[int64]map[model.ActionID]*model.RiskAction),
	}
}

func copyAction(a *model.RiskAction) *model.RiskAction {
	copied := *a
	return &copied
}

func (r *actionRepository) Create(ctx context.Context, action *model.RiskAction) (*model.RiskAction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyAction(action)
	if created.ID == "" {
		created.ID = model.NewActionID()
	}

	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, exists := r.actions[created.RiskID]; !exists {
		r.actions[created.RiskID] = make(map[model.ActionID]*model.RiskAction)
	}
	r.actions[created.RiskID][created.ID] = created

	return copyAction(created), nil
}

func (r *actionRepository) Get(ctx context.Context, riskID int64, actionID model.ActionID) (*model.RiskAction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.actions[riskID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("riskID", riskID), goerr.V("actionID", actionID))
	}

	action, exists := bucket[actionID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("riskID", riskID), goerr.V("actionID", actionID))
	}

	return copyAction(action), nil
}

func (r *actionRepository) ListByRisk(ctx context.Context, riskID int64) ([]*model.RiskAction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.actions[riskID]
	if !exists {
		return []*model.RiskAction{}, nil
	}

	result := make([]*model.RiskAction, 0, len(bucket))
	for _, action := range bucket {
		result = append(result, copyAction(action))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *actionRepository) Update(ctx context.Context, action *model.RiskAction) (*model.RiskAction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.actions[action.RiskID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("riskID", action.RiskID), goerr.V("actionID", action.ID))
	}

	existing, exists := bucket[action.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("riskID", action.RiskID), goerr.V("actionID", action.ID))
	}

	updated := copyAction(action)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	bucket[updated.ID] = updated
	return copyAction(updated), nil
}

func (r *actionRepository) Delete(ctx context.Context, riskID int64, actionID model.ActionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.actions[riskID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "action not found", goerr.V("riskID", riskID), goerr.V("actionID", actionID))
	}

	if _, exists := bucket[actionID]; !exists {
		return goerr.Wrap(ErrNotFound, "action not found", goerr.V("riskID", riskID), goerr.V("actionID", actionID))
	}

	delete(bucket, actionID)
	return nil
}

func (r *actionRepository) DeleteByRisk(ctx context.Context, riskID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.actions, riskID)
	return nil
}
