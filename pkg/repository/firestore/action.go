package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/grc-lab/riskreg/pkg/domain/model"
	"github.com/grc-lab/riskreg/pkg/domain/types"
)

type actionDocument struct {
	ID          string    `firestore:"id"`
	RiskID      int64     `firestore:"risk_id"`
	Description string    `firestore:"description"`
	Responsible string    `firestore:"responsible"`
	DueDate     time.Time `firestore:"due_date"`
	Status      string    `firestore:"status"`
	Progress    int       `firestore:"progress"`
	Notes       string    `firestore:"notes"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func actionToDocument(a *model.RiskAction) *actionDocument {
	return &actionDocument{
		ID:          a.ID.String(),
		RiskID:      a.RiskID,
		Description: a.Description,
		Responsible: a.Responsible,
		DueDate:     a.DueDate,
		Status:      a.Status.String(),
		Progress:    a.Progress,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (d *actionDocument) toModel() *model.RiskAction {
	return &model.RiskAction{
		ID:          model.ActionID(d.ID),
		RiskID:      d.RiskID,
		Description: d.Description,
		Responsible: d.Responsible,
		DueDate:     d.DueDate,
		Status:      types.ActionStatus(d.Status),
		Progress:    d.Progress,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type actionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newActionRepository(client *firestore.Client) *actionRepository {
	return &actionRepository{
		client: client,
	}
}

func (r *actionRepository) actionsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risk_actions"
	}
	return "risk_actions"
}

func (r *actionRepository) Create(ctx context.Context, action *model.RiskAction) (*model.RiskAction, error) {
	now := time.Now().UTC()
	doc := actionToDocument(action)
	if doc.ID == "" {
		doc.ID = model.NewActionID().String()
	}
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.actionsCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create action", goerr.V("riskID", action.RiskID))
	}

	return doc.toModel(), nil
}

func (r *actionRepository) Get(ctx context.Context, riskID int64, actionID model.ActionID) (*model.RiskAction, error) {
	docRef := r.client.Collection(r.actionsCollection()).Doc(actionID.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("riskID", riskID), goerr.V("actionID", actionID))
		}
		return nil, goerr.Wrap(err, "failed to get action", goerr.V("actionID", actionID))
	}

	var actionDoc actionDocument
	if err := doc.DataTo(&actionDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal action", goerr.V("actionID", actionID))
	}

	// Document IDs are globally unique; ownership still has to match
	if actionDoc.RiskID != riskID {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("riskID", riskID), goerr.V("actionID", actionID))
	}

	return actionDoc.toModel(), nil
}

func (r *actionRepository) ListByRisk(ctx context.Context, riskID int64) ([]*model.RiskAction, error) {
	iter := r.client.Collection(r.actionsCollection()).
		Where("risk_id", "==", riskID).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	actions := []*model.RiskAction{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate actions", goerr.V("riskID", riskID))
		}

		var actionDoc actionDocument
		if err := doc.DataTo(&actionDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal action")
		}

		actions = append(actions, actionDoc.toModel())
	}

	return actions, nil
}

func (r *actionRepository) Update(ctx context.Context, action *model.RiskAction) (*model.RiskAction, error) {
	existing, err := r.Get(ctx, action.RiskID, action.ID)
	if err != nil {
		return nil, err
	}

	updated := actionToDocument(action)
	updated.RiskID = existing.RiskID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.actionsCollection()).Doc(updated.ID)
	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update action", goerr.V("actionID", action.ID))
	}

	return updated.toModel(), nil
}

func (r *actionRepository) Delete(ctx context.Context, riskID int64, actionID model.ActionID) error {
	if _, err := r.Get(ctx, riskID, actionID); err != nil {
		return err
	}

	docRef := r.client.Collection(r.actionsCollection()).Doc(actionID.String())
	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete action", goerr.V("actionID", actionID))
	}

	return nil
}

func (r *actionRepository) DeleteByRisk(ctx context.Context, riskID int64) error {
	iter := r.client.Collection(r.actionsCollection()).
		Where("risk_id", "==", riskID).
		Documents(ctx)
	defer iter.Stop()

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(8)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate actions", goerr.V("riskID", riskID))
		}

		ref := doc.Ref
		grp.Go(func() error {
			if _, err := ref.Delete(grpCtx); err != nil {
				return goerr.Wrap(err, "failed to delete action", goerr.V("riskID", riskID))
			}
			return nil
		})
	}

	return grp.Wait()
}
