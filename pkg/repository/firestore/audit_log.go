package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/grc-lab/riskreg/pkg/domain/model"
	"github.com/grc-lab/riskreg/pkg/domain/types"
	"github.com/grc-lab/riskreg/pkg/utils/async"
)

type auditLogDocument struct {
	ID        string                 `firestore:"id"`
	Seq       int64                  `firestore:"seq"`
	UserID    string                 `firestore:"user_id"`
	UserName  string                 `firestore:"user_name"`
	Action    string                 `firestore:"action"`
	Entity    string                 `firestore:"entity"`
	EntityID  string                 `firestore:"entity_id"`
	Changes   map[string]interface{} `firestore:"changes"`
	Timestamp time.Time              `firestore:"timestamp"`
}

func (d *auditLogDocument) toModel() *model.AuditLogEntry {
	return &model.AuditLogEntry{
		ID:        model.AuditLogID(d.ID),
		UserID:    d.UserID,
		UserName:  d.UserName,
		Action:    types.AuditAction(d.Action),
		Entity:    types.EntityType(d.Entity),
		EntityID:  d.EntityID,
		Changes:   d.Changes,
		Timestamp: d.Timestamp,
	}
}

// auditLogRepository stores the trail as sequence-numbered documents. The
// sequence counter is advanced transactionally so enumeration order matches
// append order across writers. Entries beyond the capacity are pruned on
// append, which keeps the retained window bounded.
type auditLogRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAuditLogRepository(client *firestore.Client) *auditLogRepository {
	return &auditLogRepository{
		client: client,
	}
}

func (r *auditLogRepository) auditCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_audit_log"
	}
	return "audit_log"
}

func (r *auditLogRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *auditLogRepository) nextSeq(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc("audit_log_counter")

	var seq int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				seq = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": seq,
				})
			}
			return goerr.Wrap(err, "failed to get audit counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get audit counter value")
		}

		seq = currentValue.(int64) + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: seq},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next audit sequence")
	}

	return seq, nil
}

func (r *auditLogRepository) Append(ctx context.Context, entry *model.AuditLogEntry) error {
	seq, err := r.nextSeq(ctx)
	if err != nil {
		return err
	}

	doc := &auditLogDocument{
		ID:        entry.ID.String(),
		Seq:       seq,
		UserID:    entry.UserID,
		UserName:  entry.UserName,
		Action:    entry.Action.String(),
		Entity:    entry.Entity.String(),
		EntityID:  entry.EntityID,
		Changes:   entry.Changes,
		Timestamp: entry.Timestamp,
	}
	if doc.ID == "" {
		doc.ID = model.NewAuditLogID().String()
	}
	if doc.Timestamp.IsZero() {
		doc.Timestamp = time.Now().UTC()
	}

	docRef := r.client.Collection(r.auditCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to append audit entry")
	}

	// Best-effort prune of entries that fell out of the retained window.
	// Runs detached so a slow prune never delays the mutation path; a failed
	// prune leaves stale entries behind and the next append retries.
	if seq > model.AuditLogCapacity {
		maxEvicted := seq - model.AuditLogCapacity
		async.Dispatch(ctx, func(ctx context.Context) error {
			return r.prune(ctx, maxEvicted)
		})
	}

	return nil
}

func (r *auditLogRepository) prune(ctx context.Context, maxEvictedSeq int64) error {
	iter := r.client.Collection(r.auditCollection()).
		Where("seq", "<=", maxEvictedSeq).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate evicted audit entries")
		}

		if _, err := doc.Ref.Delete(ctx); err != nil {
			return goerr.Wrap(err, "failed to delete evicted audit entry")
		}
	}

	return nil
}

func (r *auditLogRepository) List(ctx context.Context, limit int) ([]*model.AuditLogEntry, error) {
	if limit <= 0 || limit > model.AuditLogCapacity {
		limit = model.AuditLogCapacity
	}

	iter := r.client.Collection(r.auditCollection()).
		OrderBy("seq", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	entries := []*model.AuditLogEntry{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate audit entries")
		}

		var entryDoc auditLogDocument
		if err := doc.DataTo(&entryDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal audit entry")
		}

		entries = append(entries, entryDoc.toModel())
	}

	return entries, nil
}
