package memory

import (
	"context"
	"sync"
	"time"

	"github.com/grc-lab/riskreg/pkg/domain/model"
)

// auditLogRepository keeps a bounded FIFO of audit entries. Appends and
// enumeration share one mutex so a List never observes a half-evicted
// window.
type auditLogRepository struct {
	mu      sync.RWMutex
	entries []*model.AuditLogEntry // oldest first
}

func newAuditLogRepository() *auditLogRepository {
	return &auditLogRepository{}
}

func copyAuditEntry(e *model.AuditLogEntry) *model.AuditLogEntry {
	copied := *e
	if e.Changes != nil {
		copied.Changes = make(map[string]any, len(e.Changes))
		for k, v := range e.Changes {
			copied.Changes[k] = v
		}
	}
	return &copied
}

func (r *auditLogRepository) Append(ctx context.Context, entry *model.AuditLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appended := copyAuditEntry(entry)
	if appended.ID == "" {
		appended.ID = model.NewAuditLogID()
	}
	if appended.Timestamp.IsZero() {
		appended.Timestamp = time.Now().UTC()
	}

	r.entries = append(r.entries, appended)
	if len(r.entries) > model.AuditLogCapacity {
		evict := len(r.entries) - model.AuditLogCapacity
		r.entries = append([]*model.AuditLogEntry{}, r.entries[evict:]...)
	}

	return nil
}

func (r *auditLogRepository) List(ctx context.Context, limit int) ([]*model.AuditLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.entries)
	if limit <= 0 || limit > n {
		limit = n
	}

	// newest first
	result := make([]*model.AuditLogEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		result = append(result, copyAuditEntry(r.entries[i]))
	}

	return result, nil
}
