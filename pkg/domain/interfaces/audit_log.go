package interfaces

import (
	"context"

	"github.com/grc-lab/riskreg/pkg/domain/model"
)

// AuditLogRepository is append-only: entries are never updated or removed by
// callers. The trail retains at most model.AuditLogCapacity entries; Append
// evicts the oldest when full.
type AuditLogRepository interface {
	// Append adds one entry to the trail
	Append(ctx context.Context, entry *model.AuditLogEntry) error

	// List returns retained entries newest-first, truncated to limit.
	// limit <= 0 returns all retained entries.
	List(ctx context.Context, limit int) ([]*model.AuditLogEntry, error)
}
