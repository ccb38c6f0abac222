package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/grc-lab/riskreg/pkg/domain/types"
)

// AuditLogCapacity bounds the audit trail: appending beyond it evicts the
// oldest entry.
const AuditLogCapacity = 1000

// AuditLogID represents a unique identifier for an audit log entry
type AuditLogID string

// NewAuditLogID generates a new random AuditLogID
func NewAuditLogID() AuditLogID {
	return AuditLogID(uuid.NewString())
}

// String returns the string representation of AuditLogID
func (id AuditLogID) String() string {
	return string(id)
}

// AuditLogEntry records one mutation against a tracked entity. Entries are
// immutable once appended; the trail exposes no update or delete operations.
// Changes is an advisory diff for display, never replayed to rebuild state.
type AuditLogEntry struct {
	ID        AuditLogID
	UserID    string
	UserName  string
	Action    types.AuditAction
	Entity    types.EntityType
	EntityID  string
	Changes   map[string]any
	Timestamp time.Time
}

// Actor identifies the user a mutation is attributed to in the audit trail.
// The surrounding application supplies it; authentication is not this
// package's concern.
type Actor struct {
	ID   string
	Name string
}

// AnonymousActor is the attribution used when no caller identity is supplied
func AnonymousActor() Actor {
	return Actor{ID: "anonymous", Name: "Anonymous"}
}
