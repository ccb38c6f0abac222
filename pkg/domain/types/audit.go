package types

import "fmt"

// AuditAction represents the kind of operation recorded in the audit trail
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionRead   AuditAction = "READ"
	AuditActionLogin  AuditAction = "LOGIN"
)

// IsValid checks if the audit action is valid
func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionRead, AuditActionLogin:
		return true
	default:
		return false
	}
}

// String returns the string representation of the audit action
func (a AuditAction) String() string {
	return string(a)
}

// ParseAuditAction parses a string into an AuditAction
func ParseAuditAction(s string) (AuditAction, error) {
	action := AuditAction(s)
	if !action.IsValid() {
		return "", fmt.Errorf("invalid audit action: %s", s)
	}
	return action, nil
}

// EntityType is the type tag of an entity recorded in the audit trail.
// It is an open set: any entity tracked by the register can appear here.
type EntityType string

const (
	EntityTypeRisk       EntityType = "RISK"
	EntityTypeRiskAction EntityType = "RISK_ACTION"
)

// String returns the string representation of the entity type
func (e EntityType) String() string {
	return string(e)
}
