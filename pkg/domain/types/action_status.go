package types

import "fmt"

// ActionStatus represents the status of a mitigation action attached to a risk
type ActionStatus string

const (
	ActionStatusPending    ActionStatus = "pending"
	ActionStatusInProgress ActionStatus = "in-progress"
	ActionStatusCompleted  ActionStatus = "completed"

	// ActionStatusOverdue is a derived display state, computed from the due
	// date at read time. It must never be persisted.
	ActionStatusOverdue ActionStatus = "overdue"
)

// AllActionStatuses returns all valid action statuses including the derived one
func AllActionStatuses() []ActionStatus {
	return []ActionStatus{
		ActionStatusPending,
		ActionStatusInProgress,
		ActionStatusCompleted,
		ActionStatusOverdue,
	}
}

// IsValid checks if the action status is valid
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusPending,
		ActionStatusInProgress,
		ActionStatusCompleted,
		ActionStatusOverdue:
		return true
	default:
		return false
	}
}

// IsStorable reports whether the status may be written to a repository.
// Overdue is display-only.
func (s ActionStatus) IsStorable() bool {
	return s.IsValid() && s != ActionStatusOverdue
}

// String returns the string representation of the action status
func (s ActionStatus) String() string {
	return string(s)
}

// ParseActionStatus parses a string into an ActionStatus
func ParseActionStatus(s string) (ActionStatus, error) {
	status := ActionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid action status: %s", s)
	}
	return status, nil
}
