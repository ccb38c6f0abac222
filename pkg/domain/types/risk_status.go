package types

import "fmt"

// RiskStatus represents the lifecycle state of a risk
type RiskStatus string

const (
	RiskStatusIdentified           RiskStatus = "identified"
	RiskStatusAssessed             RiskStatus = "assessed"
	RiskStatusTreatmentPlanned     RiskStatus = "treatment-planned"
	RiskStatusTreatmentImplemented RiskStatus = "treatment-implemented"
	RiskStatusMonitoring           RiskStatus = "monitoring"
	RiskStatusClosed               RiskStatus = "closed"
	RiskStatusTransferred          RiskStatus = "transferred"
)

// AllRiskStatuses returns all valid risk statuses in lifecycle order
func AllRiskStatuses() []RiskStatus {
	return []RiskStatus{
		RiskStatusIdentified,
		RiskStatusAssessed,
		RiskStatusTreatmentPlanned,
		RiskStatusTreatmentImplemented,
		RiskStatusMonitoring,
		RiskStatusClosed,
		RiskStatusTransferred,
	}
}

// IsValid checks if the risk status is valid
func (s RiskStatus) IsValid() bool {
	switch s {
	case RiskStatusIdentified,
		RiskStatusAssessed,
		RiskStatusTreatmentPlanned,
		RiskStatusTreatmentImplemented,
		RiskStatusMonitoring,
		RiskStatusClosed,
		RiskStatusTransferred:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status ends the risk lifecycle.
// Terminal risks remain editable, but edits are treated as exceptional.
func (s RiskStatus) IsTerminal() bool {
	return s == RiskStatusClosed || s == RiskStatusTransferred
}

// Normalize returns the status, treating empty as RiskStatusIdentified.
func (s RiskStatus) Normalize() RiskStatus {
	if s == "" {
		return RiskStatusIdentified
	}
	return s
}

// String returns the string representation of the risk status
func (s RiskStatus) String() string {
	return string(s)
}

// ParseRiskStatus parses a string into a RiskStatus
func ParseRiskStatus(s string) (RiskStatus, error) {
	status := RiskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid risk status: %s", s)
	}
	return status, nil
}
