package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrRiskNotFound   = errors.New("risk not found")
	ErrActionNotFound = errors.New("action not found")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

// Context keys for error values
const (
	RiskIDKey   = "risk_id"
	ActionIDKey = "action_id"
	FieldKey    = "field"
)
