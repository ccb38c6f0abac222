package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/grc-lab/riskreg/pkg/domain/types"
)

// ActionID represents a unique identifier for a mitigation action
type ActionID string

// NewActionID generates a new random ActionID
func NewActionID() ActionID {
	return ActionID(uuid.NewString())
}

// String returns the string representation of ActionID
func (id ActionID) String() string {
	return string(id)
}

// RiskAction is one entry in a risk's mitigation ledger. Actions are owned
// by exactly one risk and live and die with it. The ledger's progress is
// tracked independently of the parent risk's Progress field.
type RiskAction struct {
	ID          ActionID
	RiskID      int64
	Description string
	Responsible string // Employee ID, display-only reference
	DueDate     time.Time
	Status      types.ActionStatus
	Progress    int // 0-100
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EffectiveStatus returns the status as it should be displayed: overdue when
// the due date has passed and the action is not completed, the stored status
// otherwise. Overdue is never stored.
func (a *RiskAction) EffectiveStatus(now time.Time) types.ActionStatus {
	if !a.DueDate.IsZero() && a.DueDate.Before(now) && a.Status != types.ActionStatusCompleted {
		return types.ActionStatusOverdue
	}
	return a.Status
}
