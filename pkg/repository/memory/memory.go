package memory

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/grc-lab/riskreg/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = goerr.New("not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	risk     *riskRepository
	action   *actionRepository
	auditLog *auditLogRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		risk:     newRiskRepository(),
		action:   newActionRepository(),
		auditLog: newAuditLogRepository(),
	}
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) RiskAction() interfaces.RiskActionRepository {
	return m.action
}

func (m *Memory) AuditLog() interfaces.AuditLogRepository {
	return m.auditLog
}

func (m *Memory) Close() error {
	return nil
}
