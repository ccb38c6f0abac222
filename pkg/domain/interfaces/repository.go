package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Risk() RiskRepository
	RiskAction() RiskActionRepository
	AuditLog() AuditLogRepository

	// Close releases any resources held by the repository
	Close() error
}
