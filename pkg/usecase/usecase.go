package usecase

import (
	"github.com/grc-lab/riskreg/pkg/domain/interfaces"
	"github.com/grc-lab/riskreg/pkg/service/directory"
)

type UseCases struct {
	repo      interfaces.Repository
	directory directory.Service
	Risk      *RiskUseCase
	Audit     *AuditUseCase
}

type Option func(*UseCases)

// WithDirectory wires the employee directory used for owner display-name
// resolution in search and reporting
func WithDirectory(dir directory.Service) Option {
	return func(uc *UseCases) {
		uc.directory = dir
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Audit = NewAuditUseCase(repo)
	uc.Risk = NewRiskUseCase(repo, uc.Audit, uc.directory)

	return uc
}
