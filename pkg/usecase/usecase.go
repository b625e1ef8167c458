package usecase

import (
	"time"

	"github.com/caseflow-lab/doctrack/pkg/domain/interfaces"
	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

type UseCases struct {
	repo          interfaces.Repository
	now           func() time.Time
	dueSoonWindow int

	Case        *CaseUseCase
	Assignment  *AssignmentUseCase
	Archive     *ArchiveUseCase
	Responsible *ResponsibleUseCase
}

type Option func(*UseCases)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithDueSoonWindow overrides the number of days before the final deadline
// during which a case is flagged as due soon.
func WithDueSoonWindow(days int) Option {
	return func(uc *UseCases) {
		if days > 0 {
			uc.dueSoonWindow = days
		}
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:          repo,
		now:           time.Now,
		dueSoonWindow: model.DueSoonWindowDays,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Case = &CaseUseCase{repo: repo, now: uc.now, dueSoonWindow: uc.dueSoonWindow}
	uc.Assignment = &AssignmentUseCase{repo: repo, now: uc.now}
	uc.Archive = &ArchiveUseCase{repo: repo, now: uc.now}
	uc.Responsible = &ResponsibleUseCase{repo: repo}

	return uc
}
