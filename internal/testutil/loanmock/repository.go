package loanmock

import (
	"context"

	domain "coop-loan-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a no-op; reads default to context.Canceled.
type Repo struct {
	CreateFn                   func(ctx context.Context, a *domain.Application) error
	SaveFn                     func(ctx context.Context, a *domain.Application) error
	GetByIDFn                  func(ctx context.Context, id uint64) (*domain.Application, error)
	LatestByMemberFn           func(ctx context.Context, memberNumber string) (*domain.Application, error)
	CurrentByMemberFn          func(ctx context.Context, memberNumber string) (*domain.Application, error)
	CurrentByMemberForUpdateFn func(ctx context.Context, memberNumber string) (*domain.Application, error)
	ListByMemberFn             func(ctx context.Context, memberNumber string) ([]domain.Application, error)
	RecentFn                   func(ctx context.Context, limit int) ([]domain.Application, error)
	CountFn                    func(ctx context.Context) (int64, error)
	CountByStatusFn            func(ctx context.Context, s domain.Status) (int64, error)
	DeleteByMemberFn           func(ctx context.Context, memberNumber string) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) LatestByMember(ctx context.Context, memberNumber string) (*domain.Application, error) {
	if m.LatestByMemberFn != nil {
		return m.LatestByMemberFn(ctx, memberNumber)
	}
	return nil, context.Canceled
}

func (m *Repo) CurrentByMember(ctx context.Context, memberNumber string) (*domain.Application, error) {
	if m.CurrentByMemberFn != nil {
		return m.CurrentByMemberFn(ctx, memberNumber)
	}
	return nil, context.Canceled
}

func (m *Repo) CurrentByMemberForUpdate(ctx context.Context, memberNumber string) (*domain.Application, error) {
	if m.CurrentByMemberForUpdateFn != nil {
		return m.CurrentByMemberForUpdateFn(ctx, memberNumber)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByMember(ctx context.Context, memberNumber string) ([]domain.Application, error) {
	if m.ListByMemberFn != nil {
		return m.ListByMemberFn(ctx, memberNumber)
	}
	return nil, context.Canceled
}

func (m *Repo) Recent(ctx context.Context, limit int) ([]domain.Application, error) {
	if m.RecentFn != nil {
		return m.RecentFn(ctx, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, context.Canceled
}

func (m *Repo) CountByStatus(ctx context.Context, s domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, s)
	}
	return 0, context.Canceled
}

func (m *Repo) DeleteByMember(ctx context.Context, memberNumber string) error {
	if m.DeleteByMemberFn != nil {
		return m.DeleteByMemberFn(ctx, memberNumber)
	}
	return nil
}
