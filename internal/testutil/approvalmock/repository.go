package approvalmock

import (
	"context"

	domain "coop-loan-backend/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn          func(ctx context.Context, a *domain.Approval) error
	LatestByMemberFn  func(ctx context.Context, memberNumber string) (*domain.Approval, error)
	GetByApprovalIDFn func(ctx context.Context, approvalID string) (*domain.Approval, error)
	DeleteByMemberFn  func(ctx context.Context, memberNumber string) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

// LatestByMember defaults to "never approved".
func (m *Repo) LatestByMember(ctx context.Context, memberNumber string) (*domain.Approval, error) {
	if m.LatestByMemberFn != nil {
		return m.LatestByMemberFn(ctx, memberNumber)
	}
	return nil, nil
}

func (m *Repo) GetByApprovalID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	if m.GetByApprovalIDFn != nil {
		return m.GetByApprovalIDFn(ctx, approvalID)
	}
	return nil, context.Canceled
}

func (m *Repo) DeleteByMember(ctx context.Context, memberNumber string) error {
	if m.DeleteByMemberFn != nil {
		return m.DeleteByMemberFn(ctx, memberNumber)
	}
	return nil
}
