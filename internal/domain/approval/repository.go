package approval

import "context"

type Repository interface {
	Create(ctx context.Context, a *Approval) error

	// LatestByMember returns (nil, nil) when the member was never approved.
	LatestByMember(ctx context.Context, memberNumber string) (*Approval, error)

	// GetByApprovalID returns ErrNotFound for unknown ids.
	GetByApprovalID(ctx context.Context, approvalID string) (*Approval, error)

	DeleteByMember(ctx context.Context, memberNumber string) error
}
