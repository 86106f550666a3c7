package mysql

import (
	"context"

	approvalDomain "coop-loan-backend/internal/domain/approval"

	"gorm.io/gorm"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApprovalRepository) LatestByMember(ctx context.Context, memberNumber string) (*approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	res := r.db.WithContext(ctx).
		Where("member_number = ?", memberNumber).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&out)
	if res.Error != nil || len(out) == 0 {
		return nil, res.Error
	}
	return &out[0], nil
}

func (r *ApprovalRepository) GetByApprovalID(ctx context.Context, approvalID string) (*approvalDomain.Approval, error) {
	var out approvalDomain.Approval
	res := r.db.WithContext(ctx).Where("approval_id = ?", approvalID).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, approvalDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApprovalRepository) DeleteByMember(ctx context.Context, memberNumber string) error {
	return r.db.WithContext(ctx).Where("member_number = ?", memberNumber).Delete(&approvalDomain.Approval{}).Error
}
