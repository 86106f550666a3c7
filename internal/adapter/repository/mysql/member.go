package mysql

import (
	"context"

	memberDomain "coop-loan-backend/internal/domain/member"

	"gorm.io/gorm"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *MemberRepository) Tx(ctx context.Context, fn func(repo memberDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&MemberRepository{db: tx})
	})
}

func (r *MemberRepository) Create(ctx context.Context, m *memberDomain.Member) error {
	return duplicate(r.db.WithContext(ctx).Create(m).Error, memberDomain.ErrAlreadyExists)
}

func (r *MemberRepository) Save(ctx context.Context, m *memberDomain.Member) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MemberRepository) GetByNumber(ctx context.Context, number string) (*memberDomain.Member, error) {
	var out memberDomain.Member
	res := r.db.WithContext(ctx).Where("member_number = ?", number).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, memberDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *MemberRepository) List(ctx context.Context) ([]memberDomain.Member, error) {
	var out []memberDomain.Member
	res := r.db.WithContext(ctx).Order("member_number ASC").Find(&out)
	return out, res.Error
}

func (r *MemberRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&memberDomain.Member{}).Count(&n)
	return n, res.Error
}

func (r *MemberRepository) Delete(ctx context.Context, number string) error {
	res := r.db.WithContext(ctx).Where("member_number = ?", number).Delete(&memberDomain.Member{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return memberDomain.ErrNotFound
	}
	return nil
}
