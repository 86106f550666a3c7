package mysql

import (
	"context"

	loanDomain "coop-loan-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, a *loanDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *LoanRepository) Save(ctx context.Context, a *loanDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Application, error) {
	var out loanDomain.Application
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) LatestByMember(ctx context.Context, memberNumber string) (*loanDomain.Application, error) {
	var out loanDomain.Application
	res := r.db.WithContext(ctx).
		Where("member_number = ?", memberNumber).
		Order("created_at DESC, id DESC").
		First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, loanDomain.ErrNoApplication)
	}
	return &out, nil
}

func (r *LoanRepository) CurrentByMember(ctx context.Context, memberNumber string) (*loanDomain.Application, error) {
	return r.current(r.db.WithContext(ctx), memberNumber)
}

func (r *LoanRepository) CurrentByMemberForUpdate(ctx context.Context, memberNumber string) (*loanDomain.Application, error) {
	return r.current(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), memberNumber)
}

func (r *LoanRepository) current(q *gorm.DB, memberNumber string) (*loanDomain.Application, error) {
	var out loanDomain.Application
	res := q.
		Where("member_number = ? AND status = ?", memberNumber, loanDomain.StatusPending).
		Order("created_at DESC, id DESC").
		First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, loanDomain.ErrNoCurrent)
	}
	return &out, nil
}

func (r *LoanRepository) ListByMember(ctx context.Context, memberNumber string) ([]loanDomain.Application, error) {
	var out []loanDomain.Application
	res := r.db.WithContext(ctx).
		Where("member_number = ?", memberNumber).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) Recent(ctx context.Context, limit int) ([]loanDomain.Application, error) {
	var out []loanDomain.Application
	res := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&out)
	return out, res.Error
}

func (r *LoanRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loanDomain.Application{}).Count(&n)
	return n, res.Error
}

func (r *LoanRepository) CountByStatus(ctx context.Context, s loanDomain.Status) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loanDomain.Application{}).Where("status = ?", s).Count(&n)
	return n, res.Error
}

func (r *LoanRepository) DeleteByMember(ctx context.Context, memberNumber string) error {
	return r.db.WithContext(ctx).Where("member_number = ?", memberNumber).Delete(&loanDomain.Application{}).Error
}

type SchemeRepository struct{ db *gorm.DB }

func NewSchemeRepository(db *gorm.DB) *SchemeRepository { return &SchemeRepository{db: db} }

func (r *SchemeRepository) Create(ctx context.Context, s *loanDomain.Scheme) error {
	return duplicate(r.db.WithContext(ctx).Create(s).Error, loanDomain.ErrSchemeExists)
}

func (r *SchemeRepository) GetByLoanType(ctx context.Context, loanType string) (*loanDomain.Scheme, error) {
	var out loanDomain.Scheme
	res := r.db.WithContext(ctx).Where("loan_type = ?", loanType).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, loanDomain.ErrSchemeNotFound)
	}
	return &out, nil
}

func (r *SchemeRepository) List(ctx context.Context) ([]loanDomain.Scheme, error) {
	var out []loanDomain.Scheme
	res := r.db.WithContext(ctx).Order("loan_type ASC").Find(&out)
	return out, res.Error
}
