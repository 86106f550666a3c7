package mysql

import (
	"context"
	"database/sql"

	"coop-loan-backend/internal/domain/loan"
	"coop-loan-backend/internal/domain/member"
	"coop-loan-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// ReposFor binds every repository to db (a tx or the root handle).
func ReposFor(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Members:      &MemberRepository{db: db},
		Loans:        &LoanRepository{db: db},
		Schemes:      &SchemeRepository{db: db},
		Collateral:   &CollateralRepository{db: db},
		Projects:     &ProjectRepository{db: db},
		Approvals:    &ApprovalRepository{db: db},
		Parties:      &PartyRepository{db: db},
		Artifacts:    &ArtifactRepository{db: db},
		Organization: &OrganizationRepository{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ReposFor(tx))
	})
}

func (u *GormUoW) WithinReadTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ReposFor(tx))
	}, &sql.TxOptions{ReadOnly: true})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, memberNumber string, fn func(r uow.Repos, m *member.Member, a *loan.Application) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := ReposFor(tx)
		m, err := r.Members.GetByNumber(ctx, memberNumber)
		if err != nil {
			return err
		}
		// lock the application row up-front to prevent races
		a, err := r.Loans.CurrentByMemberForUpdate(ctx, memberNumber)
		if err != nil {
			return err
		}
		return fn(r, m, a)
	})
}
