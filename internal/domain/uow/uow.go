package uow

import (
	"context"

	"coop-loan-backend/internal/domain/approval"
	"coop-loan-backend/internal/domain/artifact"
	"coop-loan-backend/internal/domain/collateral"
	"coop-loan-backend/internal/domain/loan"
	"coop-loan-backend/internal/domain/member"
	"coop-loan-backend/internal/domain/organization"
	"coop-loan-backend/internal/domain/party"
	"coop-loan-backend/internal/domain/project"
)

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	Members      member.Repository
	Loans        loan.Repository
	Schemes      loan.SchemeRepository
	Collateral   collateral.Repository
	Projects     project.Repository
	Approvals    approval.Repository
	Parties      party.Repository
	Artifacts    artifact.Repository
	Organization organization.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// read-only tx, one consistent snapshot for multi-table reads
	WithinReadTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: resolve the member, lock its current pending application, then pass both in
	WithinApplicationTx(ctx context.Context, memberNumber string, fn func(r Repos, m *member.Member, a *loan.Application) error) error
}
