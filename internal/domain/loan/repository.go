package loan

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	Save(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id uint64) (*Application, error)

	// LatestByMember returns the most recently created application in any
	// status (ties broken by id), or ErrNoApplication.
	LatestByMember(ctx context.Context, memberNumber string) (*Application, error)

	// CurrentByMember returns the most recently created pending application,
	// or ErrNoCurrent. ForUpdate variant locks the row.
	CurrentByMember(ctx context.Context, memberNumber string) (*Application, error)
	CurrentByMemberForUpdate(ctx context.Context, memberNumber string) (*Application, error)

	ListByMember(ctx context.Context, memberNumber string) ([]Application, error)
	Recent(ctx context.Context, limit int) ([]Application, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, s Status) (int64, error)
	DeleteByMember(ctx context.Context, memberNumber string) error
}

type SchemeRepository interface {
	Create(ctx context.Context, s *Scheme) error
	GetByLoanType(ctx context.Context, loanType string) (*Scheme, error)
	List(ctx context.Context) ([]Scheme, error)
}
