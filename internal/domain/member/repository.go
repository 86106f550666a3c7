package member

import "context"

type Repository interface {
	Create(ctx context.Context, m *Member) error
	Save(ctx context.Context, m *Member) error

	// GetByNumber returns ErrNotFound when no member carries number.
	GetByNumber(ctx context.Context, number string) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	Count(ctx context.Context) (int64, error)

	// Delete removes only the member row; dependents are removed by the caller's unit of work.
	Delete(ctx context.Context, number string) error
}
