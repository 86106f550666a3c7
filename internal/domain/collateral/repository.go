package collateral

import "context"

// Repository persists the collateral group. List groups are replaced
// wholesale per capture, the basic figures are upserted.
type Repository interface {
	UpsertBasic(ctx context.Context, b *Basic) error
	// GetBasic returns (nil, nil) when the member has no basic figures.
	GetBasic(ctx context.Context, memberNumber string) (*Basic, error)

	ReplaceProperties(ctx context.Context, memberNumber string, items []Property) error
	ListProperties(ctx context.Context, memberNumber string) ([]Property, error)

	ReplaceFamily(ctx context.Context, memberNumber string, items []FamilyMember) error
	ListFamily(ctx context.Context, memberNumber string) ([]FamilyMember, error)

	ReplaceIncomeExpenses(ctx context.Context, memberNumber string, items []IncomeExpense) error
	ListIncomeExpenses(ctx context.Context, memberNumber string) ([]IncomeExpense, error)

	ReplaceAffiliations(ctx context.Context, memberNumber string, items []Affiliation) error
	ListAffiliations(ctx context.Context, memberNumber string) ([]Affiliation, error)

	DeleteByMember(ctx context.Context, memberNumber string) error
}
