package party

import "context"

type Repository interface {
	CreateWitness(ctx context.Context, w *Witness) error
	ListWitnesses(ctx context.Context, memberNumber string) ([]Witness, error)

	CreateGuarantor(ctx context.Context, g *Guarantor) error
	ListGuarantors(ctx context.Context, memberNumber string) ([]Guarantor, error)

	DeleteByMember(ctx context.Context, memberNumber string) error
}
