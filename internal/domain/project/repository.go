package project

import "context"

type Repository interface {
	Create(ctx context.Context, r *Record) error
	ListByMember(ctx context.Context, memberNumber string) ([]Record, error)
	DeleteByMember(ctx context.Context, memberNumber string) error
}
