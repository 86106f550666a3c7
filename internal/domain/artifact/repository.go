package artifact

import "context"

// Repository only appends and reads; ledger rows are never updated.
type Repository interface {
	Create(ctx context.Context, a *Artifact) error

	// List returns newest first; an empty memberNumber lists every member.
	List(ctx context.Context, memberNumber string) ([]Artifact, error)
	CountByFile(ctx context.Context, filePath string) (int64, error)

	// DeleteByMember exists only for member cascade deletion.
	DeleteByMember(ctx context.Context, memberNumber string) error
}
