package mysql

import (
	"context"

	projectDomain "coop-loan-backend/internal/domain/project"

	"gorm.io/gorm"
)

type ProjectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) *ProjectRepository { return &ProjectRepository{db: db} }

func (r *ProjectRepository) Create(ctx context.Context, rec *projectDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ProjectRepository) ListByMember(ctx context.Context, memberNumber string) ([]projectDomain.Record, error) {
	var out []projectDomain.Record
	return out, listRows(r.db.WithContext(ctx), memberNumber, &out)
}

func (r *ProjectRepository) DeleteByMember(ctx context.Context, memberNumber string) error {
	return r.db.WithContext(ctx).Where("member_number = ?", memberNumber).Delete(&projectDomain.Record{}).Error
}
