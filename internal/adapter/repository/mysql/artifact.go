package mysql

import (
	"context"

	artifactDomain "coop-loan-backend/internal/domain/artifact"

	"gorm.io/gorm"
)

type ArtifactRepository struct{ db *gorm.DB }

func NewArtifactRepository(db *gorm.DB) *ArtifactRepository { return &ArtifactRepository{db: db} }

func (r *ArtifactRepository) Create(ctx context.Context, a *artifactDomain.Artifact) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ArtifactRepository) List(ctx context.Context, memberNumber string) ([]artifactDomain.Artifact, error) {
	var out []artifactDomain.Artifact
	q := r.db.WithContext(ctx)
	if memberNumber != "" {
		q = q.Where("member_number = ?", memberNumber)
	}
	res := q.Order("generated_date DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *ArtifactRepository) CountByFile(ctx context.Context, filePath string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&artifactDomain.Artifact{}).Where("file_path = ?", filePath).Count(&n)
	return n, res.Error
}

func (r *ArtifactRepository) DeleteByMember(ctx context.Context, memberNumber string) error {
	return r.db.WithContext(ctx).Where("member_number = ?", memberNumber).Delete(&artifactDomain.Artifact{}).Error
}
