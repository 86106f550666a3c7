package mysql

import (
	"context"

	orgDomain "coop-loan-backend/internal/domain/organization"

	"gorm.io/gorm"
)

type OrganizationRepository struct{ db *gorm.DB }

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Get(ctx context.Context) (*orgDomain.Profile, error) {
	var out []orgDomain.Profile
	res := r.db.WithContext(ctx).Order("id ASC").Limit(1).Find(&out)
	if res.Error != nil || len(out) == 0 {
		return nil, res.Error
	}
	return &out[0], nil
}

// Save overwrites the single profile row, creating it on first use.
func (r *OrganizationRepository) Save(ctx context.Context, p *orgDomain.Profile) error {
	existing, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		p.ID = existing.ID
	}
	return r.db.WithContext(ctx).Save(p).Error
}
