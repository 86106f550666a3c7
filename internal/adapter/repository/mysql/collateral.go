package mysql

import (
	"context"

	collateralDomain "coop-loan-backend/internal/domain/collateral"

	"gorm.io/gorm"
)

type CollateralRepository struct{ db *gorm.DB }

func NewCollateralRepository(db *gorm.DB) *CollateralRepository {
	return &CollateralRepository{db: db}
}

func (r *CollateralRepository) UpsertBasic(ctx context.Context, b *collateralDomain.Basic) error {
	existing, err := r.GetBasic(ctx, b.MemberNumber)
	if err != nil {
		return err
	}
	if existing == nil {
		b.ID = 0
		return r.db.WithContext(ctx).Create(b).Error
	}
	b.ID = existing.ID
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *CollateralRepository) GetBasic(ctx context.Context, memberNumber string) (*collateralDomain.Basic, error) {
	var out []collateralDomain.Basic
	res := r.db.WithContext(ctx).Where("member_number = ?", memberNumber).Limit(1).Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *CollateralRepository) ReplaceProperties(ctx context.Context, memberNumber string, items []collateralDomain.Property) error {
	for i := range items {
		items[i].ID = 0
		items[i].MemberNumber = memberNumber
	}
	return replaceRows(r.db.WithContext(ctx), memberNumber, &collateralDomain.Property{}, items)
}

func (r *CollateralRepository) ListProperties(ctx context.Context, memberNumber string) ([]collateralDomain.Property, error) {
	var out []collateralDomain.Property
	return out, listRows(r.db.WithContext(ctx), memberNumber, &out)
}

func (r *CollateralRepository) ReplaceFamily(ctx context.Context, memberNumber string, items []collateralDomain.FamilyMember) error {
	for i := range items {
		items[i].ID = 0
		items[i].MemberNumber = memberNumber
	}
	return replaceRows(r.db.WithContext(ctx), memberNumber, &collateralDomain.FamilyMember{}, items)
}

func (r *CollateralRepository) ListFamily(ctx context.Context, memberNumber string) ([]collateralDomain.FamilyMember, error) {
	var out []collateralDomain.FamilyMember
	return out, listRows(r.db.WithContext(ctx), memberNumber, &out)
}

func (r *CollateralRepository) ReplaceIncomeExpenses(ctx context.Context, memberNumber string, items []collateralDomain.IncomeExpense) error {
	for i := range items {
		items[i].ID = 0
		items[i].MemberNumber = memberNumber
	}
	return replaceRows(r.db.WithContext(ctx), memberNumber, &collateralDomain.IncomeExpense{}, items)
}

func (r *CollateralRepository) ListIncomeExpenses(ctx context.Context, memberNumber string) ([]collateralDomain.IncomeExpense, error) {
	var out []collateralDomain.IncomeExpense
	return out, listRows(r.db.WithContext(ctx), memberNumber, &out)
}

func (r *CollateralRepository) ReplaceAffiliations(ctx context.Context, memberNumber string, items []collateralDomain.Affiliation) error {
	for i := range items {
		items[i].ID = 0
		items[i].MemberNumber = memberNumber
	}
	return replaceRows(r.db.WithContext(ctx), memberNumber, &collateralDomain.Affiliation{}, items)
}

func (r *CollateralRepository) ListAffiliations(ctx context.Context, memberNumber string) ([]collateralDomain.Affiliation, error) {
	var out []collateralDomain.Affiliation
	return out, listRows(r.db.WithContext(ctx), memberNumber, &out)
}

func (r *CollateralRepository) DeleteByMember(ctx context.Context, memberNumber string) error {
	db := r.db.WithContext(ctx)
	for _, model := range []any{
		&collateralDomain.Basic{},
		&collateralDomain.Property{},
		&collateralDomain.FamilyMember{},
		&collateralDomain.IncomeExpense{},
		&collateralDomain.Affiliation{},
	} {
		if err := db.Where("member_number = ?", memberNumber).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// replaceRows deletes every row of model owned by the member and inserts items.
func replaceRows[T any](db *gorm.DB, memberNumber string, model *T, items []T) error {
	if err := db.Where("member_number = ?", memberNumber).Delete(model).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

func listRows[T any](db *gorm.DB, memberNumber string, out *[]T) error {
	return db.Where("member_number = ?", memberNumber).Order("id ASC").Find(out).Error
}
