package mysql

import (
	"context"

	partyDomain "coop-loan-backend/internal/domain/party"

	"gorm.io/gorm"
)

type PartyRepository struct{ db *gorm.DB }

func NewPartyRepository(db *gorm.DB) *PartyRepository { return &PartyRepository{db: db} }

func (r *PartyRepository) CreateWitness(ctx context.Context, w *partyDomain.Witness) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *PartyRepository) ListWitnesses(ctx context.Context, memberNumber string) ([]partyDomain.Witness, error) {
	var out []partyDomain.Witness
	return out, listRows(r.db.WithContext(ctx), memberNumber, &out)
}

func (r *PartyRepository) CreateGuarantor(ctx context.Context, g *partyDomain.Guarantor) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *PartyRepository) ListGuarantors(ctx context.Context, memberNumber string) ([]partyDomain.Guarantor, error) {
	var out []partyDomain.Guarantor
	return out, listRows(r.db.WithContext(ctx), memberNumber, &out)
}

func (r *PartyRepository) DeleteByMember(ctx context.Context, memberNumber string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("member_number = ?", memberNumber).Delete(&partyDomain.Witness{}).Error; err != nil {
		return err
	}
	return db.Where("member_number = ?", memberNumber).Delete(&partyDomain.Guarantor{}).Error
}
