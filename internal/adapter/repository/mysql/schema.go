package mysql

import (
	"coop-loan-backend/internal/domain/approval"
	"coop-loan-backend/internal/domain/artifact"
	"coop-loan-backend/internal/domain/collateral"
	"coop-loan-backend/internal/domain/loan"
	"coop-loan-backend/internal/domain/member"
	"coop-loan-backend/internal/domain/organization"
	"coop-loan-backend/internal/domain/party"
	"coop-loan-backend/internal/domain/project"

	"gorm.io/gorm"
)

// Models lists every persisted entity, in creation order.
func Models() []any {
	return []any{
		&member.Member{},
		&loan.Scheme{},
		&loan.Application{},
		&collateral.Basic{},
		&collateral.Property{},
		&collateral.FamilyMember{},
		&collateral.IncomeExpense{},
		&collateral.Affiliation{},
		&project.Record{},
		&approval.Approval{},
		&party.Witness{},
		&party.Guarantor{},
		&artifact.Artifact{},
		&organization.Profile{},
	}
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
