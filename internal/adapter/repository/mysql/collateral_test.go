package mysql

import (
	"context"
	"testing"

	collateralDomain "coop-loan-backend/internal/domain/collateral"
)

func TestCollateral_UpsertBasic(t *testing.T) {
	db := openTestDB(t)
	repo := NewCollateralRepository(db)
	ctx := context.Background()

	got, err := repo.GetBasic(ctx, "000000123")
	if err != nil || got != nil {
		t.Fatalf("GetBasic on empty = %+v, %v", got, err)
	}

	if err := repo.UpsertBasic(ctx, &collateralDomain.Basic{MemberNumber: "000000123", MonthlySaving: "500"}); err != nil {
		t.Fatalf("UpsertBasic insert: %v", err)
	}
	if err := repo.UpsertBasic(ctx, &collateralDomain.Basic{MemberNumber: "000000123", MonthlySaving: "700"}); err != nil {
		t.Fatalf("UpsertBasic update: %v", err)
	}

	var n int64
	db.Model(&collateralDomain.Basic{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected one basic row, got %d", n)
	}
	got, err = repo.GetBasic(ctx, "000000123")
	if err != nil || got.MonthlySaving != "700" {
		t.Fatalf("GetBasic = %+v, %v", got, err)
	}
}

func TestCollateral_ReplaceLists(t *testing.T) {
	db := openTestDB(t)
	repo := NewCollateralRepository(db)
	ctx := context.Background()

	first := []collateralDomain.Property{{OwnerName: "A"}, {OwnerName: "B"}}
	if err := repo.ReplaceProperties(ctx, "000000123", first); err != nil {
		t.Fatalf("ReplaceProperties: %v", err)
	}
	second := []collateralDomain.Property{{OwnerName: "C"}}
	if err := repo.ReplaceProperties(ctx, "000000123", second); err != nil {
		t.Fatalf("ReplaceProperties again: %v", err)
	}
	props, err := repo.ListProperties(ctx, "000000123")
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(props) != 1 || props[0].OwnerName != "C" || props[0].MemberNumber != "000000123" {
		t.Fatalf("unexpected properties: %+v", props)
	}

	ie := []collateralDomain.IncomeExpense{
		{Field: "Salary", Amount: "30000", Type: collateralDomain.TypeIncome},
		{Field: "Rent", Amount: "8000", Type: collateralDomain.TypeExpense},
	}
	if err := repo.ReplaceIncomeExpenses(ctx, "000000123", ie); err != nil {
		t.Fatalf("ReplaceIncomeExpenses: %v", err)
	}
	if err := repo.ReplaceFamily(ctx, "000000123", nil); err != nil {
		t.Fatalf("ReplaceFamily(nil): %v", err)
	}
	gotIE, err := repo.ListIncomeExpenses(ctx, "000000123")
	if err != nil || len(gotIE) != 2 || gotIE[0].Field != "Salary" {
		t.Fatalf("ListIncomeExpenses = %+v, %v", gotIE, err)
	}
}

func TestCollateral_DeleteByMember(t *testing.T) {
	db := openTestDB(t)
	repo := NewCollateralRepository(db)
	ctx := context.Background()

	_ = repo.UpsertBasic(ctx, &collateralDomain.Basic{MemberNumber: "000000001"})
	_ = repo.ReplaceAffiliations(ctx, "000000001", []collateralDomain.Affiliation{{Institution: "Coop"}})
	_ = repo.ReplaceAffiliations(ctx, "000000002", []collateralDomain.Affiliation{{Institution: "Other"}})

	if err := repo.DeleteByMember(ctx, "000000001"); err != nil {
		t.Fatalf("DeleteByMember: %v", err)
	}
	if b, _ := repo.GetBasic(ctx, "000000001"); b != nil {
		t.Fatalf("basic survived delete: %+v", b)
	}
	if a, _ := repo.ListAffiliations(ctx, "000000001"); len(a) != 0 {
		t.Fatalf("affiliations survived delete: %+v", a)
	}
	if a, _ := repo.ListAffiliations(ctx, "000000002"); len(a) != 1 {
		t.Fatalf("other member's rows were touched: %+v", a)
	}
}
