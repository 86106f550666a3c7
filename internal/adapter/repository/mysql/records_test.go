package mysql

import (
	"context"
	"testing"

	orgDomain "coop-loan-backend/internal/domain/organization"
	partyDomain "coop-loan-backend/internal/domain/party"
	projectDomain "coop-loan-backend/internal/domain/project"
)

func TestOrganization_SaveKeepsSingleRow(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	got, err := repo.Get(ctx)
	if err != nil || got != nil {
		t.Fatalf("empty profile: want (nil, nil), got (%+v, %v)", got, err)
	}

	if err := repo.Save(ctx, &orgDomain.Profile{CompanyName: "Sahakari", Address: "Ward 4"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, &orgDomain.Profile{CompanyName: "Sahakari Ltd"}); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	var n int64
	if err := db.Model(&orgDomain.Profile{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one profile row, got %d", n)
	}
	got, err = repo.Get(ctx)
	if err != nil || got == nil || got.CompanyName != "Sahakari Ltd" || got.Address != "" {
		t.Fatalf("unexpected profile: %+v, %v", got, err)
	}
}

func TestParty_ListAndDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewPartyRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Hari", "Sita"} {
		if err := repo.CreateWitness(ctx, &partyDomain.Witness{MemberNumber: "000000123", Name: name}); err != nil {
			t.Fatalf("CreateWitness: %v", err)
		}
	}
	if err := repo.CreateGuarantor(ctx, &partyDomain.Guarantor{MemberNumber: "000000123", Name: "Shyam", Phone: "9841234567"}); err != nil {
		t.Fatalf("CreateGuarantor: %v", err)
	}
	if err := repo.CreateGuarantor(ctx, &partyDomain.Guarantor{MemberNumber: "000000456", Name: "Ram"}); err != nil {
		t.Fatalf("CreateGuarantor: %v", err)
	}

	ws, err := repo.ListWitnesses(ctx, "000000123")
	if err != nil {
		t.Fatalf("ListWitnesses: %v", err)
	}
	if len(ws) != 2 || ws[0].Name != "Hari" || ws[1].Name != "Sita" {
		t.Fatalf("witnesses not in insertion order: %+v", ws)
	}
	gs, err := repo.ListGuarantors(ctx, "000000123")
	if err != nil || len(gs) != 1 || gs[0].Phone != "9841234567" {
		t.Fatalf("unexpected guarantors: %+v, %v", gs, err)
	}

	if err := repo.DeleteByMember(ctx, "000000123"); err != nil {
		t.Fatalf("DeleteByMember: %v", err)
	}
	ws, _ = repo.ListWitnesses(ctx, "000000123")
	gs, _ = repo.ListGuarantors(ctx, "000000123")
	if len(ws) != 0 || len(gs) != 0 {
		t.Fatalf("parties survived delete: %d witnesses, %d guarantors", len(ws), len(gs))
	}
	if gs, _ := repo.ListGuarantors(ctx, "000000456"); len(gs) != 1 {
		t.Fatalf("delete removed another member's guarantor")
	}
}

func TestProject_ListByMember(t *testing.T) {
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	recs := []*projectDomain.Record{
		{MemberNumber: "000000123", ProjectName: "Goats", SelfInvestment: "1000", RequestedLoanAmount: "4000"},
		{MemberNumber: "000000123", ProjectName: "Shop", SelfInvestment: "2,500.50"},
	}
	for _, r := range recs {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	got, err := repo.ListByMember(ctx, "000000123")
	if err != nil {
		t.Fatalf("ListByMember: %v", err)
	}
	if len(got) != 2 || got[0].TotalCost() != "5000" || got[1].TotalCost() != "2500.5" {
		t.Fatalf("unexpected projects: %+v", got)
	}

	if err := repo.DeleteByMember(ctx, "000000123"); err != nil {
		t.Fatalf("DeleteByMember: %v", err)
	}
	if got, _ := repo.ListByMember(ctx, "000000123"); len(got) != 0 {
		t.Fatalf("projects survived delete: %+v", got)
	}
}
