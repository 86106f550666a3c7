package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "coop-loan-backend/internal/domain/loan"
)

func makeApplication(member string, created time.Time) *domain.Application {
	return &domain.Application{
		MemberNumber:  member,
		LoanType:      "Kharkhacho",
		InterestRate:  12.5,
		LoanAmount:    "50000",
		Status:        domain.StatusPending,
		WorkflowState: domain.StateStarted,
		CreatedAt:     created,
	}
}

func TestApplication_CreateAndGetByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	a := makeApplication("000000123", time.Now().UTC())
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}
	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.LoanAmount != "50000" || got.WorkflowState != domain.StateStarted {
		t.Errorf("unexpected application: %+v", got)
	}

	if _, err := repo.GetByID(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplication_LatestAndCurrent(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	// older pending, newer approved: latest is the approved one, current the pending one
	pending := makeApplication("000000123", now.Add(-2*time.Hour))
	approved := makeApplication("000000123", now.Add(-1*time.Hour))
	approved.Status = domain.StatusApproved
	approved.WorkflowState = domain.StateApproved
	for _, a := range []*domain.Application{pending, approved} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := repo.LatestByMember(ctx, "000000123")
	if err != nil {
		t.Fatalf("LatestByMember: %v", err)
	}
	if latest.ID != approved.ID {
		t.Errorf("latest = %d, want %d", latest.ID, approved.ID)
	}

	cur, err := repo.CurrentByMemberForUpdate(ctx, "000000123")
	if err != nil {
		t.Fatalf("CurrentByMemberForUpdate: %v", err)
	}
	if cur.ID != pending.ID {
		t.Errorf("current = %d, want %d", cur.ID, pending.ID)
	}

	if _, err := repo.LatestByMember(ctx, "000000999"); !errors.Is(err, domain.ErrNoApplication) {
		t.Fatalf("expected ErrNoApplication, got %v", err)
	}
	if _, err := repo.CurrentByMember(ctx, "000000999"); !errors.Is(err, domain.ErrNoCurrent) {
		t.Fatalf("expected ErrNoCurrent, got %v", err)
	}
}

func TestApplication_LatestTieBreaksOnID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	first := makeApplication("000000123", at)
	second := makeApplication("000000123", at)
	second.LoanAmount = "75000"
	for _, a := range []*domain.Application{first, second} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatal(err)
		}
	}
	got, err := repo.LatestByMember(ctx, "000000123")
	if err != nil {
		t.Fatalf("LatestByMember: %v", err)
	}
	if got.LoanAmount != "75000" {
		t.Fatalf("expected the later insert to win a created_at tie, got %+v", got)
	}
}

func TestApplication_CountsAndRecent(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		a := makeApplication("000000001", now.Add(time.Duration(i)*time.Minute))
		if i == 0 {
			a.Status = domain.StatusRejected
		}
		if err := repo.Create(ctx, a); err != nil {
			t.Fatal(err)
		}
	}

	total, err := repo.Count(ctx)
	if err != nil || total != 3 {
		t.Fatalf("Count = %d, %v", total, err)
	}
	pending, err := repo.CountByStatus(ctx, domain.StatusPending)
	if err != nil || pending != 2 {
		t.Fatalf("CountByStatus(pending) = %d, %v", pending, err)
	}
	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || !recent[0].CreatedAt.After(recent[1].CreatedAt) {
		t.Fatalf("unexpected recent: %+v", recent)
	}
}

func TestScheme_CreateGetList(t *testing.T) {
	db := openTestDB(t)
	repo := NewSchemeRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.Scheme{LoanType: "Kharkhacho", InterestRate: 12}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, &domain.Scheme{LoanType: "Kharkhacho", InterestRate: 14}); !errors.Is(err, domain.ErrSchemeExists) {
		t.Fatalf("expected ErrSchemeExists, got %v", err)
	}
	got, err := repo.GetByLoanType(ctx, "Kharkhacho")
	if err != nil || got.InterestRate != 12 {
		t.Fatalf("GetByLoanType = %+v, %v", got, err)
	}
	if _, err := repo.GetByLoanType(ctx, "Business"); !errors.Is(err, domain.ErrSchemeNotFound) {
		t.Fatalf("expected ErrSchemeNotFound, got %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %+v, %v", list, err)
	}
}
