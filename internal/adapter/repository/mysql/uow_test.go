package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	approvalDomain "coop-loan-backend/internal/domain/approval"
	loanDomain "coop-loan-backend/internal/domain/loan"
	memberDomain "coop-loan-backend/internal/domain/member"
	"coop-loan-backend/internal/domain/uow"
	"coop-loan-backend/pkg/id"
)

func makeApprovalDomain(member string, loanID uint64) *approvalDomain.Approval {
	return &approvalDomain.Approval{
		ApprovalID:         id.NewID32(),
		LoanID:             loanID,
		MemberNumber:       member,
		ApprovalDate:       "2083-07-01",
		ApprovedBy:         "Manager",
		ApprovedLoanAmount: "50000",
	}
}

func seedMemberWithLoan(t *testing.T, ctx context.Context, r uow.Repos, number string) *loanDomain.Application {
	t.Helper()
	if err := r.Members.Create(ctx, makeMember(number, "Seed")); err != nil {
		t.Fatalf("seed member: %v", err)
	}
	a := makeApplication(number, time.Now().UTC())
	if err := r.Loans.Create(ctx, a); err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return a
}

// ----------------------------- Tests -----------------------------

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		a := seedMemberWithLoan(t, ctx, r, "000000001")
		return r.Approvals.Create(ctx, makeApprovalDomain("000000001", a.ID))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	root := ReposFor(db)
	if _, err := root.Members.GetByNumber(ctx, "000000001"); err != nil {
		t.Fatalf("member not visible after commit: %v", err)
	}
	appr, err := root.Approvals.LatestByMember(ctx, "000000001")
	if err != nil || appr == nil {
		t.Fatalf("approval not visible after commit: %+v, %v", appr, err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	sentinel := errors.New("boom")
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		a := seedMemberWithLoan(t, ctx, r, "000000002")
		if err := r.Approvals.Create(ctx, makeApprovalDomain("000000002", a.ID)); err != nil {
			return err
		}
		return sentinel // force rollback
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}

	root := ReposFor(db)
	if _, err := root.Members.GetByNumber(ctx, "000000002"); !errors.Is(err, memberDomain.ErrNotFound) {
		t.Fatalf("expected member absent after rollback, got %v", err)
	}
	if _, err := root.Loans.LatestByMember(ctx, "000000002"); !errors.Is(err, loanDomain.ErrNoApplication) {
		t.Fatalf("expected loan absent after rollback, got %v", err)
	}
	if appr, _ := root.Approvals.LatestByMember(ctx, "000000002"); appr != nil {
		t.Fatalf("expected approval absent after rollback, got %+v", appr)
	}
}

func TestGormUoW_WithinReadTx(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	if err := guow.WithinTx(ctx, func(r uow.Repos) error {
		seedMemberWithLoan(t, ctx, r, "000000003")
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	var seen *loanDomain.Application
	err := guow.WithinReadTx(ctx, func(r uow.Repos) error {
		var err error
		seen, err = r.Loans.LatestByMember(ctx, "000000003")
		return err
	})
	if err != nil {
		t.Fatalf("WithinReadTx: %v", err)
	}
	if seen == nil || seen.LoanType != "Kharkhacho" {
		t.Fatalf("unexpected read: %+v", seen)
	}
}

func TestGormUoW_WithinApplicationTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	var seeded *loanDomain.Application
	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		seeded = seedMemberWithLoan(t, ctx, r, "000000004")
		return nil
	})

	err := guow.WithinApplicationTx(ctx, "000000004", func(r uow.Repos, m *memberDomain.Member, a *loanDomain.Application) error {
		if m.MemberNumber != "000000004" || a.ID != seeded.ID {
			t.Fatalf("unexpected member/application passed to fn: %+v %+v", m, a)
		}
		a.WorkflowState = loanDomain.StateCollateralCaptured
		return r.Loans.Save(ctx, a)
	})
	if err != nil {
		t.Fatalf("WithinApplicationTx commit err: %v", err)
	}

	got, err := NewLoanRepository(db).GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID post-commit: %v", err)
	}
	if got.WorkflowState != loanDomain.StateCollateralCaptured {
		t.Fatalf("workflow state not updated, got=%s", got.WorkflowState)
	}
}

func TestGormUoW_WithinApplicationTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	var seeded *loanDomain.Application
	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		seeded = seedMemberWithLoan(t, ctx, r, "000000005")
		return nil
	})

	sentinel := errors.New("stop")
	_ = guow.WithinApplicationTx(ctx, "000000005", func(r uow.Repos, _ *memberDomain.Member, a *loanDomain.Application) error {
		if err := r.Approvals.Create(ctx, makeApprovalDomain("000000005", a.ID)); err != nil {
			return err
		}
		a.Status = loanDomain.StatusApproved
		if err := r.Loans.Save(ctx, a); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	got, err := NewLoanRepository(db).GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("post-rollback GetByID: %v", err)
	}
	if got.Status != loanDomain.StatusPending {
		t.Fatalf("expected pending after rollback, got %s", got.Status)
	}
	if appr, _ := NewApprovalRepository(db).LatestByMember(ctx, "000000005"); appr != nil {
		t.Fatalf("expected approval absent after rollback, got %+v", appr)
	}
}

func TestGormUoW_WithinApplicationTx_Missing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	err := guow.WithinApplicationTx(ctx, "000000404", func(uow.Repos, *memberDomain.Member, *loanDomain.Application) error {
		t.Fatalf("callback should not be called when member missing")
		return nil
	})
	if !errors.Is(err, memberDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Members.Create(ctx, makeMember("000000006", "No loan"))
	})
	err = guow.WithinApplicationTx(ctx, "000000006", func(uow.Repos, *memberDomain.Member, *loanDomain.Application) error {
		t.Fatalf("callback should not be called without a pending application")
		return nil
	})
	if !errors.Is(err, loanDomain.ErrNoCurrent) {
		t.Fatalf("expected ErrNoCurrent, got %v", err)
	}
}
