package dashboard

import (
	"context"
	"time"

	domainLoan "coop-loan-backend/internal/domain/loan"
	"coop-loan-backend/internal/domain/uow"
	"coop-loan-backend/pkg/apperr"

	"github.com/sirupsen/logrus"
)

const (
	recentLimit = 10
	cacheKey    = "dashboard:summary"
)

// Cache is satisfied by cache.JSON.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

type RecentApplication struct {
	ID            uint64    `json:"id"`
	MemberNumber  string    `json:"member_number"`
	LoanType      string    `json:"loan_type"`
	LoanAmount    string    `json:"loan_amount"`
	Status        string    `json:"status"`
	WorkflowState string    `json:"workflow_state"`
	CreatedAt     time.Time `json:"created_at"`
}

type Summary struct {
	TotalMembers      int64               `json:"total_members"`
	TotalApplications int64               `json:"total_applications"`
	Pending           int64               `json:"pending"`
	Approved          int64               `json:"approved"`
	Recent            []RecentApplication `json:"recent"`
}

type Usecase struct {
	uow    uow.UnitOfWork
	cache  Cache
	ttl    time.Duration
	logger logrus.FieldLogger
}

// NewUsecase serves summaries from c for ttl when both are set. Cache
// failures fall back to the store.
func NewUsecase(tx uow.UnitOfWork, c Cache, ttl time.Duration, logger logrus.FieldLogger) *Usecase {
	if ttl <= 0 {
		c = nil
	}
	return &Usecase{uow: tx, cache: c, ttl: ttl, logger: logger}
}

func (u *Usecase) Summary(ctx context.Context) (*Summary, error) {
	if u.cache != nil {
		var cached Summary
		ok, err := u.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			u.logger.WithError(err).Warn("dashboard cache read failed")
		}
		if ok {
			return &cached, nil
		}
	}
	s, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		if err := u.cache.Set(ctx, cacheKey, s, u.ttl); err != nil {
			u.logger.WithError(err).Warn("dashboard cache write failed")
		}
	}
	return s, nil
}

// load counts members and applications from one read snapshot.
func (u *Usecase) load(ctx context.Context) (*Summary, error) {
	var s Summary
	var recent []domainLoan.Application
	err := u.uow.WithinReadTx(ctx, func(r uow.Repos) error {
		var err error
		if s.TotalMembers, err = r.Members.Count(ctx); err != nil {
			return err
		}
		if s.TotalApplications, err = r.Loans.Count(ctx); err != nil {
			return err
		}
		if s.Pending, err = r.Loans.CountByStatus(ctx, domainLoan.StatusPending); err != nil {
			return err
		}
		if s.Approved, err = r.Loans.CountByStatus(ctx, domainLoan.StatusApproved); err != nil {
			return err
		}
		recent, err = r.Loans.Recent(ctx, recentLimit)
		return err
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "load dashboard", err)
	}
	s.Recent = make([]RecentApplication, 0, len(recent))
	for _, a := range recent {
		s.Recent = append(s.Recent, RecentApplication{
			ID:            a.ID,
			MemberNumber:  a.MemberNumber,
			LoanType:      a.LoanType,
			LoanAmount:    a.LoanAmount,
			Status:        string(a.Status),
			WorkflowState: string(a.WorkflowState),
			CreatedAt:     a.CreatedAt,
		})
	}
	return &s, nil
}
