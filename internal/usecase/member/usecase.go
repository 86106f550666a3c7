package member

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coop-loan-backend/internal/config"
	domainLoan "coop-loan-backend/internal/domain/loan"
	domainMember "coop-loan-backend/internal/domain/member"
	"coop-loan-backend/internal/domain/uow"
	"coop-loan-backend/pkg/apperr"

	"github.com/sirupsen/logrus"
)

type Usecase struct {
	uow    uow.UnitOfWork
	width  int
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewUsecase: width is the canonical member number length (see domainMember.NormalizeNumber).
func NewUsecase(tx uow.UnitOfWork, width int, logger logrus.FieldLogger) *Usecase {
	return &Usecase{uow: tx, width: width, logger: logger, now: time.Now}
}

func (u *Usecase) Create(ctx context.Context, in CreateMemberInput) (*MemberDTO, error) {
	number := domainMember.NormalizeNumber(in.MemberNumber, u.width)
	name := strings.TrimSpace(in.MemberName)
	if number == "" || name == "" {
		return nil, fmt.Errorf("%w: member_number and member_name are required", ErrInvalidInput)
	}
	date := u.today()
	if d := strings.TrimSpace(in.Date); d != "" {
		parsed, err := time.Parse(dateLayout, d)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidInput, d)
		}
		date = parsed
	}

	m := &domainMember.Member{
		Date:             date,
		MemberNumber:     number,
		MemberName:       name,
		MemberNameNepali: in.MemberNameNepali,
		Phone:            in.Phone,
		DobBS:            in.DobBS,
		CitizenshipNo:    in.CitizenshipNo,
		NationalIDNo:     in.NationalIDNo,
		Email:            in.Email,
		Profession:       in.Profession,
		FacebookDetail:   in.FacebookDetail,
		WhatsappDetail:   in.WhatsappDetail,
		FatherName:       in.FatherName,
		GrandfatherName:  in.GrandfatherName,
		SpouseName:       in.SpouseName,
		SpousePhone:      in.SpousePhone,
		Address:          in.Address,
		WardNo:           in.WardNo,
		BusinessName:     in.BusinessName,
		BusinessAddress:  in.BusinessAddress,
		Job:              in.Job,
		JobAddress:       in.JobAddress,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Members.Create(ctx, m)
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindTransaction, "create member", err)
	}
	dto := toDTO(m)
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, number string) (*MemberDTO, error) {
	number = domainMember.NormalizeNumber(number, u.width)
	var dto MemberDTO
	err := u.uow.WithinReadTx(ctx, func(r uow.Repos) error {
		m, err := r.Members.GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		dto = toDTO(m)
		return nil
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindInternal, "load member", err)
	}
	return &dto, nil
}

func (u *Usecase) List(ctx context.Context) ([]MemberDTO, error) {
	var out []MemberDTO
	err := u.uow.WithinReadTx(ctx, func(r uow.Repos) error {
		ms, err := r.Members.List(ctx)
		if err != nil {
			return err
		}
		out = make([]MemberDTO, 0, len(ms))
		for i := range ms {
			out = append(out, toDTO(&ms[i]))
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindInternal, "list members", err)
	}
	return out, nil
}

// Delete removes the member and every record owned by it in one transaction.
// Ledger rows go with the member; stored files are left in place.
func (u *Usecase) Delete(ctx context.Context, number string) error {
	number = domainMember.NormalizeNumber(number, u.width)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Members.GetByNumber(ctx, number); err != nil {
			return err
		}
		steps := []struct {
			name string
			fn   func(context.Context, string) error
		}{
			{"artifacts", r.Artifacts.DeleteByMember},
			{"parties", r.Parties.DeleteByMember},
			{"approvals", r.Approvals.DeleteByMember},
			{"projects", r.Projects.DeleteByMember},
			{"collateral", r.Collateral.DeleteByMember},
			{"loans", r.Loans.DeleteByMember},
		}
		for _, s := range steps {
			if err := s.fn(ctx, number); err != nil {
				return fmt.Errorf("delete %s of %s: %w", s.name, number, err)
			}
		}
		return r.Members.Delete(ctx, number)
	})
	if err != nil {
		config.LogError(u.logger, "member", "Delete", "cascade delete", number, err)
		return apperr.Ensure(apperr.KindTransaction, "delete member", err)
	}
	u.logger.WithField("member_number", number).Info("member deleted")
	return nil
}

func (u *Usecase) CreateScheme(ctx context.Context, in CreateSchemeInput) (*SchemeDTO, error) {
	loanType := strings.TrimSpace(in.LoanType)
	if loanType == "" || in.InterestRate < 0 {
		return nil, fmt.Errorf("%w: loan_type is required and interest_rate must not be negative", ErrInvalidInput)
	}
	s := &domainLoan.Scheme{LoanType: loanType, InterestRate: in.InterestRate}
	if err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Schemes.Create(ctx, s)
	}); err != nil {
		return nil, apperr.Ensure(apperr.KindTransaction, "create loan scheme", err)
	}
	dto := toSchemeDTO(s)
	return &dto, nil
}

func (u *Usecase) ListSchemes(ctx context.Context) ([]SchemeDTO, error) {
	var out []SchemeDTO
	err := u.uow.WithinReadTx(ctx, func(r uow.Repos) error {
		ss, err := r.Schemes.List(ctx)
		if err != nil {
			return err
		}
		out = make([]SchemeDTO, 0, len(ss))
		for i := range ss {
			out = append(out, toSchemeDTO(&ss[i]))
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindInternal, "list loan schemes", err)
	}
	return out, nil
}

func (u *Usecase) today() time.Time {
	y, m, d := u.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
