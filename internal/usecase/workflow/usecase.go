package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainApproval "coop-loan-backend/internal/domain/approval"
	domainCollateral "coop-loan-backend/internal/domain/collateral"
	domainLoan "coop-loan-backend/internal/domain/loan"
	domainMember "coop-loan-backend/internal/domain/member"
	domainParty "coop-loan-backend/internal/domain/party"
	domainProject "coop-loan-backend/internal/domain/project"
	"coop-loan-backend/internal/domain/uow"
	"coop-loan-backend/internal/infrastructure/metrics"
	"coop-loan-backend/pkg/apperr"
	"coop-loan-backend/pkg/id"

	"github.com/sirupsen/logrus"
)

// Usecase threads one loan application through collateral, project and
// approval capture. The step reached is stored on the application row.
type Usecase struct {
	uow     uow.UnitOfWork
	width   int
	metrics *metrics.Metrics
	logger  logrus.FieldLogger
	now     func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, width int, m *metrics.Metrics, logger logrus.FieldLogger) *Usecase {
	return &Usecase{uow: tx, width: width, metrics: m, logger: logger, now: time.Now}
}

func (u *Usecase) number(raw string) string { return domainMember.NormalizeNumber(raw, u.width) }

// Start opens a new pending application. An older pending application stays
// pending but is no longer current.
func (u *Usecase) Start(ctx context.Context, memberNumber string, in StartInput) (*ApplicationDTO, error) {
	number := u.number(memberNumber)
	loanType := strings.TrimSpace(in.LoanType)
	if loanType == "" {
		return nil, fmt.Errorf("%w: loan_type is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.LoanAmount) == "" {
		return nil, fmt.Errorf("%w: loan_amount is required", ErrInvalidInput)
	}
	if err := checkAmounts(map[string]string{"loan_amount": in.LoanAmount}); err != nil {
		return nil, err
	}

	var a *domainLoan.Application
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Members.GetByNumber(ctx, number); err != nil {
			return err
		}
		scheme, err := r.Schemes.GetByLoanType(ctx, loanType)
		if err != nil {
			return fmt.Errorf("%w: %s", err, loanType)
		}
		a = &domainLoan.Application{
			MemberNumber:      number,
			LoanType:          scheme.LoanType,
			InterestRate:      scheme.InterestRate,
			LoanDuration:      in.LoanDuration,
			RepaymentDuration: in.RepaymentDuration,
			LoanAmount:        strings.TrimSpace(in.LoanAmount),
			LoanAmountInWords: in.LoanAmountInWords,
			CompletionYear:    in.CompletionYear,
			CompletionMonth:   in.CompletionMonth,
			CompletionDay:     in.CompletionDay,
			Status:            domainLoan.StatusPending,
			WorkflowState:     domainLoan.StateStarted,
			WorkflowUpdatedAt: u.now().UTC(),
		}
		return r.Loans.Create(ctx, a)
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindTransaction, "start loan application", err)
	}
	u.step("start", a)
	dto := toApplicationDTO(a)
	return &dto, nil
}

// CaptureCollateral stores the member's collateral picture against the
// current application. Basic figures are upserted, provided lists replace
// the stored ones.
func (u *Usecase) CaptureCollateral(ctx context.Context, memberNumber string, in CollateralInput) (*ApplicationDTO, error) {
	if err := validateCollateral(in); err != nil {
		return nil, err
	}
	number := u.number(memberNumber)

	var out ApplicationDTO
	err := u.uow.WithinApplicationTx(ctx, number, func(r uow.Repos, _ *domainMember.Member, a *domainLoan.Application) error {
		if err := a.Advance(domainLoan.StateCollateralCaptured, u.now()); err != nil {
			return err
		}
		if in.Basic != nil {
			if err := r.Collateral.UpsertBasic(ctx, &domainCollateral.Basic{
				MemberNumber:  number,
				MonthlySaving: in.Basic.MonthlySaving,
				ChildSaving:   in.Basic.ChildSaving,
				TotalSaving:   in.Basic.TotalSaving,
				ShareAmount:   in.Basic.ShareAmount,
			}); err != nil {
				return err
			}
		}
		if in.Properties != nil {
			if err := r.Collateral.ReplaceProperties(ctx, number, toProperties(number, in.Properties)); err != nil {
				return err
			}
		}
		if in.Family != nil {
			if err := r.Collateral.ReplaceFamily(ctx, number, toFamily(number, in.Family)); err != nil {
				return err
			}
		}
		if in.IncomeExpenses != nil {
			if err := r.Collateral.ReplaceIncomeExpenses(ctx, number, toIncomeExpenses(number, in.IncomeExpenses)); err != nil {
				return err
			}
		}
		if in.Affiliations != nil {
			if err := r.Collateral.ReplaceAffiliations(ctx, number, toAffiliations(number, in.Affiliations)); err != nil {
				return err
			}
		}
		if err := r.Loans.Save(ctx, a); err != nil {
			return err
		}
		out = toApplicationDTO(a)
		return nil
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindTransaction, "save collateral", err)
	}
	u.metrics.WorkflowStep("collateral")
	return &out, nil
}

// CaptureProjects appends purpose-of-loan records. Collateral must have been
// captured for the current application first.
func (u *Usecase) CaptureProjects(ctx context.Context, memberNumber string, in []ProjectInput) ([]ProjectDTO, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: at least one project is required", ErrInvalidInput)
	}
	for i, p := range in {
		if strings.TrimSpace(p.ProjectName) == "" {
			return nil, fmt.Errorf("%w: project %d: project_name is required", ErrInvalidInput, i+1)
		}
		if err := checkAmounts(map[string]string{
			"self_investment":       p.SelfInvestment,
			"requested_loan_amount": p.RequestedLoanAmount,
		}); err != nil {
			return nil, fmt.Errorf("project %d: %w", i+1, err)
		}
	}
	number := u.number(memberNumber)

	out := make([]ProjectDTO, 0, len(in))
	err := u.uow.WithinApplicationTx(ctx, number, func(r uow.Repos, _ *domainMember.Member, a *domainLoan.Application) error {
		if !a.WorkflowState.AtLeast(domainLoan.StateCollateralCaptured) {
			return fmt.Errorf("%w: capture collateral before projects", domainLoan.ErrInvalidTransition)
		}
		if err := a.Advance(domainLoan.StateProjectCaptured, u.now()); err != nil {
			return err
		}
		for _, p := range in {
			rec := &domainProject.Record{
				MemberNumber:        number,
				ProjectName:         strings.TrimSpace(p.ProjectName),
				SelfInvestment:      strings.TrimSpace(p.SelfInvestment),
				RequestedLoanAmount: strings.TrimSpace(p.RequestedLoanAmount),
				Remarks:             p.Remarks,
			}
			if err := r.Projects.Create(ctx, rec); err != nil {
				return err
			}
			out = append(out, ProjectDTO{
				ID:                  rec.ID,
				ProjectName:         rec.ProjectName,
				SelfInvestment:      rec.SelfInvestment,
				RequestedLoanAmount: rec.RequestedLoanAmount,
				TotalCost:           rec.TotalCost(),
				Remarks:             rec.Remarks,
			})
		}
		return r.Loans.Save(ctx, a)
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindTransaction, "save projects", err)
	}
	u.metrics.WorkflowStep("projects")
	return out, nil
}

func (u *Usecase) AddWitness(ctx context.Context, memberNumber string, in WitnessInput) (*domainParty.Witness, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: witness name is required", ErrInvalidInput)
	}
	number := u.number(memberNumber)
	w := &domainParty.Witness{
		MemberNumber: number,
		Name:         strings.TrimSpace(in.Name),
		Relation:     in.Relation,
		Address:      in.Address,
		Tole:         in.Tole,
		Ward:         in.Ward,
		Age:          in.Age,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Members.GetByNumber(ctx, number); err != nil {
			return err
		}
		return r.Parties.CreateWitness(ctx, w)
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindTransaction, "add witness", err)
	}
	u.metrics.WorkflowStep("witness")
	return w, nil
}

func (u *Usecase) AddGuarantor(ctx context.Context, memberNumber string, in GuarantorInput) (*domainParty.Guarantor, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: guarantor name is required", ErrInvalidInput)
	}
	number := u.number(memberNumber)
	g := &domainParty.Guarantor{
		MemberNumber:             number,
		GuarantorMemberNumber:    in.GuarantorMemberNumber,
		Name:                     strings.TrimSpace(in.Name),
		Address:                  in.Address,
		Ward:                     in.Ward,
		Phone:                    in.Phone,
		Citizenship:              in.Citizenship,
		Grandfather:              in.Grandfather,
		Father:                   in.Father,
		CitizenshipIssueDistrict: in.CitizenshipIssueDistrict,
		Age:                      in.Age,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Members.GetByNumber(ctx, number); err != nil {
			return err
		}
		return r.Parties.CreateGuarantor(ctx, g)
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindTransaction, "add guarantor", err)
	}
	u.metrics.WorkflowStep("guarantor")
	return g, nil
}

// Approve records the approval and closes the current application in one
// transaction: both writes commit or neither does.
func (u *Usecase) Approve(ctx context.Context, memberNumber string, in ApproveInput) (*ApprovalDTO, error) {
	if strings.TrimSpace(in.ApprovedBy) == "" {
		return nil, fmt.Errorf("%w: approved_by is required", ErrInvalidInput)
	}
	if err := checkAmounts(map[string]string{"approved_loan_amount": in.ApprovedLoanAmount}); err != nil {
		return nil, err
	}
	number := u.number(memberNumber)
	now := u.now()

	var dto ApprovalDTO
	err := u.uow.WithinApplicationTx(ctx, number, func(r uow.Repos, _ *domainMember.Member, a *domainLoan.Application) error {
		if err := a.Advance(domainLoan.StateApproved, now); err != nil {
			return err
		}
		date := strings.TrimSpace(in.ApprovalDate)
		if date == "" {
			date = now.Format("2006-01-02")
		}
		ap := &domainApproval.Approval{
			ApprovalID:              id.NewID32(),
			LoanID:                  a.ID,
			MemberNumber:            number,
			ApprovalDate:            date,
			EnteredBy:               in.EnteredBy,
			EnteredPost:             in.EnteredPost,
			ApprovedBy:              strings.TrimSpace(in.ApprovedBy),
			ApproverPost:            in.ApproverPost,
			Remarks:                 in.Remarks,
			ApprovedLoanAmount:      strings.TrimSpace(in.ApprovedLoanAmount),
			ApprovedLoanAmountWords: in.ApprovedLoanAmountWords,
		}
		if err := r.Approvals.Create(ctx, ap); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, a); err != nil {
			return err
		}
		dto = toApprovalDTO(ap, a)
		return nil
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindTransaction, "approve loan application", err)
	}
	u.metrics.WorkflowStep("approve")
	u.logger.WithFields(logrus.Fields{
		"member_number": number,
		"loan_id":       dto.Application.ID,
		"approval_id":   dto.ApprovalID,
	}).Info("loan application approved")
	return &dto, nil
}

// Reject closes the current pending application without approval.
func (u *Usecase) Reject(ctx context.Context, memberNumber, remarks string) (*ApplicationDTO, error) {
	number := u.number(memberNumber)
	var out ApplicationDTO
	err := u.uow.WithinApplicationTx(ctx, number, func(r uow.Repos, _ *domainMember.Member, a *domainLoan.Application) error {
		if err := a.Reject(u.now()); err != nil {
			return err
		}
		a.Remarks = remarks
		if err := r.Loans.Save(ctx, a); err != nil {
			return err
		}
		out = toApplicationDTO(a)
		return nil
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindTransaction, "reject loan application", err)
	}
	u.metrics.WorkflowStep("reject")
	return &out, nil
}

// Current returns the application being assembled for the member.
func (u *Usecase) Current(ctx context.Context, memberNumber string) (*ApplicationDTO, error) {
	number := u.number(memberNumber)
	var out ApplicationDTO
	err := u.uow.WithinReadTx(ctx, func(r uow.Repos) error {
		if _, err := r.Members.GetByNumber(ctx, number); err != nil {
			return err
		}
		a, err := r.Loans.CurrentByMember(ctx, number)
		if err != nil {
			return err
		}
		out = toApplicationDTO(a)
		return nil
	})
	if err != nil {
		return nil, apperr.Ensure(apperr.KindInternal, "load current application", err)
	}
	return &out, nil
}

func (u *Usecase) step(name string, a *domainLoan.Application) {
	u.metrics.WorkflowStep(name)
	u.logger.WithFields(logrus.Fields{
		"member_number":  a.MemberNumber,
		"loan_id":        a.ID,
		"workflow_state": a.WorkflowState,
	}).Info("loan workflow " + name)
}
