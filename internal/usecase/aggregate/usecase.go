package aggregate

import (
	"context"
	"time"

	domainApproval "coop-loan-backend/internal/domain/approval"
	domainCollateral "coop-loan-backend/internal/domain/collateral"
	domainLoan "coop-loan-backend/internal/domain/loan"
	domainMember "coop-loan-backend/internal/domain/member"
	domainOrganization "coop-loan-backend/internal/domain/organization"
	domainParty "coop-loan-backend/internal/domain/party"
	domainProject "coop-loan-backend/internal/domain/project"
	"coop-loan-backend/internal/domain/uow"
	"coop-loan-backend/internal/infrastructure/metrics"
	"coop-loan-backend/pkg/apperr"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("coop-loan-backend/aggregate")

type Usecase struct {
	uow     uow.UnitOfWork
	width   int
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, width int, m *metrics.Metrics) *Usecase {
	return &Usecase{uow: tx, width: width, metrics: m, now: time.Now}
}

// snapshot is everything read for one member inside one read transaction.
type snapshot struct {
	org        *domainOrganization.Profile
	member     *domainMember.Member
	loan       *domainLoan.Application
	approval   *domainApproval.Approval
	basic      *domainCollateral.Basic
	properties []domainCollateral.Property
	family     []domainCollateral.FamilyMember
	incomeExp  []domainCollateral.IncomeExpense
	affils     []domainCollateral.Affiliation
	projects   []domainProject.Record
	witnesses  []domainParty.Witness
	guarantors []domainParty.Guarantor
}

// Build reads every entity group of the member in one read-only transaction
// and flattens it. It fails with NotFound when the member is unknown or has
// never applied for a loan.
func (u *Usecase) Build(ctx context.Context, in BuildInput) (Context, error) {
	start := time.Now()
	number := domainMember.NormalizeNumber(in.MemberNumber, u.width)
	ctx, span := tracer.Start(ctx, "aggregate.Build")
	span.SetAttributes(attribute.String("member.number", number))
	defer span.End()

	var s snapshot
	err := u.uow.WithinReadTx(ctx, func(r uow.Repos) error {
		var err error
		if s.member, err = r.Members.GetByNumber(ctx, number); err != nil {
			return err
		}
		if s.loan, err = r.Loans.LatestByMember(ctx, number); err != nil {
			return err
		}
		if s.org, err = r.Organization.Get(ctx); err != nil {
			return err
		}
		if s.approval, err = r.Approvals.LatestByMember(ctx, number); err != nil {
			return err
		}
		if s.basic, err = r.Collateral.GetBasic(ctx, number); err != nil {
			return err
		}
		if s.properties, err = r.Collateral.ListProperties(ctx, number); err != nil {
			return err
		}
		if s.family, err = r.Collateral.ListFamily(ctx, number); err != nil {
			return err
		}
		if s.incomeExp, err = r.Collateral.ListIncomeExpenses(ctx, number); err != nil {
			return err
		}
		if s.affils, err = r.Collateral.ListAffiliations(ctx, number); err != nil {
			return err
		}
		if s.projects, err = r.Projects.ListByMember(ctx, number); err != nil {
			return err
		}
		if s.witnesses, err = r.Parties.ListWitnesses(ctx, number); err != nil {
			return err
		}
		s.guarantors, err = r.Parties.ListGuarantors(ctx, number)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, apperr.Ensure(apperr.KindInternal, "aggregate member records", err)
	}

	out := s.flatten(in, u.now())
	u.metrics.ObserveAggregate(start)
	return out, nil
}

func (s *snapshot) flatten(in BuildInput, now time.Time) Context {
	m, l := s.member, s.loan
	c := Context{
		"company_name":    "",
		"company_address": "",

		"member_number":      m.MemberNumber,
		"member_name":        m.MemberName,
		"member_name_nepali": m.MemberNameNepali,
		"phone":              m.Phone,
		"email":              m.Email,
		"citizenship_no":     m.CitizenshipNo,
		"national_id_no":     m.NationalIDNo,
		"father_name":        m.FatherName,
		"grandfather_name":   m.GrandfatherName,
		"spouse_name":        m.SpouseName,
		"spouse_phone":       m.SpousePhone,
		"address":            m.Address,
		"ward_no":            m.WardNo,
		"profession":         m.Profession,
		"business_name":      m.BusinessName,
		"business_address":   m.BusinessAddress,
		"job":                m.Job,
		"job_address":        m.JobAddress,

		"loan_type":             l.LoanType,
		"interest_rate":         l.InterestRate,
		"loan_duration":         l.LoanDuration,
		"repayment_duration":    l.RepaymentDuration,
		"loan_amount":           l.LoanAmount,
		"loan_amount_in_words":  l.LoanAmountInWords,
		"loan_completion_year":  l.CompletionYear,
		"loan_completion_month": l.CompletionMonth,
		"loan_completion_day":   l.CompletionDay,
		"loan_status":           string(l.Status),

		"approval_date":              "",
		"approved_loan_amount":       "",
		"approved_loan_amount_words": "",
		"remarks":                    "",

		"entered_by":    in.PreparerName,
		"entered_post":  in.PreparerTitle,
		"approved_by":   in.ApproverName,
		"approver_post": in.ApproverTitle,

		"monthly_saving": "",
		"child_saving":   "",
		"total_saving":   "",
		"share_amount":   "",

		"generated_date": now.Format("2006-01-02"),
	}
	if s.org != nil {
		c["company_name"] = s.org.CompanyName
		c["company_address"] = s.org.Address
	}
	if a := s.approval; a != nil {
		c["approval_date"] = a.ApprovalDate
		c["approved_loan_amount"] = a.ApprovedLoanAmount
		c["approved_loan_amount_words"] = a.ApprovedLoanAmountWords
		c["remarks"] = a.Remarks
		fallback(c, "entered_by", a.EnteredBy)
		fallback(c, "entered_post", a.EnteredPost)
		fallback(c, "approved_by", a.ApprovedBy)
		fallback(c, "approver_post", a.ApproverPost)
	}
	if b := s.basic; b != nil {
		c["monthly_saving"] = b.MonthlySaving
		c["child_saving"] = b.ChildSaving
		c["total_saving"] = b.TotalSaving
		c["share_amount"] = b.ShareAmount
	}

	properties := make([]map[string]any, 0, len(s.properties))
	for _, p := range s.properties {
		properties = append(properties, map[string]any{
			"owner_name":                       p.OwnerName,
			"father_or_spouse_name":            p.FatherOrSpouseName,
			"grandfather_or_father_inlaw_name": p.GrandfatherOrFatherInlawName,
			"district":                         p.District,
			"municipality_vdc":                 p.MunicipalityVDC,
			"sheet_no":                         p.SheetNo,
			"ward_no":                          p.WardNo,
			"plot_no":                          p.PlotNo,
			"area":                             p.Area,
			"land_type":                        p.LandType,
		})
	}
	c["properties"] = properties

	family := make([]map[string]any, 0, len(s.family))
	for _, f := range s.family {
		family = append(family, map[string]any{
			"name":                 f.Name,
			"age":                  f.Age,
			"relation":             f.Relation,
			"member_of_other_coop": f.MemberOfOtherCoop,
			"occupation":           f.Occupation,
			"monthly_income":       f.MonthlyIncome,
		})
	}
	c["family_members"] = family

	income, expense := make([]map[string]any, 0), make([]map[string]any, 0)
	for _, ie := range s.incomeExp {
		item := map[string]any{"field": ie.Field, "amount": ie.Amount}
		switch ie.Type {
		case domainCollateral.TypeIncome:
			income = append(income, item)
		case domainCollateral.TypeExpense:
			expense = append(expense, item)
		}
	}
	c["income_items"] = income
	c["expense_items"] = expense

	affiliations := make([]map[string]any, 0, len(s.affils))
	for _, a := range s.affils {
		affiliations = append(affiliations, map[string]any{
			"institution":            a.Institution,
			"address_of_institution": a.AddressOfInstitution,
			"position":               a.Position,
			"estimated_income":       a.EstimatedIncome,
			"remarks":                a.Remarks,
		})
	}
	c["affiliations"] = affiliations

	projects := make([]map[string]any, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, map[string]any{
			"project_name":          p.ProjectName,
			"self_investment":       p.SelfInvestment,
			"requested_loan_amount": p.RequestedLoanAmount,
			"total_cost":            p.TotalCost(),
			"remarks":               p.Remarks,
		})
	}
	c["projects"] = projects

	witnesses := make([]map[string]any, 0, len(s.witnesses))
	for _, w := range s.witnesses {
		witnesses = append(witnesses, map[string]any{
			"witness_name": w.Name,
			"relation":     w.Relation,
			"address":      w.Address,
			"tole":         w.Tole,
			"ward":         w.Ward,
			"age":          w.Age,
		})
	}
	c["witnesses"] = witnesses

	guarantors := make([]map[string]any, 0, len(s.guarantors))
	for _, g := range s.guarantors {
		guarantors = append(guarantors, map[string]any{
			"guarantor_member_number":              g.GuarantorMemberNumber,
			"guarantor_name":                       g.Name,
			"guarantor_address":                    g.Address,
			"guarantor_ward":                       g.Ward,
			"guarantor_phone":                      g.Phone,
			"guarantor_citizenship":                g.Citizenship,
			"guarantor_grandfather":                g.Grandfather,
			"guarantor_father":                     g.Father,
			"guarantor_citizenship_issue_district": g.CitizenshipIssueDistrict,
			"guarantor_age":                        g.Age,
		})
	}
	c["guarantors"] = guarantors
	return c
}

func fallback(c Context, key, v string) {
	if c[key] == "" {
		c[key] = v
	}
}
