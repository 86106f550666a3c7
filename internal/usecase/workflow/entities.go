package workflow

import (
	"time"

	domainApproval "coop-loan-backend/internal/domain/approval"
	domainLoan "coop-loan-backend/internal/domain/loan"
	"coop-loan-backend/pkg/apperr"
)

var ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid workflow input")

type StartInput struct {
	LoanType          string `json:"loan_type" validate:"required,max=100"`
	LoanDuration      string `json:"loan_duration" validate:"max=50"`
	RepaymentDuration string `json:"repayment_duration" validate:"max=50"`
	LoanAmount        string `json:"loan_amount" validate:"required,amount"`
	LoanAmountInWords string `json:"loan_amount_in_words"`
	CompletionYear    string `json:"loan_completion_year" validate:"max=10"`
	CompletionMonth   string `json:"loan_completion_month" validate:"max=10"`
	CompletionDay     string `json:"loan_completion_day" validate:"max=10"`
}

type BasicInput struct {
	MonthlySaving string `json:"monthly_saving" validate:"omitempty,amount"`
	ChildSaving   string `json:"child_saving" validate:"omitempty,amount"`
	TotalSaving   string `json:"total_saving" validate:"omitempty,amount"`
	ShareAmount   string `json:"share_amount" validate:"omitempty,amount"`
}

type PropertyInput struct {
	OwnerName                    string `json:"owner_name" validate:"required"`
	FatherOrSpouseName           string `json:"father_or_spouse_name"`
	GrandfatherOrFatherInlawName string `json:"grandfather_or_father_inlaw_name"`
	District                     string `json:"district"`
	MunicipalityVDC              string `json:"municipality_vdc"`
	SheetNo                      string `json:"sheet_no"`
	WardNo                       string `json:"ward_no"`
	PlotNo                       string `json:"plot_no"`
	Area                         string `json:"area"`
	LandType                     string `json:"land_type"`
}

type FamilyInput struct {
	Name              string `json:"name" validate:"required"`
	Age               string `json:"age"`
	Relation          string `json:"relation"`
	MemberOfOtherCoop string `json:"member_of_other_coop"`
	Occupation        string `json:"occupation"`
	MonthlyIncome     string `json:"monthly_income" validate:"omitempty,amount"`
}

type IncomeExpenseInput struct {
	Field  string `json:"field" validate:"required"`
	Amount string `json:"amount" validate:"omitempty,amount"`
	Type   string `json:"type" validate:"required,oneof=income expense"`
}

type AffiliationInput struct {
	Institution          string `json:"institution" validate:"required"`
	AddressOfInstitution string `json:"address_of_institution"`
	Position             string `json:"position"`
	EstimatedIncome      string `json:"estimated_income" validate:"omitempty,amount"`
	Remarks              string `json:"remarks"`
}

// CollateralInput: a nil list leaves the stored group untouched, an empty
// list clears it.
type CollateralInput struct {
	Basic          *BasicInput          `json:"basic"`
	Properties     []PropertyInput      `json:"properties" validate:"dive"`
	Family         []FamilyInput        `json:"family" validate:"dive"`
	IncomeExpenses []IncomeExpenseInput `json:"income_expenses" validate:"dive"`
	Affiliations   []AffiliationInput   `json:"affiliations" validate:"dive"`
}

type ProjectInput struct {
	ProjectName         string `json:"project_name" validate:"required,max=200"`
	SelfInvestment      string `json:"self_investment" validate:"omitempty,amount"`
	RequestedLoanAmount string `json:"requested_loan_amount" validate:"omitempty,amount"`
	Remarks             string `json:"remarks"`
}

type WitnessInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Relation string `json:"relation"`
	Address  string `json:"address"`
	Tole     string `json:"tole"`
	Ward     string `json:"ward" validate:"max=10"`
	Age      string `json:"age" validate:"max=10"`
}

type GuarantorInput struct {
	GuarantorMemberNumber    string `json:"guarantor_member_number"`
	Name                     string `json:"name" validate:"required,max=200"`
	Address                  string `json:"address"`
	Ward                     string `json:"ward" validate:"max=10"`
	Phone                    string `json:"phone" validate:"max=20"`
	Citizenship              string `json:"citizenship"`
	Grandfather              string `json:"grandfather"`
	Father                   string `json:"father"`
	CitizenshipIssueDistrict string `json:"citizenship_issue_district"`
	Age                      string `json:"age" validate:"max=10"`
}

type ApproveInput struct {
	ApprovalDate            string `json:"approval_date" validate:"max=50"`
	EnteredBy               string `json:"entered_by"`
	EnteredPost             string `json:"entered_post"`
	ApprovedBy              string `json:"approved_by" validate:"required"`
	ApproverPost            string `json:"approver_post"`
	Remarks                 string `json:"remarks"`
	ApprovedLoanAmount      string `json:"approved_loan_amount" validate:"omitempty,amount"`
	ApprovedLoanAmountWords string `json:"approved_loan_amount_words"`
}

type ApplicationDTO struct {
	ID                uint64    `json:"id"`
	MemberNumber      string    `json:"member_number"`
	LoanType          string    `json:"loan_type"`
	InterestRate      float64   `json:"interest_rate"`
	LoanDuration      string    `json:"loan_duration"`
	RepaymentDuration string    `json:"repayment_duration"`
	LoanAmount        string    `json:"loan_amount"`
	LoanAmountInWords string    `json:"loan_amount_in_words"`
	CompletionYear    string    `json:"loan_completion_year"`
	CompletionMonth   string    `json:"loan_completion_month"`
	CompletionDay     string    `json:"loan_completion_day"`
	Status            string    `json:"status"`
	WorkflowState     string    `json:"workflow_state"`
	CreatedAt         time.Time `json:"created_at"`
}

type ProjectDTO struct {
	ID                  uint64 `json:"id"`
	ProjectName         string `json:"project_name"`
	SelfInvestment      string `json:"self_investment"`
	RequestedLoanAmount string `json:"requested_loan_amount"`
	TotalCost           string `json:"total_cost"`
	Remarks             string `json:"remarks"`
}

type ApprovalDTO struct {
	ApprovalID         string         `json:"approval_id"`
	MemberNumber       string         `json:"member_number"`
	ApprovedBy         string         `json:"approved_by"`
	ApprovedLoanAmount string         `json:"approved_loan_amount"`
	ApprovalDate       string         `json:"approval_date"`
	Application        ApplicationDTO `json:"application"`
}

func toApplicationDTO(a *domainLoan.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:                a.ID,
		MemberNumber:      a.MemberNumber,
		LoanType:          a.LoanType,
		InterestRate:      a.InterestRate,
		LoanDuration:      a.LoanDuration,
		RepaymentDuration: a.RepaymentDuration,
		LoanAmount:        a.LoanAmount,
		LoanAmountInWords: a.LoanAmountInWords,
		CompletionYear:    a.CompletionYear,
		CompletionMonth:   a.CompletionMonth,
		CompletionDay:     a.CompletionDay,
		Status:            string(a.Status),
		WorkflowState:     string(a.WorkflowState),
		CreatedAt:         a.CreatedAt,
	}
}

func toApprovalDTO(ap *domainApproval.Approval, a *domainLoan.Application) ApprovalDTO {
	return ApprovalDTO{
		ApprovalID:         ap.ApprovalID,
		MemberNumber:       ap.MemberNumber,
		ApprovedBy:         ap.ApprovedBy,
		ApprovedLoanAmount: ap.ApprovedLoanAmount,
		ApprovalDate:       ap.ApprovalDate,
		Application:        toApplicationDTO(a),
	}
}
