package aggregate

// BuildInput names the member and the people printed on the documents.
// Blank actors fall back to the member's latest approval.
type BuildInput struct {
	MemberNumber  string `json:"member_number" validate:"required"`
	PreparerName  string `json:"entered_by"`
	PreparerTitle string `json:"entered_post"`
	ApproverName  string `json:"approved_by"`
	ApproverTitle string `json:"approver_post"`
}

// Context is the flat rendering context: strings, numbers and lists of
// flat records only.
type Context map[string]any

// Keys every Context carries, in addition to the list keys below.
var ScalarKeys = []string{
	"company_name", "company_address",
	"member_number", "member_name", "member_name_nepali", "phone", "email",
	"citizenship_no", "national_id_no", "father_name", "grandfather_name",
	"spouse_name", "spouse_phone", "address", "ward_no", "profession",
	"business_name", "business_address", "job", "job_address",
	"loan_type", "interest_rate", "loan_duration", "repayment_duration",
	"loan_amount", "loan_amount_in_words", "loan_completion_year",
	"loan_completion_month", "loan_completion_day", "loan_status",
	"approval_date", "approved_loan_amount", "approved_loan_amount_words", "remarks",
	"entered_by", "entered_post", "approved_by", "approver_post",
	"monthly_saving", "child_saving", "total_saving", "share_amount",
	"generated_date",
}

var ListKeys = []string{
	"properties", "family_members", "income_items", "expense_items",
	"affiliations", "projects", "witnesses", "guarantors",
}
