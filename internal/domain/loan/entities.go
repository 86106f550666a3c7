package loan

import (
	"time"

	"coop-loan-backend/pkg/apperr"
)

var (
	ErrNotFound          = apperr.New(apperr.KindNotFound, "loan application not found")
	ErrNoApplication     = apperr.New(apperr.KindNotFound, "member has no loan application")
	ErrNoCurrent         = apperr.New(apperr.KindNotFound, "member has no loan application in progress")
	ErrSchemeNotFound    = apperr.New(apperr.KindNotFound, "loan scheme not found")
	ErrSchemeExists      = apperr.New(apperr.KindConflict, "loan scheme already exists")
	ErrAlreadyApproved   = apperr.New(apperr.KindInvalidTransition, "loan application already approved")
	ErrInvalidTransition = apperr.New(apperr.KindInvalidTransition, "invalid workflow transition")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusDisbursed Status = "disbursed"
	StatusCompleted Status = "completed"
)

// Table: loan_schemes. Reference data consulted by loan type name, never by FK.
type Scheme struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanType     string    `gorm:"column:loan_type;size:100;not null;uniqueIndex:ux_loan_schemes_type" json:"loan_type"`
	InterestRate float64   `gorm:"column:interest_rate;not null" json:"interest_rate"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Scheme) TableName() string { return "loan_schemes" }

// Table: loan_info
type Application struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MemberNumber      string    `gorm:"column:member_number;size:50;not null;index:idx_loan_info_member_created,priority:1" json:"member_number"`
	LoanType          string    `gorm:"column:loan_type;size:100;not null" json:"loan_type"`
	InterestRate      float64   `gorm:"column:interest_rate;not null" json:"interest_rate"`
	LoanDuration      string    `gorm:"column:loan_duration;size:50" json:"loan_duration"`
	RepaymentDuration string    `gorm:"column:repayment_duration;size:50" json:"repayment_duration"`
	LoanAmount        string    `gorm:"column:loan_amount;size:50;not null" json:"loan_amount"`
	LoanAmountInWords string    `gorm:"column:loan_amount_in_words;type:text" json:"loan_amount_in_words"`
	CompletionYear    string    `gorm:"column:loan_completion_year;size:10" json:"loan_completion_year"`
	CompletionMonth   string    `gorm:"column:loan_completion_month;size:10" json:"loan_completion_month"`
	CompletionDay     string    `gorm:"column:loan_completion_day;size:10" json:"loan_completion_day"`
	Status            Status    `gorm:"column:status;size:20;not null;default:'pending';index" json:"status"`
	WorkflowState     State     `gorm:"column:workflow_state;size:32;not null;default:'started'" json:"workflow_state"`
	WorkflowUpdatedAt time.Time `gorm:"column:workflow_updated_at" json:"workflow_updated_at"`
	Remarks           string    `gorm:"column:remarks;type:text" json:"remarks,omitempty"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime;index:idx_loan_info_member_created,priority:2" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "loan_info" }
