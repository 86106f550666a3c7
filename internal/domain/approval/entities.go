package approval

import (
	"time"

	"coop-loan-backend/pkg/apperr"
)

var (
	ErrNotFound = apperr.New(apperr.KindNotFound, "approval not found")
)

// Table: approval_info
type Approval struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ApprovalID string `gorm:"column:approval_id;type:char(32);not null;uniqueIndex:ux_approval_info_approval_id" json:"approval_id"`
	// FK to loan_info.id of the application this approval closed
	LoanID                  uint64    `gorm:"column:loan_id;not null;index" json:"-"`
	MemberNumber            string    `gorm:"column:member_number;size:50;not null;index" json:"member_number"`
	ApprovalDate            string    `gorm:"column:approval_date;size:50" json:"approval_date"`
	EnteredBy               string    `gorm:"column:entered_by;size:200" json:"entered_by"`
	EnteredPost             string    `gorm:"column:entered_post;size:100" json:"entered_post"`
	ApprovedBy              string    `gorm:"column:approved_by;size:200" json:"approved_by"`
	ApproverPost            string    `gorm:"column:approver_post;size:100" json:"approver_post"`
	Remarks                 string    `gorm:"column:remarks;type:text" json:"remarks"`
	ApprovedLoanAmount      string    `gorm:"column:approved_loan_amount;size:50" json:"approved_loan_amount"`
	ApprovedLoanAmountWords string    `gorm:"column:approved_loan_amount_words;type:text" json:"approved_loan_amount_words"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Approval) TableName() string { return "approval_info" }
