package project

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Table: project_detail
//
// The total budget is not stored; TotalCost derives it on every read.
type Record struct {
	ID                  uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MemberNumber        string    `gorm:"column:member_number;size:50;not null;index" json:"member_number"`
	ProjectName         string    `gorm:"column:project_name;size:200;not null" json:"project_name"`
	SelfInvestment      string    `gorm:"column:self_investment;size:50" json:"self_investment"`
	RequestedLoanAmount string    `gorm:"column:request_loan_amount;size:50" json:"requested_loan_amount"`
	Remarks             string    `gorm:"column:remarks;type:text" json:"remarks"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Record) TableName() string { return "project_detail" }

// ParseAmount reads a money figure; blank means zero.
func ParseAmount(v string) (decimal.Decimal, error) {
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}

// TotalCost is self investment plus requested loan amount. Figures that do
// not parse yield an empty total rather than a wrong one.
func (r Record) TotalCost() string {
	self, err := ParseAmount(r.SelfInvestment)
	if err != nil {
		return ""
	}
	req, err := ParseAmount(r.RequestedLoanAmount)
	if err != nil {
		return ""
	}
	return self.Add(req).String()
}
