package member

import (
	"strings"
	"time"

	"coop-loan-backend/pkg/apperr"
)

var (
	ErrNotFound      = apperr.New(apperr.KindNotFound, "member not found")
	ErrAlreadyExists = apperr.New(apperr.KindConflict, "member number already registered")
)

// DefaultNumberWidth is the canonical length numeric member numbers are padded to.
const DefaultNumberWidth = 9

// Table: member_info
type Member struct {
	ID               uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Date             time.Time `gorm:"column:date;type:date;not null" json:"date"`
	MemberNumber     string    `gorm:"column:member_number;size:50;not null;uniqueIndex:ux_member_info_number" json:"member_number"`
	MemberName       string    `gorm:"column:member_name;size:200;not null" json:"member_name"`
	MemberNameNepali string    `gorm:"column:member_name_nepali;size:200" json:"member_name_nepali"`
	Phone            string    `gorm:"column:phone;size:20" json:"phone"`
	DobBS            string    `gorm:"column:dob_bs;size:20" json:"dob_bs"`
	CitizenshipNo    string    `gorm:"column:citizenship_no;size:50" json:"citizenship_no"`
	NationalIDNo     string    `gorm:"column:national_id_no;size:50" json:"national_id_no"`
	Email            string    `gorm:"column:email;size:254" json:"email"`
	Profession       string    `gorm:"column:profession;size:100" json:"profession"`
	FacebookDetail   string    `gorm:"column:facebook_detail;size:100" json:"facebook_detail"`
	WhatsappDetail   string    `gorm:"column:whatsapp_detail;size:100" json:"whatsapp_detail"`
	GrandfatherName  string    `gorm:"column:grandfather_name;size:200" json:"grandfather_name"`
	FatherName       string    `gorm:"column:father_name;size:200" json:"father_name"`
	SpouseName       string    `gorm:"column:spouse_name;size:200" json:"spouse_name"`
	SpousePhone      string    `gorm:"column:spouse_phone;size:20" json:"spouse_phone"`
	Address          string    `gorm:"column:address;size:300" json:"address"`
	WardNo           string    `gorm:"column:ward_no;size:10" json:"ward_no"`
	BusinessName     string    `gorm:"column:business_name;size:200" json:"business_name"`
	BusinessAddress  string    `gorm:"column:business_address;size:300" json:"business_address"`
	Job              string    `gorm:"column:job;size:200" json:"job"`
	JobAddress       string    `gorm:"column:job_address;size:300" json:"job_address"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string { return "member_info" }

// NormalizeNumber trims the raw member number and, when it is purely numeric,
// left-pads it with zeros to width. Non-numeric numbers are kept as-is.
func NormalizeNumber(raw string, width int) string {
	n := strings.TrimSpace(raw)
	if n == "" || !isDigits(n) {
		return n
	}
	if width <= 0 {
		width = DefaultNumberWidth
	}
	if len(n) < width {
		n = strings.Repeat("0", width-len(n)) + n
	}
	return n
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
