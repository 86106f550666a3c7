package member

import (
	"time"

	domainLoan "coop-loan-backend/internal/domain/loan"
	domainMember "coop-loan-backend/internal/domain/member"
	"coop-loan-backend/pkg/apperr"
)

const dateLayout = "2006-01-02"

var ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid member input")

type CreateMemberInput struct {
	Date             string `json:"date"` // YYYY-MM-DD, defaults to today
	MemberNumber     string `json:"member_number" validate:"required,max=50"`
	MemberName       string `json:"member_name" validate:"required,max=200"`
	MemberNameNepali string `json:"member_name_nepali" validate:"max=200"`
	Phone            string `json:"phone" validate:"max=20"`
	DobBS            string `json:"dob_bs" validate:"max=20"`
	CitizenshipNo    string `json:"citizenship_no" validate:"max=50"`
	NationalIDNo     string `json:"national_id_no" validate:"max=50"`
	Email            string `json:"email" validate:"omitempty,email"`
	Profession       string `json:"profession"`
	FacebookDetail   string `json:"facebook_detail"`
	WhatsappDetail   string `json:"whatsapp_detail"`
	FatherName       string `json:"father_name"`
	GrandfatherName  string `json:"grandfather_name"`
	SpouseName       string `json:"spouse_name"`
	SpousePhone      string `json:"spouse_phone" validate:"max=20"`
	Address          string `json:"address"`
	WardNo           string `json:"ward_no" validate:"max=10"`
	BusinessName     string `json:"business_name"`
	BusinessAddress  string `json:"business_address"`
	Job              string `json:"job"`
	JobAddress       string `json:"job_address"`
}

type MemberDTO struct {
	MemberNumber     string    `json:"member_number"`
	MemberName       string    `json:"member_name"`
	MemberNameNepali string    `json:"member_name_nepali,omitempty"`
	Date             string    `json:"date"`
	Phone            string    `json:"phone,omitempty"`
	DobBS            string    `json:"dob_bs,omitempty"`
	CitizenshipNo    string    `json:"citizenship_no,omitempty"`
	NationalIDNo     string    `json:"national_id_no,omitempty"`
	Email            string    `json:"email,omitempty"`
	Profession       string    `json:"profession,omitempty"`
	FacebookDetail   string    `json:"facebook_detail,omitempty"`
	WhatsappDetail   string    `json:"whatsapp_detail,omitempty"`
	FatherName       string    `json:"father_name,omitempty"`
	GrandfatherName  string    `json:"grandfather_name,omitempty"`
	SpouseName       string    `json:"spouse_name,omitempty"`
	SpousePhone      string    `json:"spouse_phone,omitempty"`
	Address          string    `json:"address,omitempty"`
	WardNo           string    `json:"ward_no,omitempty"`
	BusinessName     string    `json:"business_name,omitempty"`
	BusinessAddress  string    `json:"business_address,omitempty"`
	Job              string    `json:"job,omitempty"`
	JobAddress       string    `json:"job_address,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type CreateSchemeInput struct {
	LoanType     string  `json:"loan_type" validate:"required,max=100"`
	InterestRate float64 `json:"interest_rate" validate:"gte=0,lte=100"`
}

type SchemeDTO struct {
	LoanType     string  `json:"loan_type"`
	InterestRate float64 `json:"interest_rate"`
}

func toDTO(m *domainMember.Member) MemberDTO {
	return MemberDTO{
		MemberNumber:     m.MemberNumber,
		MemberName:       m.MemberName,
		MemberNameNepali: m.MemberNameNepali,
		Date:             m.Date.Format(dateLayout),
		Phone:            m.Phone,
		DobBS:            m.DobBS,
		CitizenshipNo:    m.CitizenshipNo,
		NationalIDNo:     m.NationalIDNo,
		Email:            m.Email,
		Profession:       m.Profession,
		FacebookDetail:   m.FacebookDetail,
		WhatsappDetail:   m.WhatsappDetail,
		FatherName:       m.FatherName,
		GrandfatherName:  m.GrandfatherName,
		SpouseName:       m.SpouseName,
		SpousePhone:      m.SpousePhone,
		Address:          m.Address,
		WardNo:           m.WardNo,
		BusinessName:     m.BusinessName,
		BusinessAddress:  m.BusinessAddress,
		Job:              m.Job,
		JobAddress:       m.JobAddress,
		CreatedAt:        m.CreatedAt,
	}
}

func toSchemeDTO(s *domainLoan.Scheme) SchemeDTO {
	return SchemeDTO{LoanType: s.LoanType, InterestRate: s.InterestRate}
}
