package importer

import (
	domainMember "coop-loan-backend/internal/domain/member"
)

const (
	colDate         = "date"
	colMemberNumber = "member_number"
	colMemberName   = "member_name"
	colPhone        = "phone"
	colSpousePhone  = "spouse_phone"
)

var requiredHeaders = []string{colDate, colMemberNumber, colMemberName}

type field struct {
	get func(m *domainMember.Member) string
	set func(m *domainMember.Member, v string)
}

// columns is the spreadsheet layout shared by the template, export and import.
// date and member_number are handled separately and carry no field.
var columns = []struct {
	header string
	field  *field
}{
	{colDate, nil},
	{colMemberNumber, nil},
	{colMemberName, str(func(m *domainMember.Member) *string { return &m.MemberName })},
	{colPhone, str(func(m *domainMember.Member) *string { return &m.Phone })},
	{"dob_bs", str(func(m *domainMember.Member) *string { return &m.DobBS })},
	{"citizenship_no", str(func(m *domainMember.Member) *string { return &m.CitizenshipNo })},
	{"email", str(func(m *domainMember.Member) *string { return &m.Email })},
	{"profession", str(func(m *domainMember.Member) *string { return &m.Profession })},
	{"facebook_detail", str(func(m *domainMember.Member) *string { return &m.FacebookDetail })},
	{"whatsapp_detail", str(func(m *domainMember.Member) *string { return &m.WhatsappDetail })},
	{"father_name", str(func(m *domainMember.Member) *string { return &m.FatherName })},
	{"grandfather_name", str(func(m *domainMember.Member) *string { return &m.GrandfatherName })},
	{"spouse_name", str(func(m *domainMember.Member) *string { return &m.SpouseName })},
	{colSpousePhone, str(func(m *domainMember.Member) *string { return &m.SpousePhone })},
	{"address", str(func(m *domainMember.Member) *string { return &m.Address })},
	{"ward_no", str(func(m *domainMember.Member) *string { return &m.WardNo })},
	{"business_name", str(func(m *domainMember.Member) *string { return &m.BusinessName })},
	{"business_address", str(func(m *domainMember.Member) *string { return &m.BusinessAddress })},
	{"job_name", str(func(m *domainMember.Member) *string { return &m.Job })},
	{"job_address", str(func(m *domainMember.Member) *string { return &m.JobAddress })},
}

func str(ptr func(m *domainMember.Member) *string) *field {
	return &field{
		get: func(m *domainMember.Member) string { return *ptr(m) },
		set: func(m *domainMember.Member, v string) { *ptr(m) = v },
	}
}

// Headers returns the column headers in spreadsheet order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

var sampleRow = []string{
	"2024-01-15",
	"001000001",
	"राम बहादुर श्रेष्ठ",
	"9841234567",
	"2040-05-15",
	"12-01-75-12345",
	"ram@example.com",
	"व्यवसायी",
	"ram.shrestha",
	"9841234567",
	"सुर्य बहादुर श्रेष्ठ",
	"धन बहादुर श्रेष्ठ",
	"सीता श्रेष्ठ",
	"9841234568",
	"काठमाडौं",
	"5",
	"श्रेष्ठ इन्टरप्राइजेज",
	"काठमाडौं",
	"ABC Company",
	"काठमाडौं",
}

var instructions = [][2]string{
	{"Excel Import Instructions", ""},
	{"", ""},
	{"Required Fields:", ""},
	{"1. date", "Format: YYYY-MM-DD (e.g., 2024-01-15). Missing dates default to today"},
	{"2. member_number", "Unique member number (e.g., 000000001). Keep the column as text"},
	{"3. member_name", "Member's full name"},
	{"", ""},
	{"Optional Fields:", ""},
	{"- phone", "Contact number"},
	{"- dob_bs", "Date of birth in BS (e.g., 2040-05-15)"},
	{"- citizenship_no", "Citizenship number"},
	{"- email", "Email address"},
	{"- All other fields are optional", ""},
	{"", ""},
	{"Important Notes:", ""},
	{"1. Do not modify header row", ""},
	{"2. Delete sample data before importing", ""},
	{"3. Date format must be YYYY-MM-DD", ""},
	{"4. Member numbers must be unique within the file", ""},
	{"5. Existing members are updated, new numbers are created", ""},
	{"6. Save file as .xlsx format", ""},
}
