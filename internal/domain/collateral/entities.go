package collateral

import "time"

// Entry types of IncomeExpense.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Table: collateral_basic. At most one row per member.
type Basic struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	MemberNumber  string    `gorm:"column:member_number;size:50;not null;uniqueIndex:ux_collateral_basic_member" json:"member_number"`
	MonthlySaving string    `gorm:"column:monthly_saving;size:50" json:"monthly_saving"`
	ChildSaving   string    `gorm:"column:child_saving;size:50" json:"child_saving"`
	TotalSaving   string    `gorm:"column:total_saving;size:50" json:"total_saving"`
	ShareAmount   string    `gorm:"column:share_amount;size:50" json:"share_amount"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Basic) TableName() string { return "collateral_basic" }

// Table: collateral_properties
type Property struct {
	ID                           uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	MemberNumber                 string `gorm:"column:member_number;size:50;not null;index" json:"member_number"`
	OwnerName                    string `gorm:"column:owner_name;size:200" json:"owner_name"`
	FatherOrSpouseName           string `gorm:"column:father_or_spouse_name;size:200" json:"father_or_spouse_name"`
	GrandfatherOrFatherInlawName string `gorm:"column:grandfather_or_father_inlaw_name;size:200" json:"grandfather_or_father_inlaw_name"`
	District                     string `gorm:"column:district;size:100" json:"district"`
	MunicipalityVDC              string `gorm:"column:municipality_vdc;size:100" json:"municipality_vdc"`
	SheetNo                      string `gorm:"column:sheet_no;size:50" json:"sheet_no"`
	WardNo                       string `gorm:"column:ward_no;size:10" json:"ward_no"`
	PlotNo                       string `gorm:"column:plot_no;size:50" json:"plot_no"`
	Area                         string `gorm:"column:area;size:50" json:"area"`
	LandType                     string `gorm:"column:land_type;size:100" json:"land_type"`
}

func (Property) TableName() string { return "collateral_properties" }

// Table: collateral_family_details
type FamilyMember struct {
	ID                uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	MemberNumber      string `gorm:"column:member_number;size:50;not null;index" json:"member_number"`
	Name              string `gorm:"column:name;size:200" json:"name"`
	Age               string `gorm:"column:age;size:10" json:"age"`
	Relation          string `gorm:"column:relation;size:100" json:"relation"`
	MemberOfOtherCoop string `gorm:"column:member_of_other_coop;size:200" json:"member_of_other_coop"`
	Occupation        string `gorm:"column:occupation;size:100" json:"occupation"`
	MonthlyIncome     string `gorm:"column:monthly_income;size:50" json:"monthly_income"`
}

func (FamilyMember) TableName() string { return "collateral_family_details" }

// Table: collateral_income_expense
type IncomeExpense struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	MemberNumber string `gorm:"column:member_number;size:50;not null;index" json:"member_number"`
	Field        string `gorm:"column:field;size:200" json:"field"`
	Amount       string `gorm:"column:amount;size:50" json:"amount"`
	Type         string `gorm:"column:type;size:20" json:"type"`
}

func (IncomeExpense) TableName() string { return "collateral_income_expense" }

// Table: collateral_affiliations
type Affiliation struct {
	ID                   uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	MemberNumber         string `gorm:"column:member_number;size:50;not null;index" json:"member_number"`
	Institution          string `gorm:"column:institution;size:200" json:"institution"`
	AddressOfInstitution string `gorm:"column:address_of_institution;size:200" json:"address_of_institution"`
	Position             string `gorm:"column:position;size:100" json:"position"`
	EstimatedIncome      string `gorm:"column:estimated_income;size:50" json:"estimated_income"`
	Remarks              string `gorm:"column:remarks;type:text" json:"remarks"`
}

func (Affiliation) TableName() string { return "collateral_affiliations" }

// Group is the full collateral picture of one member.
type Group struct {
	Basic          *Basic
	Properties     []Property
	Family         []FamilyMember
	IncomeExpenses []IncomeExpense
	Affiliations   []Affiliation
}
