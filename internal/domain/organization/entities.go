package organization

import "context"

// Table: organization_profile. The deployment holds a single row.
type Profile struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	CompanyName string `gorm:"column:company_name;size:200;not null" json:"company_name"`
	Address     string `gorm:"column:address;type:text" json:"address"`
	LogoPath    string `gorm:"column:logo_path;size:300" json:"logo_path"`
}

func (Profile) TableName() string { return "organization_profile" }

type Repository interface {
	// Get returns (nil, nil) when no profile is configured.
	Get(ctx context.Context) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}
