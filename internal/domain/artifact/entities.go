// Package artifact is the append-only ledger of generated documents.
package artifact

import (
	"fmt"
	"time"
)

// Table: report_tracking
type Artifact struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ArtifactID    string    `gorm:"column:artifact_id;type:char(32);not null;uniqueIndex:ux_report_tracking_artifact_id" json:"artifact_id"`
	MemberNumber  string    `gorm:"column:member_number;size:50;not null;index" json:"member_number"`
	ReportType    string    `gorm:"column:report_type;size:100;not null" json:"report_type"`
	FilePath      string    `gorm:"column:file_path;size:500;not null;index" json:"file_path"`
	GeneratedBy   string    `gorm:"column:generated_by;size:200" json:"generated_by"`
	GeneratedDate time.Time `gorm:"column:generated_date;type:date;not null;index" json:"generated_date"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Artifact) TableName() string { return "report_tracking" }

// DocumentExt is the extension of every rendered document.
const DocumentExt = ".docx"

// FileName is the deterministic output identity of a report: re-generating the
// same type for the same member on the same day yields the same name.
func FileName(reportType, memberNumber string, day time.Time) string {
	return fmt.Sprintf("%s_%s_%s%s", reportType, memberNumber, day.Format("20060102"), DocumentExt)
}
