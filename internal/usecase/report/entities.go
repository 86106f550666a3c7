package report

import (
	"context"
	"time"

	domainArtifact "coop-loan-backend/internal/domain/artifact"
	"coop-loan-backend/internal/infrastructure/metrics"
	"coop-loan-backend/internal/usecase/aggregate"
	"coop-loan-backend/pkg/apperr"

	"github.com/sirupsen/logrus"
)

const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var (
	ErrInvalidInput    = apperr.New(apperr.KindValidation, "invalid report request")
	ErrUnknownArtifact = apperr.New(apperr.KindNotFound, "report file not found")
)

// Renderer turns a template and a flat context into a document.
type Renderer interface {
	Render(ctx context.Context, templateName string, data map[string]any) ([]byte, error)
}

// Aggregator builds the rendering context of one member.
type Aggregator interface {
	Build(ctx context.Context, in aggregate.BuildInput) (aggregate.Context, error)
}

type Options struct {
	Catalog     Catalog
	Concurrency int
	NumberWidth int
	Metrics     *metrics.Metrics
	Logger      logrus.FieldLogger
}

type GenerateInput struct {
	MemberNumber  string   `json:"member_number" validate:"required"`
	ReportTypes   []string `json:"report_types" validate:"required,min=1"`
	PreparerName  string   `json:"entered_by"`
	PreparerTitle string   `json:"entered_post"`
	ApproverName  string   `json:"approved_by"`
	ApproverTitle string   `json:"approver_post"`
	GeneratedBy   string   `json:"generated_by"`
}

const (
	StatusGenerated = "generated"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// Result is the outcome of one requested report type.
type Result struct {
	ReportType string `json:"report_type"`
	Status     string `json:"status"`
	FileName   string `json:"file_name,omitempty"`
	ArtifactID string `json:"artifact_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

type GenerateResult struct {
	MemberNumber string   `json:"member_number"`
	Generated    int      `json:"generated"`
	Failed       int      `json:"failed"`
	Skipped      int      `json:"skipped"`
	Results      []Result `json:"results"`
}

type ArtifactDTO struct {
	ArtifactID    string    `json:"artifact_id"`
	MemberNumber  string    `json:"member_number"`
	ReportType    string    `json:"report_type"`
	FileName      string    `json:"file_name"`
	GeneratedBy   string    `json:"generated_by"`
	GeneratedDate string    `json:"generated_date"`
	CreatedAt     time.Time `json:"created_at"`
}

func toArtifactDTO(a domainArtifact.Artifact) ArtifactDTO {
	return ArtifactDTO{
		ArtifactID:    a.ArtifactID,
		MemberNumber:  a.MemberNumber,
		ReportType:    a.ReportType,
		FileName:      a.FilePath,
		GeneratedBy:   a.GeneratedBy,
		GeneratedDate: a.GeneratedDate.Format("2006-01-02"),
		CreatedAt:     a.CreatedAt,
	}
}
