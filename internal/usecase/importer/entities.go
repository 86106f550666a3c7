package importer

import (
	"coop-loan-backend/internal/infrastructure/metrics"
	"coop-loan-backend/pkg/apperr"

	"github.com/sirupsen/logrus"
)

const (
	TemplateSheet     = "Member Import Template"
	InstructionsSheet = "Instructions"
	ExportSheet       = "Members"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	ErrUnreadable       = apperr.New(apperr.KindValidation, "spreadsheet could not be read")
	ErrValidationFailed = apperr.New(apperr.KindValidation, "data validation failed")
)

type Options struct {
	NumberWidth int
	PhoneRegion string             // ISO region used to check phone columns, e.g. NP
	Metrics     *metrics.Metrics
	Logger      logrus.FieldLogger
}

// ValidationResult lists every problem found; warnings never block an import.
type ValidationResult struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

type ImportResult struct {
	OK       bool     `json:"ok"`
	Message  string   `json:"message"`
	Created  int      `json:"created"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
