package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"coop-loan-backend/internal/config"
	domainMember "coop-loan-backend/internal/domain/member"
	"coop-loan-backend/internal/domain/uow"
	"coop-loan-backend/internal/infrastructure/metrics"
	"coop-loan-backend/pkg/apperr"

	"github.com/sirupsen/logrus"
	"github.com/ttacon/libphonenumber"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("coop-loan-backend/importer")

type Usecase struct {
	uow     uow.UnitOfWork
	width   int
	region  string
	metrics *metrics.Metrics
	logger  logrus.FieldLogger
	now     func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, opts Options) *Usecase {
	if opts.NumberWidth <= 0 {
		opts.NumberWidth = domainMember.DefaultNumberWidth
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Usecase{
		uow:     tx,
		width:   opts.NumberWidth,
		region:  opts.PhoneRegion,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		now:     time.Now,
	}
}

// Validate checks headers first and stops there when any required one is
// missing. Otherwise every non-blank row is checked and all problems are
// collected. The returned error is only set when r itself fails.
func (u *Usecase) Validate(ctx context.Context, r io.Reader) (*ValidationResult, error) {
	_, span := tracer.Start(ctx, "importer.Validate")
	defer span.End()

	b, err := io.ReadAll(r)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Wrap(apperr.KindValidation, "read upload", err)
	}
	s, err := readSheet(b)
	if err != nil {
		return &ValidationResult{Errors: []string{fmt.Sprintf("Error reading Excel file: %v", err)}}, nil
	}
	res := u.validate(s)
	span.SetAttributes(
		attribute.Int("import.errors", len(res.Errors)),
		attribute.Int("import.warnings", len(res.Warnings)),
	)
	return res, nil
}

func (u *Usecase) validate(s *sheet) *ValidationResult {
	res := &ValidationResult{Errors: []string{}, Warnings: []string{}}
	if s.empty {
		res.Errors = append(res.Errors, "Excel file is empty. No data to import.")
		return res
	}
	for _, h := range requiredHeaders {
		if s.col(h) < 0 {
			res.Errors = append(res.Errors, "Missing required column: "+h)
		}
	}
	if len(res.Errors) > 0 {
		return res
	}

	numCol, nameCol, dateCol := s.col(colMemberNumber), s.col(colMemberName), s.col(colDate)
	phoneCols := []int{s.col(colPhone), s.col(colSpousePhone)}

	seen := map[string]int{}
	inspected := 0
	for _, rw := range s.rows {
		if rw.blank() {
			continue
		}
		inspected++

		number := domainMember.NormalizeNumber(rw.get(numCol), u.width)
		switch first, dup := seen[number]; {
		case number == "":
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: member_number is required", rw.num))
		case dup:
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: duplicate member_number %s (first seen in row %d)", rw.num, number, first))
		default:
			seen[number] = rw.num
		}

		if rw.get(nameCol) == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: member_name is required", rw.num))
		}

		if d := rw.get(dateCol); d == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Row %d: date is missing, today's date will be used", rw.num))
		} else if _, err := parseDate(d, rw.numericDate); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: invalid date %q, use YYYY-MM-DD", rw.num, d))
		}

		for _, c := range phoneCols {
			if p := rw.get(c); p != "" && !u.validPhone(p) {
				res.Warnings = append(res.Warnings, fmt.Sprintf("Row %d: phone %q is not a valid %s number", rw.num, p, u.region))
			}
		}
	}
	if inspected == 0 {
		res.Errors = append(res.Errors, "Excel file is empty. No data to import.")
	}
	res.OK = len(res.Errors) == 0
	return res
}

func (u *Usecase) validPhone(p string) bool {
	if u.region == "" {
		return true
	}
	num, err := libphonenumber.Parse(p, u.region)
	if err != nil {
		return false
	}
	return libphonenumber.IsValidNumber(num)
}

// Import validates the workbook and, only when it is clean, upserts every
// row inside one transaction. Any failure mid-loop rolls back every row.
func (u *Usecase) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	start := u.now()
	ctx, span := tracer.Start(ctx, "importer.Import", trace.WithAttributes(attribute.Int("member.number_width", u.width)))
	defer span.End()

	b, err := io.ReadAll(r)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Wrap(apperr.KindValidation, "read upload", err)
	}
	s, err := readSheet(b)
	if err != nil {
		u.metrics.ImportFinished("rejected", 0, 0, 0, start)
		return &ImportResult{
			Message: "Data validation failed!",
			Errors:  []string{fmt.Sprintf("Error reading Excel file: %v", err)},
		}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	v := u.validate(s)
	if !v.OK {
		u.metrics.ImportFinished("rejected", 0, 0, 0, start)
		span.SetStatus(codes.Error, "validation failed")
		return &ImportResult{Message: "Data validation failed!", Errors: v.Errors, Warnings: v.Warnings}, ErrValidationFailed
	}

	res := &ImportResult{Errors: []string{}, Warnings: v.Warnings}
	err = u.uow.WithinTx(ctx, func(repos uow.Repos) error {
		res.Created, res.Updated, res.Skipped = 0, 0, 0
		return u.apply(ctx, repos, s, res)
	})
	if err != nil {
		config.LogError(u.logger, "importer", "Import", "upsert members", nil, err)
		u.metrics.ImportFinished("failed", 0, 0, 0, start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "import rolled back")
		return &ImportResult{
			Message:  "Import failed: " + apperr.Message(err),
			Errors:   []string{},
			Warnings: v.Warnings,
		}, apperr.Wrap(apperr.KindTransaction, "import rolled back", err)
	}

	res.OK = true
	res.Message = fmt.Sprintf("Import successful! Created: %d, Updated: %d, Skipped: %d", res.Created, res.Updated, res.Skipped)
	u.metrics.ImportFinished("committed", res.Created, res.Updated, res.Skipped, start)
	span.SetAttributes(
		attribute.Int("import.created", res.Created),
		attribute.Int("import.updated", res.Updated),
		attribute.Int("import.skipped", res.Skipped),
	)
	u.logger.WithFields(logrus.Fields{
		"created": res.Created,
		"updated": res.Updated,
		"skipped": res.Skipped,
	}).Info("member import committed")
	return res, nil
}

func (u *Usecase) apply(ctx context.Context, repos uow.Repos, s *sheet, res *ImportResult) error {
	numCol, dateCol := s.col(colMemberNumber), s.col(colDate)
	for _, rw := range s.rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		number := domainMember.NormalizeNumber(rw.get(numCol), u.width)
		if rw.blank() || number == "" {
			res.Skipped++
			continue
		}

		date, err := parseDate(rw.get(dateCol), rw.numericDate)
		if err != nil {
			date = u.today()
		}

		m, err := repos.Members.GetByNumber(ctx, number)
		switch {
		case err == nil:
			m.Date = date
			u.fill(m, s, rw)
			if err := repos.Members.Save(ctx, m); err != nil {
				return fmt.Errorf("row %d: %w", rw.num, err)
			}
			res.Updated++
		case errors.Is(err, domainMember.ErrNotFound):
			m = &domainMember.Member{MemberNumber: number, Date: date}
			u.fill(m, s, rw)
			if err := repos.Members.Create(ctx, m); err != nil {
				return fmt.Errorf("row %d: %w", rw.num, err)
			}
			res.Created++
		default:
			return fmt.Errorf("row %d: %w", rw.num, err)
		}
	}
	return nil
}

// fill copies every column present in the sheet; absent columns leave the
// member's existing value alone.
func (u *Usecase) fill(m *domainMember.Member, s *sheet, rw row) {
	for _, c := range columns {
		if c.field == nil {
			continue
		}
		if idx := s.col(c.header); idx >= 0 {
			c.field.set(m, rw.get(idx))
		}
	}
}

func (u *Usecase) today() time.Time {
	y, m, d := u.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
