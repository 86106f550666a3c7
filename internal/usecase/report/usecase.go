package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"coop-loan-backend/internal/config"
	domainArtifact "coop-loan-backend/internal/domain/artifact"
	domainMember "coop-loan-backend/internal/domain/member"
	"coop-loan-backend/internal/domain/uow"
	"coop-loan-backend/internal/infrastructure/blob"
	"coop-loan-backend/internal/infrastructure/metrics"
	"coop-loan-backend/internal/usecase/aggregate"
	"coop-loan-backend/pkg/apperr"
	"coop-loan-backend/pkg/id"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("coop-loan-backend/report")

const defaultConcurrency = 4

// Usecase renders the documents of a member's loan file and keeps the
// ledger of every document produced.
type Usecase struct {
	uow        uow.UnitOfWork
	aggregator Aggregator
	renderer   Renderer
	store      blob.Store
	catalog    Catalog
	limit      int
	width      int
	metrics    *metrics.Metrics
	logger     logrus.FieldLogger
	now        func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, agg Aggregator, r Renderer, store blob.Store, opts Options) *Usecase {
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Usecase{
		uow:        tx,
		aggregator: agg,
		renderer:   r,
		store:      store,
		catalog:    opts.Catalog,
		limit:      opts.Concurrency,
		width:      opts.NumberWidth,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		now:        time.Now,
	}
}

func (u *Usecase) Types() []string { return u.catalog.Types() }

// Generate renders every requested report type from one aggregated context.
// A failing type does not stop the others; only rendered and stored files
// get a ledger row.
func (u *Usecase) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	number := domainMember.NormalizeNumber(in.MemberNumber, u.width)
	if number == "" {
		return nil, fmt.Errorf("%w: member_number is required", ErrInvalidInput)
	}
	if len(in.ReportTypes) == 0 {
		return nil, fmt.Errorf("%w: at least one report type is required", ErrInvalidInput)
	}

	ctx, span := tracer.Start(ctx, "report.Generate", trace.WithAttributes(
		attribute.String("member.number", number),
		attribute.StringSlice("report.types", in.ReportTypes),
	))
	defer span.End()

	data, err := u.aggregator.Build(ctx, aggregate.BuildInput{
		MemberNumber:  number,
		PreparerName:  in.PreparerName,
		PreparerTitle: in.PreparerTitle,
		ApproverName:  in.ApproverName,
		ApproverTitle: in.ApproverTitle,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	day := u.now()
	out := &GenerateResult{MemberNumber: number}
	seen := make(map[string]bool, len(in.ReportTypes))
	for _, t := range in.ReportTypes {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		r := Result{ReportType: t}
		if _, ok := u.catalog[t]; !ok {
			r.Status = StatusSkipped
			r.Error = "unknown report type"
		}
		out.Results = append(out.Results, r)
	}

	g := new(errgroup.Group)
	g.SetLimit(u.limit)
	for i := range out.Results {
		r := &out.Results[i]
		if r.Status == StatusSkipped {
			continue
		}
		g.Go(func() error {
			u.produce(ctx, r, number, data, day)
			return nil
		})
	}
	_ = g.Wait()

	u.appendLedger(ctx, out.Results, number, generatedBy(in), day)

	for _, r := range out.Results {
		switch r.Status {
		case StatusGenerated:
			out.Generated++
			u.metrics.ReportGenerated(r.ReportType)
		case StatusFailed:
			out.Failed++
		case StatusSkipped:
			out.Skipped++
		}
	}
	span.SetAttributes(
		attribute.Int("report.generated", out.Generated),
		attribute.Int("report.failed", out.Failed),
	)
	if out.Failed > 0 {
		span.SetStatus(codes.Error, "some reports failed")
	}
	return out, nil
}

// produce renders and stores one report; r.Status tells the caller whether
// the file is in place.
func (u *Usecase) produce(ctx context.Context, r *Result, number string, data aggregate.Context, day time.Time) {
	start := time.Now()
	doc, err := u.renderer.Render(ctx, u.catalog[r.ReportType], data)
	u.metrics.ObserveRender(r.ReportType, start)
	if err != nil {
		u.fail(r, number, "render", err)
		return
	}

	name := domainArtifact.FileName(r.ReportType, number, day)
	_, err = u.store.Put(ctx, name, bytes.NewReader(doc), blob.PutOptions{
		ContentType: ContentType,
		Metadata:    map[string]string{"member_number": number, "report_type": r.ReportType},
	})
	if err != nil {
		u.fail(r, number, "store", err)
		return
	}
	r.Status = StatusGenerated
	r.FileName = name
}

// appendLedger records the stored files in request order, one row each.
func (u *Usecase) appendLedger(ctx context.Context, results []Result, number, by string, day time.Time) {
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	for i := range results {
		r := &results[i]
		if r.Status != StatusGenerated {
			continue
		}
		a := &domainArtifact.Artifact{
			ArtifactID:    id.NewID32(),
			MemberNumber:  number,
			ReportType:    r.ReportType,
			FilePath:      r.FileName,
			GeneratedBy:   by,
			GeneratedDate: date,
		}
		err := u.uow.WithinTx(ctx, func(repos uow.Repos) error {
			return repos.Artifacts.Create(ctx, a)
		})
		if err != nil {
			u.fail(r, number, "ledger", apperr.Wrap(apperr.KindTransaction, "record report", err))
			continue
		}
		r.ArtifactID = a.ArtifactID
		u.logger.WithFields(logrus.Fields{
			"member_number": number,
			"report_type":   r.ReportType,
			"file":          r.FileName,
		}).Info("report recorded")
	}
}

func (u *Usecase) fail(r *Result, number, stage string, err error) {
	r.Status = StatusFailed
	r.FileName = ""
	r.Error = err.Error()
	u.metrics.ReportFailed(r.ReportType, stage)
	config.LogError(u.logger, "report", "Generate", stage+" "+r.ReportType, number, err)
}

func generatedBy(in GenerateInput) string {
	if s := strings.TrimSpace(in.GeneratedBy); s != "" {
		return s
	}
	return strings.TrimSpace(in.PreparerName)
}

// History lists ledger rows newest first; an empty member lists all members.
func (u *Usecase) History(ctx context.Context, memberNumber string) ([]ArtifactDTO, error) {
	number := ""
	if strings.TrimSpace(memberNumber) != "" {
		number = domainMember.NormalizeNumber(memberNumber, u.width)
	}
	var rows []domainArtifact.Artifact
	err := u.uow.WithinReadTx(ctx, func(r uow.Repos) error {
		var err error
		rows, err = r.Artifacts.List(ctx, number)
		return err
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list reports", err)
	}
	out := make([]ArtifactDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, toArtifactDTO(a))
	}
	return out, nil
}

// Open streams a recorded report file. Only names present in the ledger can
// be opened.
func (u *Usecase) Open(ctx context.Context, fileName string) (blob.Info, io.ReadCloser, error) {
	if fileName == "" || path.Base(fileName) != fileName || !strings.HasSuffix(fileName, domainArtifact.DocumentExt) {
		return blob.Info{}, nil, fmt.Errorf("%w: %s", ErrUnknownArtifact, fileName)
	}
	var n int64
	err := u.uow.WithinReadTx(ctx, func(r uow.Repos) error {
		var err error
		n, err = r.Artifacts.CountByFile(ctx, fileName)
		return err
	})
	if err != nil {
		return blob.Info{}, nil, apperr.Wrap(apperr.KindInternal, "look up report", err)
	}
	if n == 0 {
		return blob.Info{}, nil, fmt.Errorf("%w: %s", ErrUnknownArtifact, fileName)
	}
	info, rc, err := u.store.Get(ctx, fileName)
	if errors.Is(err, blob.ErrNotFound) {
		return blob.Info{}, nil, fmt.Errorf("%w: %s", ErrUnknownArtifact, fileName)
	}
	if err != nil {
		return blob.Info{}, nil, apperr.Wrap(apperr.KindInternal, "open report", err)
	}
	return info, rc, nil
}
