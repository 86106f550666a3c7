package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coop-loan-backend/internal/adapter/repository/mysql"
	domainLoan "coop-loan-backend/internal/domain/loan"
	domainMember "coop-loan-backend/internal/domain/member"
	"coop-loan-backend/internal/domain/uow"
	"coop-loan-backend/internal/infrastructure/blob"
	"coop-loan-backend/internal/infrastructure/metrics"
	"coop-loan-backend/internal/infrastructure/render"
	"coop-loan-backend/internal/testutil/dbtest"
	"coop-loan-backend/internal/usecase/aggregate"
	"coop-loan-backend/internal/usecase/dashboard"
	"coop-loan-backend/internal/usecase/importer"
	"coop-loan-backend/internal/usecase/member"
	"coop-loan-backend/internal/usecase/organization"
	"coop-loan-backend/internal/usecase/report"
	"coop-loan-backend/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

type server struct {
	e     *echo.Echo
	repos uow.Repos
}

// newServer wires every route over an in-memory store, blob store and a
// template directory holding a loan_application template.
func newServer(t *testing.T) *server {
	t.Helper()
	tx, db := dbtest.UoW(t)
	repos := mysql.ReposFor(db)
	if err := repos.Schemes.Create(context.Background(), &domainLoan.Scheme{LoanType: "Kharkhacho", InterestRate: 14.5}); err != nil {
		t.Fatalf("seed scheme: %v", err)
	}

	dir := t.TempDir()
	tpl, err := render.BuildDocx("{{ member_name }} asks for {{ loan_amount }}")
	if err != nil {
		t.Fatalf("build template: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "loan_application.docx"), tpl, 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	logger, _ := test.NewNullLogger()
	m := metrics.New(prometheus.NewRegistry())
	width := domainMember.DefaultNumberWidth
	agg := aggregate.NewUsecase(tx, width, m)
	h := Handlers{
		Common: NewHandler(dashboard.NewUsecase(tx, nil, 0, logger), organization.NewUsecase(tx), map[string]Pinger{
			"db": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		}),
		Members: NewMemberHandler(
			member.NewUsecase(tx, width, logger),
			importer.NewUsecase(tx, importer.Options{NumberWidth: width, PhoneRegion: "NP", Metrics: m, Logger: logger}),
		),
		Workflow: NewWorkflowHandler(workflow.NewUsecase(tx, width, m, logger)),
		Reports: NewReportHandler(report.NewUsecase(tx, agg, render.NewDocx(dir), blob.NewMemory(), report.Options{
			NumberWidth: width, Metrics: m, Logger: logger,
		})),
	}
	e := newEchoWithValidator()
	Register(e, h)
	return &server{e: e, repos: repos}
}

func (s *server) do(t *testing.T, method, path string, body any, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = mustJSON(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *server) upload(t *testing.T, path string, file []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "members.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(file); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(stdhttp.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status = %d, want %d; body=%s", rec.Code, code, rec.Body.String())
	}
}
