package http

import (
	stdhttp "net/http"
	"strings"
	"testing"

	"coop-loan-backend/internal/adapter/middleware"
	"coop-loan-backend/internal/infrastructure/render"
	"coop-loan-backend/internal/usecase/report"
)

func TestReports_GenerateHistoryDownload(t *testing.T) {
	s := newServer(t)
	createMember(t, s)
	rec := s.do(t, stdhttp.MethodPost, "/members/123/loans", map[string]any{"loan_type": "Kharkhacho", "loan_amount": "50000"})
	wantStatus(t, rec, stdhttp.StatusCreated)

	rec = s.do(t, stdhttp.MethodPost, "/reports",
		map[string]any{"member_number": "123", "report_types": []string{"loan_application", "tamasuk", "nope"}},
		middleware.HeaderActorID, "clerk.01")
	wantStatus(t, rec, stdhttp.StatusOK)
	var res report.GenerateResult
	decode(t, rec, &res)
	if res.Generated != 1 || res.Failed != 1 || res.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	file := res.Results[0].FileName
	if !strings.HasPrefix(file, "loan_application_000000123_") {
		t.Fatalf("file name = %q", file)
	}

	rec = s.do(t, stdhttp.MethodGet, "/reports/history?member_number=123", nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	var hist []report.ArtifactDTO
	decode(t, rec, &hist)
	if len(hist) != 1 || hist[0].GeneratedBy != "clerk.01" || hist[0].FileName != file {
		t.Fatalf("unexpected history: %+v", hist)
	}

	rec = s.do(t, stdhttp.MethodGet, "/reports/files/"+file, nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != report.ContentType {
		t.Fatalf("Content-Type = %q", ct)
	}
	text, err := render.DocumentText(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("download is not a document: %v", err)
	}
	if text != "Test User asks for 50000" {
		t.Fatalf("document text = %q", text)
	}

	rec = s.do(t, stdhttp.MethodGet, "/reports/files/tamasuk_000000123_20990101.docx", nil)
	wantStatus(t, rec, stdhttp.StatusNotFound)
}

func TestReports_Errors(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, stdhttp.MethodPost, "/reports", map[string]any{"member_number": "123"})
	wantStatus(t, rec, stdhttp.StatusUnprocessableEntity)

	rec = s.do(t, stdhttp.MethodPost, "/reports", map[string]any{"member_number": "123", "report_types": []string{"tamasuk"}})
	wantStatus(t, rec, stdhttp.StatusNotFound)

	createMember(t, s)
	rec = s.do(t, stdhttp.MethodPost, "/reports", map[string]any{"member_number": "123", "report_types": []string{"tamasuk"}})
	wantStatus(t, rec, stdhttp.StatusNotFound)
}

func TestReports_Types(t *testing.T) {
	s := newServer(t)
	rec := s.do(t, stdhttp.MethodGet, "/reports/types", nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	var body struct {
		ReportTypes []string `json:"report_types"`
	}
	decode(t, rec, &body)
	if len(body.ReportTypes) != 6 {
		t.Fatalf("report types = %v", body.ReportTypes)
	}
}
