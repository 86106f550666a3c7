package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestHealth_ReportsDeps(t *testing.T) {
	s := newServer(t)
	start := time.Now().UTC()

	rec := s.do(t, stdhttp.MethodGet, "/health", nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var body struct {
		Status string            `json:"status"`
		Deps   map[string]string `json:"deps"`
		Time   string            `json:"time"`
	}
	decode(t, rec, &body)
	if body.Status != "ok" || body.Deps["db"] != "ok" {
		t.Fatalf("unexpected body: %+v", body)
	}
	ts, err := time.Parse(time.RFC3339Nano, body.Time)
	if err != nil {
		t.Fatalf("time %q is not RFC3339Nano: %v", body.Time, err)
	}
	if ts.Before(start.Add(-time.Second)) || ts.Location() != time.UTC {
		t.Fatalf("unexpected time %v", ts)
	}
}

func TestHealth_Degraded(t *testing.T) {
	h := NewHandler(nil, nil, map[string]Pinger{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(stdhttp.MethodGet, "/health", nil), rec)
	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	wantStatus(t, rec, stdhttp.StatusServiceUnavailable)

	var body struct {
		Status string            `json:"status"`
		Deps   map[string]string `json:"deps"`
	}
	decode(t, rec, &body)
	if body.Status != "degraded" || body.Deps["redis"] != "connection refused" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestOrganizationAndDashboard(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, stdhttp.MethodPut, "/organization", map[string]any{"company_name": ""})
	wantStatus(t, rec, stdhttp.StatusUnprocessableEntity)

	rec = s.do(t, stdhttp.MethodPut, "/organization", map[string]any{"company_name": "Sahakari Ltd", "address": "Lalitpur"})
	wantStatus(t, rec, stdhttp.StatusOK)

	rec = s.do(t, stdhttp.MethodGet, "/organization", nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	var p struct {
		CompanyName string `json:"company_name"`
	}
	decode(t, rec, &p)
	if p.CompanyName != "Sahakari Ltd" {
		t.Fatalf("company_name = %q", p.CompanyName)
	}

	rec = s.do(t, stdhttp.MethodPost, "/members", map[string]any{"member_number": "7", "member_name": "Sita"})
	wantStatus(t, rec, stdhttp.StatusCreated)

	rec = s.do(t, stdhttp.MethodGet, "/dashboard", nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	var d struct {
		TotalMembers int64 `json:"total_members"`
		Recent       []any `json:"recent"`
	}
	decode(t, rec, &d)
	if d.TotalMembers != 1 || d.Recent == nil {
		t.Fatalf("unexpected dashboard: %+v", d)
	}
}
