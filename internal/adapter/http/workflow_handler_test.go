package http

import (
	stdhttp "net/http"
	"testing"

	"coop-loan-backend/internal/adapter/middleware"
	"coop-loan-backend/internal/usecase/workflow"
)

func createMember(t *testing.T, s *server) {
	t.Helper()
	rec := s.do(t, stdhttp.MethodPost, "/members", map[string]any{"member_number": "123", "member_name": "Test User"})
	wantStatus(t, rec, stdhttp.StatusCreated)
}

func TestWorkflow_FullFlow(t *testing.T) {
	s := newServer(t)
	createMember(t, s)

	rec := s.do(t, stdhttp.MethodPost, "/members/123/loans", map[string]any{"loan_type": "Kharkhacho", "loan_amount": "50000"})
	wantStatus(t, rec, stdhttp.StatusCreated)
	var app workflow.ApplicationDTO
	decode(t, rec, &app)
	if app.WorkflowState != "started" || app.InterestRate != 14.5 {
		t.Fatalf("unexpected application: %+v", app)
	}

	// projects need collateral first
	projects := map[string]any{"projects": []map[string]any{{"project_name": "Goats", "self_investment": "1000", "requested_loan_amount": "4000"}}}
	rec = s.do(t, stdhttp.MethodPost, "/members/123/projects", projects)
	wantStatus(t, rec, stdhttp.StatusConflict)

	rec = s.do(t, stdhttp.MethodPost, "/members/123/collateral", map[string]any{
		"basic":      map[string]any{"monthly_saving": "500"},
		"properties": []map[string]any{{"owner_name": "Test User", "district": "Kathmandu"}},
	})
	wantStatus(t, rec, stdhttp.StatusOK)

	rec = s.do(t, stdhttp.MethodPost, "/members/123/projects", projects)
	wantStatus(t, rec, stdhttp.StatusCreated)
	var got []workflow.ProjectDTO
	decode(t, rec, &got)
	if len(got) != 1 || got[0].TotalCost != "5000" {
		t.Fatalf("unexpected projects: %+v", got)
	}

	rec = s.do(t, stdhttp.MethodPost, "/members/123/witnesses", map[string]any{"name": "Hari"})
	wantStatus(t, rec, stdhttp.StatusCreated)
	rec = s.do(t, stdhttp.MethodPost, "/members/123/guarantors", map[string]any{"name": "Shyam", "phone": "9841234567"})
	wantStatus(t, rec, stdhttp.StatusCreated)

	rec = s.do(t, stdhttp.MethodGet, "/members/123/loans/current", nil)
	wantStatus(t, rec, stdhttp.StatusOK)
	decode(t, rec, &app)
	if app.WorkflowState != "project_captured" {
		t.Fatalf("state = %s, want project_captured", app.WorkflowState)
	}

	rec = s.do(t, stdhttp.MethodPost, "/members/123/approve",
		map[string]any{"approved_by": "Manager", "approved_loan_amount": "45000"},
		middleware.HeaderActorID, "clerk.01")
	wantStatus(t, rec, stdhttp.StatusCreated)
	var ap workflow.ApprovalDTO
	decode(t, rec, &ap)
	if ap.Application.Status != "approved" {
		t.Fatalf("unexpected approval: %+v", ap)
	}
	stored, err := s.repos.Approvals.LatestByMember(t.Context(), "000000123")
	if err != nil || stored == nil || stored.EnteredBy != "clerk.01" {
		t.Fatalf("entered_by not taken from actor header: %+v, %v", stored, err)
	}

	rec = s.do(t, stdhttp.MethodGet, "/members/123/loans/current", nil)
	wantStatus(t, rec, stdhttp.StatusNotFound)
	rec = s.do(t, stdhttp.MethodPost, "/members/123/approve", map[string]any{"approved_by": "Manager"})
	wantStatus(t, rec, stdhttp.StatusNotFound)
}

func TestWorkflow_Validation(t *testing.T) {
	s := newServer(t)
	createMember(t, s)

	tests := []struct {
		name  string
		path  string
		body  map[string]any
		field string
	}{
		{"loan amount", "/members/123/loans", map[string]any{"loan_type": "Kharkhacho", "loan_amount": "fifty"}, "loan_amount"},
		{"loan type", "/members/123/loans", map[string]any{"loan_amount": "1"}, "loan_type"},
		{"income type", "/members/123/collateral", map[string]any{"income_expenses": []map[string]any{{"field": "Gift", "type": "gift"}}}, "income_expenses[0].type"},
		{"no projects", "/members/123/projects", map[string]any{"projects": []map[string]any{}}, "projects"},
		{"witness name", "/members/123/witnesses", map[string]any{"relation": "Friend"}, "name"},
		{"approver", "/members/123/approve", map[string]any{}, "approved_by"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, stdhttp.MethodPost, tt.path, tt.body)
			wantStatus(t, rec, stdhttp.StatusUnprocessableEntity)
			var er ErrorResponse
			decode(t, rec, &er)
			found := false
			for _, d := range er.Details {
				found = found || d.Field == tt.field
			}
			if !found {
				t.Fatalf("no detail for %s: %+v", tt.field, er.Details)
			}
		})
	}
}

func TestWorkflow_NotFoundAndReject(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, stdhttp.MethodPost, "/members/999/loans", map[string]any{"loan_type": "Kharkhacho", "loan_amount": "1"})
	wantStatus(t, rec, stdhttp.StatusNotFound)

	createMember(t, s)
	rec = s.do(t, stdhttp.MethodPost, "/members/123/loans", map[string]any{"loan_type": "Gold", "loan_amount": "1"})
	wantStatus(t, rec, stdhttp.StatusNotFound)

	rec = s.do(t, stdhttp.MethodPost, "/members/123/loans", map[string]any{"loan_type": "Kharkhacho", "loan_amount": "1"})
	wantStatus(t, rec, stdhttp.StatusCreated)
	rec = s.do(t, stdhttp.MethodPost, "/members/123/reject", map[string]any{"remarks": "insufficient collateral"})
	wantStatus(t, rec, stdhttp.StatusOK)
	var app workflow.ApplicationDTO
	decode(t, rec, &app)
	if app.Status != "rejected" {
		t.Fatalf("status = %s, want rejected", app.Status)
	}
	rec = s.do(t, stdhttp.MethodPost, "/members/123/reject", map[string]any{})
	wantStatus(t, rec, stdhttp.StatusNotFound)
}
