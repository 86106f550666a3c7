package http

import (
	"context"
	"net/http"
	"time"

	"coop-loan-backend/internal/usecase/dashboard"
	"coop-loan-backend/internal/usecase/organization"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing service answers.
type Pinger func(ctx context.Context) error

// Handler serves the small read-mostly endpoints: health, dashboard and the
// organization profile.
type Handler struct {
	checks map[string]Pinger
	dash   *dashboard.Usecase
	org    *organization.Usecase
}

func NewHandler(dash *dashboard.Usecase, org *organization.Usecase, checks map[string]Pinger) *Handler {
	return &Handler{checks: checks, dash: dash, org: org}
}

func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			deps[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	return c.JSON(code, map[string]any{
		"status": status,
		"deps":   deps,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *Handler) Dashboard(c echo.Context) error {
	s, err := h.dash.Summary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) Organization(c echo.Context) error {
	p, err := h.org.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) SaveOrganization(c echo.Context) error {
	var req organization.ProfileInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	p, err := h.org.Save(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
