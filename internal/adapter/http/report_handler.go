package http

import (
	"fmt"
	"io"
	"net/http"

	"coop-loan-backend/internal/adapter/middleware"
	"coop-loan-backend/internal/usecase/report"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct{ uc *report.Usecase }

func NewReportHandler(uc *report.Usecase) *ReportHandler { return &ReportHandler{uc: uc} }

// Generate answers 200 even when some types failed; the per-type results
// carry the outcome.
func (h *ReportHandler) Generate(c echo.Context) error {
	var req report.GenerateInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	if req.GeneratedBy == "" {
		req.GeneratedBy = middleware.ActorID(c)
	}
	res, err := h.uc.Generate(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ReportHandler) Types(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"report_types": h.uc.Types()})
}

// History lists the ledger, optionally narrowed by ?member_number=.
func (h *ReportHandler) History(c echo.Context) error {
	list, err := h.uc.History(c.Request().Context(), c.QueryParam("member_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ReportHandler) Download(c echo.Context) error {
	name := c.Param("filename")
	info, rc, err := h.uc.Open(c.Request().Context(), name)
	if err != nil {
		return writeError(c, err)
	}
	defer rc.Close()

	ct := info.ContentType
	if ct == "" {
		ct = report.ContentType
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	if info.Size > 0 {
		c.Response().Header().Set(echo.HeaderContentLength, fmt.Sprint(info.Size))
	}
	return c.Stream(http.StatusOK, ct, io.Reader(rc))
}
