package http

import (
	"net/http"

	"coop-loan-backend/internal/adapter/middleware"
	"coop-loan-backend/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
)

// WorkflowHandler exposes the loan application steps of one member.
type WorkflowHandler struct{ uc *workflow.Usecase }

func NewWorkflowHandler(uc *workflow.Usecase) *WorkflowHandler { return &WorkflowHandler{uc: uc} }

type captureProjectsReq struct {
	Projects []workflow.ProjectInput `json:"projects" validate:"required,min=1,dive"`
}

type rejectReq struct {
	Remarks string `json:"remarks" validate:"max=2000"`
}

func (h *WorkflowHandler) Start(c echo.Context) error {
	var req workflow.StartInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Start(c.Request().Context(), c.Param("number"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *WorkflowHandler) Current(c echo.Context) error {
	dto, err := h.uc.Current(c.Request().Context(), c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WorkflowHandler) CaptureCollateral(c echo.Context) error {
	var req workflow.CollateralInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CaptureCollateral(c.Request().Context(), c.Param("number"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WorkflowHandler) CaptureProjects(c echo.Context) error {
	var req captureProjectsReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	list, err := h.uc.CaptureProjects(c.Request().Context(), c.Param("number"), req.Projects)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, list)
}

func (h *WorkflowHandler) AddWitness(c echo.Context) error {
	var req workflow.WitnessInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	w, err := h.uc.AddWitness(c.Request().Context(), c.Param("number"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, w)
}

func (h *WorkflowHandler) AddGuarantor(c echo.Context) error {
	var req workflow.GuarantorInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	g, err := h.uc.AddGuarantor(c.Request().Context(), c.Param("number"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, g)
}

// Approve records the approval; EnteredBy defaults to the acting staff member.
func (h *WorkflowHandler) Approve(c echo.Context) error {
	var req workflow.ApproveInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	if req.EnteredBy == "" {
		req.EnteredBy = middleware.ActorID(c)
	}
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("number"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *WorkflowHandler) Reject(c echo.Context) error {
	var req rejectReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("number"), req.Remarks)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
