package http

import (
	"net/http"

	"coop-loan-backend/pkg/apperr"

	"github.com/labstack/echo/v4"
)

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict, apperr.KindInvalidTransition:
		return http.StatusConflict
	case apperr.KindRender:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a usecase error onto its status. Internal failures keep
// their cause out of the response body.
func writeError(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	status := statusOf(kind)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = apperr.Message(err)
		c.Logger().Error(err)
	}
	return c.JSON(status, ErrorResponse{Error: msg})
}

// bindAndValidate decodes the body into req and runs struct validation. On
// failure the response is already written and ok is false.
func bindAndValidate(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}
