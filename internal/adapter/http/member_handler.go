package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"coop-loan-backend/internal/usecase/importer"
	"coop-loan-backend/internal/usecase/member"
	"coop-loan-backend/pkg/apperr"

	"github.com/labstack/echo/v4"
)

// maxUploadBytes caps spreadsheet uploads.
const maxUploadBytes = 10 << 20

type MemberHandler struct {
	uc  *member.Usecase
	imp *importer.Usecase
}

func NewMemberHandler(uc *member.Usecase, imp *importer.Usecase) *MemberHandler {
	return &MemberHandler{uc: uc, imp: imp}
}

func (h *MemberHandler) Create(c echo.Context) error {
	var req member.CreateMemberInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MemberHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MemberHandler) List(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Delete removes the member and every record that belongs to it.
func (h *MemberHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("number")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MemberHandler) CreateScheme(c echo.Context) error {
	var req member.CreateSchemeInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CreateScheme(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MemberHandler) ListSchemes(c echo.Context) error {
	list, err := h.uc.ListSchemes(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *MemberHandler) ImportTemplate(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.imp.Template(&buf); err != nil {
		return writeError(c, err)
	}
	return attachment(c, "member_import_template.xlsx", importer.ContentType, buf.Bytes())
}

func (h *MemberHandler) Export(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.imp.Export(c.Request().Context(), &buf); err != nil {
		return writeError(c, err)
	}
	name := fmt.Sprintf("members_%s.xlsx", time.Now().Format("20060102"))
	return attachment(c, name, importer.ContentType, buf.Bytes())
}

// ValidateImport reports every problem in the uploaded sheet without
// touching the store.
func (h *MemberHandler) ValidateImport(c echo.Context) error {
	data, err := upload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	res, err := h.imp.Validate(c.Request().Context(), bytes.NewReader(data))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *MemberHandler) Import(c echo.Context) error {
	data, err := upload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	res, err := h.imp.Import(c.Request().Context(), bytes.NewReader(data))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, res)
	case res != nil:
		return c.JSON(statusOf(apperr.KindOf(err)), res)
	default:
		return writeError(c, err)
	}
}

// upload reads the multipart "file" field.
func upload(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, errors.New("missing file upload")
	}
	if fh.Size > maxUploadBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", maxUploadBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxUploadBytes))
}

func attachment(c echo.Context, name, contentType string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, contentType, body)
}
