package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/ThiagoScutari/sgp-costura/internal/service"
	"github.com/ThiagoScutari/sgp-costura/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler report downloads
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// SessionReport GET /api/v1/export/sessions/:id/report.xlsx
func (h *ExportHandler) SessionReport(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.SessionReport(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// PulsePlan GET /api/v1/export/sessions/:id/pulses.ics
func (h *ExportHandler) PulsePlan(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.PulsePlan(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, contentTypeICS, data)
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 27101, "planning session not found")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		failByKind(c, 27100, err)
	}
}
