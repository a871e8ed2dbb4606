package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/service"
	"github.com/ThiagoScutari/sgp-costura/pkg/response"
)

// PulseHandler batch checkout and the line dashboard
type PulseHandler struct {
	pulseSvc service.PulseService
}

// NewPulseHandler creates a PulseHandler
func NewPulseHandler(pulseSvc service.PulseService) *PulseHandler {
	return &PulseHandler{pulseSvc: pulseSvc}
}

// Checkout marks a batch done
// POST /api/v1/batches/checkout
func (h *PulseHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "batch_id is required")
		return
	}

	result, err := h.pulseSvc.Checkout(c.Request.Context(), &req)
	if err != nil {
		h.handlePulseError(c, err)
		return
	}

	response.OK(c, result)
}

// PendingBatches pending batches of a session, or of the session on the line
// GET /api/v1/batches/pending?session_id=xxx
func (h *PulseHandler) PendingBatches(c *gin.Context) {
	list, err := h.pulseSvc.PendingBatches(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		h.handlePulseError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// LiveStatus line dashboard
// GET /api/v1/dashboard/status?session_id=xxx
func (h *PulseHandler) LiveStatus(c *gin.Context) {
	status, err := h.pulseSvc.LiveStatus(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		h.handlePulseError(c, err)
		return
	}

	response.OK(c, status)
}

func (h *PulseHandler) handlePulseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBatchNotFound):
		response.NotFound(c, 23101, "batch not found")
	case errors.Is(err, service.ErrBatchAlreadyDone):
		response.Conflict(c, 23102, "batch already checked out")
	case errors.Is(err, service.ErrSessionNotRunning):
		response.InvalidState(c, 23103, "session is not running on the line")
	case errors.Is(err, service.ErrOperatorNotFound):
		response.NotFound(c, 23104, "operator not found")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 23105, "planning session not found")
	default:
		failByKind(c, 23100, err)
	}
}
