package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/service"
	"github.com/ThiagoScutari/sgp-costura/pkg/response"
)

// CapacityHandler crew capacity checks, rebalancing and operator availability
type CapacityHandler struct {
	capacitySvc service.CapacityService
}

// NewCapacityHandler creates a CapacityHandler
func NewCapacityHandler(capacitySvc service.CapacityService) *CapacityHandler {
	return &CapacityHandler{capacitySvc: capacitySvc}
}

// Detect GET /api/v1/sessions/:id/capacity
func (h *CapacityHandler) Detect(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	result, err := h.capacitySvc.Detect(c.Request.Context(), id)
	if err != nil {
		h.handleCapacityError(c, err)
		return
	}

	response.OK(c, result)
}

// Rebalance clones the session's version for a restart
// POST /api/v1/sessions/:id/rebalance
func (h *CapacityHandler) Rebalance(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	result, err := h.capacitySvc.Rebalance(c.Request.Context(), id)
	if err != nil {
		h.handleCapacityError(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateOperatorStatus PUT /api/v1/operators/:id/status
func (h *CapacityHandler) UpdateOperatorStatus(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOperatorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "is_active is required")
		return
	}

	result, err := h.capacitySvc.SetOperatorActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		h.handleCapacityError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *CapacityHandler) handleCapacityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 24101, "planning session not found")
	case errors.Is(err, service.ErrVersionNotFound):
		response.NotFound(c, 24102, "operation sequence version not found")
	case errors.Is(err, service.ErrOperatorNotFound):
		response.NotFound(c, 24103, "operator not found")
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, 24104, "production order not found")
	default:
		failByKind(c, 24100, err)
	}
}
