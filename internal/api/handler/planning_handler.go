package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/service"
	"github.com/ThiagoScutari/sgp-costura/pkg/response"
)

// PlanningHandler batch preview and allocation sync
type PlanningHandler struct {
	allocationSvc service.AllocationService
}

// NewPlanningHandler creates a PlanningHandler
func NewPlanningHandler(allocationSvc service.AllocationService) *PlanningHandler {
	return &PlanningHandler{allocationSvc: allocationSvc}
}

// PreviewBatches splits a quantity into batches without persisting anything
// POST /api/v1/batches/preview
func (h *PlanningHandler) PreviewBatches(c *gin.Context) {
	var req dto.BatchPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "invalid request parameters")
		return
	}

	result, err := h.allocationSvc.PreviewBatches(c.Request.Context(), &req)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}

	response.OK(c, result)
}

// SyncAllocations replaces the plan of a production order
// POST /api/v1/planning/sync
func (h *PlanningHandler) SyncAllocations(c *gin.Context) {
	var req dto.SyncAllocationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, codeInvalidParams, "invalid request parameters", err.Error())
		return
	}

	result, err := h.allocationSvc.Sync(c.Request.Context(), &req)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}

	response.Created(c, result)
}

// GetSession planning session with seats and batches
// GET /api/v1/planning/:id
func (h *PlanningHandler) GetSession(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	result, err := h.allocationSvc.GetSession(c.Request.Context(), id)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}

	response.OK(c, result)
}

// ListSessions planning versions of a production order, newest first
// GET /api/v1/planning?production_order_id=xxx
func (h *PlanningHandler) ListSessions(c *gin.Context) {
	orderID := c.Query("production_order_id")
	if orderID == "" {
		response.BadRequest(c, codeInvalidParams, "production_order_id is required")
		return
	}

	list, err := h.allocationSvc.ListSessions(c.Request.Context(), orderID)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

func (h *PlanningHandler) handlePlanningError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, 21101, "production order not found")
	case errors.Is(err, service.ErrVersionNotFound):
		response.NotFound(c, 21102, "operation sequence version not found")
	case errors.Is(err, service.ErrOperatorNotFound):
		response.NotFound(c, 21103, "operator not found")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 21104, "planning session not found")
	case errors.Is(err, service.ErrBatchSizeUnknown):
		response.BadRequest(c, 21105, err.Error())
	case errors.Is(err, service.ErrInvalidPulse):
		response.BadRequest(c, 21106, err.Error())
	default:
		failByKind(c, 21100, err)
	}
}
