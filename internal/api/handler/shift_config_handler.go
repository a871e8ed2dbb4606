package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/service"
	"github.com/ThiagoScutari/sgp-costura/pkg/response"
)

// ShiftConfigHandler shift calendar
type ShiftConfigHandler struct {
	shiftSvc service.ShiftConfigService
}

// NewShiftConfigHandler creates a ShiftConfigHandler
func NewShiftConfigHandler(shiftSvc service.ShiftConfigService) *ShiftConfigHandler {
	return &ShiftConfigHandler{shiftSvc: shiftSvc}
}

// GetConfig GET /api/v1/shift-config
func (h *ShiftConfigHandler) GetConfig(c *gin.Context) {
	cfg, err := h.shiftSvc.Get(c.Request.Context())
	if err != nil {
		failByKind(c, 25100, err)
		return
	}

	response.OK(c, cfg)
}

// UpdateConfig PUT /api/v1/shift-config
func (h *ShiftConfigHandler) UpdateConfig(c *gin.Context) {
	var req dto.UpdateShiftConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "invalid request parameters")
		return
	}

	cfg, err := h.shiftSvc.Update(c.Request.Context(), &req)
	if err != nil {
		// engine validation messages name the offending field
		failByKind(c, 25101, err)
		return
	}

	response.OK(c, cfg)
}
