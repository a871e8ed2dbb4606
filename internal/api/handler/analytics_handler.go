package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ThiagoScutari/sgp-costura/internal/service"
	"github.com/ThiagoScutari/sgp-costura/pkg/response"
)

const defaultAnalyticsHours = 8

// AnalyticsHandler floor performance dashboard
type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

// NewAnalyticsHandler creates an AnalyticsHandler
func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Dashboard GET /api/v1/analytics/dashboard?hours=8
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	hours := defaultAnalyticsHours
	if raw := c.Query("hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, codeInvalidParams, "hours must be an integer")
			return
		}
		hours = n
	}

	result, err := h.analyticsSvc.Dashboard(c.Request.Context(), hours)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWindow) {
			response.BadRequest(c, 26101, err.Error())
			return
		}
		failByKind(c, 26100, err)
		return
	}

	response.OK(c, result)
}
