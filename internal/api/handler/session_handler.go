package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/service"
	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
	"github.com/ThiagoScutari/sgp-costura/pkg/response"
)

// SessionHandler production session lifecycle and efficiency
type SessionHandler struct {
	sessionSvc    service.SessionService
	efficiencySvc service.EfficiencyService
}

// NewSessionHandler creates a SessionHandler
func NewSessionHandler(sessionSvc service.SessionService, efficiencySvc service.EfficiencyService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, efficiencySvc: efficiencySvc}
}

// Start POST /api/v1/sessions/:id/start
func (h *SessionHandler) Start(c *gin.Context) { h.transition(c, h.sessionSvc.Start) }

// Pause POST /api/v1/sessions/:id/pause
func (h *SessionHandler) Pause(c *gin.Context) { h.transition(c, h.sessionSvc.Pause) }

// Resume POST /api/v1/sessions/:id/resume
func (h *SessionHandler) Resume(c *gin.Context) { h.transition(c, h.sessionSvc.Resume) }

// Stop POST /api/v1/sessions/:id/stop
func (h *SessionHandler) Stop(c *gin.Context) { h.transition(c, h.sessionSvc.Stop) }

func (h *SessionHandler) transition(c *gin.Context, fn func(context.Context, string) (*dto.SessionStateResponse, error)) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	result, err := fn(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, result)
}

// Efficiency live efficiency of a session
// GET /api/v1/sessions/:id/efficiency
func (h *SessionHandler) Efficiency(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	result, err := h.efficiencySvc.Live(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 22101, "planning session not found")
	case errors.Is(err, pkgerrors.ErrConflict):
		response.Conflict(c, 22102, err.Error())
	case errors.Is(err, pkgerrors.ErrInvalidState):
		response.InvalidState(c, 22103, err.Error())
	default:
		failByKind(c, 22100, err)
	}
}
