package handler

import "github.com/ThiagoScutari/sgp-costura/internal/service"

// Handler aggregates every HTTP handler
type Handler struct {
	Planning    *PlanningHandler
	Session     *SessionHandler
	Pulse       *PulseHandler
	Capacity    *CapacityHandler
	ShiftConfig *ShiftConfigHandler
	Analytics   *AnalyticsHandler
	Export      *ExportHandler
}

// NewHandler builds the handler aggregate
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Planning:    NewPlanningHandler(svc.Allocation),
		Session:     NewSessionHandler(svc.Session, svc.Efficiency),
		Pulse:       NewPulseHandler(svc.Pulse),
		Capacity:    NewCapacityHandler(svc.Capacity),
		ShiftConfig: NewShiftConfigHandler(svc.ShiftConfig),
		Analytics:   NewAnalyticsHandler(svc.Analytics),
		Export:      NewExportHandler(svc.Export),
	}
}
