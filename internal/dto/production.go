package dto

import "github.com/ThiagoScutari/sgp-costura/internal/engine"

// ── lifecycle ──

// SessionStateResponse state after a lifecycle transition
type SessionStateResponse struct {
	SessionID  string `json:"session_id"`
	State      string `json:"state"`
	Event      string `json:"event"`
	OccurredAt string `json:"occurred_at"`
}

// ── checkout ──

// CheckoutRequest batch checkout
type CheckoutRequest struct {
	BatchID    string  `json:"batch_id"    binding:"required"`
	OperatorID *string `json:"operator_id"`
}

// CheckoutResponse checkout result
type CheckoutResponse struct {
	CheckoutID     string  `json:"checkout_id"`
	BatchID        string  `json:"batch_id"`
	SessionID      string  `json:"session_id"`
	SequenceNumber int     `json:"sequence_number"`
	CheckoutAt     string  `json:"checkout_at"`
	ReferenceStart string  `json:"reference_start"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Delayed        bool    `json:"delayed"`
	AutoStopped    bool    `json:"auto_stopped"`
}

// WorkstationStatus one seat on the live dashboard
type WorkstationStatus struct {
	Position       int                  `json:"position"`
	OperatorID     string               `json:"operator_id"`
	OperatorName   string               `json:"operator_name"`
	OperatorActive bool                 `json:"operator_active"`
	LoadMinutes    float64              `json:"load_minutes"`
	Operations     []AssignmentResponse `json:"operations"`
}

// LiveStatusResponse line dashboard
type LiveStatusResponse struct {
	State          string              `json:"state"`
	SessionID      string              `json:"session_id,omitempty"`
	PulseDuration  int                 `json:"pulse_duration,omitempty"`
	CycleStart     string              `json:"cycle_start,omitempty"`
	ElapsedSeconds float64             `json:"elapsed_seconds"`
	Delayed        bool                `json:"delayed"`
	BatchesDone    int                 `json:"batches_done"`
	BatchesTotal   int                 `json:"batches_total"`
	Efficiency     float64             `json:"efficiency"`
	Workstations   []WorkstationStatus `json:"workstations"`
}

// ── efficiency ──

// EfficiencyResponse live efficiency of a session
type EfficiencyResponse struct {
	SessionID                string                  `json:"session_id"`
	Efficiency               float64                 `json:"efficiency"`
	Status                   engine.EfficiencyStatus `json:"status"`
	StandardMinutesPerBatch  float64                 `json:"standard_minutes_per_batch"`
	Checkouts                int                     `json:"checkouts"`
	StandardMinutesDelivered float64                 `json:"standard_minutes_delivered"`
	WorkedMinutes            float64                 `json:"worked_minutes"`
	SessionStart             string                  `json:"session_start"`
	ComputedAt               string                  `json:"computed_at"`
}

// ── capacity ──

// CapacityResponse capacity check result
type CapacityResponse struct {
	SessionID string `json:"session_id"`
	engine.CapacityChange
	Message string `json:"message"`
}

// RebalanceResponse rebalance result
type RebalanceResponse struct {
	SessionID             string `json:"session_id"`
	NewVersionID          string `json:"new_version_id"`
	NewVersionName        string `json:"new_version_name"`
	OperationsCloned      int    `json:"operations_cloned"`
	RemainingQuantity     int    `json:"remaining_quantity"`
	RecalculatedBatchSize *int   `json:"recalculated_batch_size,omitempty"`
}

// UpdateOperatorStatusRequest operator availability
type UpdateOperatorStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// OperatorResponse operator
type OperatorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}
