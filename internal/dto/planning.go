package dto

import "github.com/ThiagoScutari/sgp-costura/internal/engine"

// ── planning ──

// BatchPreviewRequest batch partition preview
type BatchPreviewRequest struct {
	TotalQuantity int `json:"total_quantity" binding:"required"`
	BatchSize     int `json:"batch_size"     binding:"required"`
}

// BatchPreviewResponse batch partition preview result
type BatchPreviewResponse struct {
	TotalQuantity int                `json:"total_quantity"`
	BatchSize     int                `json:"batch_size"`
	BatchCount    int                `json:"batch_count"`
	Batches       []engine.BatchPlan `json:"batches"`
}

// AllocationItem one operation placed at a workstation. A nil operator keeps
// the operation in the unallocated bank.
type AllocationItem struct {
	OperationID string  `json:"operation_id" binding:"required"`
	OperatorID  *string `json:"operator_id"`
	Position    int     `json:"position"     binding:"min=0"`
	Quantity    int     `json:"quantity"     binding:"min=0"` // 0 means the whole batch
}

// SyncAllocationsRequest replaces the plan of a production order
type SyncAllocationsRequest struct {
	ProductionOrderID string           `json:"production_order_id" binding:"required"`
	SequenceVersionID string           `json:"sequence_version_id" binding:"required"`
	VersionName       string           `json:"version_name"        binding:"max=100"`
	Notes             string           `json:"notes"`
	PulseDuration     *int             `json:"pulse_duration"      binding:"omitempty,min=1"`
	BatchSize         *int             `json:"batch_size"          binding:"omitempty,min=1"`
	TotalQuantity     *int             `json:"total_quantity"      binding:"omitempty,min=1"`
	Allocations       []AllocationItem `json:"allocations"         binding:"dive"`
}

// AssignmentResponse operation assignment
type AssignmentResponse struct {
	ID               string  `json:"id"`
	OperationID      string  `json:"operation_id"`
	Description      string  `json:"description,omitempty"`
	FinalTime        float64 `json:"final_time"`
	ExecutedQuantity int     `json:"executed_quantity"`
	IsFractioned     bool    `json:"is_fractioned"`
}

// SeatResponse workstation seat with its operations
type SeatResponse struct {
	ID          string               `json:"id"`
	OperatorID  string               `json:"operator_id"`
	Position    int                  `json:"position"`
	LoadMinutes float64              `json:"load_minutes"`
	Assignments []AssignmentResponse `json:"assignments"`
}

// BatchResponse batch
type BatchResponse struct {
	ID             string `json:"id"`
	SessionID      string `json:"session_id"`
	SequenceNumber int    `json:"sequence_number"`
	Quantity       int    `json:"quantity"`
	Status         string `json:"status"`
}

// PlanningSessionResponse planning session summary
type PlanningSessionResponse struct {
	ID                string  `json:"id"`
	ProductionOrderID string  `json:"production_order_id"`
	SequenceVersionID string  `json:"sequence_version_id"`
	VersionName       string  `json:"version_name"`
	Notes             string  `json:"notes"`
	PulseDuration     int     `json:"pulse_duration"`
	BatchSize         int     `json:"batch_size"`
	TotalQuantity     int     `json:"total_quantity"`
	OperatorCount     int     `json:"operator_count"`
	EfficiencyFactor  float64 `json:"efficiency_factor"`
	IsActive          bool    `json:"is_active"`
	State             string  `json:"state"`
	CreatedAt         string  `json:"created_at"`
}

// PlanningSessionDetail session with seats and batches
type PlanningSessionDetail struct {
	PlanningSessionResponse
	Seats   []SeatResponse  `json:"seats"`
	Batches []BatchResponse `json:"batches"`
}

// SyncAllocationsResponse result of a sync
type SyncAllocationsResponse struct {
	SessionID             string          `json:"session_id"`
	PulseDuration         int             `json:"pulse_duration"`
	BatchSize             int             `json:"batch_size"`
	TotalQuantity         int             `json:"total_quantity"`
	OperatorCount         int             `json:"operator_count"`
	Seats                 []SeatResponse  `json:"seats"`
	DiscardedOperationIDs []string        `json:"discarded_operation_ids"`
	Batches               []BatchResponse `json:"batches"`
}
