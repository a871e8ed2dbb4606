package model

import "time"

// PlanningSession planning_sessions. At most one session per production order is active.
type PlanningSession struct {
	ID                string    `gorm:"type:uuid;primaryKey"              json:"id"`
	ProductionOrderID string    `gorm:"type:uuid;not null;index"          json:"production_order_id"`
	SequenceVersionID string    `gorm:"type:uuid;not null"                json:"sequence_version_id"`
	VersionName       string    `gorm:"type:varchar(100);not null"        json:"version_name"`
	Notes             string    `gorm:"type:text;not null;default:''"     json:"notes"`
	PulseDuration     int       `gorm:"not null"                          json:"pulse_duration"` // minutes
	BatchSize         int       `gorm:"not null"                          json:"batch_size"`
	TotalQuantity     int       `gorm:"not null"                          json:"total_quantity"`
	OperatorCount     int       `gorm:"not null;default:0"                json:"operator_count"`
	EfficiencyFactor  float64   `gorm:"not null;default:1"                json:"efficiency_factor"`
	IsActive          bool      `gorm:"not null;default:false"            json:"is_active"`
	CreatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName table name
func (PlanningSession) TableName() string { return "planning_sessions" }

// WorkstationSeat workstation_seats, immutable after sync
type WorkstationSeat struct {
	ID         string `gorm:"type:uuid;primaryKey"     json:"id"`
	SessionID  string `gorm:"type:uuid;not null;index" json:"session_id"`
	OperatorID string `gorm:"type:uuid;not null"       json:"operator_id"`
	Position   int    `gorm:"not null"                 json:"position"`
}

// TableName table name
func (WorkstationSeat) TableName() string { return "workstation_seats" }

// OperationAssignment operation_assignments
type OperationAssignment struct {
	ID               string `gorm:"type:uuid;primaryKey"     json:"id"`
	SeatID           string `gorm:"type:uuid;not null;index" json:"seat_id"`
	OperationID      string `gorm:"type:uuid;not null"       json:"operation_id"`
	ExecutedQuantity int    `gorm:"not null;default:0"       json:"executed_quantity"`
	IsFractioned     bool   `gorm:"not null;default:false"   json:"is_fractioned"`
}

// TableName table name
func (OperationAssignment) TableName() string { return "operation_assignments" }
