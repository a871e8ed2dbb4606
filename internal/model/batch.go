package model

import "time"

// Batch statuses
const (
	BatchPending = "pending"
	BatchDone    = "done"
)

// Batch batches
type Batch struct {
	ID                string `gorm:"type:uuid;primaryKey"                        json:"id"`
	SessionID         string `gorm:"type:uuid;not null"                          json:"session_id"`
	ProductionOrderID string `gorm:"type:uuid;not null"                          json:"production_order_id"`
	SequenceNumber    int    `gorm:"not null"                                    json:"sequence_number"`
	Quantity          int    `gorm:"not null"                                    json:"quantity"`
	Status            string `gorm:"type:varchar(10);not null;default:'pending'" json:"status"` // pending | done
	Timestamps
}

// TableName table name
func (Batch) TableName() string { return "batches" }

// CheckoutEvent checkout_events, at most one per batch
type CheckoutEvent struct {
	ID         string    `gorm:"type:uuid;primaryKey"       json:"id"`
	BatchID    string    `gorm:"type:uuid;not null;unique"  json:"batch_id"`
	SessionID  string    `gorm:"type:uuid;not null"         json:"session_id"`
	OperatorID *string   `gorm:"type:uuid"                  json:"operator_id,omitempty"`
	CheckoutAt time.Time `gorm:"not null"                   json:"checkout_at"`
	IsDelayed  bool      `gorm:"not null;default:false"     json:"is_delayed"`
}

// TableName table name
func (CheckoutEvent) TableName() string { return "checkout_events" }
