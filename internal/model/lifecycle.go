package model

import "time"

// Lifecycle event types
const (
	EventStart  = "start"
	EventPause  = "pause"
	EventResume = "resume"
	EventStop   = "stop"
)

// LifecycleEvent lifecycle_events, append-only
type LifecycleEvent struct {
	ID         string    `gorm:"type:uuid;primaryKey"        json:"id"`
	SessionID  string    `gorm:"type:uuid;not null"          json:"session_id"`
	EventType  string    `gorm:"type:varchar(10);not null"   json:"event_type"`
	OccurredAt time.Time `gorm:"not null"                    json:"occurred_at"`
}

// TableName table name
func (LifecycleEvent) TableName() string { return "lifecycle_events" }

// Line states held in line_state
const (
	LineActive = "active"
	LinePaused = "paused"
)

// LineState line_state (single row): the session currently occupying the line
type LineState struct {
	Singleton bool      `gorm:"primaryKey;default:true"          json:"-"`
	SessionID *string   `gorm:"type:uuid"                        json:"session_id"`
	State     string    `gorm:"type:varchar(10);not null;default:''" json:"state"` // "" | active | paused
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName table name
func (LineState) TableName() string { return "line_state" }

// Holds reports whether sessionID occupies the line
func (l *LineState) Holds(sessionID string) bool {
	return l != nil && l.SessionID != nil && *l.SessionID == sessionID
}
