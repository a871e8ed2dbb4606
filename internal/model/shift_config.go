package model

import (
	"time"

	"gorm.io/datatypes"
)

// BreakWindow one daily break, "HH:MM" bounds
type BreakWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ShiftConfig shift_config (single row)
type ShiftConfig struct {
	Singleton bool                             `gorm:"primaryKey;default:true"                  json:"-"`
	StartTime string                           `gorm:"type:varchar(5);not null"                 json:"start_time"`
	EndTime   string                           `gorm:"type:varchar(5);not null"                 json:"end_time"`
	Timezone  string                           `gorm:"type:varchar(64);not null"                json:"timezone"`
	Breaks    datatypes.JSONSlice[BreakWindow] `gorm:"type:jsonb;not null;default:'[]'"         json:"breaks"`
	UpdatedAt time.Time                        `gorm:"not null;default:CURRENT_TIMESTAMP"       json:"updated_at"`
}

// TableName table name
func (ShiftConfig) TableName() string { return "shift_config" }
