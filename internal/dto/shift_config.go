package dto

// ── shift calendar ──

// BreakWindow "HH:MM" bounds
type BreakWindow struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end"   binding:"required"`
}

// UpdateShiftConfigRequest replaces the shift calendar
type UpdateShiftConfigRequest struct {
	StartTime string        `json:"start_time" binding:"required"`
	EndTime   string        `json:"end_time"   binding:"required"`
	Timezone  string        `json:"timezone"   binding:"required"`
	Breaks    []BreakWindow `json:"breaks"     binding:"dive"`
}

// ShiftConfigResponse shift calendar
type ShiftConfigResponse struct {
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Timezone  string        `json:"timezone"`
	Breaks    []BreakWindow `json:"breaks"`
	UpdatedAt string        `json:"updated_at,omitempty"`
}
