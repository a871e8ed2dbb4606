package dto

// ── analytics ──

// EfficiencySummary efficiency block of the analytics dashboard
type EfficiencySummary struct {
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Status  string  `json:"status"` // good | warning | critical | no_data
}

// DelayRate share of delayed checkouts
type DelayRate struct {
	DelayedCount int     `json:"delayed_count"`
	TotalCount   int     `json:"total_count"`
	Percentage   float64 `json:"percentage"`
}

// ProductionVolume pieces turned out in the window
type ProductionVolume struct {
	TotalPieces      int     `json:"total_pieces"`
	TotalBatches     int     `json:"total_batches"`
	AvgPiecesPerHour float64 `json:"avg_pieces_per_hour"`
	TargetVolume     int     `json:"target_volume"`
}

// HourlyBucket checkouts grouped by hour of day
type HourlyBucket struct {
	Hour    string `json:"hour"` // "HH:00" in the shift timezone
	Pieces  int    `json:"pieces"`
	Batches int    `json:"batches"`
}

// AnalyticsDashboard performance over the last hours
type AnalyticsDashboard struct {
	Hours            int               `json:"hours"`
	Efficiency       EfficiencySummary `json:"efficiency"`
	DelayRate        DelayRate         `json:"delay_rate"`
	ProductionVolume ProductionVolume  `json:"production_volume"`
	HourlyBreakdown  []HourlyBucket    `json:"hourly_breakdown"`
}
