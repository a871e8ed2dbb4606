package model

// ── catalog ──
//
// Catalog rows are owned by the product registry; the engine reads them and
// only writes operator availability and rebalance clones.

// ProductionOrder production_orders
type ProductionOrder struct {
	ID               string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductReference string `gorm:"type:varchar(100);not null"                     json:"product_reference"`
	Quantity         int    `gorm:"not null"                                       json:"quantity"`
	PulseDuration    *int   `                                                      json:"pulse_duration,omitempty"`
	Status           string `gorm:"type:varchar(20);not null;default:'open'"       json:"status"`
	Timestamps
}

// TableName table name
func (ProductionOrder) TableName() string { return "production_orders" }

// SequenceVersion sequence_versions, one balancing of a product's operation list
type SequenceVersion struct {
	ID               string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductReference string  `gorm:"type:varchar(100);not null"                     json:"product_reference"`
	VersionName      string  `gorm:"type:varchar(100);not null"                     json:"version_name"`
	Status           string  `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	EfficiencyFactor float64 `gorm:"not null;default:1"                             json:"efficiency_factor"`
	RebalanceOfID    *string `gorm:"type:uuid"                                      json:"rebalance_of_id,omitempty"`
	Timestamps
}

// TableName table name
func (SequenceVersion) TableName() string { return "sequence_versions" }

// Operation operations
type Operation struct {
	ID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VersionID   string  `gorm:"type:uuid;not null;index"                       json:"version_id"`
	Sequence    int     `gorm:"not null"                                       json:"sequence"`
	Description string  `gorm:"type:varchar(255);not null;default:''"          json:"description"`
	Machine     string  `gorm:"type:varchar(100);not null;default:''"          json:"machine"`
	FinalTime   float64 `gorm:"not null;default:0"                             json:"final_time"` // standard minutes per piece
	IsActive    bool    `gorm:"not null;default:true"                          json:"is_active"`
}

// TableName table name
func (Operation) TableName() string { return "operations" }

// Operator operators
type Operator struct {
	ID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	Timestamps
}

// TableName table name
func (Operator) TableName() string { return "operators" }
