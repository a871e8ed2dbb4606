package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transactor runs fn inside one database transaction. The Repository handed
// to fn is bound to that transaction; returning an error or panicking rolls
// everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx *Repository) error) error
}

// Repository aggregates every repository
type Repository struct {
	ProductionOrder ProductionOrderRepository
	SequenceVersion SequenceVersionRepository
	Operation       OperationRepository
	Operator        OperatorRepository
	Planning        PlanningSessionRepository
	Seat            SeatRepository
	Assignment      AssignmentRepository
	Batch           BatchRepository
	Checkout        CheckoutRepository
	Lifecycle       LifecycleEventRepository
	LineState       LineStateRepository
	ShiftConfig     ShiftConfigRepository

	Tx Transactor
}

// NewRepository builds the aggregate on db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		ProductionOrder: NewProductionOrderRepo(db),
		SequenceVersion: NewSequenceVersionRepo(db),
		Operation:       NewOperationRepo(db),
		Operator:        NewOperatorRepo(db),
		Planning:        NewPlanningSessionRepo(db),
		Seat:            NewSeatRepo(db),
		Assignment:      NewAssignmentRepo(db),
		Batch:           NewBatchRepo(db),
		Checkout:        NewCheckoutRepo(db),
		Lifecycle:       NewLifecycleEventRepo(db),
		LineState:       NewLineStateRepo(db),
		ShiftConfig:     NewShiftConfigRepo(db),
		Tx:              &gormTransactor{db: db},
	}
}

type gormTransactor struct {
	db *gorm.DB
}

// WithinTx nests as a savepoint when db is already a transaction.
func (t *gormTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *Repository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepository(tx))
	})
}

// isUUID reports whether id can be compared against a UUID column. Postgres
// rejects anything else with 22P02, so lookups treat such ids as missing.
func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}

// uuidsOnly drops ids that cannot match a UUID column
func uuidsOnly(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			out = append(out, id)
		}
	}
	return out
}
