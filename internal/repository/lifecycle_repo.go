package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ThiagoScutari/sgp-costura/internal/model"
)

// ── LifecycleEvent ──

// LifecycleEventRepository append-only lifecycle log
type LifecycleEventRepository interface {
	Create(ctx context.Context, ev *model.LifecycleEvent) error
	// ListBySession in chronological order
	ListBySession(ctx context.Context, sessionID string) ([]model.LifecycleEvent, error)
}

type lifecycleEventRepo struct {
	db *gorm.DB
}

// NewLifecycleEventRepo creates a LifecycleEventRepository
func NewLifecycleEventRepo(db *gorm.DB) LifecycleEventRepository {
	return &lifecycleEventRepo{db: db}
}

func (r *lifecycleEventRepo) Create(ctx context.Context, ev *model.LifecycleEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *lifecycleEventRepo) ListBySession(ctx context.Context, sessionID string) ([]model.LifecycleEvent, error) {
	var events []model.LifecycleEvent
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("occurred_at ASC").
		Find(&events).Error
	return events, err
}

// ── LineState ──

// LineStateRepository single-row line occupancy
type LineStateRepository interface {
	Get(ctx context.Context) (*model.LineState, error)
	// GetForUpdate locks the row; call it on a transaction-bound repository
	GetForUpdate(ctx context.Context) (*model.LineState, error)
	Save(ctx context.Context, state *model.LineState) error
}

type lineStateRepo struct {
	db *gorm.DB
}

// NewLineStateRepo creates a LineStateRepository
func NewLineStateRepo(db *gorm.DB) LineStateRepository {
	return &lineStateRepo{db: db}
}

func (r *lineStateRepo) Get(ctx context.Context) (*model.LineState, error) {
	var state model.LineState
	if err := r.db.WithContext(ctx).First(&state).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *lineStateRepo) GetForUpdate(ctx context.Context) (*model.LineState, error) {
	var state model.LineState
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&state).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *lineStateRepo) Save(ctx context.Context, state *model.LineState) error {
	state.Singleton = true
	return r.db.WithContext(ctx).Save(state).Error
}
