package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ThiagoScutari/sgp-costura/internal/model"
)

// ── PlanningSession ──

// PlanningSessionRepository planning session access
type PlanningSessionRepository interface {
	Create(ctx context.Context, session *model.PlanningSession) error
	GetByID(ctx context.Context, id string) (*model.PlanningSession, error)
	// ListByOrder newest first
	ListByOrder(ctx context.Context, orderID string) ([]model.PlanningSession, error)
	DeactivateByOrder(ctx context.Context, orderID string) error
	SetActive(ctx context.Context, id string, active bool) error
}

type planningSessionRepo struct {
	db *gorm.DB
}

// NewPlanningSessionRepo creates a PlanningSessionRepository
func NewPlanningSessionRepo(db *gorm.DB) PlanningSessionRepository {
	return &planningSessionRepo{db: db}
}

func (r *planningSessionRepo) Create(ctx context.Context, session *model.PlanningSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *planningSessionRepo) GetByID(ctx context.Context, id string) (*model.PlanningSession, error) {
	if !isUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var session model.PlanningSession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *planningSessionRepo) ListByOrder(ctx context.Context, orderID string) ([]model.PlanningSession, error) {
	var sessions []model.PlanningSession
	if !isUUID(orderID) {
		return sessions, nil
	}
	err := r.db.WithContext(ctx).
		Where("production_order_id = ?", orderID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *planningSessionRepo) DeactivateByOrder(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).
		Model(&model.PlanningSession{}).
		Where("production_order_id = ? AND is_active = ?", orderID, true).
		Update("is_active", false).Error
}

func (r *planningSessionRepo) SetActive(ctx context.Context, id string, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.PlanningSession{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ── WorkstationSeat ──

// SeatRepository workstation seat access
type SeatRepository interface {
	BatchCreate(ctx context.Context, seats []model.WorkstationSeat) error
	// ListBySession ordered by position
	ListBySession(ctx context.Context, sessionID string) ([]model.WorkstationSeat, error)
}

type seatRepo struct {
	db *gorm.DB
}

// NewSeatRepo creates a SeatRepository
func NewSeatRepo(db *gorm.DB) SeatRepository {
	return &seatRepo{db: db}
}

func (r *seatRepo) BatchCreate(ctx context.Context, seats []model.WorkstationSeat) error {
	if len(seats) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(seats, 100).Error
}

func (r *seatRepo) ListBySession(ctx context.Context, sessionID string) ([]model.WorkstationSeat, error) {
	var seats []model.WorkstationSeat
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("position ASC").
		Find(&seats).Error
	return seats, err
}

// ── OperationAssignment ──

// AssignmentRepository operation assignment access
type AssignmentRepository interface {
	BatchCreate(ctx context.Context, assignments []model.OperationAssignment) error
	ListBySession(ctx context.Context, sessionID string) ([]model.OperationAssignment, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates an AssignmentRepository
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) BatchCreate(ctx context.Context, assignments []model.OperationAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(assignments, 200).Error
}

func (r *assignmentRepo) ListBySession(ctx context.Context, sessionID string) ([]model.OperationAssignment, error) {
	var assignments []model.OperationAssignment
	err := r.db.WithContext(ctx).
		Joins("JOIN workstation_seats ws ON ws.id = operation_assignments.seat_id").
		Where("ws.session_id = ?", sessionID).
		Order("ws.position ASC").
		Find(&assignments).Error
	return assignments, err
}
