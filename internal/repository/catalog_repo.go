package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ThiagoScutari/sgp-costura/internal/model"
)

// ── ProductionOrder ──

// ProductionOrderRepository production order access
type ProductionOrderRepository interface {
	Create(ctx context.Context, order *model.ProductionOrder) error
	GetByID(ctx context.Context, id string) (*model.ProductionOrder, error)
}

type productionOrderRepo struct {
	db *gorm.DB
}

// NewProductionOrderRepo creates a ProductionOrderRepository
func NewProductionOrderRepo(db *gorm.DB) ProductionOrderRepository {
	return &productionOrderRepo{db: db}
}

func (r *productionOrderRepo) Create(ctx context.Context, order *model.ProductionOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *productionOrderRepo) GetByID(ctx context.Context, id string) (*model.ProductionOrder, error) {
	if !isUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var order model.ProductionOrder
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ── SequenceVersion ──

// SequenceVersionRepository operation-sequence version access
type SequenceVersionRepository interface {
	Create(ctx context.Context, version *model.SequenceVersion) error
	GetByID(ctx context.Context, id string) (*model.SequenceVersion, error)
	// CountRebalances counts versions cloned from originalID
	CountRebalances(ctx context.Context, originalID string) (int64, error)
}

type sequenceVersionRepo struct {
	db *gorm.DB
}

// NewSequenceVersionRepo creates a SequenceVersionRepository
func NewSequenceVersionRepo(db *gorm.DB) SequenceVersionRepository {
	return &sequenceVersionRepo{db: db}
}

func (r *sequenceVersionRepo) Create(ctx context.Context, version *model.SequenceVersion) error {
	return r.db.WithContext(ctx).Create(version).Error
}

func (r *sequenceVersionRepo) GetByID(ctx context.Context, id string) (*model.SequenceVersion, error) {
	if !isUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var version model.SequenceVersion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&version).Error; err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *sequenceVersionRepo) CountRebalances(ctx context.Context, originalID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.SequenceVersion{}).
		Where("rebalance_of_id = ?", originalID).
		Count(&n).Error
	return n, err
}

// ── Operation ──

// OperationRepository operation access
type OperationRepository interface {
	BatchCreate(ctx context.Context, ops []model.Operation) error
	ListByVersion(ctx context.Context, versionID string) ([]model.Operation, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Operation, error)
}

type operationRepo struct {
	db *gorm.DB
}

// NewOperationRepo creates an OperationRepository
func NewOperationRepo(db *gorm.DB) OperationRepository {
	return &operationRepo{db: db}
}

func (r *operationRepo) BatchCreate(ctx context.Context, ops []model.Operation) error {
	if len(ops) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(ops, 100).Error
}

func (r *operationRepo) ListByVersion(ctx context.Context, versionID string) ([]model.Operation, error) {
	var ops []model.Operation
	err := r.db.WithContext(ctx).
		Where("version_id = ?", versionID).
		Order("sequence ASC").
		Find(&ops).Error
	return ops, err
}

func (r *operationRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Operation, error) {
	var ops []model.Operation
	ids = uuidsOnly(ids)
	if len(ids) == 0 {
		return ops, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ops).Error
	return ops, err
}

// ── Operator ──

// OperatorRepository operator access
type OperatorRepository interface {
	Create(ctx context.Context, op *model.Operator) error
	GetByID(ctx context.Context, id string) (*model.Operator, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Operator, error)
	UpdateStatus(ctx context.Context, id string, active bool) error
}

type operatorRepo struct {
	db *gorm.DB
}

// NewOperatorRepo creates an OperatorRepository
func NewOperatorRepo(db *gorm.DB) OperatorRepository {
	return &operatorRepo{db: db}
}

func (r *operatorRepo) Create(ctx context.Context, op *model.Operator) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *operatorRepo) GetByID(ctx context.Context, id string) (*model.Operator, error) {
	if !isUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var op model.Operator
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&op).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *operatorRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Operator, error) {
	var ops []model.Operator
	ids = uuidsOnly(ids)
	if len(ids) == 0 {
		return ops, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ops).Error
	return ops, err
}

// UpdateStatus returns gorm.ErrRecordNotFound when no operator has id
func (r *operatorRepo) UpdateStatus(ctx context.Context, id string, active bool) error {
	if !isUUID(id) {
		return gorm.ErrRecordNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&model.Operator{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
