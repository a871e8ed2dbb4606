package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ThiagoScutari/sgp-costura/internal/model"
	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
)

// ── Batch ──

// BatchRepository batch access
type BatchRepository interface {
	BatchCreate(ctx context.Context, batches []model.Batch) error
	GetByID(ctx context.Context, id string) (*model.Batch, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Batch, error)
	// GetForUpdate locks the row; call it on a transaction-bound repository
	GetForUpdate(ctx context.Context, id string) (*model.Batch, error)
	GetBySequence(ctx context.Context, sessionID string, seq int) (*model.Batch, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.Batch, error)
	ListPending(ctx context.Context, sessionID string) ([]model.Batch, error)
	CountPending(ctx context.Context, sessionID string) (int64, error)
	// MarkDone flips pending to done; ErrOptimisticLock when the batch was not pending
	MarkDone(ctx context.Context, id string) error
	SumDoneQuantityByOrder(ctx context.Context, orderID string) (int, error)
}

type batchRepo struct {
	db *gorm.DB
}

// NewBatchRepo creates a BatchRepository
func NewBatchRepo(db *gorm.DB) BatchRepository {
	return &batchRepo{db: db}
}

func (r *batchRepo) BatchCreate(ctx context.Context, batches []model.Batch) error {
	if len(batches) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(batches, 200).Error
}

func (r *batchRepo) GetByID(ctx context.Context, id string) (*model.Batch, error) {
	if !isUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var batch model.Batch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&batch).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *batchRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Batch, error) {
	var batches []model.Batch
	ids = uuidsOnly(ids)
	if len(ids) == 0 {
		return batches, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&batches).Error
	return batches, err
}

func (r *batchRepo) GetForUpdate(ctx context.Context, id string) (*model.Batch, error) {
	if !isUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var batch model.Batch
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *batchRepo) GetBySequence(ctx context.Context, sessionID string, seq int) (*model.Batch, error) {
	var batch model.Batch
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND sequence_number = ?", sessionID, seq).
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *batchRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("sequence_number ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) ListPending(ctx context.Context, sessionID string) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND status = ?", sessionID, model.BatchPending).
		Order("sequence_number ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) CountPending(ctx context.Context, sessionID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Batch{}).
		Where("session_id = ? AND status = ?", sessionID, model.BatchPending).
		Count(&n).Error
	return n, err
}

func (r *batchRepo) MarkDone(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Batch{}).
		Where("id = ? AND status = ?", id, model.BatchPending).
		Updates(map[string]interface{}{
			"status":     model.BatchDone,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *batchRepo) SumDoneQuantityByOrder(ctx context.Context, orderID string) (int, error) {
	var sum int
	err := r.db.WithContext(ctx).
		Model(&model.Batch{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("production_order_id = ? AND status = ?", orderID, model.BatchDone).
		Scan(&sum).Error
	return sum, err
}

// ── CheckoutEvent ──

// CheckoutRepository checkout event access
type CheckoutRepository interface {
	Create(ctx context.Context, ev *model.CheckoutEvent) error
	GetByBatch(ctx context.Context, batchID string) (*model.CheckoutEvent, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.CheckoutEvent, error)
	CountBySession(ctx context.Context, sessionID string) (int64, error)
	// LatestBySession returns gorm.ErrRecordNotFound when the session has no checkout
	LatestBySession(ctx context.Context, sessionID string) (*model.CheckoutEvent, error)
	ListSince(ctx context.Context, since time.Time) ([]model.CheckoutEvent, error)
}

type checkoutRepo struct {
	db *gorm.DB
}

// NewCheckoutRepo creates a CheckoutRepository
func NewCheckoutRepo(db *gorm.DB) CheckoutRepository {
	return &checkoutRepo{db: db}
}

func (r *checkoutRepo) Create(ctx context.Context, ev *model.CheckoutEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *checkoutRepo) GetByBatch(ctx context.Context, batchID string) (*model.CheckoutEvent, error) {
	var ev model.CheckoutEvent
	if err := r.db.WithContext(ctx).Where("batch_id = ?", batchID).First(&ev).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *checkoutRepo) ListBySession(ctx context.Context, sessionID string) ([]model.CheckoutEvent, error) {
	var events []model.CheckoutEvent
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("checkout_at ASC").
		Find(&events).Error
	return events, err
}

func (r *checkoutRepo) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.CheckoutEvent{}).
		Where("session_id = ?", sessionID).
		Count(&n).Error
	return n, err
}

func (r *checkoutRepo) LatestBySession(ctx context.Context, sessionID string) (*model.CheckoutEvent, error) {
	var ev model.CheckoutEvent
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("checkout_at DESC").
		First(&ev).Error
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *checkoutRepo) ListSince(ctx context.Context, since time.Time) ([]model.CheckoutEvent, error) {
	var events []model.CheckoutEvent
	err := r.db.WithContext(ctx).
		Where("checkout_at >= ?", since).
		Order("checkout_at ASC").
		Find(&events).Error
	return events, err
}
