package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ThiagoScutari/sgp-costura/internal/model"
)

// ShiftConfigRepository single-row shift calendar
type ShiftConfigRepository interface {
	Get(ctx context.Context) (*model.ShiftConfig, error)
	Save(ctx context.Context, cfg *model.ShiftConfig) error
}

type shiftConfigRepo struct {
	db *gorm.DB
}

// NewShiftConfigRepo creates a ShiftConfigRepository
func NewShiftConfigRepo(db *gorm.DB) ShiftConfigRepository {
	return &shiftConfigRepo{db: db}
}

func (r *shiftConfigRepo) Get(ctx context.Context) (*model.ShiftConfig, error) {
	var cfg model.ShiftConfig
	if err := r.db.WithContext(ctx).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *shiftConfigRepo) Save(ctx context.Context, cfg *model.ShiftConfig) error {
	cfg.Singleton = true
	return r.db.WithContext(ctx).Save(cfg).Error
}
