package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ThiagoScutari/sgp-costura/config"
	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/engine"
	"github.com/ThiagoScutari/sgp-costura/internal/model"
	"github.com/ThiagoScutari/sgp-costura/internal/repository"
)

// ShiftConfigService shift calendar
type ShiftConfigService interface {
	Get(ctx context.Context) (*dto.ShiftConfigResponse, error)
	Update(ctx context.Context, req *dto.UpdateShiftConfigRequest) (*dto.ShiftConfigResponse, error)
	// Shift returns the validated calendar used for working-time arithmetic
	Shift(ctx context.Context) (*engine.Shift, error)
}

type shiftConfigService struct {
	bootstrap *config.ShiftConfig
	repo      *repository.Repository
	logger    *zap.Logger
}

// NewShiftConfigService creates a ShiftConfigService. bootstrap is served
// until a calendar is stored.
func NewShiftConfigService(bootstrap *config.ShiftConfig, repo *repository.Repository, logger *zap.Logger) ShiftConfigService {
	return &shiftConfigService{bootstrap: bootstrap, repo: repo, logger: logger}
}

func (s *shiftConfigService) load(ctx context.Context) (*model.ShiftConfig, error) {
	cfg, err := s.repo.ShiftConfig.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !isNotFound(err) {
		s.logger.Error("load shift config failed", zap.Error(err))
		return nil, err
	}

	breaks := make([]model.BreakWindow, 0, len(s.bootstrap.Breaks))
	for _, b := range s.bootstrap.Breaks {
		breaks = append(breaks, model.BreakWindow{Start: b.Start, End: b.End})
	}
	return &model.ShiftConfig{
		Singleton: true,
		StartTime: s.bootstrap.StartTime,
		EndTime:   s.bootstrap.EndTime,
		Timezone:  s.bootstrap.Timezone,
		Breaks:    breaks,
	}, nil
}

func (s *shiftConfigService) Get(ctx context.Context) (*dto.ShiftConfigResponse, error) {
	cfg, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return toShiftConfigResponse(cfg), nil
}

func (s *shiftConfigService) Update(ctx context.Context, req *dto.UpdateShiftConfigRequest) (*dto.ShiftConfigResponse, error) {
	specs := make([]engine.BreakSpec, 0, len(req.Breaks))
	breaks := make([]model.BreakWindow, 0, len(req.Breaks))
	for _, b := range req.Breaks {
		specs = append(specs, engine.BreakSpec{Start: b.Start, End: b.End})
		breaks = append(breaks, model.BreakWindow{Start: b.Start, End: b.End})
	}
	if _, err := engine.NewShift(req.StartTime, req.EndTime, req.Timezone, specs); err != nil {
		return nil, err
	}

	cfg := &model.ShiftConfig{
		Singleton: true,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Timezone:  req.Timezone,
		Breaks:    breaks,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.ShiftConfig.Save(ctx, cfg); err != nil {
		s.logger.Error("save shift config failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("shift config updated",
		zap.String("start", cfg.StartTime),
		zap.String("end", cfg.EndTime),
		zap.Int("breaks", len(cfg.Breaks)),
	)
	return toShiftConfigResponse(cfg), nil
}

func (s *shiftConfigService) Shift(ctx context.Context) (*engine.Shift, error) {
	cfg, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	specs := make([]engine.BreakSpec, 0, len(cfg.Breaks))
	for _, b := range cfg.Breaks {
		specs = append(specs, engine.BreakSpec{Start: b.Start, End: b.End})
	}
	return engine.NewShift(cfg.StartTime, cfg.EndTime, cfg.Timezone, specs)
}

func toShiftConfigResponse(cfg *model.ShiftConfig) *dto.ShiftConfigResponse {
	resp := &dto.ShiftConfigResponse{
		StartTime: cfg.StartTime,
		EndTime:   cfg.EndTime,
		Timezone:  cfg.Timezone,
		Breaks:    make([]dto.BreakWindow, 0, len(cfg.Breaks)),
	}
	for _, b := range cfg.Breaks {
		resp.Breaks = append(resp.Breaks, dto.BreakWindow{Start: b.Start, End: b.End})
	}
	if !cfg.UpdatedAt.IsZero() {
		resp.UpdatedAt = formatTime(cfg.UpdatedAt)
	}
	return resp
}
