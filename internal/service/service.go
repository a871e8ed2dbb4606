package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ThiagoScutari/sgp-costura/config"
	"github.com/ThiagoScutari/sgp-costura/internal/repository"
	"github.com/ThiagoScutari/sgp-costura/pkg/redis"
)

// Clock returns the current instant. Services take one so tests can pin time.
type Clock func() time.Time

// CheckoutNotifier receives a notice after every committed checkout.
// *redis.Client satisfies it.
type CheckoutNotifier interface {
	PublishCheckout(ctx context.Context, n redis.CheckoutNotice) error
}

// Service aggregates every service
type Service struct {
	ShiftConfig ShiftConfigService
	WorkTime    WorkTimeCalculator
	Allocation  AllocationService
	Session     SessionService
	Efficiency  EfficiencyService
	Pulse       PulseService
	Capacity    CapacityService
	Analytics   AnalyticsService
	Export      ExportService
}

// NewService wires the services together
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	notifier CheckoutNotifier,
	logger *zap.Logger,
) *Service {
	return newService(cfg, repo, notifier, func() time.Time { return time.Now().UTC() }, logger)
}

func newService(cfg *config.Config, repo *repository.Repository, notifier CheckoutNotifier, now Clock, logger *zap.Logger) *Service {
	shifts := NewShiftConfigService(&cfg.Shift, repo, logger)
	workTime := NewWorkTimeCalculator(repo, shifts)
	efficiency := NewEfficiencyService(&cfg.Production, repo, workTime, now, logger)

	return &Service{
		ShiftConfig: shifts,
		WorkTime:    workTime,
		Allocation:  NewAllocationService(&cfg.Production, repo, now, logger),
		Session:     NewSessionService(repo, now, logger),
		Efficiency:  efficiency,
		Pulse:       NewPulseService(repo, efficiency, notifier, now, logger),
		Capacity:    NewCapacityService(repo, logger),
		Analytics:   NewAnalyticsService(&cfg.Production, repo, shifts, efficiency, now, logger),
		Export:      NewExportService(repo, efficiency, logger),
	}
}
