package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ThiagoScutari/sgp-costura/config"
	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/repository"
	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
)

// ErrInvalidWindow analytics window out of range
var ErrInvalidWindow = pkgerrors.New(pkgerrors.ErrInvalidInput, "hours must be between 1 and 168")

const maxAnalyticsHours = 168

// AnalyticsService floor performance over a trailing window
type AnalyticsService interface {
	Dashboard(ctx context.Context, hours int) (*dto.AnalyticsDashboard, error)
}

type analyticsService struct {
	production *config.ProductionConfig
	repo       *repository.Repository
	shifts     ShiftConfigService
	efficiency EfficiencyService
	now        Clock
	logger     *zap.Logger
}

// NewAnalyticsService creates an AnalyticsService
func NewAnalyticsService(
	production *config.ProductionConfig,
	repo *repository.Repository,
	shifts ShiftConfigService,
	efficiency EfficiencyService,
	now Clock,
	logger *zap.Logger,
) AnalyticsService {
	return &analyticsService{
		production: production,
		repo:       repo,
		shifts:     shifts,
		efficiency: efficiency,
		now:        now,
		logger:     logger,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (s *analyticsService) Dashboard(ctx context.Context, hours int) (*dto.AnalyticsDashboard, error) {
	if hours < 1 || hours > maxAnalyticsHours {
		return nil, ErrInvalidWindow
	}
	now := s.now()
	since := now.Add(-time.Duration(hours) * time.Hour)

	out := &dto.AnalyticsDashboard{
		Hours:           hours,
		Efficiency:      dto.EfficiencySummary{Target: s.production.EfficiencyTarget, Status: "no_data"},
		HourlyBreakdown: []dto.HourlyBucket{},
	}

	checkouts, err := s.repo.Checkout.ListSince(ctx, since)
	if err != nil {
		s.logger.Error("list checkouts failed", zap.Error(err))
		return nil, err
	}

	// efficiency and target follow the session on the line
	line, err := loadLine(ctx, s.repo, false)
	if err != nil {
		return nil, err
	}
	if line.SessionID != nil {
		session, err := s.repo.Planning.GetByID(ctx, *line.SessionID)
		if err == nil {
			eff, err := s.efficiency.At(ctx, session, now)
			if err != nil {
				return nil, err
			}
			out.Efficiency.Current = round1(eff.Efficiency)
			out.Efficiency.Status = string(eff.Status)
			out.ProductionVolume.TargetVolume = session.TotalQuantity
		} else if !isNotFound(err) {
			return nil, err
		}
	}

	if len(checkouts) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(checkouts))
	for _, c := range checkouts {
		ids = append(ids, c.BatchID)
	}
	batches, err := s.repo.Batch.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	qty := make(map[string]int, len(batches))
	for _, b := range batches {
		qty[b.ID] = b.Quantity
	}

	shift, err := s.shifts.Shift(ctx)
	if err != nil {
		return nil, err
	}

	delayed, pieces := 0, 0
	hourly := make(map[string]*dto.HourlyBucket)
	for _, c := range checkouts {
		if c.IsDelayed {
			delayed++
		}
		pieces += qty[c.BatchID]
		key := c.CheckoutAt.In(shift.Location).Format("15") + ":00"
		bucket, ok := hourly[key]
		if !ok {
			bucket = &dto.HourlyBucket{Hour: key}
			hourly[key] = bucket
		}
		bucket.Pieces += qty[c.BatchID]
		bucket.Batches++
	}

	out.DelayRate = dto.DelayRate{
		DelayedCount: delayed,
		TotalCount:   len(checkouts),
		Percentage:   round1(100 * float64(delayed) / float64(len(checkouts))),
	}
	out.ProductionVolume.TotalPieces = pieces
	out.ProductionVolume.TotalBatches = len(checkouts)
	out.ProductionVolume.AvgPiecesPerHour = round1(float64(pieces) / float64(hours))

	for _, b := range hourly {
		out.HourlyBreakdown = append(out.HourlyBreakdown, *b)
	}
	sort.Slice(out.HourlyBreakdown, func(i, j int) bool {
		return out.HourlyBreakdown[i].Hour < out.HourlyBreakdown[j].Hour
	})
	return out, nil
}
