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

// EfficiencyService computes live efficiency on demand from persisted state
type EfficiencyService interface {
	Live(ctx context.Context, sessionID string) (*dto.EfficiencyResponse, error)
	// At computes efficiency as of now for a loaded session
	At(ctx context.Context, session *model.PlanningSession, now time.Time) (*dto.EfficiencyResponse, error)
}

type efficiencyService struct {
	production *config.ProductionConfig
	repo       *repository.Repository
	workTime   WorkTimeCalculator
	now        Clock
	logger     *zap.Logger
}

// NewEfficiencyService creates an EfficiencyService
func NewEfficiencyService(production *config.ProductionConfig, repo *repository.Repository, workTime WorkTimeCalculator, now Clock, logger *zap.Logger) EfficiencyService {
	return &efficiencyService{production: production, repo: repo, workTime: workTime, now: now, logger: logger}
}

func (s *efficiencyService) Live(ctx context.Context, sessionID string) (*dto.EfficiencyResponse, error) {
	session, err := getSession(ctx, s.repo, sessionID)
	if err != nil {
		return nil, err
	}
	return s.At(ctx, session, s.now())
}

func (s *efficiencyService) At(ctx context.Context, session *model.PlanningSession, now time.Time) (*dto.EfficiencyResponse, error) {
	assignments, err := s.repo.Assignment.ListBySession(ctx, session.ID)
	if err != nil {
		s.logger.Error("list assignments failed", zap.String("session_id", session.ID), zap.Error(err))
		return nil, err
	}
	ops, err := assignedOperations(ctx, s.repo, assignments)
	if err != nil {
		return nil, err
	}
	// one entry per assignment: an operation split across seats counts once per seat
	times := make([]float64, 0, len(assignments))
	for _, a := range assignments {
		times = append(times, ops[a.OperationID].FinalTime)
	}
	perBatch := engine.StandardMinutesPerBatch(times)

	checkouts, err := s.repo.Checkout.CountBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.Lifecycle.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	start := sessionStart(session, events)

	worked, err := s.workTime.NetMinutes(ctx, session.ID, start, now)
	if err != nil {
		return nil, err
	}

	eff := engine.Efficiency(perBatch, int(checkouts), worked)
	return &dto.EfficiencyResponse{
		SessionID:                session.ID,
		Efficiency:               eff,
		Status:                   engine.ClassifyEfficiency(eff, s.production.EfficiencyTarget, s.production.EfficiencyWarning),
		StandardMinutesPerBatch:  perBatch,
		Checkouts:                int(checkouts),
		StandardMinutesDelivered: perBatch * float64(checkouts),
		WorkedMinutes:            worked,
		SessionStart:             formatTime(start),
		ComputedAt:               formatTime(now),
	}, nil
}
