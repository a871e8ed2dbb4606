package service

import (
	"context"
	"time"

	"github.com/ThiagoScutari/sgp-costura/internal/engine"
	"github.com/ThiagoScutari/sgp-costura/internal/repository"
)

// WorkTimeCalculator answers how many working minutes a session had between
// two instants, net of shift breaks and its own pauses.
type WorkTimeCalculator interface {
	NetMinutes(ctx context.Context, sessionID string, start, end time.Time) (float64, error)
}

type workTimeCalculator struct {
	repo   *repository.Repository
	shifts ShiftConfigService
}

// NewWorkTimeCalculator creates a WorkTimeCalculator
func NewWorkTimeCalculator(repo *repository.Repository, shifts ShiftConfigService) WorkTimeCalculator {
	return &workTimeCalculator{repo: repo, shifts: shifts}
}

func (w *workTimeCalculator) NetMinutes(ctx context.Context, sessionID string, start, end time.Time) (float64, error) {
	shift, err := w.shifts.Shift(ctx)
	if err != nil {
		return 0, err
	}
	events, err := w.repo.Lifecycle.ListBySession(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	pauses := engine.PauseIntervals(toEngineEvents(events), end)
	return engine.NetMinutes(start, end, shift, pauses), nil
}
