package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/engine"
	"github.com/ThiagoScutari/sgp-costura/internal/model"
	"github.com/ThiagoScutari/sgp-costura/internal/repository"
	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
	"github.com/ThiagoScutari/sgp-costura/pkg/redis"
)

// ── pulse errors ──

var (
	ErrBatchNotFound     = pkgerrors.New(pkgerrors.ErrNotFound, "batch not found")
	ErrBatchAlreadyDone  = pkgerrors.New(pkgerrors.ErrConflict, "batch already checked out")
	ErrSessionNotRunning = pkgerrors.New(pkgerrors.ErrInvalidState, "session is not running on the line")
)

// PulseService records batch checkouts and reports line progress
type PulseService interface {
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	// PendingBatches lists pending batches in sequence order. An empty
	// sessionID means the session on the line; an idle line yields none.
	PendingBatches(ctx context.Context, sessionID string) ([]dto.BatchResponse, error)
	LiveStatus(ctx context.Context, sessionID string) (*dto.LiveStatusResponse, error)
}

type pulseService struct {
	repo       *repository.Repository
	efficiency EfficiencyService
	notifier   CheckoutNotifier
	now        Clock
	logger     *zap.Logger
}

// NewPulseService creates a PulseService. notifier may be nil.
func NewPulseService(repo *repository.Repository, efficiency EfficiencyService, notifier CheckoutNotifier, now Clock, logger *zap.Logger) PulseService {
	return &pulseService{repo: repo, efficiency: efficiency, notifier: notifier, now: now, logger: logger}
}

// ────────────────────── Checkout ──────────────────────

func (s *pulseService) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	now := s.now()
	var (
		resp   dto.CheckoutResponse
		notice redis.CheckoutNotice
	)

	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		batch, err := tx.Batch.GetForUpdate(ctx, req.BatchID)
		if err != nil {
			if isNotFound(err) {
				return ErrBatchNotFound
			}
			return err
		}
		if batch.Status == model.BatchDone {
			return ErrBatchAlreadyDone
		}

		session, err := getSession(ctx, tx, batch.SessionID)
		if err != nil {
			return err
		}
		line, err := loadLine(ctx, tx, true)
		if err != nil {
			return err
		}
		if !line.Holds(session.ID) || line.State != model.LineActive {
			return ErrSessionNotRunning
		}

		if req.OperatorID != nil && *req.OperatorID != "" {
			if _, err := tx.Operator.GetByID(ctx, *req.OperatorID); err != nil {
				if isNotFound(err) {
					return ErrOperatorNotFound
				}
				return err
			}
		}

		ref, err := referenceStart(ctx, tx, session, batch)
		if err != nil {
			return err
		}
		delayed := engine.Delayed(ref, now, session.PulseDuration)

		if err := tx.Batch.MarkDone(ctx, batch.ID); err != nil {
			if errors.Is(err, pkgerrors.ErrOptimisticLock) {
				return ErrBatchAlreadyDone
			}
			return err
		}
		ev := &model.CheckoutEvent{
			ID:         uuid.NewString(),
			BatchID:    batch.ID,
			SessionID:  session.ID,
			CheckoutAt: now,
			IsDelayed:  delayed,
		}
		if req.OperatorID != nil && *req.OperatorID != "" {
			ev.OperatorID = req.OperatorID
		}
		if err := tx.Checkout.Create(ctx, ev); err != nil {
			return err
		}

		// last batch closes the session
		pending, err := tx.Batch.CountPending(ctx, session.ID)
		if err != nil {
			return err
		}
		autoStopped := pending == 0
		if autoStopped {
			if err := stopHolder(ctx, tx, line, now); err != nil {
				return err
			}
		}

		resp = dto.CheckoutResponse{
			CheckoutID:     ev.ID,
			BatchID:        batch.ID,
			SessionID:      session.ID,
			SequenceNumber: batch.SequenceNumber,
			CheckoutAt:     formatTime(now),
			ReferenceStart: formatTime(ref),
			ElapsedSeconds: now.Sub(ref).Seconds(),
			Delayed:        delayed,
			AutoStopped:    autoStopped,
		}
		notice = redis.CheckoutNotice{
			SessionID:   session.ID,
			BatchID:     batch.ID,
			Sequence:    batch.SequenceNumber,
			CheckoutAt:  now,
			Delayed:     delayed,
			AutoStopped: autoStopped,
		}
		return nil
	})
	if err != nil {
		if isUnexpected(err) {
			s.logger.Error("checkout failed", zap.String("batch_id", req.BatchID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("batch checked out",
		zap.String("session_id", resp.SessionID),
		zap.Int("sequence_number", resp.SequenceNumber),
		zap.Bool("delayed", resp.Delayed),
		zap.Bool("auto_stopped", resp.AutoStopped),
	)
	if resp.AutoStopped {
		s.logger.Info("session finished its last batch", zap.String("session_id", resp.SessionID))
	}
	s.publish(ctx, notice)

	return &resp, nil
}

func (s *pulseService) publish(ctx context.Context, n redis.CheckoutNotice) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishCheckout(ctx, n); err != nil {
		s.logger.Warn("publish checkout notice failed", zap.String("batch_id", n.BatchID), zap.Error(err))
	}
}

// referenceStart resolves where the batch's cycle began.
func referenceStart(ctx context.Context, tx *repository.Repository, session *model.PlanningSession, batch *model.Batch) (time.Time, error) {
	var previous, latest *time.Time

	if batch.SequenceNumber > 1 {
		prev, err := tx.Batch.GetBySequence(ctx, session.ID, batch.SequenceNumber-1)
		switch {
		case err == nil:
			ev, err := tx.Checkout.GetByBatch(ctx, prev.ID)
			if err == nil {
				previous = &ev.CheckoutAt
			} else if !isNotFound(err) {
				return time.Time{}, err
			}
		case !isNotFound(err):
			return time.Time{}, err
		}
	}

	// the first batch always runs from the session start
	if previous == nil && batch.SequenceNumber > 1 {
		ev, err := tx.Checkout.LatestBySession(ctx, session.ID)
		if err == nil {
			latest = &ev.CheckoutAt
		} else if !isNotFound(err) {
			return time.Time{}, err
		}
	}

	events, err := tx.Lifecycle.ListBySession(ctx, session.ID)
	if err != nil {
		return time.Time{}, err
	}
	var firstStart *time.Time
	if at, ok := engine.FirstStart(toEngineEvents(events)); ok {
		firstStart = &at
	}

	return engine.ReferenceStart(previous, latest, firstStart, session.CreatedAt), nil
}

// ────────────────────── PendingBatches ──────────────────────

func (s *pulseService) PendingBatches(ctx context.Context, sessionID string) ([]dto.BatchResponse, error) {
	if sessionID == "" {
		line, err := loadLine(ctx, s.repo, false)
		if err != nil {
			return nil, err
		}
		if line.SessionID == nil {
			return []dto.BatchResponse{}, nil
		}
		sessionID = *line.SessionID
	} else if _, err := getSession(ctx, s.repo, sessionID); err != nil {
		return nil, err
	}

	batches, err := s.repo.Batch.ListPending(ctx, sessionID)
	if err != nil {
		s.logger.Error("list pending batches failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	return toBatchResponses(batches), nil
}

// ────────────────────── LiveStatus ──────────────────────

func (s *pulseService) LiveStatus(ctx context.Context, sessionID string) (*dto.LiveStatusResponse, error) {
	now := s.now()
	line, err := loadLine(ctx, s.repo, false)
	if err != nil {
		return nil, err
	}
	if sessionID == "" {
		if line.SessionID == nil {
			return &dto.LiveStatusResponse{State: string(engine.StateIdle), Workstations: []dto.WorkstationStatus{}}, nil
		}
		sessionID = *line.SessionID
	}

	session, err := s.repo.Planning.GetByID(ctx, sessionID)
	if err != nil {
		if isNotFound(err) {
			// the session vanished between reads; report the line as idle
			if line.Holds(sessionID) {
				return &dto.LiveStatusResponse{State: string(engine.StateIdle), Workstations: []dto.WorkstationStatus{}}, nil
			}
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	events, err := s.repo.Lifecycle.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state := sessionState(line, sessionID, events)

	cycleStart := sessionStart(session, events)
	latest, err := s.repo.Checkout.LatestBySession(ctx, sessionID)
	if err == nil {
		cycleStart = latest.CheckoutAt
	} else if !isNotFound(err) {
		return nil, err
	}

	var frozenAt *time.Time
	switch state {
	case engine.StatePaused:
		frozenAt = lastEvent(events, model.EventPause)
	case engine.StateStopped:
		frozenAt = lastEvent(events, model.EventStop)
	case engine.StateIdle:
		frozenAt = &cycleStart
	}
	elapsed := engine.CycleElapsed(cycleStart, now, frozenAt)

	batches, err := s.repo.Batch.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	done := 0
	for _, b := range batches {
		if b.Status == model.BatchDone {
			done++
		}
	}

	eff, err := s.efficiency.At(ctx, session, now)
	if err != nil {
		return nil, err
	}
	stations, err := s.workstations(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &dto.LiveStatusResponse{
		State:          string(state),
		SessionID:      sessionID,
		PulseDuration:  session.PulseDuration,
		CycleStart:     formatTime(cycleStart),
		ElapsedSeconds: elapsed.Seconds(),
		Delayed:        elapsed > time.Duration(session.PulseDuration)*time.Minute,
		BatchesDone:    done,
		BatchesTotal:   len(batches),
		Efficiency:     eff.Efficiency,
		Workstations:   stations,
	}, nil
}

func (s *pulseService) workstations(ctx context.Context, sessionID string) ([]dto.WorkstationStatus, error) {
	seats, err := s.repo.Seat.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.repo.Assignment.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ops, err := assignedOperations(ctx, s.repo, assignments)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.OperatorID)
	}
	operators, err := s.repo.Operator.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Operator, len(operators))
	for _, op := range operators {
		byID[op.ID] = op
	}

	out := make([]dto.WorkstationStatus, 0, len(seats))
	for _, seat := range seatResponses(seats, assignments, ops) {
		op := byID[seat.OperatorID]
		out = append(out, dto.WorkstationStatus{
			Position:       seat.Position,
			OperatorID:     seat.OperatorID,
			OperatorName:   op.Name,
			OperatorActive: op.IsActive,
			LoadMinutes:    seat.LoadMinutes,
			Operations:     seat.Assignments,
		})
	}
	return out, nil
}
