package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/engine"
	"github.com/ThiagoScutari/sgp-costura/internal/model"
	"github.com/ThiagoScutari/sgp-costura/internal/repository"
)

// SessionService drives the production session lifecycle. Only one session
// occupies the line at a time.
type SessionService interface {
	Start(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error)
	Pause(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error)
	Resume(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error)
	Stop(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error)
	State(ctx context.Context, sessionID string) (engine.SessionState, error)
}

type sessionService struct {
	repo   *repository.Repository
	now    Clock
	logger *zap.Logger
}

// NewSessionService creates a SessionService
func NewSessionService(repo *repository.Repository, now Clock, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, now: now, logger: logger}
}

func (s *sessionService) Start(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error) {
	return s.transition(ctx, sessionID, engine.EventStart)
}

func (s *sessionService) Pause(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error) {
	return s.transition(ctx, sessionID, engine.EventPause)
}

func (s *sessionService) Resume(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error) {
	return s.transition(ctx, sessionID, engine.EventResume)
}

func (s *sessionService) Stop(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error) {
	return s.transition(ctx, sessionID, engine.EventStop)
}

func (s *sessionService) State(ctx context.Context, sessionID string) (engine.SessionState, error) {
	if _, err := getSession(ctx, s.repo, sessionID); err != nil {
		return "", err
	}
	line, err := loadLine(ctx, s.repo, false)
	if err != nil {
		return "", err
	}
	events, err := s.repo.Lifecycle.ListBySession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return sessionState(line, sessionID, events), nil
}

func (s *sessionService) transition(ctx context.Context, sessionID, event string) (*dto.SessionStateResponse, error) {
	now := s.now()
	var next engine.SessionState

	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		session, err := getSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		line, err := loadLine(ctx, tx, true)
		if err != nil {
			return err
		}
		events, err := tx.Lifecycle.ListBySession(ctx, sessionID)
		if err != nil {
			return err
		}

		next, err = engine.Transition(sessionState(line, sessionID, events), event)
		if err != nil {
			return err
		}

		switch event {
		case engine.EventStart:
			if line.SessionID != nil && *line.SessionID != sessionID {
				s.logger.Info("session displaced from the line",
					zap.String("displaced_session_id", *line.SessionID),
					zap.String("session_id", sessionID),
				)
				if err := stopHolder(ctx, tx, line, now); err != nil {
					return err
				}
			}
			if err := tx.Planning.DeactivateByOrder(ctx, session.ProductionOrderID); err != nil {
				return err
			}
			if err := tx.Planning.SetActive(ctx, sessionID, true); err != nil {
				return err
			}
			line.SessionID = &session.ID
			line.State = model.LineActive
		case engine.EventPause:
			line.State = model.LinePaused
		case engine.EventResume:
			line.State = model.LineActive
		case engine.EventStop:
			if err := tx.Planning.SetActive(ctx, sessionID, false); err != nil {
				return err
			}
			clearLine(line, now)
		}
		line.UpdatedAt = now

		if err := appendEvent(ctx, tx, sessionID, event, now); err != nil {
			return err
		}
		return tx.LineState.Save(ctx, line)
	})
	if err != nil {
		if isUnexpected(err) {
			s.logger.Error("session transition failed",
				zap.String("session_id", sessionID),
				zap.String("event", event),
				zap.Error(err),
			)
		}
		return nil, err
	}

	s.logger.Info("session transition",
		zap.String("session_id", sessionID),
		zap.String("event", event),
		zap.String("state", string(next)),
	)
	return &dto.SessionStateResponse{
		SessionID:  sessionID,
		State:      string(next),
		Event:      event,
		OccurredAt: formatTime(now),
	}, nil
}
