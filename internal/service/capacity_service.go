package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/engine"
	"github.com/ThiagoScutari/sgp-costura/internal/model"
	"github.com/ThiagoScutari/sgp-costura/internal/repository"
)

// CapacityService watches crew size against the plan and clones versions
// for a rebalanced restart.
type CapacityService interface {
	Detect(ctx context.Context, sessionID string) (*dto.CapacityResponse, error)
	// Rebalance clones the session's version and reports what is left to produce.
	// It does not create a session.
	Rebalance(ctx context.Context, sessionID string) (*dto.RebalanceResponse, error)
	SetOperatorActive(ctx context.Context, operatorID string, active bool) (*dto.OperatorResponse, error)
}

type capacityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCapacityService creates a CapacityService
func NewCapacityService(repo *repository.Repository, logger *zap.Logger) CapacityService {
	return &capacityService{repo: repo, logger: logger}
}

// ────────────────────── Detect ──────────────────────

func (s *capacityService) Detect(ctx context.Context, sessionID string) (*dto.CapacityResponse, error) {
	session, err := getSession(ctx, s.repo, sessionID)
	if err != nil {
		return nil, err
	}
	change, err := detect(ctx, s.repo, session)
	if err != nil {
		s.logger.Error("capacity check failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	msg := "crew matches the plan"
	if change.Warning {
		msg = fmt.Sprintf("%d of %d operators present, batch size %d recommended",
			change.CurrentOperators, change.OriginalOperators, *change.RecalculatedBatchSize)
		s.logger.Warn("line capacity dropped",
			zap.String("session_id", sessionID),
			zap.Int("original", change.OriginalOperators),
			zap.Int("current", change.CurrentOperators),
		)
	}
	return &dto.CapacityResponse{SessionID: sessionID, CapacityChange: change, Message: msg}, nil
}

// detect compares the session's seats whose operator is active with the
// planned crew; a zero stored count falls back to the number of seats.
func detect(ctx context.Context, repo *repository.Repository, session *model.PlanningSession) (engine.CapacityChange, error) {
	seats, err := repo.Seat.ListBySession(ctx, session.ID)
	if err != nil {
		return engine.CapacityChange{}, err
	}
	ids := make([]string, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.OperatorID)
	}
	operators, err := repo.Operator.ListByIDs(ctx, ids)
	if err != nil {
		return engine.CapacityChange{}, err
	}
	active := make(map[string]bool, len(operators))
	for _, op := range operators {
		active[op.ID] = op.IsActive
	}
	current := 0
	for _, seat := range seats {
		if active[seat.OperatorID] {
			current++
		}
	}

	original := session.OperatorCount
	if original <= 0 {
		original = len(seats)
	}
	return engine.DetectCapacityChange(original, current, session.BatchSize), nil
}

// ────────────────────── Rebalance ──────────────────────

func (s *capacityService) Rebalance(ctx context.Context, sessionID string) (*dto.RebalanceResponse, error) {
	var resp dto.RebalanceResponse

	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		session, err := getSession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		version, err := tx.SequenceVersion.GetByID(ctx, session.SequenceVersionID)
		if err != nil {
			if isNotFound(err) {
				return ErrVersionNotFound
			}
			return err
		}
		// clones of clones hang off the root version
		root := version
		if version.RebalanceOfID != nil {
			root, err = tx.SequenceVersion.GetByID(ctx, *version.RebalanceOfID)
			if err != nil {
				if isNotFound(err) {
					return ErrVersionNotFound
				}
				return err
			}
		}
		ops, err := tx.Operation.ListByVersion(ctx, version.ID)
		if err != nil {
			return err
		}
		n, err := tx.SequenceVersion.CountRebalances(ctx, root.ID)
		if err != nil {
			return err
		}

		clone := &model.SequenceVersion{
			ID:               uuid.NewString(),
			ProductReference: version.ProductReference,
			VersionName:      engine.RebalanceVersionName(root.VersionName, int(n)+1),
			Status:           "draft",
			EfficiencyFactor: version.EfficiencyFactor,
			RebalanceOfID:    &root.ID,
		}
		if err := tx.SequenceVersion.Create(ctx, clone); err != nil {
			return err
		}
		cloned := make([]model.Operation, 0, len(ops))
		for _, op := range ops {
			op.ID = uuid.NewString()
			op.VersionID = clone.ID
			cloned = append(cloned, op)
		}
		if err := tx.Operation.BatchCreate(ctx, cloned); err != nil {
			return err
		}

		// the remainder is counted against the order, a restarted session's
		// total already excludes earlier runs
		order, err := tx.ProductionOrder.GetByID(ctx, session.ProductionOrderID)
		if err != nil {
			if isNotFound(err) {
				return ErrOrderNotFound
			}
			return err
		}
		done, err := tx.Batch.SumDoneQuantityByOrder(ctx, session.ProductionOrderID)
		if err != nil {
			return err
		}
		change, err := detect(ctx, tx, session)
		if err != nil {
			return err
		}

		resp = dto.RebalanceResponse{
			SessionID:             session.ID,
			NewVersionID:          clone.ID,
			NewVersionName:        clone.VersionName,
			OperationsCloned:      len(cloned),
			RemainingQuantity:     engine.RemainingQuantity(order.Quantity, done),
			RecalculatedBatchSize: change.RecalculatedBatchSize,
		}
		return nil
	})
	if err != nil {
		if isUnexpected(err) {
			s.logger.Error("rebalance failed", zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("version cloned for rebalance",
		zap.String("session_id", sessionID),
		zap.String("new_version_id", resp.NewVersionID),
		zap.Int("remaining_quantity", resp.RemainingQuantity),
	)
	return &resp, nil
}

// ────────────────────── SetOperatorActive ──────────────────────

func (s *capacityService) SetOperatorActive(ctx context.Context, operatorID string, active bool) (*dto.OperatorResponse, error) {
	if err := s.repo.Operator.UpdateStatus(ctx, operatorID, active); err != nil {
		if isNotFound(err) {
			return nil, ErrOperatorNotFound
		}
		s.logger.Error("update operator status failed", zap.String("operator_id", operatorID), zap.Error(err))
		return nil, err
	}
	op, err := s.repo.Operator.GetByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("operator availability changed", zap.String("operator_id", operatorID), zap.Bool("active", active))
	return &dto.OperatorResponse{ID: op.ID, Name: op.Name, IsActive: op.IsActive}, nil
}
