package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ThiagoScutari/sgp-costura/config"
	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/engine"
	"github.com/ThiagoScutari/sgp-costura/internal/model"
	"github.com/ThiagoScutari/sgp-costura/internal/repository"
	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
)

// ── allocation errors ──

var (
	ErrBatchSizeUnknown = pkgerrors.New(pkgerrors.ErrInvalidInput, "batch size not given and the version has no standard time to derive it from")
	ErrInvalidPulse     = pkgerrors.New(pkgerrors.ErrInvalidInput, "pulse duration must be positive")
)

// AllocationService turns a balancing draft into a planning session
type AllocationService interface {
	PreviewBatches(ctx context.Context, req *dto.BatchPreviewRequest) (*dto.BatchPreviewResponse, error)
	// Sync replaces the production order's plan with the draft in one transaction
	Sync(ctx context.Context, req *dto.SyncAllocationsRequest) (*dto.SyncAllocationsResponse, error)
	GetSession(ctx context.Context, id string) (*dto.PlanningSessionDetail, error)
	ListSessions(ctx context.Context, orderID string) ([]dto.PlanningSessionResponse, error)
}

type allocationService struct {
	production *config.ProductionConfig
	repo       *repository.Repository
	now        Clock
	logger     *zap.Logger
}

// NewAllocationService creates an AllocationService
func NewAllocationService(production *config.ProductionConfig, repo *repository.Repository, now Clock, logger *zap.Logger) AllocationService {
	return &allocationService{production: production, repo: repo, now: now, logger: logger}
}

// ────────────────────── PreviewBatches ──────────────────────

func (s *allocationService) PreviewBatches(_ context.Context, req *dto.BatchPreviewRequest) (*dto.BatchPreviewResponse, error) {
	plans, err := engine.GenerateBatches(req.TotalQuantity, req.BatchSize)
	if err != nil {
		return nil, err
	}
	return &dto.BatchPreviewResponse{
		TotalQuantity: req.TotalQuantity,
		BatchSize:     req.BatchSize,
		BatchCount:    len(plans),
		Batches:       plans,
	}, nil
}

// ────────────────────── Sync ──────────────────────

type seatDraft struct {
	operatorID string
	position   int
	items      []dto.AllocationItem
}

func (s *allocationService) Sync(ctx context.Context, req *dto.SyncAllocationsRequest) (*dto.SyncAllocationsResponse, error) {
	if req.PulseDuration != nil && *req.PulseDuration <= 0 {
		return nil, ErrInvalidPulse
	}

	order, err := s.repo.ProductionOrder.GetByID(ctx, req.ProductionOrderID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("load production order failed", zap.String("id", req.ProductionOrderID), zap.Error(err))
		return nil, err
	}
	version, err := s.repo.SequenceVersion.GetByID(ctx, req.SequenceVersionID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVersionNotFound
		}
		s.logger.Error("load sequence version failed", zap.String("id", req.SequenceVersionID), zap.Error(err))
		return nil, err
	}
	ops, err := s.repo.Operation.ListByVersion(ctx, version.ID)
	if err != nil {
		s.logger.Error("list operations failed", zap.String("version_id", version.ID), zap.Error(err))
		return nil, err
	}
	opsByID := make(map[string]model.Operation, len(ops))
	for _, op := range ops {
		opsByID[op.ID] = op
	}

	// 1. drop operations that do not belong to the version
	valid := make([]dto.AllocationItem, 0, len(req.Allocations))
	discarded := make([]string, 0)
	for _, a := range req.Allocations {
		if _, ok := opsByID[a.OperationID]; !ok {
			discarded = append(discarded, a.OperationID)
			continue
		}
		valid = append(valid, a)
	}
	if len(discarded) > 0 {
		s.logger.Warn("discarding allocations outside the sequence version",
			zap.String("sequence_version_id", version.ID),
			zap.Strings("operation_ids", discarded),
		)
	}

	// 2. one seat per operator; unallocated items stay in the bank
	drafts := make(map[string]*seatDraft)
	for _, a := range valid {
		if a.OperatorID == nil || *a.OperatorID == "" {
			continue
		}
		d, ok := drafts[*a.OperatorID]
		if !ok {
			d = &seatDraft{operatorID: *a.OperatorID, position: a.Position}
			drafts[*a.OperatorID] = d
		}
		if a.Position < d.position {
			d.position = a.Position
		}
		d.items = append(d.items, a)
	}
	seats := make([]*seatDraft, 0, len(drafts))
	operatorIDs := make([]string, 0, len(drafts))
	for id, d := range drafts {
		seats = append(seats, d)
		operatorIDs = append(operatorIDs, id)
	}
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].position != seats[j].position {
			return seats[i].position < seats[j].position
		}
		return seats[i].operatorID < seats[j].operatorID
	})

	operators, err := s.repo.Operator.ListByIDs(ctx, operatorIDs)
	if err != nil {
		s.logger.Error("list operators failed", zap.Error(err))
		return nil, err
	}
	if len(operators) != len(operatorIDs) {
		return nil, ErrOperatorNotFound
	}

	// 3. plan parameters
	pulse := s.production.DefaultPulseMinutes
	if order.PulseDuration != nil && *order.PulseDuration > 0 {
		pulse = *order.PulseDuration
	}
	if req.PulseDuration != nil {
		pulse = *req.PulseDuration
	}
	total := order.Quantity
	if req.TotalQuantity != nil {
		total = *req.TotalQuantity
	}
	batchSize, err := s.batchSize(req, ops, version.EfficiencyFactor, len(seats), pulse)
	if err != nil {
		return nil, err
	}
	plans, err := engine.GenerateBatches(total, batchSize)
	if err != nil {
		return nil, err
	}

	versionName := req.VersionName
	if versionName == "" {
		versionName = version.VersionName
	}
	now := s.now()

	session := &model.PlanningSession{
		ID:                uuid.NewString(),
		ProductionOrderID: order.ID,
		SequenceVersionID: version.ID,
		VersionName:       versionName,
		Notes:             req.Notes,
		PulseDuration:     pulse,
		BatchSize:         batchSize,
		TotalQuantity:     total,
		OperatorCount:     len(seats),
		EfficiencyFactor:  version.EfficiencyFactor,
		IsActive:          true,
		CreatedAt:         now,
	}

	seatRows := make([]model.WorkstationSeat, 0, len(seats))
	assignmentRows := make([]model.OperationAssignment, 0, len(valid))
	for _, d := range seats {
		seat := model.WorkstationSeat{
			ID:         uuid.NewString(),
			SessionID:  session.ID,
			OperatorID: d.operatorID,
			Position:   d.position,
		}
		seatRows = append(seatRows, seat)
		for _, item := range d.items {
			qty := item.Quantity
			if qty <= 0 {
				qty = batchSize
			}
			assignmentRows = append(assignmentRows, model.OperationAssignment{
				ID:               uuid.NewString(),
				SeatID:           seat.ID,
				OperationID:      item.OperationID,
				ExecutedQuantity: qty,
				IsFractioned:     qty < batchSize,
			})
		}
	}

	batchRows := make([]model.Batch, 0, len(plans))
	for _, p := range plans {
		batchRows = append(batchRows, model.Batch{
			ID:                uuid.NewString(),
			SessionID:         session.ID,
			ProductionOrderID: order.ID,
			SequenceNumber:    p.Sequence,
			Quantity:          p.Quantity,
			Status:            model.BatchPending,
		})
	}

	// 4. full replace, atomically
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context, tx *repository.Repository) error {
		line, err := loadLine(ctx, tx, true)
		if err != nil {
			return err
		}
		if line.SessionID != nil {
			holder, err := tx.Planning.GetByID(ctx, *line.SessionID)
			if err != nil && !isNotFound(err) {
				return err
			}
			if err == nil && holder.ProductionOrderID == order.ID {
				if err := stopHolder(ctx, tx, line, now); err != nil {
					return err
				}
			}
		}
		if err := tx.Planning.DeactivateByOrder(ctx, order.ID); err != nil {
			return err
		}
		if err := tx.Planning.Create(ctx, session); err != nil {
			return err
		}
		if err := tx.Seat.BatchCreate(ctx, seatRows); err != nil {
			return err
		}
		if err := tx.Assignment.BatchCreate(ctx, assignmentRows); err != nil {
			return err
		}
		return tx.Batch.BatchCreate(ctx, batchRows)
	})
	if err != nil {
		s.logger.Error("sync allocations failed",
			zap.String("production_order_id", order.ID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("planning session synced",
		zap.String("session_id", session.ID),
		zap.String("production_order_id", order.ID),
		zap.Int("seats", len(seatRows)),
		zap.Int("batches", len(batchRows)),
	)

	return &dto.SyncAllocationsResponse{
		SessionID:             session.ID,
		PulseDuration:         pulse,
		BatchSize:             batchSize,
		TotalQuantity:         total,
		OperatorCount:         len(seatRows),
		Seats:                 seatResponses(seatRows, assignmentRows, opsByID),
		DiscardedOperationIDs: discarded,
		Batches:               toBatchResponses(batchRows),
	}, nil
}

// batchSize takes the draft's value or derives the cell capacity per pulse
// from the version's active operations.
func (s *allocationService) batchSize(req *dto.SyncAllocationsRequest, ops []model.Operation, factor float64, operators, pulse int) (int, error) {
	if req.BatchSize != nil {
		return *req.BatchSize, nil
	}
	times := make([]float64, 0, len(ops))
	for _, op := range ops {
		if op.IsActive {
			times = append(times, op.FinalTime)
		}
	}
	piece := engine.PieceMinutes(times, factor)
	if piece <= 0 {
		return 0, ErrBatchSizeUnknown
	}
	size := engine.SuggestBatchSize(operators, pulse, piece)
	if size < 1 {
		size = 1
	}
	return size, nil
}

// ────────────────────── GetSession / ListSessions ──────────────────────

func (s *allocationService) GetSession(ctx context.Context, id string) (*dto.PlanningSessionDetail, error) {
	session, err := getSession(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	line, err := loadLine(ctx, s.repo, false)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.Lifecycle.ListBySession(ctx, id)
	if err != nil {
		return nil, err
	}
	seats, err := s.repo.Seat.ListBySession(ctx, id)
	if err != nil {
		return nil, err
	}
	assignments, err := s.repo.Assignment.ListBySession(ctx, id)
	if err != nil {
		return nil, err
	}
	ops, err := assignedOperations(ctx, s.repo, assignments)
	if err != nil {
		return nil, err
	}
	batches, err := s.repo.Batch.ListBySession(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.PlanningSessionDetail{
		PlanningSessionResponse: toSessionResponse(session, sessionState(line, id, events)),
		Seats:                   seatResponses(seats, assignments, ops),
		Batches:                 toBatchResponses(batches),
	}, nil
}

func (s *allocationService) ListSessions(ctx context.Context, orderID string) ([]dto.PlanningSessionResponse, error) {
	if _, err := s.repo.ProductionOrder.GetByID(ctx, orderID); err != nil {
		if isNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	sessions, err := s.repo.Planning.ListByOrder(ctx, orderID)
	if err != nil {
		s.logger.Error("list planning sessions failed", zap.String("production_order_id", orderID), zap.Error(err))
		return nil, err
	}
	line, err := loadLine(ctx, s.repo, false)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PlanningSessionResponse, 0, len(sessions))
	for i := range sessions {
		events, err := s.repo.Lifecycle.ListBySession(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toSessionResponse(&sessions[i], sessionState(line, sessions[i].ID, events)))
	}
	return out, nil
}
