package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/engine"
	"github.com/ThiagoScutari/sgp-costura/internal/model"
	"github.com/ThiagoScutari/sgp-costura/internal/repository"
	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
)

// ── shared business errors ──

var (
	ErrSessionNotFound  = pkgerrors.New(pkgerrors.ErrNotFound, "planning session not found")
	ErrOrderNotFound    = pkgerrors.New(pkgerrors.ErrNotFound, "production order not found")
	ErrVersionNotFound  = pkgerrors.New(pkgerrors.ErrNotFound, "operation sequence version not found")
	ErrOperatorNotFound = pkgerrors.New(pkgerrors.ErrNotFound, "operator not found")
)

const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func getSession(ctx context.Context, repo *repository.Repository, id string) (*model.PlanningSession, error) {
	session, err := repo.Planning.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// loadLine reads the line occupancy, treating a missing row as an idle line.
func loadLine(ctx context.Context, repo *repository.Repository, forUpdate bool) (*model.LineState, error) {
	var (
		line *model.LineState
		err  error
	)
	if forUpdate {
		line, err = repo.LineState.GetForUpdate(ctx)
	} else {
		line, err = repo.LineState.Get(ctx)
	}
	if err != nil {
		if isNotFound(err) {
			return &model.LineState{Singleton: true}, nil
		}
		return nil, err
	}
	return line, nil
}

func clearLine(line *model.LineState, at time.Time) {
	line.SessionID = nil
	line.State = ""
	line.UpdatedAt = at
}

func appendEvent(ctx context.Context, repo *repository.Repository, sessionID, eventType string, at time.Time) error {
	return repo.Lifecycle.Create(ctx, &model.LifecycleEvent{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		EventType:  eventType,
		OccurredAt: at,
	})
}

// stopHolder appends a stop for the session holding the line, deactivates it
// and frees the line.
func stopHolder(ctx context.Context, tx *repository.Repository, line *model.LineState, at time.Time) error {
	if line.SessionID == nil {
		return nil
	}
	holder := *line.SessionID
	if err := appendEvent(ctx, tx, holder, model.EventStop, at); err != nil {
		return err
	}
	if err := tx.Planning.SetActive(ctx, holder, false); err != nil && !isNotFound(err) {
		return err
	}
	clearLine(line, at)
	return tx.LineState.Save(ctx, line)
}

func toEngineEvents(events []model.LifecycleEvent) []engine.Event {
	out := make([]engine.Event, len(events))
	for i, ev := range events {
		out[i] = engine.Event{Type: ev.EventType, At: ev.OccurredAt}
	}
	return out
}

// sessionState derives the lifecycle state. The line row is authoritative for
// the session holding it; any other session that still looks running in its
// own log has lost the line and counts as stopped.
func sessionState(line *model.LineState, sessionID string, events []model.LifecycleEvent) engine.SessionState {
	if line.Holds(sessionID) {
		if line.State == model.LinePaused {
			return engine.StatePaused
		}
		return engine.StateActive
	}
	st := engine.StateFromLog(toEngineEvents(events))
	if st == engine.StateActive || st == engine.StatePaused {
		return engine.StateStopped
	}
	return st
}

// sessionStart is the first start event, falling back to creation time.
func sessionStart(session *model.PlanningSession, events []model.LifecycleEvent) time.Time {
	if first, ok := engine.FirstStart(toEngineEvents(events)); ok {
		return first
	}
	return session.CreatedAt
}

// lastEvent returns the latest event of the given type.
func lastEvent(events []model.LifecycleEvent, eventType string) *time.Time {
	var last *time.Time
	for i := range events {
		if events[i].EventType == eventType && (last == nil || events[i].OccurredAt.After(*last)) {
			at := events[i].OccurredAt
			last = &at
		}
	}
	return last
}

// ── conversions ──

func toBatchResponse(b *model.Batch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:             b.ID,
		SessionID:      b.SessionID,
		SequenceNumber: b.SequenceNumber,
		Quantity:       b.Quantity,
		Status:         b.Status,
	}
}

func toBatchResponses(batches []model.Batch) []dto.BatchResponse {
	out := make([]dto.BatchResponse, 0, len(batches))
	for i := range batches {
		out = append(out, toBatchResponse(&batches[i]))
	}
	return out
}

func toSessionResponse(s *model.PlanningSession, state engine.SessionState) dto.PlanningSessionResponse {
	return dto.PlanningSessionResponse{
		ID:                s.ID,
		ProductionOrderID: s.ProductionOrderID,
		SequenceVersionID: s.SequenceVersionID,
		VersionName:       s.VersionName,
		Notes:             s.Notes,
		PulseDuration:     s.PulseDuration,
		BatchSize:         s.BatchSize,
		TotalQuantity:     s.TotalQuantity,
		OperatorCount:     s.OperatorCount,
		EfficiencyFactor:  s.EfficiencyFactor,
		IsActive:          s.IsActive,
		State:             string(state),
		CreatedAt:         formatTime(s.CreatedAt),
	}
}

// seatResponses groups assignments under their seats; ops resolves
// operation ids for descriptions and standard times.
func seatResponses(seats []model.WorkstationSeat, assignments []model.OperationAssignment, ops map[string]model.Operation) []dto.SeatResponse {
	bySeat := make(map[string][]model.OperationAssignment, len(seats))
	for _, a := range assignments {
		bySeat[a.SeatID] = append(bySeat[a.SeatID], a)
	}

	out := make([]dto.SeatResponse, 0, len(seats))
	for _, seat := range seats {
		resp := dto.SeatResponse{
			ID:          seat.ID,
			OperatorID:  seat.OperatorID,
			Position:    seat.Position,
			Assignments: make([]dto.AssignmentResponse, 0, len(bySeat[seat.ID])),
		}
		for _, a := range bySeat[seat.ID] {
			op := ops[a.OperationID]
			resp.LoadMinutes += op.FinalTime
			resp.Assignments = append(resp.Assignments, dto.AssignmentResponse{
				ID:               a.ID,
				OperationID:      a.OperationID,
				Description:      op.Description,
				FinalTime:        op.FinalTime,
				ExecutedQuantity: a.ExecutedQuantity,
				IsFractioned:     a.IsFractioned,
			})
		}
		out = append(out, resp)
	}
	return out
}

// assignedOperations loads the operations referenced by assignments.
func assignedOperations(ctx context.Context, repo *repository.Repository, assignments []model.OperationAssignment) (map[string]model.Operation, error) {
	ids := make([]string, 0, len(assignments))
	seen := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		if !seen[a.OperationID] {
			seen[a.OperationID] = true
			ids = append(ids, a.OperationID)
		}
	}
	ops, err := repo.Operation.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Operation, len(ops))
	for _, op := range ops {
		byID[op.ID] = op
	}
	return byID, nil
}

// isUnexpected reports errors that carry no business kind.
func isUnexpected(err error) bool {
	return pkgerrors.KindOf(err) == "internal"
}
