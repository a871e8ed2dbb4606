package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/ThiagoScutari/sgp-costura/internal/model"
	"github.com/ThiagoScutari/sgp-costura/internal/repository"
	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
)

// memStore is an in-memory stand-in for the whole schema. Every repository
// below reads and writes it; the fake transactor snapshots it so a failing
// unit of work leaves no trace, like a database rollback.
type memStore struct {
	orders      map[string]model.ProductionOrder
	versions    map[string]model.SequenceVersion
	operations  map[string]model.Operation
	operators   map[string]model.Operator
	sessions    map[string]model.PlanningSession
	seats       map[string]model.WorkstationSeat
	assignments map[string]model.OperationAssignment
	batches     map[string]model.Batch
	checkouts   map[string]model.CheckoutEvent
	events      []model.LifecycleEvent
	line        *model.LineState
	shift       *model.ShiftConfig

	// failures injects an error into the named write, e.g. "Batch.BatchCreate"
	failures map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		orders:      make(map[string]model.ProductionOrder),
		versions:    make(map[string]model.SequenceVersion),
		operations:  make(map[string]model.Operation),
		operators:   make(map[string]model.Operator),
		sessions:    make(map[string]model.PlanningSession),
		seats:       make(map[string]model.WorkstationSeat),
		assignments: make(map[string]model.OperationAssignment),
		batches:     make(map[string]model.Batch),
		checkouts:   make(map[string]model.CheckoutEvent),
		failures:    make(map[string]error),
	}
}

func (s *memStore) fail(op string) error {
	return s.failures[op]
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() *memStore {
	c := &memStore{
		orders:      cloneMap(s.orders),
		versions:    cloneMap(s.versions),
		operations:  cloneMap(s.operations),
		operators:   cloneMap(s.operators),
		sessions:    cloneMap(s.sessions),
		seats:       cloneMap(s.seats),
		assignments: cloneMap(s.assignments),
		batches:     cloneMap(s.batches),
		checkouts:   cloneMap(s.checkouts),
		events:      append([]model.LifecycleEvent(nil), s.events...),
		failures:    s.failures,
	}
	if s.line != nil {
		line := *s.line
		c.line = &line
	}
	if s.shift != nil {
		shift := *s.shift
		c.shift = &shift
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	*s = *from
}

// repository builds the aggregate over the store
func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		ProductionOrder: &mockOrderRepo{s},
		SequenceVersion: &mockVersionRepo{s},
		Operation:       &mockOperationRepo{s},
		Operator:        &mockOperatorRepo{s},
		Planning:        &mockPlanningRepo{s},
		Seat:            &mockSeatRepo{s},
		Assignment:      &mockAssignmentRepo{s},
		Batch:           &mockBatchRepo{s},
		Checkout:        &mockCheckoutRepo{s},
		Lifecycle:       &mockLifecycleRepo{s},
		LineState:       &mockLineStateRepo{s},
		ShiftConfig:     &mockShiftConfigRepo{s},
		Tx:              &mockTransactor{s},
	}
}

// ── Mock Transactor ──

type mockTransactor struct{ s *memStore }

func (m *mockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *repository.Repository) error) error {
	saved := m.s.snapshot()
	if err := fn(ctx, m.s.repository()); err != nil {
		m.s.restore(saved)
		return err
	}
	return nil
}

// ── Mock ProductionOrderRepository ──

type mockOrderRepo struct{ s *memStore }

func (m *mockOrderRepo) Create(_ context.Context, order *model.ProductionOrder) error {
	m.s.orders[order.ID] = *order
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*model.ProductionOrder, error) {
	if o, ok := m.s.orders[id]; ok {
		return &o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock SequenceVersionRepository ──

type mockVersionRepo struct{ s *memStore }

func (m *mockVersionRepo) Create(_ context.Context, version *model.SequenceVersion) error {
	if err := m.s.fail("SequenceVersion.Create"); err != nil {
		return err
	}
	m.s.versions[version.ID] = *version
	return nil
}

func (m *mockVersionRepo) GetByID(_ context.Context, id string) (*model.SequenceVersion, error) {
	if v, ok := m.s.versions[id]; ok {
		return &v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVersionRepo) CountRebalances(_ context.Context, originalID string) (int64, error) {
	var n int64
	for _, v := range m.s.versions {
		if v.RebalanceOfID != nil && *v.RebalanceOfID == originalID {
			n++
		}
	}
	return n, nil
}

// ── Mock OperationRepository ──

type mockOperationRepo struct{ s *memStore }

func (m *mockOperationRepo) BatchCreate(_ context.Context, ops []model.Operation) error {
	if err := m.s.fail("Operation.BatchCreate"); err != nil {
		return err
	}
	for _, op := range ops {
		m.s.operations[op.ID] = op
	}
	return nil
}

func (m *mockOperationRepo) ListByVersion(_ context.Context, versionID string) ([]model.Operation, error) {
	var result []model.Operation
	for _, op := range m.s.operations {
		if op.VersionID == versionID {
			result = append(result, op)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Sequence < result[j].Sequence })
	return result, nil
}

func (m *mockOperationRepo) ListByIDs(_ context.Context, ids []string) ([]model.Operation, error) {
	var result []model.Operation
	for _, id := range ids {
		if op, ok := m.s.operations[id]; ok {
			result = append(result, op)
		}
	}
	return result, nil
}

// ── Mock OperatorRepository ──

type mockOperatorRepo struct{ s *memStore }

func (m *mockOperatorRepo) Create(_ context.Context, op *model.Operator) error {
	m.s.operators[op.ID] = *op
	return nil
}

func (m *mockOperatorRepo) GetByID(_ context.Context, id string) (*model.Operator, error) {
	if op, ok := m.s.operators[id]; ok {
		return &op, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOperatorRepo) ListByIDs(_ context.Context, ids []string) ([]model.Operator, error) {
	var result []model.Operator
	for _, id := range ids {
		if op, ok := m.s.operators[id]; ok {
			result = append(result, op)
		}
	}
	return result, nil
}

func (m *mockOperatorRepo) UpdateStatus(_ context.Context, id string, active bool) error {
	op, ok := m.s.operators[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	op.IsActive = active
	m.s.operators[id] = op
	return nil
}

// ── Mock PlanningSessionRepository ──

type mockPlanningRepo struct{ s *memStore }

func (m *mockPlanningRepo) Create(_ context.Context, session *model.PlanningSession) error {
	if err := m.s.fail("Planning.Create"); err != nil {
		return err
	}
	m.s.sessions[session.ID] = *session
	return nil
}

func (m *mockPlanningRepo) GetByID(_ context.Context, id string) (*model.PlanningSession, error) {
	if ps, ok := m.s.sessions[id]; ok {
		return &ps, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlanningRepo) ListByOrder(_ context.Context, orderID string) ([]model.PlanningSession, error) {
	var result []model.PlanningSession
	for _, ps := range m.s.sessions {
		if ps.ProductionOrderID == orderID {
			result = append(result, ps)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockPlanningRepo) DeactivateByOrder(_ context.Context, orderID string) error {
	for id, ps := range m.s.sessions {
		if ps.ProductionOrderID == orderID {
			ps.IsActive = false
			m.s.sessions[id] = ps
		}
	}
	return nil
}

func (m *mockPlanningRepo) SetActive(_ context.Context, id string, active bool) error {
	ps, ok := m.s.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ps.IsActive = active
	m.s.sessions[id] = ps
	return nil
}

// ── Mock SeatRepository ──

type mockSeatRepo struct{ s *memStore }

func (m *mockSeatRepo) BatchCreate(_ context.Context, seats []model.WorkstationSeat) error {
	if err := m.s.fail("Seat.BatchCreate"); err != nil {
		return err
	}
	for _, seat := range seats {
		m.s.seats[seat.ID] = seat
	}
	return nil
}

func (m *mockSeatRepo) ListBySession(_ context.Context, sessionID string) ([]model.WorkstationSeat, error) {
	var result []model.WorkstationSeat
	for _, seat := range m.s.seats {
		if seat.SessionID == sessionID {
			result = append(result, seat)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct{ s *memStore }

func (m *mockAssignmentRepo) BatchCreate(_ context.Context, assignments []model.OperationAssignment) error {
	if err := m.s.fail("Assignment.BatchCreate"); err != nil {
		return err
	}
	for _, a := range assignments {
		m.s.assignments[a.ID] = a
	}
	return nil
}

func (m *mockAssignmentRepo) ListBySession(_ context.Context, sessionID string) ([]model.OperationAssignment, error) {
	var result []model.OperationAssignment
	for _, a := range m.s.assignments {
		if seat, ok := m.s.seats[a.SeatID]; ok && seat.SessionID == sessionID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock BatchRepository ──

type mockBatchRepo struct{ s *memStore }

func (m *mockBatchRepo) BatchCreate(_ context.Context, batches []model.Batch) error {
	if err := m.s.fail("Batch.BatchCreate"); err != nil {
		return err
	}
	for _, b := range batches {
		m.s.batches[b.ID] = b
	}
	return nil
}

func (m *mockBatchRepo) GetByID(_ context.Context, id string) (*model.Batch, error) {
	if b, ok := m.s.batches[id]; ok {
		return &b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBatchRepo) ListByIDs(_ context.Context, ids []string) ([]model.Batch, error) {
	var result []model.Batch
	for _, id := range ids {
		if b, ok := m.s.batches[id]; ok {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBatchRepo) GetForUpdate(ctx context.Context, id string) (*model.Batch, error) {
	return m.GetByID(ctx, id)
}

func (m *mockBatchRepo) GetBySequence(_ context.Context, sessionID string, seq int) (*model.Batch, error) {
	for _, b := range m.s.batches {
		if b.SessionID == sessionID && b.SequenceNumber == seq {
			return &b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBatchRepo) filter(sessionID, status string) []model.Batch {
	var result []model.Batch
	for _, b := range m.s.batches {
		if b.SessionID == sessionID && (status == "" || b.Status == status) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SequenceNumber < result[j].SequenceNumber })
	return result
}

func (m *mockBatchRepo) ListBySession(_ context.Context, sessionID string) ([]model.Batch, error) {
	return m.filter(sessionID, ""), nil
}

func (m *mockBatchRepo) ListPending(_ context.Context, sessionID string) ([]model.Batch, error) {
	return m.filter(sessionID, model.BatchPending), nil
}

func (m *mockBatchRepo) CountPending(_ context.Context, sessionID string) (int64, error) {
	return int64(len(m.filter(sessionID, model.BatchPending))), nil
}

func (m *mockBatchRepo) MarkDone(_ context.Context, id string) error {
	b, ok := m.s.batches[id]
	if !ok || b.Status != model.BatchPending {
		return pkgerrors.ErrOptimisticLock
	}
	b.Status = model.BatchDone
	m.s.batches[id] = b
	return nil
}

func (m *mockBatchRepo) SumDoneQuantityByOrder(_ context.Context, orderID string) (int, error) {
	sum := 0
	for _, b := range m.s.batches {
		if b.ProductionOrderID == orderID && b.Status == model.BatchDone {
			sum += b.Quantity
		}
	}
	return sum, nil
}

// ── Mock CheckoutRepository ──

type mockCheckoutRepo struct{ s *memStore }

func (m *mockCheckoutRepo) Create(_ context.Context, ev *model.CheckoutEvent) error {
	if err := m.s.fail("Checkout.Create"); err != nil {
		return err
	}
	for _, c := range m.s.checkouts {
		if c.BatchID == ev.BatchID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.s.checkouts[ev.ID] = *ev
	return nil
}

func (m *mockCheckoutRepo) GetByBatch(_ context.Context, batchID string) (*model.CheckoutEvent, error) {
	for _, c := range m.s.checkouts {
		if c.BatchID == batchID {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCheckoutRepo) ListBySession(_ context.Context, sessionID string) ([]model.CheckoutEvent, error) {
	var result []model.CheckoutEvent
	for _, c := range m.s.checkouts {
		if c.SessionID == sessionID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CheckoutAt.Before(result[j].CheckoutAt) })
	return result, nil
}

func (m *mockCheckoutRepo) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	list, _ := m.ListBySession(ctx, sessionID)
	return int64(len(list)), nil
}

func (m *mockCheckoutRepo) LatestBySession(ctx context.Context, sessionID string) (*model.CheckoutEvent, error) {
	list, _ := m.ListBySession(ctx, sessionID)
	if len(list) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	latest := list[len(list)-1]
	return &latest, nil
}

func (m *mockCheckoutRepo) ListSince(_ context.Context, since time.Time) ([]model.CheckoutEvent, error) {
	var result []model.CheckoutEvent
	for _, c := range m.s.checkouts {
		if !c.CheckoutAt.Before(since) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CheckoutAt.Before(result[j].CheckoutAt) })
	return result, nil
}

// ── Mock LifecycleEventRepository ──

type mockLifecycleRepo struct{ s *memStore }

func (m *mockLifecycleRepo) Create(_ context.Context, ev *model.LifecycleEvent) error {
	if err := m.s.fail("Lifecycle.Create"); err != nil {
		return err
	}
	m.s.events = append(m.s.events, *ev)
	return nil
}

func (m *mockLifecycleRepo) ListBySession(_ context.Context, sessionID string) ([]model.LifecycleEvent, error) {
	var result []model.LifecycleEvent
	for _, ev := range m.s.events {
		if ev.SessionID == sessionID {
			result = append(result, ev)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].OccurredAt.Before(result[j].OccurredAt) })
	return result, nil
}

// ── Mock LineStateRepository ──

type mockLineStateRepo struct{ s *memStore }

func (m *mockLineStateRepo) Get(_ context.Context) (*model.LineState, error) {
	if m.s.line == nil {
		return nil, gorm.ErrRecordNotFound
	}
	line := *m.s.line
	return &line, nil
}

func (m *mockLineStateRepo) GetForUpdate(ctx context.Context) (*model.LineState, error) {
	return m.Get(ctx)
}

func (m *mockLineStateRepo) Save(_ context.Context, state *model.LineState) error {
	line := *state
	line.Singleton = true
	m.s.line = &line
	return nil
}

// ── Mock ShiftConfigRepository ──

type mockShiftConfigRepo struct{ s *memStore }

func (m *mockShiftConfigRepo) Get(_ context.Context) (*model.ShiftConfig, error) {
	if m.s.shift == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cfg := *m.s.shift
	return &cfg, nil
}

func (m *mockShiftConfigRepo) Save(_ context.Context, cfg *model.ShiftConfig) error {
	saved := *cfg
	m.s.shift = &saved
	return nil
}
