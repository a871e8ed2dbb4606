package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ThiagoScutari/sgp-costura/config"
	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/model"
	"github.com/ThiagoScutari/sgp-costura/internal/repository"
	"github.com/ThiagoScutari/sgp-costura/pkg/redis"
)

// ── test helpers ──

// Monday 08:00 UTC, one hour into the shift
var shiftMorning = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingNotifier struct {
	notices []redis.CheckoutNotice
	err     error
}

func (n *recordingNotifier) PublishCheckout(_ context.Context, notice redis.CheckoutNotice) error {
	n.notices = append(n.notices, notice)
	return n.err
}

type testEnv struct {
	store    *memStore
	repo     *repository.Repository
	clock    *fakeClock
	notifier *recordingNotifier
	cfg      *config.Config
	svc      *Service
}

func testConfig() *config.Config {
	return &config.Config{
		Production: config.ProductionConfig{
			DefaultPulseMinutes: 60,
			EfficiencyTarget:    80,
			EfficiencyWarning:   60,
		},
		Shift: config.ShiftConfig{
			StartTime: "07:00",
			EndTime:   "17:00",
			Timezone:  "UTC",
			Breaks:    []config.BreakConfig{{Start: "12:00", End: "13:00"}},
		},
	}
}

// newTestEnv seeds one order of 200 pieces, version V1 with three operations
// totalling one standard minute per piece, and three active operators.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	env := &testEnv{
		store:    store,
		repo:     store.repository(),
		clock:    &fakeClock{now: shiftMorning},
		notifier: &recordingNotifier{},
		cfg:      testConfig(),
	}
	env.svc = newService(env.cfg, env.repo, env.notifier, env.clock.Now, zap.NewNop())

	store.orders["order-1"] = model.ProductionOrder{ID: "order-1", ProductReference: "TSHIRT-01", Quantity: 200, Status: "open"}
	store.versions["ver-1"] = model.SequenceVersion{ID: "ver-1", ProductReference: "TSHIRT-01", VersionName: "V1", Status: "active", EfficiencyFactor: 1}
	for i, ft := range []float64{0.5, 0.3, 0.2} {
		id := []string{"op-1", "op-2", "op-3"}[i]
		store.operations[id] = model.Operation{ID: id, VersionID: "ver-1", Sequence: i + 1, Description: "seam " + id, FinalTime: ft, IsActive: true}
	}
	for _, op := range []model.Operator{
		{ID: "opr-1", Name: "Ana", IsActive: true},
		{ID: "opr-2", Name: "Bia", IsActive: true},
		{ID: "opr-3", Name: "Carla", IsActive: true},
	} {
		store.operators[op.ID] = op
	}
	return env
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// defaultAllocations puts one operation on each operator, positions 1..3
func defaultAllocations() []dto.AllocationItem {
	return []dto.AllocationItem{
		{OperationID: "op-1", OperatorID: strPtr("opr-1"), Position: 1},
		{OperationID: "op-2", OperatorID: strPtr("opr-2"), Position: 2},
		{OperationID: "op-3", OperatorID: strPtr("opr-3"), Position: 3},
	}
}

// syncSession plans the order with a 60 minute pulse
func (e *testEnv) syncSession(t *testing.T, batchSize, total int) *dto.SyncAllocationsResponse {
	t.Helper()
	resp, err := e.svc.Allocation.Sync(context.Background(), &dto.SyncAllocationsRequest{
		ProductionOrderID: "order-1",
		SequenceVersionID: "ver-1",
		PulseDuration:     intPtr(60),
		BatchSize:         intPtr(batchSize),
		TotalQuantity:     intPtr(total),
		Allocations:       defaultAllocations(),
	})
	require.NoError(t, err)
	return resp
}

func (e *testEnv) start(t *testing.T, sessionID string) {
	t.Helper()
	_, err := e.svc.Session.Start(context.Background(), sessionID)
	require.NoError(t, err)
}

func (e *testEnv) batchID(t *testing.T, sessionID string, seq int) string {
	t.Helper()
	b, err := e.repo.Batch.GetBySequence(context.Background(), sessionID, seq)
	require.NoError(t, err)
	return b.ID
}

func (e *testEnv) checkout(t *testing.T, sessionID string, seq int) *dto.CheckoutResponse {
	t.Helper()
	resp, err := e.svc.Pulse.Checkout(context.Background(), &dto.CheckoutRequest{BatchID: e.batchID(t, sessionID, seq)})
	require.NoError(t, err)
	return resp
}

func (e *testEnv) eventTypes(sessionID string) []string {
	var out []string
	for _, ev := range e.store.events {
		if ev.SessionID == sessionID {
			out = append(out, ev.EventType)
		}
	}
	return out
}
