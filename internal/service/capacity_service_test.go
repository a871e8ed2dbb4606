package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/model"
)

// syncCrew plans a crew of n operators sharing op-1
func syncCrew(t *testing.T, env *testEnv, n, batchSize int) string {
	t.Helper()
	allocations := make([]dto.AllocationItem, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("crew-%02d", i)
		env.store.operators[id] = model.Operator{ID: id, Name: id, IsActive: true}
		allocations = append(allocations, dto.AllocationItem{OperationID: "op-1", OperatorID: strPtr(id), Position: i})
	}
	resp, err := env.svc.Allocation.Sync(context.Background(), &dto.SyncAllocationsRequest{
		ProductionOrderID: "order-1",
		SequenceVersionID: "ver-1",
		BatchSize:         intPtr(batchSize),
		TotalQuantity:     intPtr(1000),
		Allocations:       allocations,
	})
	require.NoError(t, err)
	return resp.SessionID
}

func TestCapacityService_Detect(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := syncCrew(t, env, 10, 100)

	resp, err := env.svc.Capacity.Detect(ctx, id)
	require.NoError(t, err)
	assert.False(t, resp.Warning)
	assert.Nil(t, resp.RecalculatedBatchSize)
	assert.Equal(t, "crew matches the plan", resp.Message)

	for i := 7; i <= 10; i++ {
		op, err := env.svc.Capacity.SetOperatorActive(ctx, fmt.Sprintf("crew-%02d", i), false)
		require.NoError(t, err)
		assert.False(t, op.IsActive)
	}

	resp, err = env.svc.Capacity.Detect(ctx, id)
	require.NoError(t, err)
	assert.True(t, resp.Warning)
	assert.Equal(t, 10, resp.OriginalOperators)
	assert.Equal(t, 6, resp.CurrentOperators)
	assert.InDelta(t, 0.6, resp.CapacityFactor, 1e-9)
	require.NotNil(t, resp.RecalculatedBatchSize)
	assert.Equal(t, 60, *resp.RecalculatedBatchSize)
}

func TestCapacityService_Detect_WholeCrewAbsent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := syncCrew(t, env, 2, 50)
	for _, opr := range []string{"crew-01", "crew-02"} {
		_, err := env.svc.Capacity.SetOperatorActive(ctx, opr, false)
		require.NoError(t, err)
	}

	resp, err := env.svc.Capacity.Detect(ctx, id)
	require.NoError(t, err)
	assert.False(t, resp.Warning)
	assert.Equal(t, 0, resp.CurrentOperators)
}

func TestCapacityService_SetOperatorActive_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Capacity.SetOperatorActive(context.Background(), "ghost", true)
	assert.ErrorIs(t, err, ErrOperatorNotFound)

	_, err = env.svc.Capacity.Detect(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCapacityService_Rebalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.syncSession(t, 40, 200).SessionID
	env.start(t, id)
	env.clock.Advance(10 * time.Minute)
	env.checkout(t, id, 1)
	env.clock.Advance(10 * time.Minute)
	env.checkout(t, id, 2)

	first, err := env.svc.Capacity.Rebalance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "V1-R1", first.NewVersionName)
	assert.Equal(t, 3, first.OperationsCloned)
	assert.Equal(t, 120, first.RemainingQuantity)
	assert.Nil(t, first.RecalculatedBatchSize)

	clone := env.store.versions[first.NewVersionID]
	require.NotNil(t, clone.RebalanceOfID)
	assert.Equal(t, "ver-1", *clone.RebalanceOfID)
	assert.Equal(t, "draft", clone.Status)
	ops, err := env.repo.Operation.ListByVersion(ctx, clone.ID)
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.InDelta(t, 0.5, ops[0].FinalTime, 1e-9)

	second, err := env.svc.Capacity.Rebalance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "V1-R2", second.NewVersionName)

	// the session keeps running on its own version
	assert.Equal(t, "ver-1", env.store.sessions[id].SequenceVersionID)
	assert.Equal(t, id, *env.store.line.SessionID)
}

func TestCapacityService_Rebalance_CloneOfClone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.syncSession(t, 40, 200).SessionID

	first, err := env.svc.Capacity.Rebalance(ctx, id)
	require.NoError(t, err)

	// plan a session on the clone and rebalance again
	session := env.store.sessions[id]
	session.SequenceVersionID = first.NewVersionID
	env.store.sessions[id] = session

	second, err := env.svc.Capacity.Rebalance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "V1-R2", second.NewVersionName)
	assert.Equal(t, "ver-1", *env.store.versions[second.NewVersionID].RebalanceOfID)
}

func TestCapacityService_Rebalance_Chained(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.syncSession(t, 40, 200).SessionID
	env.start(t, id)
	env.clock.Advance(10 * time.Minute)
	env.checkout(t, id, 1)
	env.clock.Advance(10 * time.Minute)
	env.checkout(t, id, 2)

	first, err := env.svc.Capacity.Rebalance(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 120, first.RemainingQuantity)

	// restart on the remainder and run one more batch
	next := env.syncSession(t, 40, first.RemainingQuantity).SessionID
	env.start(t, next)
	env.clock.Advance(10 * time.Minute)
	env.checkout(t, next, 1)

	second, err := env.svc.Capacity.Rebalance(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, 80, second.RemainingQuantity)
}

func TestCapacityService_Rebalance_OrderMissing(t *testing.T) {
	env := newTestEnv(t)
	id := env.syncSession(t, 40, 200).SessionID
	delete(env.store.orders, "order-1")

	_, err := env.svc.Capacity.Rebalance(context.Background(), id)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
