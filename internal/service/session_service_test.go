package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThiagoScutari/sgp-costura/internal/dto"
	"github.com/ThiagoScutari/sgp-costura/internal/engine"
	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
)

func TestSessionService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.syncSession(t, 40, 200).SessionID

	steps := []struct {
		do   func(context.Context, string) (*dto.SessionStateResponse, error)
		want engine.SessionState
	}{
		{env.svc.Session.Start, engine.StateActive},
		{env.svc.Session.Pause, engine.StatePaused},
		{env.svc.Session.Resume, engine.StateActive},
		{env.svc.Session.Stop, engine.StateStopped},
		{env.svc.Session.Start, engine.StateActive},
	}
	for i, step := range steps {
		env.clock.Advance(5 * time.Minute)
		resp, err := step.do(ctx, id)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, string(step.want), resp.State, "step %d", i)

		state, err := env.svc.Session.State(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, step.want, state, "step %d", i)
	}
	assert.Equal(t, []string{"start", "pause", "resume", "stop", "start"}, env.eventTypes(id))
	assert.True(t, env.store.sessions[id].IsActive)
}

func TestSessionService_RejectsInvalidTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.syncSession(t, 40, 200).SessionID

	_, err := env.svc.Session.Pause(ctx, id)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidState)

	_, err = env.svc.Session.Stop(ctx, id)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidState)

	env.start(t, id)
	_, err = env.svc.Session.Start(ctx, id)
	assert.ErrorIs(t, err, pkgerrors.ErrConflict)

	_, err = env.svc.Session.Resume(ctx, id)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidState)

	// rejected events leave no trace
	assert.Equal(t, []string{"start"}, env.eventTypes(id))

	_, err = env.svc.Session.Start(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_StartDisplacesHolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.syncSession(t, 40, 200).SessionID
	env.clock.Advance(time.Minute)
	second := env.syncSession(t, 40, 200).SessionID

	env.start(t, first)
	assert.True(t, env.store.sessions[first].IsActive)
	assert.False(t, env.store.sessions[second].IsActive)

	env.clock.Advance(time.Minute)
	env.start(t, second)

	assert.Equal(t, second, *env.store.line.SessionID)
	assert.False(t, env.store.sessions[first].IsActive)
	assert.True(t, env.store.sessions[second].IsActive)
	assert.Equal(t, []string{"start", "stop"}, env.eventTypes(first))

	state, err := env.svc.Session.State(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, engine.StateStopped, state)
}

func TestSessionService_StopFreesLine(t *testing.T) {
	env := newTestEnv(t)
	id := env.syncSession(t, 40, 200).SessionID
	env.start(t, id)

	resp, err := env.svc.Session.Stop(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "stop", resp.Event)
	assert.Nil(t, env.store.line.SessionID)
	assert.Empty(t, env.store.line.State)
	assert.False(t, env.store.sessions[id].IsActive)
}
