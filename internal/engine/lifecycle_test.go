package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		from    SessionState
		event   string
		want    SessionState
		errKind error
	}{
		{StateIdle, EventStart, StateActive, nil},
		{StateStopped, EventStart, StateActive, nil},
		{StateActive, EventPause, StatePaused, nil},
		{StatePaused, EventResume, StateActive, nil},
		{StateActive, EventStop, StateStopped, nil},
		{StatePaused, EventStop, StateStopped, nil},

		{StateActive, EventStart, StateActive, pkgerrors.ErrConflict},
		{StatePaused, EventStart, StatePaused, pkgerrors.ErrInvalidState},
		{StateIdle, EventPause, StateIdle, pkgerrors.ErrInvalidState},
		{StatePaused, EventPause, StatePaused, pkgerrors.ErrInvalidState},
		{StateActive, EventResume, StateActive, pkgerrors.ErrInvalidState},
		{StateIdle, EventStop, StateIdle, pkgerrors.ErrInvalidState},
		{StateStopped, EventStop, StateStopped, pkgerrors.ErrInvalidState},
		{StateActive, "explode", StateActive, pkgerrors.ErrInvalidInput},
	}
	for _, tc := range cases {
		got, err := Transition(tc.from, tc.event)
		assert.Equal(t, tc.want, got, "%s on %s", tc.event, tc.from)
		if tc.errKind == nil {
			assert.NoError(t, err)
		} else {
			assert.True(t, errors.Is(err, tc.errKind), "%s on %s: %v", tc.event, tc.from, err)
		}
	}
}

func TestStateFromLog(t *testing.T) {
	assert.Equal(t, StateIdle, StateFromLog(nil))
	assert.Equal(t, StatePaused, StateFromLog([]Event{
		{Type: EventStart, At: at(8, 0)},
		{Type: EventPause, At: at(9, 0)},
	}))
	assert.Equal(t, StateStopped, StateFromLog([]Event{
		{Type: EventStart, At: at(8, 0)},
		{Type: EventStop, At: at(9, 0)},
	}))
	assert.Equal(t, StateActive, StateFromLog([]Event{
		{Type: EventStart, At: at(8, 0)},
		{Type: EventStop, At: at(9, 0)},
		{Type: EventStart, At: at(10, 0)},
	}))
}
