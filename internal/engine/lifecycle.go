package engine

import (
	"fmt"

	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
)

// SessionState is the lifecycle state of a planning session.
type SessionState string

const (
	StateIdle    SessionState = "idle"
	StateActive  SessionState = "active"
	StatePaused  SessionState = "paused"
	StateStopped SessionState = "stopped"
)

// Transition applies a lifecycle event to the current state.
//
//	start:  idle|stopped -> active
//	pause:  active       -> paused
//	resume: paused       -> active
//	stop:   active|paused -> stopped
func Transition(current SessionState, event string) (SessionState, error) {
	switch event {
	case EventStart:
		switch current {
		case StateIdle, StateStopped:
			return StateActive, nil
		case StateActive:
			return current, pkgerrors.New(pkgerrors.ErrConflict, "session is already running")
		}
	case EventPause:
		if current == StateActive {
			return StatePaused, nil
		}
	case EventResume:
		if current == StatePaused {
			return StateActive, nil
		}
	case EventStop:
		if current == StateActive || current == StatePaused {
			return StateStopped, nil
		}
	default:
		return current, pkgerrors.New(pkgerrors.ErrInvalidInput, fmt.Sprintf("unknown lifecycle event %q", event))
	}
	return current, pkgerrors.New(pkgerrors.ErrInvalidState, fmt.Sprintf("cannot %s a session that is %s", event, current))
}

// StateFromLog derives a session's state from its own lifecycle log.
func StateFromLog(events []Event) SessionState {
	state := StateIdle
	for _, ev := range events {
		if next, err := Transition(state, ev.Type); err == nil {
			state = next
		}
	}
	return state
}
