// SPDX-License-Identifier: EPL-2.0

package record

import (
	"errors"
	"fmt"
)

// State of the recorder.
type State int32

const (
	Stopped State = iota
	Recording
	Paused
	Resuming
	Stopping
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Recording:
		return "Recording"
	case Paused:
		return "Paused"
	case Resuming:
		return "Resuming"
	case Stopping:
		return "Stopping"
	default:
		return "Unknown"
	}
}

var (
	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("can only pause while recording")
	ErrNotPaused        = errors.New("can only resume while paused")
	ErrNotBlocking      = errors.New("recorder is not in blocking mode")
)

// InternalStateError is the panic value used when the completion handler
// observes a state it has no transition for.
type InternalStateError struct {
	State State
}

func (e *InternalStateError) Error() string {
	return fmt.Sprintf("record: internal error: unexpected state %s (%d)", e.State, int32(e.State))
}
