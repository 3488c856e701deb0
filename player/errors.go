// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyPlaying = errors.New("already playing")
	ErrNotPlaying     = errors.New("can only pause while playing")
	ErrNotPaused      = errors.New("can only resume while paused")
	ErrNotBlocking    = errors.New("controller is not in blocking mode")
	ErrNotSeekable    = errors.New("file is not seekable")
)

// InternalStateError is raised (as a panic value) when the completion
// handler observes a state it has no transition for.
type InternalStateError struct {
	State State
}

func (e *InternalStateError) Error() string {
	return fmt.Sprintf("player: internal error: unexpected state %s (%d)", e.State, int32(e.State))
}
