// SPDX-License-Identifier: EPL-2.0

package player

// State of the playback state machine.
type State int32

const (
	Stopped State = iota
	Playing
	Paused
	Resuming
	Flushing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Resuming:
		return "Resuming"
	case Flushing:
		return "Flushing"
	default:
		return "Unknown"
	}
}
