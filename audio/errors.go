// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedContainer = errors.New("unsupported container")
	ErrTransportReleased    = errors.New("transport released")
	ErrNotConfigured        = errors.New("transport not configured")
)

// UnsupportedContainerError reports a file extension no opener is registered for.
type UnsupportedContainerError struct {
	Ext string
}

func (e *UnsupportedContainerError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedContainer, e.Ext)
}

func (e *UnsupportedContainerError) Unwrap() error { return ErrUnsupportedContainer }

// StorageError wraps a failure of the storage collaborator.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage " + e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// TransportError wraps a failure of the transport collaborator.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return "transport " + e.Op + ": " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }
