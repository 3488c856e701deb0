// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io/fs"
	"testing"
)

func TestStorageError(t *testing.T) {
	t.Parallel()

	err := error(&StorageError{Op: "open", Err: fs.ErrNotExist})

	if got, want := err.Error(), "storage open: file does not exist"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is() failed to unwrap StorageError")
	}
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	err := error(&TransportError{Op: "submit", Err: ErrTransportReleased})

	if got, want := err.Error(), "transport submit: transport released"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrTransportReleased) {
		t.Error("errors.Is() failed to unwrap TransportError")
	}

	var se *StorageError
	if errors.As(err, &se) {
		t.Error("TransportError matched *StorageError")
	}
}

func TestUnsupportedContainerError(t *testing.T) {
	t.Parallel()

	err := error(&UnsupportedContainerError{Ext: ".flac"})

	if got, want := err.Error(), `unsupported container: ".flac"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnsupportedContainer) {
		t.Error("errors.Is() failed for ErrUnsupportedContainer")
	}
}
