// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrDataChunkNotFound    = errors.New("data chunk not found")
	ErrUnsupportedEncoding  = errors.New("unsupported WAV encoding")
	ErrUnsupportedChannels  = errors.New("unsupported channel count")
	ErrUnsupportedBitDepth  = errors.New("unsupported bit depth")
)

// FormatError reports an unparseable or unsupported container header.
type FormatError struct {
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return "wav: " + e.Err.Error()
	}
	return "wav: " + e.Field + ": " + e.Err.Error()
}

func (e *FormatError) Unwrap() error { return e.Err }

func formatError(field string, err error) error {
	return &FormatError{Field: field, Err: err}
}
