// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/ik5/wavstream/audio"
	"github.com/zaf/g711"
)

// Source streams the payload of a WAV file. It implements audio.SampleSource.
//
// A-law and mu-law payloads are expanded to 16-bit linear PCM on read, so
// Format reports 16 bits for them while Header keeps the stored encoding.
type Source struct {
	rs        io.ReadSeekCloser
	header    Header
	format    audio.Format
	remaining int64 // -1 when the payload size is unknown
	scratch   []byte
	closed    bool
}

// Open parses the header of rs and positions it at the first sample. It has
// the audio.Opener signature; on error rs is closed.
func Open(rs io.ReadSeekCloser) (audio.SampleSource, error) {
	s, err := NewSource(rs)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewSource is Open returning the concrete type. On error rs is closed.
func NewSource(rs io.ReadSeekCloser) (*Source, error) {
	h, err := ParseHeader(rs)
	if err != nil {
		_ = rs.Close()
		return nil, err
	}

	s := &Source{
		rs:     rs,
		header: h,
		format: h.Format,
	}
	if s.expands() {
		s.format.BitsPerSample = 16
		s.format.Encoding = audio.EncodingPCM
	}

	if err := s.Rewind(); err != nil {
		_ = rs.Close()
		return nil, err
	}

	return s, nil
}

func (s *Source) Header() Header       { return s.header }
func (s *Source) Format() audio.Format { return s.format }

func (s *Source) expands() bool {
	return s.header.Format.Encoding == audio.EncodingALaw || s.header.Format.Encoding == audio.EncodingMuLaw
}

// Read fills p with at most one underlying read. It returns 0, io.EOF at the
// end of the payload; other failures are *audio.StorageError.
func (s *Source) Read(p []byte) (int, error) {
	if s.closed {
		return 0, &audio.StorageError{Op: "read", Err: io.ErrClosedPipe}
	}
	if s.remaining == 0 {
		return 0, io.EOF
	}

	if s.expands() {
		return s.readExpanded(p)
	}

	n, err := s.rs.Read(s.limit(p))
	s.consume(n)
	return s.result(n, err)
}

func (s *Source) readExpanded(p []byte) (int, error) {
	want := len(p) / 2
	if cap(s.scratch) < want {
		s.scratch = make([]byte, want)
	}

	n, err := s.rs.Read(s.limit(s.scratch[:want]))
	s.consume(n)

	decode := g711.DecodeAlawFrame
	if s.header.Format.Encoding == audio.EncodingMuLaw {
		decode = g711.DecodeUlawFrame
	}
	for i, b := range s.scratch[:n] {
		v := uint16(decode(b))
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
	}

	return s.result(2*n, err)
}

// limit trims p to the bytes left in the payload, when that is known.
func (s *Source) limit(p []byte) []byte {
	if s.remaining > 0 && int64(len(p)) > s.remaining {
		return p[:s.remaining]
	}
	return p
}

func (s *Source) consume(n int) {
	if s.remaining > 0 {
		s.remaining -= int64(n)
	}
}

func (s *Source) result(n int, err error) (int, error) {
	switch {
	case err == nil:
		return n, nil
	case err == io.EOF && n > 0:
		return n, nil
	case err == io.EOF:
		return 0, io.EOF
	default:
		return n, &audio.StorageError{Op: "read", Err: err}
	}
}

// Rewind seeks back to the first sample of the payload.
func (s *Source) Rewind() error {
	if _, err := s.rs.Seek(s.header.DataOffset, io.SeekStart); err != nil {
		return &audio.StorageError{Op: "seek", Err: fmt.Errorf("%w", err)}
	}

	s.remaining = -1
	// 0 and 0xFFFFFFFF are written by streaming producers that never patch the size
	if size := s.header.DataSize; size != 0 && size != 0xFFFFFFFF {
		s.remaining = int64(size)
	}
	return nil
}

// Close releases the file exactly once.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.rs.Close(); err != nil {
		return &audio.StorageError{Op: "close", Err: err}
	}
	return nil
}
