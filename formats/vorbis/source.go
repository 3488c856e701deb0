// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/utils"
	"github.com/jfreymuth/oggvorbis"
)

var (
	ErrNotVorbisFile       = errors.New("not an Ogg Vorbis file")
	ErrUnsupportedChannels = errors.New("unsupported channel count")
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
	SetPosition(pos int64) error
}

type source struct {
	dec      oggReader
	file     io.Closer
	format   audio.Format
	channels int
	floatBuf []float32
	closed   bool
}

// Open decodes the Ogg Vorbis stream in rs. It has the audio.Opener
// signature; on error rs is closed.
func Open(rs io.ReadSeekCloser) (audio.SampleSource, error) {
	dec, err := oggvorbis.NewReader(rs)
	if err != nil {
		_ = rs.Close()
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	src, err := newSource(dec, rs)
	if err != nil {
		_ = rs.Close()
		return nil, err
	}
	return src, nil
}

func newSource(dec oggReader, file io.Closer) (*source, error) {
	mode, ok := audio.ModeForChannels(dec.Channels())
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, dec.Channels())
	}

	return &source{
		dec:      dec,
		file:     file,
		channels: dec.Channels(),
		format: audio.Format{
			Mode:          mode,
			BitsPerSample: 16,
			SampleRate:    dec.SampleRate(),
			Encoding:      audio.EncodingPCM,
		},
		floatBuf: make([]float32, 4096),
	}, nil
}

func (s *source) Format() audio.Format { return s.format }

// Read decodes whole frames and converts them to 16-bit little-endian PCM.
func (s *source) Read(p []byte) (int, error) {
	if s.closed {
		return 0, &audio.StorageError{Op: "read", Err: io.ErrClosedPipe}
	}

	values := (len(p) / (2 * s.channels)) * s.channels
	if values == 0 {
		return 0, nil
	}
	if cap(s.floatBuf) < values {
		s.floatBuf = make([]float32, values)
	}
	s.floatBuf = s.floatBuf[:values]

	n, err := s.dec.Read(s.floatBuf)
	for i, v := range s.floatBuf[:n] {
		x := uint16(utils.Float32ToInt16(v))
		p[2*i] = byte(x)
		p[2*i+1] = byte(x >> 8)
	}

	switch {
	case err == nil:
		return 2 * n, nil
	case err == io.EOF && n > 0:
		return 2 * n, nil
	case err == io.EOF:
		return 0, io.EOF
	default:
		return 2 * n, &audio.StorageError{Op: "read", Err: err}
	}
}

func (s *source) Rewind() error {
	if err := s.dec.SetPosition(0); err != nil {
		return &audio.StorageError{Op: "seek", Err: err}
	}
	return nil
}

func (s *source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.file.Close(); err != nil {
		return &audio.StorageError{Op: "close", Err: err}
	}
	return nil
}
