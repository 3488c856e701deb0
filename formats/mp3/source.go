// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/wavstream/audio"
)

var ErrNotMP3File = errors.New("not an MP3 file")

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	io.ReadSeeker
	SampleRate() int
}

type source struct {
	dec    mp3Reader
	file   io.Closer
	format audio.Format
	closed bool
}

// Open decodes the MP3 stream in rs. It has the audio.Opener signature; on
// error rs is closed.
func Open(rs io.ReadSeekCloser) (audio.SampleSource, error) {
	dec, err := gomp3.NewDecoder(rs)
	if err != nil {
		_ = rs.Close()
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return newSource(dec, rs), nil
}

func newSource(dec mp3Reader, file io.Closer) *source {
	// go-mp3 always outputs 16-bit little-endian stereo
	return &source{
		dec:  dec,
		file: file,
		format: audio.Format{
			Mode:          audio.Stereo,
			BitsPerSample: 16,
			SampleRate:    dec.SampleRate(),
			Encoding:      audio.EncodingPCM,
		},
	}
}

func (s *source) Format() audio.Format { return s.format }

func (s *source) Read(p []byte) (int, error) {
	if s.closed {
		return 0, &audio.StorageError{Op: "read", Err: io.ErrClosedPipe}
	}

	// whole frames only: 2 channels * 2 bytes
	p = p[:len(p)&^3]

	n, err := s.dec.Read(p)
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

func (s *source) Rewind() error {
	if _, err := s.dec.Seek(0, io.SeekStart); err != nil {
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
