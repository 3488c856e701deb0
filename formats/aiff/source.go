// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/utils"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.SampleSource
type source struct {
	dec    aiffReader
	reopen func() (aiffReader, error)
	file   io.Closer
	format audio.Format
	intBuf *goaudio.IntBuffer
	closed bool
}

// Open decodes the AIFF file in rs. It has the audio.Opener signature; on
// error rs is closed.
func Open(rs io.ReadSeekCloser) (audio.SampleSource, error) {
	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		_ = rs.Close()
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	f, err := formatOf(dec.Format(), int(dec.BitDepth))
	if err != nil {
		_ = rs.Close()
		return nil, err
	}

	// go-audio decoders cannot be rewound, so a fresh one is built on rs
	reopen := func() (aiffReader, error) {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		d := aiff.NewDecoder(rs)
		d.ReadInfo()
		if err := d.Err(); err != nil {
			return nil, err
		}
		return d, nil
	}

	return &source{dec: dec, reopen: reopen, file: rs, format: f}, nil
}

func formatOf(gf *goaudio.Format, bitDepth int) (audio.Format, error) {
	if gf == nil {
		return audio.Format{}, ErrUnsupportedAiffLayout
	}

	mode, ok := audio.ModeForChannels(gf.NumChannels)
	if !ok {
		return audio.Format{}, fmt.Errorf("%w: %d channels", ErrUnsupportedAiffLayout, gf.NumChannels)
	}

	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return audio.Format{}, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	return audio.Format{
		Mode:          mode,
		BitsPerSample: bitDepth,
		SampleRate:    gf.SampleRate,
		Encoding:      audio.EncodingPCM,
	}, nil
}

func (s *source) Format() audio.Format { return s.format }

// Read converts whole frames to little-endian PCM at the file's bit depth.
func (s *source) Read(p []byte) (int, error) {
	if s.closed {
		return 0, &audio.StorageError{Op: "read", Err: io.ErrClosedPipe}
	}

	width := s.format.BytesPerSample()
	values := (len(p) / s.format.BlockAlign()) * s.format.Mode.Channels()
	if values == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < values {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, values),
			Format:         s.dec.Format(),
			SourceBitDepth: s.format.BitsPerSample,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:values]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, &audio.StorageError{Op: "read", Err: err}
		}
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		utils.PutSample(p[i*width:], v, s.format.BitsPerSample)
	}

	return n * width, nil
}

func (s *source) Rewind() error {
	dec, err := s.reopen()
	if err != nil {
		return &audio.StorageError{Op: "seek", Err: err}
	}
	s.dec = dec
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
