// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/wavstream/audio"
)

// mockOggReader simulates oggvorbis.Reader for testing
type mockOggReader struct {
	sampleRate int
	channels   int
	samples    []float32 // interleaved
	offset     int
	err        error
}

func (m *mockOggReader) SampleRate() int { return m.sampleRate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}
	n := copy(p, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func (m *mockOggReader) SetPosition(pos int64) error {
	m.offset = int(pos) * m.channels
	return nil
}

type nopFile struct{ closes int }

func (f *nopFile) Close() error {
	f.closes++
	return nil
}

type readSeekCloser struct {
	*bytes.Reader
	closes int
}

func (r *readSeekCloser) Close() error {
	r.closes++
	return nil
}

func TestOpen_InvalidInput(t *testing.T) {
	t.Parallel()

	f := &readSeekCloser{Reader: bytes.NewReader([]byte("OggS but not really a vorbis stream"))}
	if _, err := Open(f); !errors.Is(err, ErrNotVorbisFile) {
		t.Errorf("Open() error = %v, want ErrNotVorbisFile", err)
	}
	if f.closes != 1 {
		t.Errorf("Close calls = %d, want 1", f.closes)
	}
}

func TestNewSource_RejectsSurround(t *testing.T) {
	t.Parallel()

	_, err := newSource(&mockOggReader{sampleRate: 48000, channels: 6}, &nopFile{})
	if !errors.Is(err, ErrUnsupportedChannels) {
		t.Errorf("newSource() error = %v, want ErrUnsupportedChannels", err)
	}
}

func TestSource_ConvertsToPCM16(t *testing.T) {
	t.Parallel()

	mock := &mockOggReader{sampleRate: 22050, channels: 2, samples: []float32{0, 1, -1, 0.5}}
	src, err := newSource(mock, &nopFile{})
	if err != nil {
		t.Fatalf("newSource() error = %v", err)
	}

	want := audio.Format{Mode: audio.Stereo, BitsPerSample: 16, SampleRate: 22050, Encoding: audio.EncodingPCM}
	if src.Format() != want {
		t.Errorf("Format() = %+v, want %+v", src.Format(), want)
	}

	buf := make([]byte, 64)
	n, err := src.Read(buf)
	if n != 8 || err != nil {
		t.Fatalf("Read() = %d, %v, want 8, nil", n, err)
	}

	wantSamples := []int16{0, math.MaxInt16, -math.MaxInt16, 16383}
	for i, w := range wantSamples {
		got := int16(uint16(buf[2*i]) | uint16(buf[2*i+1])<<8)
		if got != w {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}

	if n, err := src.Read(buf); n != 0 || err != io.EOF {
		t.Errorf("Read() at end = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestSource_ReadsWholeFramesOnly(t *testing.T) {
	t.Parallel()

	mock := &mockOggReader{sampleRate: 8000, channels: 2, samples: make([]float32, 100)}
	src, _ := newSource(mock, &nopFile{})

	// 10 bytes holds two stereo frames and a half
	n, err := src.Read(make([]byte, 10))
	if n != 8 || err != nil {
		t.Errorf("Read() = %d, %v, want 8, nil", n, err)
	}
}

func TestSource_Rewind(t *testing.T) {
	t.Parallel()

	mock := &mockOggReader{sampleRate: 8000, channels: 1, samples: []float32{0.25, -0.25}}
	src, _ := newSource(mock, &nopFile{})

	first := make([]byte, 4)
	src.Read(first)
	src.Read(make([]byte, 4))

	if err := src.Rewind(); err != nil {
		t.Fatalf("Rewind() error = %v", err)
	}
	again := make([]byte, 4)
	src.Read(again)
	if !bytes.Equal(first, again) {
		t.Errorf("after Rewind got % x, want % x", again, first)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	src, _ := newSource(&mockOggReader{sampleRate: 8000, channels: 1, err: errors.New("corrupt page")}, &nopFile{})

	var se *audio.StorageError
	if _, err := src.Read(make([]byte, 8)); !errors.As(err, &se) {
		t.Errorf("Read() error = %v, want *audio.StorageError", err)
	}
}

func TestSource_CloseOnce(t *testing.T) {
	t.Parallel()

	f := &nopFile{}
	src, _ := newSource(&mockOggReader{sampleRate: 8000, channels: 1}, f)
	_ = src.Close()
	_ = src.Close()
	if f.closes != 1 {
		t.Errorf("Close calls = %d, want 1", f.closes)
	}
}
