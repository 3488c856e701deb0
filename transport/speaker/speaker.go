// SPDX-License-Identifier: EPL-2.0

package speaker

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/transport"
	"github.com/ik5/wavstream/utils"
)

var ErrCaptureUnsupported = errors.New("speaker: capture is not supported")

// output is a started device stream.
type output interface {
	Close() error
}

// Transport plays submitted PCM on the default output device.
//
// The device is opened once per process for the first configured sample
// rate and channel count. A later Configure with a different rate or
// channel count fails.
type Transport struct {
	mu      sync.Mutex
	queue   *transport.Queue
	out     output
	handler func()
}

func New() *Transport {
	return &Transport{}
}

func (t *Transport) Configure(cfg audio.Config) error {
	if cfg.Direction != audio.TX {
		return &audio.TransportError{Op: "configure", Err: ErrCaptureUnsupported}
	}
	switch cfg.Format.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		return &audio.TransportError{Op: "configure", Err: fmt.Errorf("speaker: unsupported bit depth %d", cfg.Format.BitsPerSample)}
	}

	_ = t.Release()

	t.mu.Lock()
	defer t.mu.Unlock()

	q := transport.NewQueue(cfg.BufferSize)
	q.SetCompletionHandler(t.handler)
	if cfg.Format.BitsPerSample == 8 {
		q.SetFill(0x80)
	}

	out, err := play(cfg.Format, newFloatReader(q, cfg.Format.BitsPerSample))
	if err != nil {
		_ = q.Close()
		return &audio.TransportError{Op: "configure", Err: err}
	}

	t.queue, t.out = q, out
	return nil
}

func (t *Transport) SetCompletionHandler(h func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.handler = h
	if t.queue != nil {
		t.queue.SetCompletionHandler(h)
	}
}

func (t *Transport) Submit(buf []byte) (int, error) {
	t.mu.Lock()
	q := t.queue
	t.mu.Unlock()

	if q == nil {
		return 0, audio.ErrNotConfigured
	}
	return q.Submit(buf)
}

// Release stops the device stream. It may be called from the completion
// handler.
func (t *Transport) Release() error {
	t.mu.Lock()
	q, out := t.queue, t.out
	t.queue, t.out = nil, nil
	t.mu.Unlock()

	if q == nil {
		return nil
	}

	_ = q.Close()
	if err := out.Close(); err != nil {
		return &audio.TransportError{Op: "release", Err: err}
	}
	return nil
}

// floatReader converts little-endian PCM from a queue into float32 samples
// for the device.
type floatReader struct {
	src  io.Reader
	bits int
	raw  []byte
}

func newFloatReader(src io.Reader, bits int) *floatReader {
	return &floatReader{src: src, bits: bits}
}

func (r *floatReader) Read(p []byte) (int, error) {
	size := r.bits / 8
	samples := len(p) / 4
	if samples == 0 {
		return 0, nil
	}

	if cap(r.raw) < samples*size {
		r.raw = make([]byte, samples*size)
	}
	raw := r.raw[:samples*size]

	n, err := io.ReadFull(r.src, raw)
	samples = n / size

	scale := float32(utils.FullScale(r.bits)) + 1
	for i := range samples {
		v := float32(utils.Sample(raw[i*size:], r.bits)) / scale
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}

	if samples > 0 {
		return samples * 4, nil
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return 0, err
}
