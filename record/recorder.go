// SPDX-License-Identifier: EPL-2.0

package record

import (
	"context"
	"io"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/formats/wav"
)

const (
	DefaultBufferSize          = 10000
	DefaultTransportBufferSize = 40000

	// largest payload whose RIFF size still fits in 32 bits
	maxPayload = math.MaxUint32 - 36
)

// Recorder captures from an RX transport into a WAV file. Like the player
// it only records intent from user calls; the completion handler writes
// captured buffers and submits the next one.
type Recorder struct {
	transport audio.Transport
	logger    *log.Logger
	blocking  bool
	paused    bool

	bufferSize          int
	transportBufferSize int

	state   atomic.Int32
	session atomic.Pointer[session]

	startMu sync.Mutex
}

type session struct {
	id     string
	w      io.WriteSeeker
	format audio.Format
	buf    []byte

	// bytes captured by the last Submit. It starts at len(buf) because the
	// first completion may run before the first Submit returns.
	captured atomic.Int64
	written  atomic.Int64

	err  error
	done chan struct{}
}

// Option configures a Recorder.
type Option func(*Recorder)

func WithLogger(l *log.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

func WithBufferSize(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.bufferSize = n
		}
	}
}

func WithTransportBufferSize(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.transportBufferSize = n
		}
	}
}

// WithStartPaused makes Start begin in Paused: the transport is clocked but
// nothing is written until Resume.
func WithStartPaused() Option {
	return func(r *Recorder) { r.paused = true }
}

// WithBlocking registers no completion handler; drive the recorder with Run.
func WithBlocking() Option {
	return func(r *Recorder) { r.blocking = true }
}

func New(t audio.Transport, opts ...Option) *Recorder {
	r := &Recorder{
		transport:           t,
		logger:              log.Default(),
		bufferSize:          DefaultBufferSize,
		transportBufferSize: DefaultTransportBufferSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start writes a placeholder header to w and starts capturing in format.
// The header is rewritten with the final size when the recording stops.
func (r *Recorder) Start(w io.WriteSeeker, format audio.Format) error {
	r.startMu.Lock()
	defer r.startMu.Unlock()

	if r.State() != Stopped {
		return ErrAlreadyRecording
	}

	if _, err := w.Seek(0, io.SeekStart); err != nil {
		return &audio.StorageError{Op: "seek", Err: err}
	}
	if err := wav.WriteHeader(w, format, 0); err != nil {
		return &audio.StorageError{Op: "write", Err: err}
	}

	s := &session{
		id:     uuid.NewString(),
		w:      w,
		format: format,
		buf:    make([]byte, r.bufferSize-r.bufferSize%max(format.BlockAlign(), 1)),
		done:   make(chan struct{}),
	}
	s.captured.Store(int64(len(s.buf)))

	cfg := audio.Config{
		Format:     format,
		Direction:  audio.RX,
		BufferSize: r.transportBufferSize,
	}
	if err := r.transport.Configure(cfg); err != nil {
		return &audio.TransportError{Op: "configure", Err: err}
	}
	if !r.blocking {
		r.transport.SetCompletionHandler(r.OnComplete)
	}

	r.session.Store(s)
	if r.paused {
		r.state.Store(int32(Paused))
	} else {
		r.state.Store(int32(Recording))
	}

	if err := r.capture(s); err != nil {
		r.finish(s, err)
		return err
	}

	r.logger.Printf("record: session %s: capturing %s", s.id, format)
	return nil
}

// Pause is legal while Recording or already Paused.
func (r *Recorder) Pause() error {
	for {
		switch State(r.state.Load()) {
		case Paused:
			return nil
		case Recording:
			if r.state.CompareAndSwap(int32(Recording), int32(Paused)) {
				return nil
			}
		default:
			return ErrNotRecording
		}
	}
}

// Resume is legal only while Paused. The buffer in flight is discarded.
func (r *Recorder) Resume() error {
	if !r.state.CompareAndSwap(int32(Paused), int32(Resuming)) {
		return ErrNotPaused
	}
	return nil
}

// Stop finalises the file on the next completion. It is a no-op when idle
// or already stopping.
func (r *Recorder) Stop() error {
	for {
		st := State(r.state.Load())
		if st == Stopped || st == Stopping {
			return nil
		}
		if r.state.CompareAndSwap(int32(st), int32(Stopping)) {
			return nil
		}
	}
}

func (r *Recorder) State() State { return State(r.state.Load()) }

// Written returns the payload bytes written in the current (or last)
// recording.
func (r *Recorder) Written() int64 {
	s := r.session.Load()
	if s == nil {
		return 0
	}
	return s.written.Load()
}

// Done is closed when the current recording has been finalised.
func (r *Recorder) Done() <-chan struct{} {
	s := r.session.Load()
	if s == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return s.done
}

// Err returns the error that ended the last recording.
func (r *Recorder) Err() error {
	s := r.session.Load()
	if s == nil {
		return nil
	}
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Run drives a blocking recorder until it stops; cancelling ctx stops it.
func (r *Recorder) Run(ctx context.Context) error {
	if !r.blocking {
		return ErrNotBlocking
	}

	for r.State() != Stopped {
		if ctx.Err() != nil {
			_ = r.Stop()
		}
		r.OnComplete()
	}

	if err := r.Err(); err != nil {
		return err
	}
	return ctx.Err()
}

// OnComplete handles one filled capture buffer.
func (r *Recorder) OnComplete() {
	st := State(r.state.Load())
	if st == Stopped {
		return
	}

	s := r.session.Load()
	if err := r.step(st, s); err != nil {
		r.logger.Printf("record: session %s: %v", s.id, err)
		r.finish(s, err)
	}
}

func (r *Recorder) step(st State, s *session) error {
	switch st {
	case Recording:
		if err := r.write(s); err != nil {
			return err
		}
		return r.capture(s)

	case Resuming:
		r.state.CompareAndSwap(int32(Resuming), int32(Recording))
		return r.capture(s)

	case Paused:
		return r.capture(s)

	case Stopping:
		r.finish(s, r.finalize(s))
		return nil

	default:
		panic(&InternalStateError{State: st})
	}
}

func (r *Recorder) write(s *session) error {
	n := s.captured.Load()
	if left := maxPayload - s.written.Load(); n >= left {
		n = left
		r.state.CompareAndSwap(int32(Recording), int32(Stopping))
	}
	if n == 0 {
		return nil
	}

	written, err := s.w.Write(s.buf[:n])
	s.written.Add(int64(written))
	if err != nil {
		return &audio.StorageError{Op: "write", Err: err}
	}
	return nil
}

func (r *Recorder) capture(s *session) error {
	n, err := r.transport.Submit(s.buf)
	if err != nil {
		return &audio.TransportError{Op: "submit", Err: err}
	}
	s.captured.Store(int64(n))
	return nil
}

// finalize rewrites the header with the final payload size and leaves w
// positioned after the payload.
func (r *Recorder) finalize(s *session) error {
	size := s.written.Load()

	if _, err := s.w.Seek(0, io.SeekStart); err != nil {
		return &audio.StorageError{Op: "seek", Err: err}
	}
	if err := wav.WriteHeader(s.w, s.format, uint32(size)); err != nil {
		return &audio.StorageError{Op: "write", Err: err}
	}
	if _, err := s.w.Seek(int64(wav.HeaderSize)+size, io.SeekStart); err != nil {
		return &audio.StorageError{Op: "seek", Err: err}
	}
	return nil
}

func (r *Recorder) finish(s *session, cause error) {
	s.err = cause

	if err := r.transport.Release(); err != nil {
		r.logger.Printf("record: session %s: release: %v", s.id, err)
	}

	r.state.Store(int32(Stopped))
	close(s.done)

	r.logger.Printf("record: session %s: stopped after %d bytes", s.id, s.written.Load())
}
