// SPDX-License-Identifier: EPL-2.0

package player

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/formats/wav"
)

// Controller plays one file at a time through a transport. User calls
// (Play, Pause, Resume, Stop) only change the state; all I/O happens in
// OnComplete, which the transport calls once per finished buffer.
type Controller struct {
	transport audio.Transport
	fsys      fs.FS
	registry  *audio.Registry
	logger    *log.Logger
	blocking  bool

	bufferSize          int
	silenceSize         int
	transportBufferSize int
	flushOverride       int

	buf []byte

	state   atomic.Int32
	session atomic.Pointer[session]

	// serialises Play; never taken by the completion handler
	playMu sync.Mutex
}

// session is everything owned by one Play call.
type session struct {
	id      string
	name    string
	loop    bool
	source  audio.SampleSource
	format  audio.Format
	chunk   []byte
	silence []byte

	// only touched by the completion handler
	flush int

	err  error
	done chan struct{}
}

// SessionInfo describes the current or last session.
type SessionInfo struct {
	ID     string
	Name   string
	Format audio.Format
	Loop   bool
}

var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// New creates a Controller playing files from fsys through t.
func New(t audio.Transport, fsys fs.FS, opts ...Option) *Controller {
	c := &Controller{
		transport:           t,
		fsys:                fsys,
		logger:              log.Default(),
		bufferSize:          DefaultBufferSize,
		silenceSize:         DefaultSilenceSize,
		transportBufferSize: DefaultTransportBufferSize,
		flushOverride:       -1,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = audio.NewRegistry()
		c.registry.Register("wav", wav.Open)
	}

	c.buf = make([]byte, c.bufferSize)
	return c
}

// Play opens name and starts streaming it. It fails with ErrAlreadyPlaying
// unless the controller is Stopped.
func (c *Controller) Play(name string, loop bool) error {
	c.playMu.Lock()
	defer c.playMu.Unlock()

	if c.State() != Stopped {
		return ErrAlreadyPlaying
	}

	src, err := c.open(name)
	if err != nil {
		return err
	}

	format := src.Format()
	s := &session{
		id:      uuid.NewString(),
		name:    name,
		loop:    loop,
		source:  src,
		format:  format,
		chunk:   c.buf[:min(len(c.buf), alignDown(len(c.buf), format.BlockAlign()))],
		silence: newSilence(c.silenceSize, format),
		done:    make(chan struct{}),
	}
	s.flush = c.flushOverride
	if s.flush < 0 {
		s.flush = flushCount(c.transportBufferSize, len(s.silence))
	}

	cfg := audio.Config{
		Format:     format,
		Direction:  audio.TX,
		BufferSize: c.transportBufferSize,
	}
	if err := c.transport.Configure(cfg); err != nil {
		_ = src.Close()
		return transportError("configure", err)
	}

	if !c.blocking {
		c.transport.SetCompletionHandler(c.OnComplete)
	}

	c.session.Store(s)
	c.state.Store(int32(Playing))

	// from here on the handler owns the session
	flush := s.flush

	// prime the pipeline; the first completion starts the reads
	if _, err := c.transport.Submit(s.silence); err != nil {
		err = transportError("submit", err)
		c.finish(s, err)
		return err
	}

	c.logger.Printf("player: session %s: playing %s (%s, loop=%t, flush=%d)", s.id, name, format, loop, flush)
	return nil
}

func (c *Controller) open(name string) (audio.SampleSource, error) {
	opener, err := c.registry.ForName(name)
	if err != nil {
		return nil, err
	}

	f, err := c.fsys.Open(name)
	if err != nil {
		return nil, &audio.StorageError{Op: "open", Err: err}
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		_ = f.Close()
		return nil, &audio.StorageError{Op: "open", Err: ErrNotSeekable}
	}

	return opener(readSeekCloser{ReadSeeker: rs, Closer: f})
}

type readSeekCloser struct {
	io.ReadSeeker
	io.Closer
}

// Pause is legal while Playing or already Paused.
func (c *Controller) Pause() error {
	for {
		switch State(c.state.Load()) {
		case Paused:
			return nil
		case Playing:
			if c.state.CompareAndSwap(int32(Playing), int32(Paused)) {
				return nil
			}
		default:
			return ErrNotPlaying
		}
	}
}

// Resume is legal only while Paused. The next completion submits one
// silence buffer before real reads continue.
func (c *Controller) Resume() error {
	if !c.state.CompareAndSwap(int32(Paused), int32(Resuming)) {
		return ErrNotPaused
	}
	return nil
}

// Stop starts flushing. Queued audio drains before the session is torn
// down; Done is closed once that has happened. Stopping an idle or already
// flushing controller does nothing.
func (c *Controller) Stop() error {
	for {
		st := State(c.state.Load())
		if st == Stopped || st == Flushing {
			return nil
		}
		if c.state.CompareAndSwap(int32(st), int32(Flushing)) {
			return nil
		}
	}
}

// State returns the current state.
func (c *Controller) State() State { return State(c.state.Load()) }

// IsPlaying reports whether a session is active, paused and flushing
// included.
func (c *Controller) IsPlaying() bool { return c.State() != Stopped }

// Done is closed when the current session reaches Stopped. With no session
// it returns a closed channel.
func (c *Controller) Done() <-chan struct{} {
	s := c.session.Load()
	if s == nil {
		return closedDone
	}
	return s.done
}

// Err returns the error that ended the last session, nil while it runs or
// when it ended normally.
func (c *Controller) Err() error {
	s := c.session.Load()
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

// Session describes the current (or last) session.
func (c *Controller) Session() (SessionInfo, bool) {
	s := c.session.Load()
	if s == nil {
		return SessionInfo{}, false
	}
	return SessionInfo{ID: s.id, Name: s.name, Format: s.format, Loop: s.loop}, true
}

// Wait blocks until the session stops or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	select {
	case <-c.Done():
		return c.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives a controller created WithBlocking: each iteration performs one
// unit of work whose Submit blocks until the transport accepts it. When ctx
// is cancelled the session is stopped and drained.
func (c *Controller) Run(ctx context.Context) error {
	if !c.blocking {
		return ErrNotBlocking
	}

	for c.State() != Stopped {
		if ctx.Err() != nil {
			_ = c.Stop()
		}
		c.OnComplete()
	}

	if err := c.Err(); err != nil {
		return err
	}
	return ctx.Err()
}

// OnComplete performs exactly one buffer of work. It is the transport's
// completion handler and must not be called concurrently with itself.
func (c *Controller) OnComplete() {
	st := State(c.state.Load())
	if st == Stopped {
		return
	}

	s := c.session.Load()
	if err := c.step(st, s); err != nil {
		c.logger.Printf("player: session %s: %v", s.id, err)
		c.finish(s, err)
	}
}

func (c *Controller) step(st State, s *session) error {
	switch st {
	case Playing:
		n, err := s.source.Read(s.chunk)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if n > 0 {
			return c.submit(s.chunk[:n])
		}

		// end of stream
		if s.loop {
			if err := s.source.Rewind(); err != nil {
				return err
			}
		} else {
			c.state.CompareAndSwap(int32(Playing), int32(Flushing))
		}
		return c.submit(s.silence)

	case Resuming:
		c.state.CompareAndSwap(int32(Resuming), int32(Playing))
		return c.submit(s.silence)

	case Paused:
		return c.submit(s.silence)

	case Flushing:
		if s.flush > 0 {
			s.flush--
			return c.submit(s.silence)
		}
		c.finish(s, nil)
		return nil

	default:
		panic(&InternalStateError{State: st})
	}
}

func (c *Controller) submit(buf []byte) error {
	if _, err := c.transport.Submit(buf); err != nil {
		return transportError("submit", err)
	}
	return nil
}

// finish tears the session down: close the source, release the transport,
// enter Stopped. Release failures are logged only.
func (c *Controller) finish(s *session, cause error) {
	s.err = cause

	if err := s.source.Close(); err != nil {
		c.logger.Printf("player: session %s: close: %v", s.id, err)
		if s.err == nil {
			s.err = err
		}
	}
	if err := c.transport.Release(); err != nil {
		c.logger.Printf("player: session %s: release: %v", s.id, err)
	}

	c.state.Store(int32(Stopped))
	close(s.done)

	c.logger.Printf("player: session %s: stopped", s.id)
}

func transportError(op string, err error) error {
	var te *audio.TransportError
	if errors.As(err, &te) {
		return err
	}
	return &audio.TransportError{Op: op, Err: err}
}
