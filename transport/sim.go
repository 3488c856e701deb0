// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/ik5/wavstream/audio"
)

// tick is how often a realtime clock moves samples.
const tick = 10 * time.Millisecond

// Sim is a software transport. For TX it drains its Queue into Sink, either
// at the configured byte rate (Realtime) or as fast as Sink accepts. For RX
// it fills submitted buffers from Source, zero-padding once Source is
// exhausted.
type Sim struct {
	Sink     io.Writer
	Source   io.Reader
	Realtime bool

	mu      sync.Mutex
	cfg     audio.Config
	queue   *Queue
	rx      *capture
	handler func()
	stop    chan struct{}
	wg      sync.WaitGroup
	err     error
}

// Configure (re)starts the transport for cfg. A running configuration is
// released first.
func (s *Sim) Configure(cfg audio.Config) error {
	if cfg.Format.ByteRate() <= 0 {
		return &audio.TransportError{Op: "configure", Err: errors.New("invalid format " + cfg.Format.String())}
	}
	if cfg.Direction == audio.TX && s.Sink == nil {
		return &audio.TransportError{Op: "configure", Err: errors.New("no sink")}
	}
	if cfg.Direction == audio.RX && s.Source == nil {
		return &audio.TransportError{Op: "configure", Err: errors.New("no source")}
	}

	_ = s.Release()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = cfg
	s.err = nil
	s.stop = make(chan struct{})

	if cfg.Direction == audio.RX {
		s.rx = newCapture(s.Source, s.pace)
		s.rx.setHandler(s.handler)
		return nil
	}

	s.queue = NewQueue(cfg.BufferSize)
	s.queue.SetCompletionHandler(s.handler)
	if cfg.Format.BitsPerSample == 8 {
		s.queue.SetFill(0x80)
	}

	s.wg.Add(1)
	if s.Realtime {
		go s.clock(s.queue, s.stop)
	} else {
		go s.drain(s.queue)
	}
	return nil
}

func (s *Sim) SetCompletionHandler(h func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handler = h
	if s.queue != nil {
		s.queue.SetCompletionHandler(h)
	}
	if s.rx != nil {
		s.rx.setHandler(h)
	}
}

func (s *Sim) Submit(buf []byte) (int, error) {
	s.mu.Lock()
	q, rx, err := s.queue, s.rx, s.err
	s.mu.Unlock()

	switch {
	case err != nil:
		return 0, &audio.TransportError{Op: "submit", Err: err}
	case rx != nil:
		return rx.submit(buf)
	case q != nil:
		return q.Submit(buf)
	default:
		return 0, audio.ErrNotConfigured
	}
}

// Release stops the clock. In unpaced mode everything already queued is
// written to Sink before it returns.
func (s *Sim) Release() error {
	s.mu.Lock()
	q, rx, stop := s.queue, s.rx, s.stop
	s.queue, s.rx, s.stop = nil, nil, nil
	s.mu.Unlock()

	if q == nil && rx == nil {
		return nil
	}

	if q != nil {
		_ = q.Close()
	}
	if rx != nil {
		rx.close()
	}
	if stop != nil {
		close(stop)
	}
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// clock moves one tick worth of audio per tick, playing silence on underrun.
func (s *Sim) clock(q *Queue, stop <-chan struct{}) {
	defer s.wg.Done()

	chunk := s.cfg.Format.ByteRate() * int(tick) / int(time.Second)
	chunk -= chunk % max(s.cfg.Format.BlockAlign(), 1)
	buf := make([]byte, max(chunk, s.cfg.Format.BlockAlign()))

	t := time.NewTicker(tick)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
		}

		if _, err := q.Read(buf); err != nil {
			return
		}
		s.write(buf)
	}
}

func (s *Sim) drain(q *Queue) {
	defer s.wg.Done()

	buf := make([]byte, 4096)
	for {
		n, err := q.Drain(buf)
		if err != nil {
			return
		}
		s.write(buf[:n])
	}
}

// write forwards p to Sink. After a sink failure the clock keeps consuming
// so the completion chain runs into the failing Submit.
func (s *Sim) write(p []byte) {
	s.mu.Lock()
	failed := s.err != nil
	s.mu.Unlock()

	if failed {
		return
	}
	if _, err := s.Sink.Write(p); err != nil {
		s.fail(err)
	}
}

// pace sleeps for the playing time of n bytes when Realtime is set.
func (s *Sim) pace(n int) {
	if !s.Realtime {
		return
	}
	s.mu.Lock()
	rate := s.cfg.Format.ByteRate()
	s.mu.Unlock()

	time.Sleep(time.Duration(n) * time.Second / time.Duration(rate))
}

func (s *Sim) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err == nil {
		s.err = err
	}
}

// capture serves RX submits. Like Queue it runs handlers on its own
// goroutine, one at a time.
type capture struct {
	src  io.Reader
	pace func(int)

	mu      sync.Mutex
	cond    *sync.Cond
	pending [][]byte
	handler func()
	closed  bool
	eof     bool
}

func newCapture(src io.Reader, pace func(int)) *capture {
	c := &capture{src: src, pace: pace}
	c.cond = sync.NewCond(&c.mu)
	go c.loop()
	return c
}

func (c *capture) setHandler(h func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler = h
}

func (c *capture) submit(buf []byte) (int, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, audio.ErrTransportReleased
	}
	if c.handler != nil {
		c.pending = append(c.pending, buf)
		c.cond.Broadcast()
		c.mu.Unlock()
		return len(buf), nil
	}
	c.mu.Unlock()

	c.fill(buf)
	return len(buf), nil
}

func (c *capture) fill(buf []byte) {
	n := 0
	if !c.eof {
		var err error
		n, err = io.ReadFull(c.src, buf)
		if err != nil {
			c.eof = true
		}
	}
	clear(buf[n:])
	c.pace(len(buf))
}

func (c *capture) loop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		for !c.closed && len(c.pending) == 0 {
			c.cond.Wait()
		}
		if c.closed {
			return
		}

		buf := c.pending[0]
		c.pending = c.pending[1:]
		h := c.handler

		c.mu.Unlock()
		c.fill(buf)
		if h != nil {
			h()
		}
		c.mu.Lock()
	}
}

func (c *capture) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.pending = nil
	c.cond.Broadcast()
}
