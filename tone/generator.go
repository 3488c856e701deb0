// SPDX-License-Identifier: EPL-2.0

package tone

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/ik5/wavstream/audio"
)

var ErrAlreadyStarted = errors.New("tone generator already started")

// DefaultTransportBufferSize is the internal buffer requested from the transport.
const DefaultTransportBufferSize = 10000

// Generator submits one precomputed cycle to a transport over and over.
type Generator struct {
	transport  audio.Transport
	tone       Tone
	cycle      []byte
	bufferSize int
	logger     *log.Logger

	started atomic.Bool
	stopped atomic.Bool

	releaseOnce sync.Once
	releaseErr  error
	done        chan struct{}
}

// Option configures a Generator.
type Option func(*Generator)

func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

func WithTransportBufferSize(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.bufferSize = n
		}
	}
}

// NewGenerator precomputes the cycle of t. Nothing is submitted until Start
// or Run.
func NewGenerator(tr audio.Transport, t Tone, opts ...Option) (*Generator, error) {
	cycle, err := t.Cycle()
	if err != nil {
		return nil, err
	}

	g := &Generator{
		transport:  tr,
		tone:       t,
		cycle:      cycle,
		bufferSize: DefaultTransportBufferSize,
		logger:     log.Default(),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Cycle returns the precomputed buffer.
func (g *Generator) Cycle() []byte { return g.cycle }

func (g *Generator) configure() error {
	if !g.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	cfg := audio.Config{
		Format:     g.tone.Format(),
		Direction:  audio.TX,
		BufferSize: g.bufferSize,
	}
	if err := g.transport.Configure(cfg); err != nil {
		return &audio.TransportError{Op: "configure", Err: err}
	}
	return nil
}

// Start plays the tone in the background from the transport's completion
// handler until Stop is called.
func (g *Generator) Start() error {
	if err := g.configure(); err != nil {
		return err
	}

	g.transport.SetCompletionHandler(g.onComplete)
	if err := g.submit(); err != nil {
		_ = g.Stop()
		return err
	}

	g.logger.Printf("tone: playing %d Hz (%s)", g.tone.Frequency, g.tone.Format())
	return nil
}

func (g *Generator) onComplete() {
	if g.stopped.Load() {
		return
	}
	if err := g.submit(); err != nil {
		g.logger.Printf("tone: %v", err)
		_ = g.Stop()
	}
}

// Run plays the tone with blocking submits until ctx is done or Stop is
// called, then releases the transport.
func (g *Generator) Run(ctx context.Context) error {
	if err := g.configure(); err != nil {
		return err
	}

	var err error
	for ctx.Err() == nil && !g.stopped.Load() {
		if err = g.submit(); err != nil {
			break
		}
	}

	if stopErr := g.Stop(); err == nil {
		err = stopErr
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

func (g *Generator) submit() error {
	if _, err := g.transport.Submit(g.cycle); err != nil {
		return &audio.TransportError{Op: "submit", Err: err}
	}
	return nil
}

// Stop ends playback and releases the transport. Only the first call
// releases; later calls return the same result.
func (g *Generator) Stop() error {
	g.stopped.Store(true)
	g.releaseOnce.Do(func() {
		if err := g.transport.Release(); err != nil {
			g.releaseErr = &audio.TransportError{Op: "release", Err: err}
		}
		close(g.done)
	})
	return g.releaseErr
}

// Done is closed once the generator has stopped.
func (g *Generator) Done() <-chan struct{} { return g.done }
