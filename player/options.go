// SPDX-License-Identifier: EPL-2.0

package player

import (
	"log"

	"github.com/ik5/wavstream/audio"
)

const (
	// DefaultBufferSize is the working buffer read from storage per completion.
	DefaultBufferSize = 10000
	// DefaultSilenceSize is the silence buffer used for pause, resume and flush.
	DefaultSilenceSize = 1000
	// DefaultTransportBufferSize is the transport's internal buffer.
	DefaultTransportBufferSize = 40000
)

// Option configures a Controller.
type Option func(*Controller)

// WithRegistry selects openers by file extension. The default opens WAV only.
func WithRegistry(r *audio.Registry) Option {
	return func(c *Controller) { c.registry = r }
}

// WithLogger replaces log.Default().
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithBufferSize sets the working buffer size in bytes.
func WithBufferSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}

// WithSilenceSize sets the silence buffer size in bytes.
func WithSilenceSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.silenceSize = n
		}
	}
}

// WithTransportBufferSize sets the internal buffer size requested from the
// transport. It also drives the default flush count.
func WithTransportBufferSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.transportBufferSize = n
		}
	}
}

// WithFlushCount overrides the number of silence buffers submitted after a
// stop before the session is torn down. The default is derived from the
// transport and silence buffer sizes; real transports may need tuning.
func WithFlushCount(n int) Option {
	return func(c *Controller) {
		if n >= 0 {
			c.flushOverride = n
		}
	}
}

// WithBlocking selects the blocking mode: no completion handler is
// registered and the caller drives playback with Run.
func WithBlocking() Option {
	return func(c *Controller) { c.blocking = true }
}
