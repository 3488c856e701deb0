// SPDX-License-Identifier: EPL-2.0

package audio

// Direction of a transport.
type Direction int

const (
	TX Direction = iota // samples flow to the transport (playback)
	RX                  // samples flow from the transport (capture)
)

func (d Direction) String() string {
	if d == RX {
		return "rx"
	}
	return "tx"
}

// Config carries everything a transport needs to start clocking samples.
type Config struct {
	Format    Format
	Direction Direction
	// BufferSize is the size of the transport's internal buffer in bytes.
	BufferSize int
}

// Transport is a clocked sample path accepting (TX) or filling (RX) buffers.
//
// Once a completion handler is registered Submit must not block; the handler is
// invoked once per submitted buffer after the transport is done with it, and is
// never invoked concurrently with itself. Without a handler Submit blocks until the
// buffer has been transferred.
type Transport interface {
	Configure(cfg Config) error
	// Submit hands buf to the transport and returns the number of bytes accepted
	// (TX) or captured (RX). The transport may not retain buf past its completion.
	Submit(buf []byte) (int, error)
	SetCompletionHandler(h func())
	// Release deinitialises the transport. Calling it again is a no-op.
	Release() error
}
