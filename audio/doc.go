// SPDX-License-Identifier: EPL-2.0

// Package audio holds the types shared by sources, transports and the
// player.
//
// # Sample Sources
//
// A SampleSource yields raw little-endian PCM bytes in the layout described
// by its Format:
//
//	type SampleSource interface {
//	    Format() Format
//	    Read(p []byte) (int, error)
//	    Rewind() error
//	    Close() error
//	}
//
// Read returns 0, io.EOF at the end of the stream. Rewind goes back to the
// first sample so a stream can loop without being reopened.
//
// # Transports
//
// A Transport is a clocked sample path: an I2S peripheral, a sound card, or a
// simulation of either. Buffers are handed over with Submit. When a
// completion handler is registered Submit does not block and the handler is
// called once per buffer when the transport is done with it.
//
// # Registry
//
// The registry maps container extensions to openers:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Open)
//	open, err := registry.ForName("sounds/beep.wav")
package audio
