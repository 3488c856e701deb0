// SPDX-License-Identifier: EPL-2.0

// Package transport provides software implementations of audio.Transport.
//
// Queue is the shared plumbing: a fixed-size byte ring that accepts
// submitted buffers, copies them in as room frees up and fires the
// completion handler once per copied buffer. The consumer side is Read,
// which never blocks and pads underruns with the fill byte, or Drain,
// which waits for data.
//
// Sim drains a Queue into an io.Writer (TX) or fills submitted buffers from
// an io.Reader (RX). With Realtime set it moves bytes at the configured
// byte rate; otherwise it runs as fast as the other side allows, which is
// what tests want.
//
//	sim := &transport.Sim{Sink: f}
//	ctl := player.New(sim, os.DirFS("."))
//
// The speaker subpackage plays a Queue on the default output device.
package transport
