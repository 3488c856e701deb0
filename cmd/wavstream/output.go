// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/transport"
	"github.com/ik5/wavstream/transport/speaker"
)

// openOutput picks the speaker, or a software transport writing raw PCM to
// path ("-" is stdout). The returned closer must run after playback.
func openOutput(path string, realtime bool) (audio.Transport, func() error, error) {
	switch path {
	case "":
		return speaker.New(), func() error { return nil }, nil
	case "-":
		return &transport.Sim{Sink: os.Stdout, Realtime: realtime}, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return &transport.Sim{Sink: f, Realtime: realtime}, f.Close, nil
}

// setupLog sends the standard logger to path, or discards it when path is
// empty and quiet is set.
func setupLog(path string, quiet bool) (*log.Logger, func(), error) {
	if path == "" {
		if quiet {
			return log.New(io.Discard, "", 0), func() {}, nil
		}
		return log.New(os.Stderr, "", log.LstdFlags), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening log file: %w", err)
	}
	return log.New(f, "", log.LstdFlags), func() { _ = f.Close() }, nil
}
