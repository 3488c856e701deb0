// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/record"
	"github.com/ik5/wavstream/transport"
)

// runRecord captures raw PCM from a file or pipe through a clocked software
// transport, the way a microphone would deliver it.
func runRecord(args []string) error {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	in := fs.String("in", "-", "Raw little-endian PCM to capture (- for stdin)")
	out := fs.String("out", "", "WAV file to write")
	rate := fs.Int("rate", 22050, "Sample rate in Hz")
	channels := fs.Int("channels", 1, "Channel count (1 or 2)")
	bits := fs.Int("bits", 16, "Bits per sample")
	duration := fs.Duration("duration", 5*time.Second, "How long to record (0 until SIGINT)")
	realtime := fs.Bool("realtime", true, "Capture at the configured byte rate")
	logFile := fs.String("log-file", "", "Log file path")
	_ = fs.Parse(args)

	if *out == "" {
		return errors.New("record: -out is required")
	}
	mode, ok := audio.ModeForChannels(*channels)
	if !ok {
		return fmt.Errorf("record: unsupported channel count %d", *channels)
	}

	logger, closeLog, err := setupLog(*logFile, false)
	if err != nil {
		return err
	}
	defer closeLog()

	src := os.Stdin
	if *in != "-" {
		if src, err = os.Open(*in); err != nil {
			return err
		}
		defer src.Close()
	}

	dst, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer dst.Close()

	rec := record.New(&transport.Sim{Source: src, Realtime: *realtime}, record.WithLogger(logger))

	format := audio.Format{Mode: mode, BitsPerSample: *bits, SampleRate: *rate, Encoding: audio.EncodingPCM}
	if err := rec.Start(dst, format); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	select {
	case <-ctx.Done():
		_ = rec.Stop()
		<-rec.Done()
	case <-rec.Done():
	}

	if err := rec.Err(); err != nil {
		return err
	}
	logger.Printf("wrote %d bytes of %s to %s", rec.Written(), format, *out)
	return nil
}
