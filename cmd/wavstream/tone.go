// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/wavstream/tone"
)

func runTone(args []string) error {
	fs := flag.NewFlagSet("tone", flag.ExitOnError)
	freq := fs.Int("freq", 440, "Tone frequency in Hz")
	rate := fs.Int("rate", 22050, "Sample rate in Hz")
	bits := fs.Int("bits", 16, "Bits per sample (16 or 32)")
	atten := fs.Int("atten", 32, "Volume reduction factor")
	duration := fs.Duration("duration", 3*time.Second, "How long to play (0 until SIGINT)")
	out := fs.String("out", "", "Write raw PCM to this file (- for stdout) instead of the speaker")
	logFile := fs.String("log-file", "", "Log file path")
	_ = fs.Parse(args)

	logger, closeLog, err := setupLog(*logFile, false)
	if err != nil {
		return err
	}
	defer closeLog()

	t, closeOut, err := openOutput(*out, true)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	g, err := tone.NewGenerator(t, tone.Tone{
		Frequency:   *freq,
		SampleRate:  *rate,
		Bits:        *bits,
		Attenuation: *atten,
	}, tone.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	if err := g.Start(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-g.Done():
	}

	return g.Stop()
}
