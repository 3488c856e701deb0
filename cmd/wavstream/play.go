// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/wavstream"
	"github.com/ik5/wavstream/player"
)

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	loop := fs.Bool("loop", false, "Restart from the beginning at end of file")
	out := fs.String("out", "", "Write raw PCM to this file (- for stdout) instead of the speaker")
	realtime := fs.Bool("realtime", true, "Pace -out at the file's byte rate")
	noTUI := fs.Bool("no-tui", false, "Disable TUI, play until the file ends or SIGINT")
	logFile := fs.String("log-file", "", "Log file path (default: stderr without TUI, discarded with TUI)")
	bufSize := fs.Int("buffer", player.DefaultBufferSize, "Working buffer size in bytes")
	silenceSize := fs.Int("silence", player.DefaultSilenceSize, "Silence buffer size in bytes")
	transportSize := fs.Int("transport-buffer", player.DefaultTransportBufferSize, "Transport buffer size in bytes")
	flush := fs.Int("flush", -1, "Silence buffers submitted after stop (-1 derives it from the buffer sizes)")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("play: expected exactly one file")
	}
	path := fs.Arg(0)

	useTUI := !*noTUI
	logger, closeLog, err := setupLog(*logFile, useTUI)
	if err != nil {
		return err
	}
	defer closeLog()

	t, closeOut, err := openOutput(*out, *realtime)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	opts := []player.Option{
		player.WithLogger(logger),
		player.WithBufferSize(*bufSize),
		player.WithSilenceSize(*silenceSize),
		player.WithTransportBufferSize(*transportSize),
		player.WithFlushCount(*flush),
	}

	ctl := wavstream.NewPlayer(t, os.DirFS(filepath.Dir(path)), opts...)
	name := filepath.Base(path)
	if err := ctl.Play(name, *loop); err != nil {
		return fmt.Errorf("play %s: %w", path, err)
	}

	if useTUI {
		if _, err := tea.NewProgram(newPlayModel(ctl, name)).Run(); err != nil {
			_ = ctl.Stop()
			<-ctl.Done()
			return err
		}
		<-ctl.Done()
		return ctl.Err()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		_ = ctl.Stop()
	}()

	<-ctl.Done()
	return ctl.Err()
}
