// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ik5/wavstream/formats/wav"
)

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	chunks := fs.Bool("chunks", true, "List the RIFF chunks")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return errors.New("info: expected at least one file")
	}

	for _, path := range fs.Args() {
		if err := printInfo(os.Stdout, path, *chunks); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func printInfo(w io.Writer, path string, chunks bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := wav.Probe(f)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s\n", path)
	h := info.Header
	fmt.Fprintf(w, "  format:   %s %s\n", h.Format, h.Format.Encoding)
	fmt.Fprintf(w, "  payload:  %d bytes at offset %d\n", h.DataSize, h.DataOffset)
	fmt.Fprintf(w, "  duration: %s\n", info.Duration)

	if !chunks {
		return nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	list, err := wav.Chunks(f)
	if err != nil {
		return err
	}
	for _, c := range list {
		fmt.Fprintf(w, "  chunk %q: %d bytes\n", c.ID, c.Size)
	}
	return nil
}
