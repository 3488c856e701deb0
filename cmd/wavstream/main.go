// SPDX-License-Identifier: EPL-2.0

// Command wavstream plays, records and inspects WAV files.
//
//	wavstream play [-loop] [-out file] [-no-tui] file.wav
//	wavstream tone [-freq 440] [-rate 22050] [-duration 3s]
//	wavstream record -in capture.pcm -out take.wav [-duration 5s]
//	wavstream info file.wav
package main

import (
	"fmt"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: wavstream <play|tone|record|info> [flags] [args]")
	fmt.Fprintln(os.Stderr, "run 'wavstream <command> -h' for the flags of a command")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "play":
		err = runPlay(args)
	case "tone":
		err = runTone(args)
	case "record":
		err = runRecord(args)
	case "info":
		err = runInfo(args)
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "wavstream:", err)
		os.Exit(1)
	}
}
