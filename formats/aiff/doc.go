// SPDX-License-Identifier: EPL-2.0

// Package aiff streams AIFF (Audio Interchange File Format) files as PCM.
//
// This package uses github.com/go-audio/aiff to decode AIFF files and exposes
// them as an audio.SampleSource. AIFF stores big-endian samples; Read
// converts them to the little-endian layout WAV transports expect, keeping
// the file's bit depth (8, 16, 24 or 32 bits, 8-bit as unsigned).
//
//	f, _ := os.Open("audio.aif")
//	src, err := aiff.Open(f)
//	if err != nil {
//	    // errors.Is(err, aiff.ErrNotAiffFile)
//	}
//	buf := make([]byte, 8192)
//	n, err := src.Read(buf)
//
// go-audio decoders cannot seek back, so Rewind rebuilds the decoder on the
// same file.
package aiff
