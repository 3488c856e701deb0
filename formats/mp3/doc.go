// SPDX-License-Identifier: EPL-2.0

// Package mp3 streams MP3 files as 16-bit PCM.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files and
// exposes the result as an audio.SampleSource, so MP3 files can be played by
// the same controller as WAV files.
//
// go-mp3 always produces 16-bit little-endian stereo at the file's sample
// rate, which is what Format reports. Read only returns whole frames.
//
//	f, _ := os.Open("audio.mp3")
//	src, err := mp3.Open(f)
//	if err != nil {
//	    // errors.Is(err, mp3.ErrNotMP3File)
//	}
//	defer src.Close()
//
// Rewind seeks the decoder back to the first frame.
package mp3
