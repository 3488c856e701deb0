// SPDX-License-Identifier: EPL-2.0

// Package vorbis streams Ogg Vorbis files as 16-bit PCM.
//
// Decoding is done by github.com/jfreymuth/oggvorbis; the float samples it
// produces are scaled to signed 16-bit little-endian PCM so the stream can be
// fed to any audio.Transport:
//
//	f, _ := os.Open("audio.ogg")
//	src, err := vorbis.Open(f)
//	if err != nil {
//	    // errors.Is(err, vorbis.ErrNotVorbisFile)
//	}
//	buf := make([]byte, 8192)
//	n, err := src.Read(buf)
//
// Only mono and stereo streams are supported. Rewind uses the decoder's
// SetPosition, which needs a seekable input.
package vorbis
