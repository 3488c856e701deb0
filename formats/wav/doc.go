// SPDX-License-Identifier: EPL-2.0

// Package wav locates and streams the sample payload of RIFF/WAVE files.
//
// The package is deliberately small: it parses only what a clocked audio
// transport needs (channel mode, bit depth, sample rate) plus the offset of
// the first sample, and then hands out raw little-endian PCM bytes.
//
// # Parsing Headers
//
// ParseHeader reads the fixed 36-byte RIFF/fmt prefix and then searches a
// 200-byte lookahead window for the "data" tag, because some converters
// insert LIST or other metadata chunks before the payload:
//
//	f, _ := os.Open("music.wav")
//	h, err := wav.ParseHeader(f)
//	if err != nil {
//	    // *wav.FormatError
//	}
//	fmt.Println(h.Format, h.DataOffset)
//
// # Streaming Samples
//
// Source implements audio.SampleSource. Read never returns more than one
// underlying read and reports io.EOF at the end of the payload; Rewind seeks
// back to the first sample for loop playback:
//
//	src, err := wav.NewSource(f)
//	buf := make([]byte, 10000)
//	n, err := src.Read(buf)
//
// A-law and mu-law payloads are expanded to 16-bit PCM while reading.
//
// # Writing WAV Files
//
// EncodeHeader and WriteHeader produce the canonical 44-byte header. The
// recorder writes it once with a zero data size and rewrites it when the
// final size is known. WritePCM writes a complete file in one call:
//
//	pcm := []byte{0x00, 0x01, 0xff, 0x7f}
//	err := wav.WritePCM(out, audio.Format{Mode: audio.Mono, BitsPerSample: 16, SampleRate: 8000}, pcm)
//
// # Inspecting Files
//
// Probe reports the header and duration (via github.com/go-audio/wav) and
// Chunks lists the top-level RIFF chunks (via github.com/youpy/go-riff).
//
// # Error Handling
//
// Header problems are returned as *FormatError wrapping one of:
//   - ErrNotWavFile: missing RIFF or WAVE tag
//   - ErrUnsupportedWavLayout: the fmt chunk is not where it should be
//   - ErrDataChunkNotFound: no "data" tag inside the lookahead window
//   - ErrUnsupportedEncoding, ErrUnsupportedChannels, ErrUnsupportedBitDepth
//
// Storage failures while streaming are *audio.StorageError.
package wav
