// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/wavstream/audio"
)

const (
	// HeaderSize of the canonical RIFF/WAVE header, "data" chunk header included.
	HeaderSize = 44
	// LookaheadSize is how far past the fmt chunk the "data" tag is searched for.
	LookaheadSize = 200

	fixedSize = 36
)

var (
	riffTag = []byte("RIFF")
	waveTag = []byte("WAVE")
	fmtTag  = []byte("fmt ")
	dataTag = []byte("data")
)

// Header is what ParseHeader recovers from a WAV file.
type Header struct {
	Format     audio.Format
	ByteRate   uint32
	BlockAlign uint16
	// DataOffset is the byte offset of the first sample.
	DataOffset int64
	// DataSize is the declared payload size, 0 when it was not inside the
	// lookahead window.
	DataSize uint32
}

// ParseHeader reads a RIFF/WAVE header from r, which must be positioned at
// offset 0. Producers that insert chunks between "fmt " and "data" are
// supported as long as the "data" tag starts within LookaheadSize bytes of
// the end of the fmt chunk. On return r has been advanced past the lookahead
// window, not to DataOffset.
func ParseHeader(r io.Reader) (Header, error) {
	fixed := make([]byte, fixedSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		if !isShortRead(err) {
			return Header{}, &audio.StorageError{Op: "read", Err: err}
		}
		return Header{}, formatError("header", fmt.Errorf("%w", err))
	}

	if !bytes.Equal(fixed[0:4], riffTag) || !bytes.Equal(fixed[8:12], waveTag) {
		return Header{}, formatError("", ErrNotWavFile)
	}

	if !bytes.Equal(fixed[12:16], fmtTag) {
		return Header{}, formatError("fmt", ErrUnsupportedWavLayout)
	}

	encoding := audio.Encoding(binary.LittleEndian.Uint16(fixed[20:22]))
	channels := int(binary.LittleEndian.Uint16(fixed[22:24]))
	sampleRate := int(binary.LittleEndian.Uint32(fixed[24:28]))
	byteRate := binary.LittleEndian.Uint32(fixed[28:32])
	blockAlign := binary.LittleEndian.Uint16(fixed[32:34])
	bitsPerSample := int(binary.LittleEndian.Uint16(fixed[34:36]))

	mode, ok := audio.ModeForChannels(channels)
	if !ok {
		return Header{}, formatError("channels", fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels))
	}

	switch encoding {
	case audio.EncodingPCM, audio.EncodingExtensible:
		switch bitsPerSample {
		case 8, 16, 24, 32:
		default:
			return Header{}, formatError("bits", fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitsPerSample))
		}
	case audio.EncodingALaw, audio.EncodingMuLaw:
		if bitsPerSample != 8 {
			return Header{}, formatError("bits", fmt.Errorf("%w: %d-bit %s", ErrUnsupportedBitDepth, bitsPerSample, encoding))
		}
	default:
		return Header{}, formatError("encoding", fmt.Errorf("%w: %s", ErrUnsupportedEncoding, encoding))
	}

	// usually "data" comes next, but some converters add chunks before it
	window := make([]byte, LookaheadSize)
	n, err := io.ReadFull(r, window)
	if err != nil && !isShortRead(err) {
		return Header{}, &audio.StorageError{Op: "read", Err: err}
	}
	window = window[:n]

	idx := bytes.Index(window, dataTag)
	if idx < 0 {
		return Header{}, formatError("data", ErrDataChunkNotFound)
	}

	h := Header{
		Format: audio.Format{
			Mode:          mode,
			BitsPerSample: bitsPerSample,
			SampleRate:    sampleRate,
			Encoding:      encoding,
		},
		ByteRate:   byteRate,
		BlockAlign: blockAlign,
		DataOffset: int64(HeaderSize + idx),
	}
	if idx+8 <= n {
		h.DataSize = binary.LittleEndian.Uint32(window[idx+4 : idx+8])
	}

	return h, nil
}

// isShortRead reports a file that ended early, as opposed to a failing
// medium.
func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
