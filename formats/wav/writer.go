// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/wavstream/audio"
)

// EncodeHeader builds the canonical 44-byte header for a PCM payload of
// dataSize bytes.
func EncodeHeader(f audio.Format, dataSize uint32) []byte {
	numChannels := uint16(f.Mode.Channels())
	bitsPerSample := uint16(f.BitsPerSample)
	blockAlign := numChannels * (bitsPerSample / 8)
	byteRate := uint32(f.SampleRate) * uint32(blockAlign)

	encoding := f.Encoding
	if encoding == 0 {
		encoding = audio.EncodingPCM
	}

	header := make([]byte, HeaderSize)

	// RIFF header (12 bytes)
	copy(header[0:4], riffTag)
	binary.LittleEndian.PutUint32(header[4:8], fixedSize+dataSize)
	copy(header[8:12], waveTag)

	// fmt chunk (24 bytes)
	copy(header[12:16], fmtTag)
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], uint16(encoding))
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], dataTag)
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	return header
}

// WriteHeader writes the 44-byte header to w in one operation.
func WriteHeader(w io.Writer, f audio.Format, dataSize uint32) error {
	if _, err := w.Write(EncodeHeader(f, dataSize)); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// WritePCM writes a complete WAV file holding the raw little-endian samples
// in pcm.
func WritePCM(w io.Writer, f audio.Format, pcm []byte) error {
	if err := WriteHeader(w, f, uint32(len(pcm))); err != nil {
		return err
	}

	// write in chunks so large payloads do not need one big syscall
	const chunkSize = 8192
	for i := 0; i < len(pcm); i += chunkSize {
		end := min(i+chunkSize, len(pcm))
		if _, err := w.Write(pcm[i:end]); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
