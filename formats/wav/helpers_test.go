// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"io"
)

// createWAVFile builds a WAV file, optionally with an extra chunk between fmt
// and data.
func createWAVFile(sampleRate, channels, bitsPerSample int, encoding uint16, extra []byte, payload []byte) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	blockAlign := numChannels * (bits / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)
	dataSize := uint32(len(payload))

	// RIFF header
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(extra))+dataSize)
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, encoding)
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	buf.Write(extra)

	// data chunk
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(payload)

	return buf.Bytes()
}

// listChunk builds a LIST chunk with n bytes of body.
func listChunk(n int) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("LIST")
	binary.Write(buf, binary.LittleEndian, uint32(n))
	buf.Write(bytes.Repeat([]byte{'x'}, n))
	return buf.Bytes()
}

// memFile is an in-memory io.ReadSeekCloser that counts Close calls.
type memFile struct {
	*bytes.Reader
	closes int
}

func newMemFile(b []byte) *memFile { return &memFile{Reader: bytes.NewReader(b)} }

func (f *memFile) Close() error {
	f.closes++
	return nil
}

var _ io.ReadSeekCloser = (*memFile)(nil)
