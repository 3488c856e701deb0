// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"math"
	"time"

	gowav "github.com/go-audio/wav"
	"github.com/youpy/go-riff"
)

// Info summarises a WAV file without streaming it.
type Info struct {
	Header   Header
	Duration time.Duration
}

// Probe parses the header of rs and measures its duration from the payload
// size and byte rate. rs is left at an unspecified position.
func Probe(rs io.ReadSeeker) (Info, error) {
	h, err := ParseHeader(rs)
	if err != nil {
		return Info{}, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("%w", err)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return Info{}, formatError("", ErrNotWavFile)
	}

	size := h.DataSize
	if size == 0 || size == 0xFFFFFFFF {
		// streaming producers leave the size unpatched; the payload runs to EOF
		end, err := rs.Seek(0, io.SeekEnd)
		if err != nil {
			return Info{}, fmt.Errorf("%w", err)
		}
		size = uint32(min(max(end-h.DataOffset, 0), math.MaxUint32))
	}

	probed := h
	probed.DataSize = size
	return Info{Header: h, Duration: durationOf(probed)}, nil
}

func durationOf(h Header) time.Duration {
	if h.ByteRate == 0 {
		return 0
	}
	return time.Duration(float64(h.DataSize) / float64(h.ByteRate) * float64(time.Second))
}

// Chunk is one top-level RIFF chunk.
type Chunk struct {
	ID   string
	Size uint32
}

// Chunks lists the top-level chunks of a RIFF file in file order.
func Chunks(r riff.RIFFReader) ([]Chunk, error) {
	file, err := riff.NewReader(r).Read()
	if err != nil {
		return nil, formatError("riff", fmt.Errorf("%w", err))
	}

	if string(file.FileType[:]) != string(waveTag) {
		return nil, formatError("", ErrNotWavFile)
	}

	chunks := make([]Chunk, 0, len(file.Chunks))
	for _, ch := range file.Chunks {
		chunks = append(chunks, Chunk{ID: string(ch.ChunkID[:]), Size: ch.ChunkSize})
	}
	return chunks, nil
}
