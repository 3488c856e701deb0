// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

func TestProbe_Duration(t *testing.T) {
	t.Parallel()

	// one second of 8kHz mono 16-bit
	data := createWAVFile(8000, 1, 16, 1, nil, make([]byte, 16000))

	info, err := Probe(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if info.Duration != time.Second {
		t.Errorf("Duration = %v, want 1s", info.Duration)
	}
	if info.Header.DataOffset != HeaderSize {
		t.Errorf("DataOffset = %d, want %d", info.Header.DataOffset, HeaderSize)
	}
}

func TestProbe_DurationIgnoresMetadata(t *testing.T) {
	t.Parallel()

	// half a second of 8kHz mono 16-bit behind a LIST chunk
	data := createWAVFile(8000, 1, 16, 1, listChunk(64), make([]byte, 8000))

	info, err := Probe(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if info.Duration != 500*time.Millisecond {
		t.Errorf("Duration = %v, want 500ms", info.Duration)
	}
}

func TestProbe_UnpatchedSizeRunsToEOF(t *testing.T) {
	t.Parallel()

	data := createWAVFile(8000, 1, 16, 1, nil, make([]byte, 4000))
	binary.LittleEndian.PutUint32(data[40:44], 0xFFFFFFFF)

	info, err := Probe(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if info.Duration != 250*time.Millisecond {
		t.Errorf("Duration = %v, want 250ms", info.Duration)
	}
}

func TestProbe_NotWav(t *testing.T) {
	t.Parallel()

	_, err := Probe(bytes.NewReader([]byte("this is not a wav file, it is some text instead")))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Probe() error = %v, want ErrNotWavFile", err)
	}
}

func TestDurationOf(t *testing.T) {
	t.Parallel()

	h := Header{ByteRate: 176400, DataSize: 88200}
	if got := durationOf(h); got != 500*time.Millisecond {
		t.Errorf("durationOf() = %v, want 500ms", got)
	}
	if got := durationOf(Header{}); got != 0 {
		t.Errorf("durationOf(zero) = %v, want 0", got)
	}
}

func TestChunks_ListsMetadata(t *testing.T) {
	t.Parallel()

	data := createWAVFile(8000, 1, 16, 1, listChunk(10), make([]byte, 20))

	chunks, err := Chunks(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Chunks() error = %v", err)
	}

	want := []Chunk{{"fmt ", 16}, {"LIST", 10}, {"data", 20}}
	if len(chunks) != len(want) {
		t.Fatalf("Chunks() = %v, want %v", chunks, want)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, chunks[i], want[i])
		}
	}
}
