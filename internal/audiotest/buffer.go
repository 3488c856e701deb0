// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"sync"
)

// Buffer is an in-memory io.WriteSeeker.
type Buffer struct {
	mu  sync.Mutex
	buf []byte
	pos int64

	// WriteErr fails every Write when set.
	WriteErr error
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.WriteErr != nil {
		return 0, b.WriteErr
	}

	end := b.pos + int64(len(p))
	if end > int64(len(b.buf)) {
		b.buf = append(b.buf, make([]byte, end-int64(len(b.buf)))...)
	}
	copy(b.buf[b.pos:], p)
	b.pos = end
	return len(p), nil
}

func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.pos + offset
	case io.SeekEnd:
		abs = int64(len(b.buf)) + offset
	default:
		return 0, errors.New("audiotest: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("audiotest: negative position")
	}
	b.pos = abs
	return abs, nil
}

// Bytes returns a copy of everything written.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]byte(nil), b.buf...)
}
