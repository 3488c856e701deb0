// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"io"
	"sync"

	"github.com/ik5/wavstream/audio"
)

// Queue is the internal buffer of a TX transport: producers Submit, a
// consumer (a clock or an audio device) Reads.
//
// With a completion handler, Submit only queues the slice. A pump goroutine
// copies queued slices into the buffer as room frees up and calls the
// handler after each one, so handler calls are sequential and never nested
// inside Submit. Without a handler Submit blocks until the whole slice has
// been copied.
type Queue struct {
	mu   sync.Mutex
	cond *sync.Cond

	buf     []byte
	r, size int

	pending [][]byte
	handler func()
	closed  bool
	fill    byte
}

// NewQueue creates a queue holding up to size bytes and starts its pump.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	q := &Queue{buf: make([]byte, size)}
	q.cond = sync.NewCond(&q.mu)

	go q.pump()
	return q
}

// SetFill sets the byte Read pads underruns with: 0 for signed PCM, 0x80
// for 8-bit unsigned.
func (q *Queue) SetFill(b byte) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.fill = b
}

// SetCompletionHandler switches the queue to non-blocking submits. A nil
// handler switches back.
func (q *Queue) SetCompletionHandler(h func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handler = h
}

func (q *Queue) Submit(buf []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return 0, audio.ErrTransportReleased
	}

	if q.handler != nil {
		q.pending = append(q.pending, buf)
		q.cond.Broadcast()
		return len(buf), nil
	}

	written := 0
	for written < len(buf) {
		for q.free() == 0 && !q.closed {
			q.cond.Wait()
		}
		if q.closed {
			return written, audio.ErrTransportReleased
		}
		written += q.put(buf[written:])
	}
	return written, nil
}

func (q *Queue) pump() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		for !q.closed && (len(q.pending) == 0 || q.free() == 0) {
			q.cond.Wait()
		}
		if q.closed {
			return
		}

		head := q.pending[0]
		n := q.put(head)
		if n < len(head) {
			q.pending[0] = head[n:]
			continue
		}
		q.pending = q.pending[1:]

		h := q.handler
		if h == nil {
			continue
		}
		q.mu.Unlock()
		h()
		q.mu.Lock()
	}
}

// put copies as much of p as fits. Callers hold mu.
func (q *Queue) put(p []byte) int {
	n := 0
	for n < len(p) && q.free() > 0 {
		w := (q.r + q.size) % len(q.buf)
		end := len(q.buf)
		if w < q.r {
			end = q.r
		}
		c := copy(q.buf[w:end], p[n:])
		q.size += c
		n += c
	}
	if n > 0 {
		q.cond.Broadcast()
	}
	return n
}

// get moves up to len(p) buffered bytes into p. Callers hold mu.
func (q *Queue) get(p []byte) int {
	n := 0
	for n < len(p) && q.size > 0 {
		end := min(q.r+q.size, len(q.buf))
		c := copy(p[n:], q.buf[q.r:end])
		q.r = (q.r + c) % len(q.buf)
		q.size -= c
		n += c
	}
	if n > 0 {
		q.cond.Broadcast()
	}
	return n
}

func (q *Queue) free() int { return len(q.buf) - q.size }

// Read never blocks: whatever is buffered is copied and the rest of p is
// padded with silence, the way a DAC behaves on underrun. It always returns
// len(p) until the queue is closed and empty.
func (q *Queue) Read(p []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed && q.size == 0 {
		return 0, io.EOF
	}

	n := q.get(p)
	for i := n; i < len(p); i++ {
		p[i] = q.fill
	}
	return len(p), nil
}

// Drain blocks until data is buffered and copies it into p. After Close it
// keeps returning buffered bytes, then io.EOF.
func (q *Queue) Drain(p []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.size == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.size == 0 {
		return 0, io.EOF
	}
	return q.get(p), nil
}

// Buffered returns the number of bytes waiting to be read.
func (q *Queue) Buffered() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.size
}

// Close stops the pump and fails further submits. Slices not yet copied are
// dropped. It does not wait for a running handler, so the handler itself
// may call it.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.pending = nil
	q.cond.Broadcast()
	return nil
}
