// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"sync"

	"github.com/ik5/wavstream/audio"
)

// Transport is a hand-cranked audio.Transport. Nothing completes until the
// test calls Complete, which makes it possible to step a state machine one
// buffer at a time.
type Transport struct {
	mu sync.Mutex

	configs     []audio.Config
	submissions [][]byte
	handler     func()
	releases    int

	// ConfigureErr and SubmitErr are returned by the next calls when set.
	ConfigureErr error
	SubmitErr    error
	// Capture supplies the bytes copied into RX submissions.
	Capture []byte
}

func NewTransport() *Transport {
	return &Transport{}
}

func (t *Transport) Configure(cfg audio.Config) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ConfigureErr != nil {
		return t.ConfigureErr
	}
	t.configs = append(t.configs, cfg)
	return nil
}

func (t *Transport) Submit(buf []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.SubmitErr != nil {
		return 0, t.SubmitErr
	}

	if n := len(t.configs); n > 0 && t.configs[n-1].Direction == audio.RX {
		got := copy(buf, t.Capture)
		t.Capture = t.Capture[got:]
		t.submissions = append(t.submissions, bytes.Clone(buf[:got]))
		return got, nil
	}

	t.submissions = append(t.submissions, bytes.Clone(buf))
	return len(buf), nil
}

func (t *Transport) SetCompletionHandler(h func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.handler = h
}

func (t *Transport) Release() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.releases++
	return nil
}

// Complete invokes the registered completion handler once, as the hardware
// would after finishing a buffer. It reports false when no handler is set.
func (t *Transport) Complete() bool {
	t.mu.Lock()
	h := t.handler
	t.mu.Unlock()

	if h == nil {
		return false
	}
	h()
	return true
}

// CompleteN calls Complete n times.
func (t *Transport) CompleteN(n int) {
	for range n {
		t.Complete()
	}
}

func (t *Transport) Configs() []audio.Config {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]audio.Config(nil), t.configs...)
}

// Submissions returns copies of every submitted buffer in order.
func (t *Transport) Submissions() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([][]byte(nil), t.submissions...)
}

// Last returns the most recent submission, nil if none.
func (t *Transport) Last() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.submissions) == 0 {
		return nil
	}
	return t.submissions[len(t.submissions)-1]
}

func (t *Transport) Releases() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.releases
}

// Trace renders submissions as a string: 'S' for an all-silence buffer and
// 'A' for anything else.
func (t *Transport) Trace() string {
	var b []byte
	for _, s := range t.Submissions() {
		if IsSilence(s) {
			b = append(b, 'S')
		} else {
			b = append(b, 'A')
		}
	}
	return string(b)
}

// IsSilence reports whether buf holds only zero bytes or only 8-bit midpoint
// bytes.
func IsSilence(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	fill := buf[0]
	if fill != 0 && fill != 0x80 {
		return false
	}
	for _, b := range buf {
		if b != fill {
			return false
		}
	}
	return true
}
