// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path"
	"strings"
	"sync"
)

// SampleSource is a positioned stream of raw little-endian PCM bytes.
type SampleSource interface {
	// Format of the bytes returned by Read.
	Format() Format
	// Read fills p with at most one underlying read worth of PCM bytes.
	// When n == 0 with err == io.EOF, the stream is finished.
	Read(p []byte) (n int, err error)
	// Rewind moves back to the first sample of the payload.
	Rewind() error
	// Close releases the underlying handle. Calling it again is a no-op.
	Close() error
}

// Opener constructs a SampleSource from an open storage handle. The source takes
// ownership of rs and closes it; on error rs is closed before returning.
type Opener func(rs io.ReadSeekCloser) (SampleSource, error)

// Registry for openers by container extension (e.g., "wav", "mp3", "ogg").
type Registry struct {
	openers map[string]Opener

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		openers: make(map[string]Opener),
		mtx:     &sync.RWMutex{},
	}
}

func (r *Registry) Register(ext string, o Opener) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.openers[normalizeExt(ext)] = o
}

func (r *Registry) Get(ext string) (Opener, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	o, ok := r.openers[normalizeExt(ext)]
	return o, ok
}

// ForName picks the opener matching the extension of name.
func (r *Registry) ForName(name string) (Opener, error) {
	ext := path.Ext(name)
	o, ok := r.Get(ext)
	if !ok {
		return nil, &UnsupportedContainerError{Ext: ext}
	}
	return o, nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
