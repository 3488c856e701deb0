// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"io/fs"
	"sync"
	"testing/fstest"
)

// FS is an in-memory fs.FS whose files are seekable and count Close calls.
type FS struct {
	files fstest.MapFS

	mu     sync.Mutex
	opens  map[string]int
	closes map[string]int
}

func NewFS() *FS {
	return &FS{
		files:  fstest.MapFS{},
		opens:  map[string]int{},
		closes: map[string]int{},
	}
}

// Add stores data under name.
func (f *FS) Add(name string, data []byte) *FS {
	f.files[name] = &fstest.MapFile{Data: data}
	return f
}

func (f *FS) Open(name string) (fs.File, error) {
	file, err := f.files.Open(name)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.opens[name]++
	f.mu.Unlock()

	return &File{File: file, name: name, fs: f}, nil
}

func (f *FS) Opens(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.opens[name]
}

func (f *FS) Closes(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closes[name]
}

// File wraps an fstest file with Seek and close accounting.
type File struct {
	fs.File
	name string
	fs   *FS
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	s, ok := f.File.(io.Seeker)
	if !ok {
		return 0, errors.New("audiotest: file is not seekable")
	}
	return s.Seek(offset, whence)
}

func (f *File) Close() error {
	f.fs.mu.Lock()
	f.fs.closes[f.name]++
	f.fs.mu.Unlock()

	return f.File.Close()
}
