// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"
)

// namedOpener returns an Opener that identifies itself through its error.
func namedOpener(name string) (Opener, error) {
	err := errors.New(name)
	return func(io.ReadSeekCloser) (SampleSource, error) { return nil, err }, err
}

func openerIs(o Opener, want error) bool {
	_, err := o(nil)
	return err == want
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	opener, id := namedOpener("wav")

	registry.Register("wav", opener)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered opener")
	}
	if !openerIs(got, id) {
		t.Error("Registry.Get() returned a different opener")
	}
}

func TestRegistry_GetNonExistent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	if _, ok := registry.Get("nonexistent"); ok {
		t.Error("Registry.Get() returned ok=true for non-existent extension")
	}
}

func TestRegistry_NormalisesExtension(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	opener, id := namedOpener("wav")
	registry.Register(".WAV", opener)

	for _, ext := range []string{"wav", ".wav", "WAV", ".Wav"} {
		got, ok := registry.Get(ext)
		if !ok || !openerIs(got, id) {
			t.Errorf("Registry.Get(%q) did not find the opener", ext)
		}
	}
}

func TestRegistry_ForName(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavOpener, wavID := namedOpener("wav")
	mp3Opener, mp3ID := namedOpener("mp3")
	registry.Register("wav", wavOpener)
	registry.Register("mp3", mp3Opener)

	tests := []struct {
		name string
		want error
	}{
		{"music/song.wav", wavID},
		{"LOUD.MP3", mp3ID},
		{"archive.tar.wav", wavID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.ForName(tt.name)
			if err != nil {
				t.Fatalf("Registry.ForName(%q) error = %v", tt.name, err)
			}
			if !openerIs(got, tt.want) {
				t.Errorf("Registry.ForName(%q) returned wrong opener", tt.name)
			}
		})
	}
}

func TestRegistry_ForNameUnsupported(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	for _, name := range []string{"notes.txt", "noext"} {
		_, err := registry.ForName(name)
		if !errors.Is(err, ErrUnsupportedContainer) {
			t.Errorf("Registry.ForName(%q) error = %v, want ErrUnsupportedContainer", name, err)
		}

		var uc *UnsupportedContainerError
		if !errors.As(err, &uc) {
			t.Errorf("Registry.ForName(%q) error is not *UnsupportedContainerError", name)
		}
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	first, _ := namedOpener("first")
	second, secondID := namedOpener("second")

	registry.Register("wav", first)
	registry.Register("wav", second)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed after overwrite")
	}
	if !openerIs(got, secondID) {
		t.Error("Registry.Get() did not return the overwritten opener")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	opener, id := namedOpener("test")

	done := make(chan bool)
	for range 10 {
		go func() {
			registry.Register("format", opener)
			done <- true
		}()
	}
	for range 10 {
		go func() {
			_, _ = registry.Get("format")
			done <- true
		}()
	}
	for range 20 {
		<-done
	}

	got, ok := registry.Get("format")
	if !ok || !openerIs(got, id) {
		t.Error("Registry returned wrong opener after concurrent operations")
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	if registry == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if registry.openers == nil {
		t.Error("NewRegistry() did not initialize openers map")
	}
	if registry.mtx == nil {
		t.Error("NewRegistry() did not initialize mutex")
	}

	// readers share the lock, so Get succeeds while another reader holds it
	o, _ := namedOpener("wav")
	registry.Register("wav", o)
	registry.mtx.RLock()
	defer registry.mtx.RUnlock()
	if _, ok := registry.Get("wav"); !ok {
		t.Error("Get() under a held read lock = false, want true")
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format     Format
		blockAlign int
		byteRate   int
		str        string
	}{
		{Format{Mode: Mono, BitsPerSample: 8, SampleRate: 8000}, 1, 8000, "8000Hz 8-bit mono"},
		{Format{Mode: Stereo, BitsPerSample: 16, SampleRate: 44100}, 4, 176400, "44100Hz 16-bit stereo"},
		{Format{Mode: Stereo, BitsPerSample: 24, SampleRate: 48000}, 6, 288000, "48000Hz 24-bit stereo"},
		{Format{Mode: Mono, BitsPerSample: 32, SampleRate: 22050}, 4, 88200, "22050Hz 32-bit mono"},
	}

	for _, tt := range tests {
		if got := tt.format.BlockAlign(); got != tt.blockAlign {
			t.Errorf("%v BlockAlign() = %d, want %d", tt.format, got, tt.blockAlign)
		}
		if got := tt.format.ByteRate(); got != tt.byteRate {
			t.Errorf("%v ByteRate() = %d, want %d", tt.format, got, tt.byteRate)
		}
		if got := tt.format.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
}

func TestModeForChannels(t *testing.T) {
	t.Parallel()

	if m, ok := ModeForChannels(1); !ok || m != Mono {
		t.Errorf("ModeForChannels(1) = %v, %v", m, ok)
	}
	if m, ok := ModeForChannels(2); !ok || m != Stereo {
		t.Errorf("ModeForChannels(2) = %v, %v", m, ok)
	}
	if _, ok := ModeForChannels(6); ok {
		t.Error("ModeForChannels(6) should not be supported")
	}
	if Stereo.Channels() != 2 || ChannelMode(9).Channels() != 0 {
		t.Error("Channels() mismatch")
	}
}

func BenchmarkRegistry_ForName(b *testing.B) {
	registry := NewRegistry()
	opener, _ := namedOpener("wav")
	registry.Register("wav", opener)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.ForName("folder/track.wav")
	}
}
