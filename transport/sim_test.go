// SPDX-License-Identifier: EPL-2.0

package transport_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/formats/wav"
	"github.com/ik5/wavstream/internal/audiotest"
	"github.com/ik5/wavstream/player"
	"github.com/ik5/wavstream/record"
	"github.com/ik5/wavstream/tone"
	"github.com/ik5/wavstream/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the clock goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

var quiet = log.New(io.Discard, "", 0)

func playerOpts(extra ...player.Option) []player.Option {
	return append([]player.Option{
		player.WithBufferSize(100),
		player.WithSilenceSize(10),
		player.WithTransportBufferSize(40),
		player.WithLogger(quiet),
	}, extra...)
}

func checkPlayed(t *testing.T, out, payload []byte) {
	t.Helper()

	// priming silence, payload, end-of-stream silence, 5 flush buffers
	require.Len(t, out, 10+len(payload)+10+5*10)
	assert.Equal(t, make([]byte, 10), out[:10])
	assert.Equal(t, payload, out[10:10+len(payload)])
	assert.Equal(t, make([]byte, 60), out[10+len(payload):])
}

func TestSim_PlayerNonBlocking(t *testing.T) {
	t.Parallel()

	payload := audiotest.Payload(250)
	fsys := audiotest.NewFS().Add("a.wav", audiotest.WAV(8000, 1, 16, payload))
	sink := &syncBuffer{}

	c := player.New(&transport.Sim{Sink: sink}, fsys, playerOpts()...)
	require.NoError(t, c.Play("a.wav", false))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Wait(ctx))

	checkPlayed(t, sink.Bytes(), payload)
	assert.Equal(t, 1, fsys.Closes("a.wav"))
}

func TestSim_PlayerBlocking(t *testing.T) {
	t.Parallel()

	payload := audiotest.Payload(250)
	fsys := audiotest.NewFS().Add("a.wav", audiotest.WAV(8000, 1, 16, payload))
	sink := &syncBuffer{}

	c := player.New(&transport.Sim{Sink: sink}, fsys, playerOpts(player.WithBlocking())...)
	require.NoError(t, c.Play("a.wav", false))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Run(ctx))

	checkPlayed(t, sink.Bytes(), payload)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("device gone") }

func TestSim_SinkFailureStopsPlayer(t *testing.T) {
	t.Parallel()

	fsys := audiotest.NewFS().Add("a.wav", audiotest.WAV(8000, 1, 16, audiotest.Payload(5000)))

	c := player.New(&transport.Sim{Sink: failingWriter{}}, fsys, playerOpts()...)
	require.NoError(t, c.Play("a.wav", true))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var te *audio.TransportError
	assert.ErrorAs(t, c.Wait(ctx), &te)
	assert.Equal(t, player.Stopped, c.State())
}

func TestSim_Recorder(t *testing.T) {
	t.Parallel()

	input := audiotest.Payload(250)
	sim := &transport.Sim{Source: bytes.NewReader(input)}
	out := &audiotest.Buffer{}

	r := record.New(sim, record.WithBufferSize(100), record.WithLogger(quiet))
	format := audio.Format{Mode: audio.Mono, BitsPerSample: 16, SampleRate: 8000, Encoding: audio.EncodingPCM}
	require.NoError(t, r.Start(out, format))

	require.Eventually(t, func() bool { return r.Written() >= 400 }, 5*time.Second, time.Millisecond)
	require.NoError(t, r.Stop())
	<-r.Done()
	require.NoError(t, r.Err())

	data := out.Bytes()
	hdr, err := wav.ParseHeader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.EqualValues(t, r.Written(), hdr.DataSize)
	require.Len(t, data, wav.HeaderSize+int(r.Written()))

	payload := data[wav.HeaderSize:]
	assert.Equal(t, input, payload[:250])
	assert.Equal(t, make([]byte, len(payload)-250), payload[250:], "exhausted source captures silence")
}

func TestSim_RealtimeTone(t *testing.T) {
	t.Parallel()

	sink := &syncBuffer{}
	g, err := tone.NewGenerator(&transport.Sim{Sink: sink, Realtime: true},
		tone.Tone{Frequency: 440, SampleRate: 8000, Bits: 16, Attenuation: 4},
		tone.WithLogger(quiet),
		tone.WithTransportBufferSize(1600),
	)
	require.NoError(t, err)

	require.NoError(t, g.Start())
	require.Eventually(t, func() bool { return sink.Len() >= 1600 }, 5*time.Second, 5*time.Millisecond)
	require.NoError(t, g.Stop())

	// one tick at 16000 B/s is 160 bytes
	assert.Zero(t, sink.Len()%160)
}

func TestSim_ConfigureErrors(t *testing.T) {
	t.Parallel()

	format := audio.Format{Mode: audio.Mono, BitsPerSample: 16, SampleRate: 8000}

	var te *audio.TransportError
	assert.ErrorAs(t, (&transport.Sim{}).Configure(audio.Config{Format: format}), &te)
	assert.ErrorAs(t, (&transport.Sim{}).Configure(audio.Config{Format: format, Direction: audio.RX}), &te)
	assert.ErrorAs(t, (&transport.Sim{Sink: io.Discard}).Configure(audio.Config{}), &te)

	_, err := (&transport.Sim{}).Submit([]byte{1})
	assert.ErrorIs(t, err, audio.ErrNotConfigured)
	assert.NoError(t, (&transport.Sim{}).Release())
}
