// SPDX-License-Identifier: EPL-2.0

package tone

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/internal/audiotest"
	"github.com/ik5/wavstream/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycle_Length(t *testing.T) {
	t.Parallel()

	buf, err := Cycle(440, 22050, 16, 32)
	require.NoError(t, err)
	// 22050/440 = 50 samples
	assert.Len(t, buf, 100)

	buf, err = Cycle(440, 22050, 32, 32)
	require.NoError(t, err)
	assert.Len(t, buf, 200)
}

func TestCycle_Amplitude(t *testing.T) {
	t.Parallel()

	buf, err := Cycle(440, 22050, 16, 32)
	require.NoError(t, err)

	peak := 0
	for i := 0; i < len(buf); i += 2 {
		v := utils.Sample(buf[i:], 16)
		peak = max(peak, v, -v)
	}
	assert.LessOrEqual(t, peak, 1024)
	assert.Greater(t, peak, 1000)
	assert.Equal(t, 0, utils.Sample(buf, 16), "sine starts at zero")
}

func TestCycle_FullScale(t *testing.T) {
	t.Parallel()

	buf, err := Cycle(100, 800, 16, 1)
	require.NoError(t, err)
	require.Len(t, buf, 16)
	assert.Equal(t, 32767, utils.Sample(buf[4:], 16))
	assert.Equal(t, -32767, utils.Sample(buf[12:], 16))

	buf, err = Cycle(1000, 8000, 32, 1)
	require.NoError(t, err)
	require.Len(t, buf, 32)
	assert.Equal(t, 2147483647, utils.Sample(buf[8:], 32))
}

func TestCycle_Errors(t *testing.T) {
	t.Parallel()

	_, err := Cycle(0, 8000, 16, 1)
	assert.ErrorIs(t, err, ErrInvalidFrequency)

	_, err = Cycle(9000, 8000, 16, 1)
	assert.ErrorIs(t, err, ErrInvalidFrequency)

	_, err = Cycle(440, 8000, 24, 1)
	assert.ErrorIs(t, err, ErrUnsupportedBits)

	_, err = Cycle(440, 8000, 16, 0)
	assert.ErrorIs(t, err, ErrInvalidAttenuation)
}

func testGenerator(t *testing.T, tr audio.Transport) *Generator {
	t.Helper()

	g, err := NewGenerator(tr, Tone{Frequency: 440, SampleRate: 22050, Bits: 16, Attenuation: 32},
		WithLogger(log.New(io.Discard, "", 0)),
		WithTransportBufferSize(4000),
	)
	require.NoError(t, err)
	return g
}

func TestGenerator_Start(t *testing.T) {
	t.Parallel()

	tr := audiotest.NewTransport()
	g := testGenerator(t, tr)

	require.NoError(t, g.Start())
	require.Len(t, tr.Configs(), 1)
	assert.Equal(t, audio.Config{
		Format:     audio.Format{Mode: audio.Mono, BitsPerSample: 16, SampleRate: 22050, Encoding: audio.EncodingPCM},
		Direction:  audio.TX,
		BufferSize: 4000,
	}, tr.Configs()[0])

	tr.CompleteN(3)
	subs := tr.Submissions()
	require.Len(t, subs, 4)
	for _, s := range subs {
		assert.Equal(t, g.Cycle(), s)
	}

	assert.ErrorIs(t, g.Start(), ErrAlreadyStarted)

	require.NoError(t, g.Stop())
	require.NoError(t, g.Stop())
	assert.Equal(t, 1, tr.Releases())

	tr.Complete()
	assert.Len(t, tr.Submissions(), 4)

	select {
	case <-g.Done():
	default:
		t.Fatal("Done() not closed after Stop")
	}
}

func TestGenerator_SubmitFailureStops(t *testing.T) {
	t.Parallel()

	tr := audiotest.NewTransport()
	g := testGenerator(t, tr)

	require.NoError(t, g.Start())
	tr.SubmitErr = errors.New("bus fault")
	tr.Complete()

	assert.Equal(t, 1, tr.Releases())
	<-g.Done()
}

// cancelAfter cancels its context once n buffers have been submitted.
type cancelAfter struct {
	*audiotest.Transport
	n      int
	cancel context.CancelFunc
}

func (c *cancelAfter) Submit(buf []byte) (int, error) {
	n, err := c.Transport.Submit(buf)
	if c.n--; c.n == 0 {
		c.cancel()
	}
	return n, err
}

func TestGenerator_Run(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := &cancelAfter{Transport: audiotest.NewTransport(), n: 5, cancel: cancel}
	g := testGenerator(t, tr)

	err := g.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, tr.Submissions(), 5)
	assert.Equal(t, 1, tr.Releases())
	assert.False(t, tr.Complete(), "blocking mode registers no handler")
}

func TestNewGenerator_InvalidTone(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(audiotest.NewTransport(), Tone{Frequency: 440, SampleRate: 22050, Bits: 8, Attenuation: 1})
	assert.ErrorIs(t, err, ErrUnsupportedBits)
}
