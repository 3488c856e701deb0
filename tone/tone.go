// SPDX-License-Identifier: EPL-2.0

package tone

import (
	"errors"
	"fmt"
	"math"

	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/utils"
)

var (
	ErrInvalidFrequency   = errors.New("frequency must be between 1 and the sample rate")
	ErrUnsupportedBits    = errors.New("only 16 and 32 bit tones are supported")
	ErrInvalidAttenuation = errors.New("attenuation must be at least 1")
)

// Tone describes a pure sine tone.
type Tone struct {
	Frequency   int
	SampleRate  int
	Bits        int
	Attenuation int
}

// Format of the buffer produced by Cycle: mono, signed little-endian PCM.
func (t Tone) Format() audio.Format {
	return audio.Format{
		Mode:          audio.Mono,
		BitsPerSample: t.Bits,
		SampleRate:    t.SampleRate,
		Encoding:      audio.EncodingPCM,
	}
}

// Cycle returns one period of t.
func (t Tone) Cycle() ([]byte, error) {
	return Cycle(t.Frequency, t.SampleRate, t.Bits, t.Attenuation)
}

// Cycle computes one period of a sine at freq Hz. The period is
// rate/freq samples (integer division), so the played frequency is
// quantised to rate/(rate/freq). Peak amplitude is 2^(bits-1)/attenuation.
func Cycle(freq, rate, bits, attenuation int) ([]byte, error) {
	if freq <= 0 || freq > rate {
		return nil, fmt.Errorf("%w: %d Hz at %d Hz", ErrInvalidFrequency, freq, rate)
	}
	if bits != 16 && bits != 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBits, bits)
	}
	if attenuation < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAttenuation, attenuation)
	}

	samplesPerCycle := rate / freq
	size := bits / 8
	buf := make([]byte, samplesPerCycle*size)

	amp := math.Min(math.Exp2(float64(bits-1))/float64(attenuation), float64(utils.FullScale(bits)))

	for i := range samplesPerCycle {
		v := int(amp * math.Sin(2*math.Pi*float64(i)/float64(samplesPerCycle)))
		utils.PutSample(buf[i*size:], v, bits)
	}

	return buf, nil
}
