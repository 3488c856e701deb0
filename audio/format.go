// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMode is the sample interleaving of a stream.
type ChannelMode int

const (
	Mono ChannelMode = iota + 1
	Stereo
)

func (m ChannelMode) String() string {
	switch m {
	case Mono:
		return "mono"
	case Stereo:
		return "stereo"
	default:
		return "unknown"
	}
}

// Channels returns the interleaved channel count (0 for an unknown mode).
func (m ChannelMode) Channels() int {
	switch m {
	case Mono:
		return 1
	case Stereo:
		return 2
	default:
		return 0
	}
}

// ModeForChannels maps a channel count to a ChannelMode.
func ModeForChannels(n int) (ChannelMode, bool) {
	switch n {
	case 1:
		return Mono, true
	case 2:
		return Stereo, true
	default:
		return 0, false
	}
}

// Encoding of the samples as stored in the container.
type Encoding uint16

const (
	EncodingPCM        Encoding = 1
	EncodingIEEEFloat  Encoding = 3
	EncodingALaw       Encoding = 6
	EncodingMuLaw      Encoding = 7
	EncodingExtensible Encoding = 0xFFFE
)

func (e Encoding) String() string {
	switch e {
	case EncodingPCM:
		return "pcm"
	case EncodingIEEEFloat:
		return "float"
	case EncodingALaw:
		return "a-law"
	case EncodingMuLaw:
		return "mu-law"
	case EncodingExtensible:
		return "extensible"
	default:
		return fmt.Sprintf("encoding(%d)", uint16(e))
	}
}

// Format describes a PCM stream. It is fixed for the lifetime of a session.
type Format struct {
	Mode          ChannelMode
	BitsPerSample int
	SampleRate    int
	Encoding      Encoding
}

// BytesPerSample for a single channel.
func (f Format) BytesPerSample() int { return f.BitsPerSample / 8 }

// BlockAlign is the size of one interleaved frame in bytes.
func (f Format) BlockAlign() int { return f.BytesPerSample() * f.Mode.Channels() }

// ByteRate in bytes per second.
func (f Format) ByteRate() int { return f.BlockAlign() * f.SampleRate }

func (f Format) String() string {
	return fmt.Sprintf("%dHz %d-bit %s", f.SampleRate, f.BitsPerSample, f.Mode)
}
