// SPDX-License-Identifier: EPL-2.0

package utils

func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// PutSample stores v as a little-endian signed sample of the given bit depth.
// 8-bit samples use the unsigned WAV convention (128 is silence).
func PutSample(b []byte, v int, bits int) {
	switch bits {
	case 8:
		b[0] = byte(v + 128)
	case 16:
		b[0], b[1] = byte(v), byte(v>>8)
	case 24:
		b[0], b[1], b[2] = byte(v), byte(v>>8), byte(v>>16)
	case 32:
		b[0], b[1], b[2], b[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
	}
}

// Sample decodes a little-endian sample written by PutSample.
func Sample(b []byte, bits int) int {
	switch bits {
	case 8:
		return int(b[0]) - 128
	case 16:
		return int(int16(uint16(b[0]) | uint16(b[1])<<8))
	case 24:
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		if v&0x800000 != 0 {
			v |= ^0xFFFFFF
		}
		return int(v)
	case 32:
		return int(int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24))
	}
	return 0
}

// FullScale is the largest positive sample value of a bit depth.
func FullScale(bits int) int {
	return 1<<(bits-1) - 1
}
