// SPDX-License-Identifier: EPL-2.0

package player

import "github.com/ik5/wavstream/audio"

// newSilence allocates a buffer of quiet frames for f, at most size bytes
// and a whole number of frames. 8-bit PCM is unsigned, so its quiet level is
// 0x80 rather than 0.
func newSilence(size int, f audio.Format) []byte {
	buf := make([]byte, alignDown(size, f.BlockAlign()))
	if f.BitsPerSample == 8 {
		for i := range buf {
			buf[i] = 0x80
		}
	}
	return buf
}

// alignDown rounds n down to a multiple of block, keeping at least one block.
func alignDown(n, block int) int {
	if block <= 0 {
		return n
	}
	if n < block {
		return block
	}
	return n - n%block
}

// flushCount is the number of silence buffers needed to push everything the
// transport has queued internally out of the hardware.
func flushCount(transportBuffer, silence int) int {
	if silence <= 0 {
		return 1
	}
	return (transportBuffer+silence-1)/silence + 1
}
