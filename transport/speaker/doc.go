// SPDX-License-Identifier: EPL-2.0

// Package speaker is an audio.Transport backed by the system output device
// through oto.
//
// Submitted PCM (8, 16, 24 or 32-bit) is queued in a transport.Queue and
// converted to float32 as the device pulls it. Underruns play silence.
// Capture is not supported.
//
// Building with the headless tag removes the device dependency; Configure
// then fails with ErrNoDevice.
package speaker
