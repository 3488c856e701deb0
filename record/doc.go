// SPDX-License-Identifier: EPL-2.0

// Package record captures audio from a transport into a WAV file.
//
// The file starts with a header whose data size is zero. Captured buffers
// are appended while Recording, dropped while Paused, and on Stop the header
// is rewritten with the real size. The writer is never closed by the
// recorder.
package record
