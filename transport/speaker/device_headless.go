// SPDX-License-Identifier: EPL-2.0

//go:build headless

package speaker

import (
	"errors"
	"io"

	"github.com/ik5/wavstream/audio"
)

var ErrNoDevice = errors.New("speaker: built without an audio device (headless)")

func play(audio.Format, io.Reader) (output, error) {
	return nil, ErrNoDevice
}
