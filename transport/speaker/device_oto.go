// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package speaker

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/wavstream/audio"
)

var (
	ctxOnce  sync.Once
	otoCtx   *oto.Context
	ctxErr   error
	ctxRate  int
	ctxChans int
)

func deviceContext(f audio.Format) (*oto.Context, error) {
	ctxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   f.SampleRate,
			ChannelCount: f.Mode.Channels(),
			Format:       oto.FormatFloat32LE,
		}

		var ready chan struct{}
		otoCtx, ready, ctxErr = oto.NewContext(op)
		if ctxErr != nil {
			return
		}
		<-ready

		ctxRate, ctxChans = op.SampleRate, op.ChannelCount
	})
	if ctxErr != nil {
		return nil, ctxErr
	}

	if f.SampleRate != ctxRate || f.Mode.Channels() != ctxChans {
		return nil, fmt.Errorf("speaker: device is open at %d Hz with %d channels, cannot play %s",
			ctxRate, ctxChans, f)
	}
	return otoCtx, nil
}

type otoOutput struct {
	player *oto.Player
}

func play(f audio.Format, r io.Reader) (output, error) {
	ctx, err := deviceContext(f)
	if err != nil {
		return nil, err
	}

	p := ctx.NewPlayer(r)
	p.Play()
	return &otoOutput{player: p}, nil
}

func (o *otoOutput) Close() error {
	return o.player.Close()
}
