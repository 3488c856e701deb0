// SPDX-License-Identifier: EPL-2.0

package wavstream

import (
	"io/fs"

	"github.com/ik5/wavstream/audio"
	"github.com/ik5/wavstream/formats/aiff"
	"github.com/ik5/wavstream/formats/mp3"
	"github.com/ik5/wavstream/formats/vorbis"
	"github.com/ik5/wavstream/formats/wav"
	"github.com/ik5/wavstream/player"
)

// DefaultRegistry returns a registry with every container this module can
// read: wav, mp3, ogg, aif and aiff.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Open)
	reg.Register("mp3", mp3.Open)
	reg.Register("ogg", vorbis.Open)
	reg.Register("aif", aiff.Open)
	reg.Register("aiff", aiff.Open)
	return reg
}

// NewPlayer is player.New with DefaultRegistry. Options given later
// override it.
//
// Example:
//
//	p := wavstream.NewPlayer(speaker.New(), os.DirFS("."))
//	if err := p.Play("music.mp3", true); err != nil {
//	    panic(err)
//	}
func NewPlayer(t audio.Transport, fsys fs.FS, opts ...player.Option) *player.Controller {
	opts = append([]player.Option{player.WithRegistry(DefaultRegistry())}, opts...)
	return player.New(t, fsys, opts...)
}
