// SPDX-License-Identifier: EPL-2.0

// Package wavstream streams audio files to a clocked audio transport without
// blocking the caller.
//
// The engine is built for output paths that pull fixed-size buffers at a
// fixed rate and signal when each buffer is done, such as an I2S peripheral
// or a sound card. A small state machine in the player package reacts to
// those signals, reading the next block from storage or padding with silence
// while paused or stopping.
//
// # Supported Formats
//
// Files are opened by extension through an audio.Registry:
//   - WAV (PCM 8/16/24/32-bit, A-law, mu-law) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// # Quick Start
//
//	t := speaker.New()
//	p := wavstream.NewPlayer(t, os.DirFS("/media"))
//	if err := p.Play("intro.wav", false); err != nil {
//	    log.Fatal(err)
//	}
//	time.Sleep(2 * time.Second)
//	p.Pause()
//	p.Resume()
//	p.Stop()
//	<-p.Done()
//
// # Transports
//
// The transport package has a software transport (Sim) that writes to any
// io.Writer, optionally at the real byte rate, and transport/speaker plays
// through the default output device. Any type implementing audio.Transport
// can be used; a blocking transport without completion callbacks is driven
// with player.WithBlocking and Controller.Run.
//
// # Recording and Tones
//
// The record package captures from a transport into a WAV file whose header
// is patched on stop. The tone package plays a precomputed sine cycle, which
// is handy for checking an output path.
//
// See the individual subpackages for more detailed documentation.
package wavstream
