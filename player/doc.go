// SPDX-License-Identifier: EPL-2.0

// Package player streams a sample container to an audio.Transport without
// blocking the caller.
//
// The Controller is a small state machine. Play, Pause, Resume and Stop only
// record the caller's intent; the transport's completion handler does the
// work, one buffer per completion:
//
//	Playing   read a buffer and submit it; at end of stream submit silence and
//	          either rewind (loop) or start flushing
//	Paused    submit silence
//	Resuming  submit one silence buffer, then back to Playing
//	Flushing  submit silence until the transport's internal buffer has been
//	          pushed out, then close the file and release the transport
//
// Silence keeps the transport clocked while no audio is due, so the
// completion chain never breaks.
//
// Example:
//
//	ctl := player.New(t, os.DirFS("/sounds"))
//	if err := ctl.Play("welcome.wav", false); err != nil {
//		log.Fatal(err)
//	}
//	<-ctl.Done()
//
// A transport without a completion callback is driven with WithBlocking and
// Run.
package player
