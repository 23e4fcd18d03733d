// Package audio is a two-output master mixer built on gopxl/beep.
//
// Master routes sounds to a Music or an Effect output, each with its own
// volume in decibels (Silent, -80 dB, mutes it). Only one music track plays
// at a time. Volume fades are routines, so they advance with the host tick
// instead of a background timer:
//
//	sched.Start(master.CrossfadeTo(next, time.Second, 200*time.Millisecond))
//
// Master implements beep.Streamer. Hand it to Open to play it on the speaker,
// or call Stream directly in tests.
package audio
