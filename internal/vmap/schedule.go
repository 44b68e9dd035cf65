// Package vmap builds VMAP/VAST ad-break manifests for a playback session.
package vmap

import (
	"fmt"
	"math"
)

// OffsetStart is the sentinel time offset for a pre-roll break.
const OffsetStart = "start"

// OffsetEnd is the sentinel time offset for a post-roll break. The scheduler
// never emits it today; the renderer keeps its branch for players that do.
const OffsetEnd = "end"

// endBufferSec keeps interior breaks out of the final second of playback.
const endBufferSec = 1

// Schedule derives the ad break offsets purely from the playback duration,
// never from how many ads matched. Durations below one second count as one.
// The first offset is always the "start" sentinel; interior offsets are evenly
// spaced and clamped to [1, floor(duration)-1] seconds.
func Schedule(durationSec float64) []string {
	durInt := int(math.Floor(math.Max(1, durationSec)))

	wantedBreaks := 1
	switch {
	case durInt >= 45:
		wantedBreaks = 3
	case durInt >= 25:
		wantedBreaks = 2
	}

	offsets := make([]string, 0, wantedBreaks)
	offsets = append(offsets, OffsetStart)
	for i := 1; i < wantedBreaks; i++ {
		sec := int(math.Floor(durationSec * float64(i) / float64(wantedBreaks)))
		sec = max(1, min(sec, durInt-endBufferSec))
		offsets = append(offsets, FormatTimeOffset(sec))
	}

	return offsets
}

// FormatTimeOffset renders whole seconds as "HH:MM:SS.000".
func FormatTimeOffset(seconds int) string {
	hh := seconds / 3600
	mm := (seconds % 3600) / 60
	ss := seconds % 60

	return fmt.Sprintf("%02d:%02d:%02d.000", hh, mm, ss)
}
