package vmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_BreakCountByDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		want     int
	}{
		{name: "long video gets three breaks", duration: 60, want: 3},
		{name: "threshold for three breaks", duration: 45, want: 3},
		{name: "medium video gets two breaks", duration: 30, want: 2},
		{name: "threshold for two breaks", duration: 25, want: 2},
		{name: "short video gets one break", duration: 10, want: 1},
		{name: "zero duration coerced to one second", duration: 0, want: 1},
		{name: "sub-second duration coerced to one second", duration: 0.4, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offsets := Schedule(tt.duration)
			require.Len(t, offsets, tt.want)
			assert.Equal(t, OffsetStart, offsets[0])
		})
	}
}

func TestSchedule_InteriorOffsetsEvenlySpaced(t *testing.T) {
	offsets := Schedule(60)

	require.Len(t, offsets, 3)
	assert.Equal(t, "start", offsets[0])
	assert.Equal(t, "00:00:20.000", offsets[1])
	assert.Equal(t, "00:00:40.000", offsets[2])
}

func TestSchedule_OffsetsStrictlyIncreasing(t *testing.T) {
	for _, duration := range []float64{25, 30, 45, 59.9, 60, 61.5, 90, 3600} {
		offsets := Schedule(duration)
		prev := ""
		for _, offset := range offsets[1:] {
			// HH:MM:SS.mmm compares lexicographically as time.
			assert.Greater(t, offset, prev, "duration %v", duration)
			prev = offset
		}
	}
}

func TestSchedule_NeverLandsInFinalSecond(t *testing.T) {
	for _, duration := range []float64{25, 26, 45, 46, 60, 100} {
		offsets := Schedule(duration)
		durInt := int(duration)
		last := offsets[len(offsets)-1]
		assert.LessOrEqual(t, last, FormatTimeOffset(durInt-1), "duration %v", duration)
	}
}

func TestSchedule_IndependentOfMatchCount(t *testing.T) {
	// Same duration, same plan, every time.
	first := Schedule(47.3)
	second := Schedule(47.3)
	assert.Equal(t, first, second)
}

func TestFormatTimeOffset(t *testing.T) {
	assert.Equal(t, "00:00:20.000", FormatTimeOffset(20))
	assert.Equal(t, "00:01:05.000", FormatTimeOffset(65))
	assert.Equal(t, "01:01:01.000", FormatTimeOffset(3661))
}
