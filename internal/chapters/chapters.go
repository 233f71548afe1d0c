// Package chapters groups timed segments into fixed-length chapter buckets
// and restricts a track to its leading time window.
package chapters

import (
	"fmt"
	"math"

	"subdeck/internal/services"
	"subdeck/internal/subtitles"
)

// Bucketer maps a start offset in seconds to a 1-based chapter id.
type Bucketer struct {
	minutes float64
	span    float64
}

// NewBucketer returns a bucketer for chapters of the given length.
func NewBucketer(chapterMinutes float64) (Bucketer, error) {
	if chapterMinutes <= 0 || math.IsNaN(chapterMinutes) || math.IsInf(chapterMinutes, 0) {
		return Bucketer{}, services.Wrap(
			services.ErrConfiguration,
			"chapters",
			"new bucketer",
			fmt.Sprintf("chapter length must be positive, got %v minutes", chapterMinutes),
			nil,
		)
	}
	return Bucketer{minutes: chapterMinutes, span: chapterMinutes * 60}, nil
}

// ID returns floor(seconds / chapterLength) + 1. Negative offsets belong to
// chapter 1.
func (b Bucketer) ID(seconds float64) int {
	if seconds <= 0 || b.span <= 0 {
		return 1
	}
	return int(math.Floor(seconds/b.span)) + 1
}

// Count returns how many chapters cover a window of maxMinutes.
func (b Bucketer) Count(maxMinutes float64) int {
	if maxMinutes <= 0 || b.minutes <= 0 {
		return 0
	}
	return int(math.Ceil(maxMinutes / b.minutes))
}

// Bounds returns the [start, end) offsets in seconds covered by a chapter.
func (b Bucketer) Bounds(id int) (float64, float64) {
	if id < 1 {
		id = 1
	}
	start := float64(id-1) * b.span
	return start, start + b.span
}

// Window keeps the segments that start strictly before maxMinutes. A segment
// starting inside the window is kept even when it ends after the limit.
// Order is preserved.
func Window(segments []subtitles.Segment, maxMinutes float64) []subtitles.Segment {
	limit := maxMinutes * 60
	kept := make([]subtitles.Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.Start < limit {
			kept = append(kept, seg)
		}
	}
	return kept
}
