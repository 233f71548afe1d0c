package subtitles

import (
	"strings"
	"time"
)

// gapTolerance absorbs float rounding so a gap equal to the threshold in
// milliseconds still merges.
const gapTolerance = 1e-9

// Merge fuses consecutive segments whose gap (next.Start - current.End, which
// may be negative) is at most maxGap. Merging is greedy left to right: a fused
// segment can absorb the following one in the same pass. The input slice is
// not modified.
func Merge(segments []Segment, maxGap time.Duration) []Segment {
	if len(segments) == 0 {
		return nil
	}
	limit := maxGap.Seconds()
	merged := make([]Segment, 0, len(segments))
	current := segments[0]
	for _, next := range segments[1:] {
		if next.Start-current.End <= limit+gapTolerance {
			current = fuse(current, next)
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

func fuse(current, next Segment) Segment {
	end := current.End
	if next.End > end {
		end = next.End
	}
	return Segment{
		Index: current.Index,
		Start: current.Start,
		End:   end,
		Text:  strings.TrimSpace(current.Text + " " + next.Text),
	}
}
