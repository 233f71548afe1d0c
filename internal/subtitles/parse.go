package subtitles

import (
	"regexp"
	"strings"
)

// Segment is one timed unit of text from one track. Start and End are offsets
// in seconds; Text is a normalized single line.
type Segment struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// ParseOptions tunes the tolerant parser.
type ParseOptions struct {
	// DropAdvertisements removes cues whose text matches known subtitle-site
	// banners.
	DropAdvertisements bool
}

// ParseStats reports what the parser kept and discarded.
type ParseStats struct {
	Blocks         int `json:"blocks"`
	Segments       int `json:"segments"`
	Skipped        int `json:"skipped"`
	Advertisements int `json:"advertisements"`
}

var blankLinePattern = regexp.MustCompile(`\n\s*\n`)

// Parse decodes an SRT document into segments in source order. Malformed
// blocks are skipped silently and only show up in the returned stats.
func Parse(document string, opts ParseOptions) ([]Segment, ParseStats) {
	var stats ParseStats
	blocks := splitBlocks(document)
	stats.Blocks = len(blocks)

	segments := make([]Segment, 0, len(blocks))
	for _, block := range blocks {
		segment, ok := parseBlock(block)
		if !ok {
			stats.Skipped++
			continue
		}
		if opts.DropAdvertisements && IsAdvertisement(segment.Text) {
			stats.Advertisements++
			continue
		}
		segment.Index = len(segments) + 1
		segments = append(segments, segment)
	}
	stats.Segments = len(segments)
	return segments, stats
}

func splitBlocks(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	return blankLinePattern.Split(trimmed, -1)
}

func parseBlock(block string) (Segment, bool) {
	lines := nonEmptyLines(block)
	if len(lines) < 2 {
		return Segment{}, false
	}

	// Either "index, timing, text..." or "timing, text...".
	var textLines []string
	start, end, ok := parseTimingLine(lines[0])
	if ok {
		textLines = lines[1:]
	} else {
		start, end, ok = parseTimingLine(lines[1])
		if !ok {
			return Segment{}, false
		}
		textLines = lines[2:]
	}
	if end < start {
		return Segment{}, false
	}

	text := CleanText(strings.Join(textLines, " "))
	if text == "" {
		return Segment{}, false
	}
	return Segment{Start: start, End: end, Text: text}, true
}

func nonEmptyLines(block string) []string {
	raw := strings.Split(block, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
