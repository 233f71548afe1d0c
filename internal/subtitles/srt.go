package subtitles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// timingPattern matches an SRT timing line anywhere inside a line, e.g.
// "00:01:02,500 --> 00:01:04,000 X1:40". A period separator is tolerated for
// files exported by tools that emit WebVTT-style milliseconds.
var timingPattern = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}[,.]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[,.]\d{3})`)

// parseTimingLine extracts the start and end offsets from a timing line.
func parseTimingLine(line string) (float64, float64, bool) {
	match := timingPattern.FindStringSubmatch(line)
	if match == nil {
		return 0, 0, false
	}
	start, err := parseSRTTimestamp(match[1])
	if err != nil {
		return 0, 0, false
	}
	end, err := parseSRTTimestamp(match[2])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// parseSRTTimestamp converts HH:MM:SS,mmm into seconds. The integral part is
// summed as an integer so the only fractional contribution is ms/1000.
func parseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// Normalize period to comma (SRT standard uses comma for milliseconds)
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// FormatTimestamp renders seconds as an SRT timestamp (HH:MM:SS,mmm).
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(seconds*1000 + 0.5)
	hours := totalMillis / 3_600_000
	minutes := (totalMillis % 3_600_000) / 60_000
	secs := (totalMillis % 60_000) / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
