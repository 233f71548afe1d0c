package chapters

import (
	"fmt"
	"math"
)

// Clock renders seconds as HH:MM:SS, truncating fractions and clamping
// negative offsets to zero.
func Clock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
