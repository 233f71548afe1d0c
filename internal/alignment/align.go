// Package alignment attaches secondary-track text to primary segments using a
// padded time window and a cursor that only moves forward.
package alignment

import (
	"fmt"
	"strings"
	"time"

	"subdeck/internal/services"
	"subdeck/internal/subtitles"
)

// Options controls the window tolerance and how many secondary lines a single
// primary segment may absorb.
type Options struct {
	Pad      time.Duration
	MaxLines int
}

// Pair is a primary segment together with the secondary text derived for it.
// SecondaryFrom and SecondaryTo delimit the half-open range of secondary
// indexes scanned for this pair; SecondaryTo is the cursor after the pair.
type Pair struct {
	Primary       subtitles.Segment `json:"primary"`
	SecondaryText string            `json:"secondaryText"`
	SecondaryFrom int               `json:"secondaryFrom"`
	SecondaryTo   int               `json:"secondaryTo"`
	Matched       int               `json:"matched"`
}

// Validate checks the knobs before any alignment work starts.
func (o Options) Validate() error {
	if o.MaxLines <= 0 {
		return services.Wrap(services.ErrConfiguration, "alignment", "validate",
			fmt.Sprintf("max lines must be positive, got %d", o.MaxLines), nil)
	}
	if o.Pad < 0 {
		return services.Wrap(services.ErrConfiguration, "alignment", "validate",
			fmt.Sprintf("pad must not be negative, got %s", o.Pad), nil)
	}
	return nil
}

// Align produces exactly one pair per primary segment, in primary order.
// Secondary segments are consumed at most once. An empty secondary track
// yields pairs with empty secondary text.
func Align(primary, secondary []subtitles.Segment, opts Options) ([]Pair, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pad := opts.Pad.Seconds()
	pairs := make([]Pair, 0, len(primary))
	cursor := 0
	for _, p := range primary {
		lo := p.Start - pad
		if lo < 0 {
			lo = 0
		}
		hi := p.End + pad

		i := cursor
		for i < len(secondary) && secondary[i].End < lo {
			i++
		}

		var texts []string
		j := i
		for j < len(secondary) {
			s := secondary[j]
			if s.Start > hi || len(texts) == opts.MaxLines {
				break
			}
			if s.End >= lo && s.Start <= hi {
				texts = append(texts, s.Text)
			}
			j++
		}
		cursor = j

		pairs = append(pairs, Pair{
			Primary:       p,
			SecondaryText: joinDistinct(texts),
			SecondaryFrom: i,
			SecondaryTo:   j,
			Matched:       len(texts),
		})
	}
	return pairs, nil
}

// joinDistinct joins texts with single spaces, collapsing runs of the same
// string into one occurrence.
func joinDistinct(texts []string) string {
	if len(texts) == 0 {
		return ""
	}
	kept := make([]string, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if len(kept) > 0 && kept[len(kept)-1] == text {
			continue
		}
		kept = append(kept, text)
	}
	return strings.Join(kept, " ")
}

// Unmatched counts pairs that received no secondary text.
func Unmatched(pairs []Pair) int {
	count := 0
	for _, pair := range pairs {
		if pair.SecondaryText == "" {
			count++
		}
	}
	return count
}
