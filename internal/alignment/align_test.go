package alignment

import (
	"errors"
	"testing"
	"time"

	"subdeck/internal/services"
	"subdeck/internal/subtitles"
)

func seg(start, end float64, text string) subtitles.Segment {
	return subtitles.Segment{Start: start, End: end, Text: text}
}

func defaultOptions() Options {
	return Options{Pad: 250 * time.Millisecond, MaxLines: 4}
}

func TestAlignConsumesSecondaryOnce(t *testing.T) {
	primary := []subtitles.Segment{
		seg(0.0, 1.0, "ciao mondo"),
		seg(1.2, 2.0, "ciao di nuovo"),
	}
	secondary := []subtitles.Segment{seg(0.1, 1.9, "hallo welt")}

	pairs, err := Align(primary, secondary, defaultOptions())
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].SecondaryText != "hallo welt" {
		t.Fatalf("pair 0 secondary = %q", pairs[0].SecondaryText)
	}
	if pairs[1].SecondaryText != "" {
		t.Fatalf("pair 1 secondary = %q, want empty", pairs[1].SecondaryText)
	}
	if Unmatched(pairs) != 1 {
		t.Fatalf("expected 1 unmatched pair")
	}
}

func TestAlignTotalityAndOrder(t *testing.T) {
	primary := []subtitles.Segment{
		seg(0, 1, "a"), seg(5, 6, "b"), seg(10, 11, "c"), seg(20, 21, "d"),
	}
	secondary := []subtitles.Segment{
		seg(0.2, 0.8, "A"), seg(9.9, 11.1, "C"),
	}
	pairs, err := Align(primary, secondary, defaultOptions())
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(pairs) != len(primary) {
		t.Fatalf("expected %d pairs, got %d", len(primary), len(pairs))
	}
	want := []string{"A", "", "C", ""}
	for i, pair := range pairs {
		if pair.Primary.Text != primary[i].Text {
			t.Fatalf("pair %d primary out of order: %q", i, pair.Primary.Text)
		}
		if pair.SecondaryText != want[i] {
			t.Errorf("pair %d secondary = %q, want %q", i, pair.SecondaryText, want[i])
		}
	}
}

func TestAlignCursorNeverDecreases(t *testing.T) {
	primary := []subtitles.Segment{
		seg(0, 2, "uno"), seg(1, 3, "due"), seg(0.5, 1, "indietro"), seg(4, 5, "tre"),
	}
	secondary := []subtitles.Segment{
		seg(0, 1, "eins"), seg(1.5, 2.5, "zwei"), seg(2.6, 3.2, "drei"), seg(4.1, 4.9, "vier"),
	}
	pairs, err := Align(primary, secondary, defaultOptions())
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	prev := 0
	for i, pair := range pairs {
		if pair.SecondaryFrom < prev {
			t.Fatalf("pair %d starts at %d before previous cursor %d", i, pair.SecondaryFrom, prev)
		}
		if pair.SecondaryTo < pair.SecondaryFrom {
			t.Fatalf("pair %d has inverted range", i)
		}
		prev = pair.SecondaryTo
	}
	if pairs[2].SecondaryText != "" {
		t.Fatalf("expected backwards primary to find nothing, got %q", pairs[2].SecondaryText)
	}
	if pairs[3].SecondaryText != "vier" {
		t.Fatalf("expected last pair to match vier, got %q", pairs[3].SecondaryText)
	}
}

func TestAlignOnlyOverlappingText(t *testing.T) {
	primary := []subtitles.Segment{seg(10, 12, "centro")}
	secondary := []subtitles.Segment{
		seg(1, 2, "prima"),
		seg(9.8, 10.5, "sovrapposto"),
		seg(12.2, 13, "margine"),
		seg(12.5, 14, "fuori"),
	}
	pairs, err := Align(primary, secondary, defaultOptions())
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got := pairs[0].SecondaryText; got != "sovrapposto margine" {
		t.Fatalf("secondary = %q", got)
	}
	if pairs[0].Matched != 2 {
		t.Fatalf("matched = %d, want 2", pairs[0].Matched)
	}
}

func TestAlignMaxLinesAndDedup(t *testing.T) {
	primary := []subtitles.Segment{seg(0, 10, "lungo"), seg(10.5, 11, "dopo")}
	secondary := []subtitles.Segment{
		seg(0, 1, "ja"), seg(1, 2, "ja"), seg(2, 3, "nein"), seg(3, 4, "doch"), seg(10.6, 10.9, "später"),
	}
	pairs, err := Align(primary, secondary, Options{Pad: 0, MaxLines: 3})
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if got := pairs[0].SecondaryText; got != "ja nein" {
		t.Fatalf("secondary = %q, want %q", got, "ja nein")
	}
	if pairs[0].Matched != 3 {
		t.Fatalf("matched = %d, want 3", pairs[0].Matched)
	}
	if got := pairs[1].SecondaryText; got != "später" {
		t.Fatalf("second pair secondary = %q", got)
	}
}

func TestAlignEmptySecondary(t *testing.T) {
	primary := []subtitles.Segment{seg(0, 1, "a"), seg(2, 3, "b")}
	pairs, err := Align(primary, nil, defaultOptions())
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if len(pairs) != 2 || pairs[0].SecondaryText != "" || pairs[1].SecondaryText != "" {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}
}

func TestAlignRejectsInvalidOptions(t *testing.T) {
	tests := []Options{
		{Pad: 0, MaxLines: 0},
		{Pad: -time.Millisecond, MaxLines: 2},
	}
	for _, opts := range tests {
		_, err := Align(nil, nil, opts)
		if !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("expected configuration error for %+v, got %v", opts, err)
		}
	}
}
