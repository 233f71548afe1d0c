package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"subdeck/internal/subtitles"
)

// Cue is one subtitle block for fixture documents.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// FormatSRT renders cues as an SRT document numbered from 1.
func FormatSRT(cues ...Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(subtitles.FormatTimestamp(cue.Start))
		b.WriteString(" --> ")
		b.WriteString(subtitles.FormatTimestamp(cue.End))
		b.WriteString("\n")
		b.WriteString(cue.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path string, content []byte) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSRT writes the cues as an SRT file and returns its path.
func WriteSRT(t testing.TB, path string, cues ...Cue) string {
	t.Helper()
	return WriteFile(t, path, []byte(FormatSRT(cues...)))
}

// ItalianCues is a small primary track used across packages.
func ItalianCues() []Cue {
	return []Cue{
		{Start: 0.0, End: 1.0, Text: "ciao mondo"},
		{Start: 1.2, End: 2.0, Text: "ciao di nuovo"},
		{Start: 500.0, End: 502.5, Text: "la <i>bacchetta</i> sceglie il mago"},
		{Start: 900.0, End: 903.0, Text: "fuori dalla finestra"},
	}
}

// GermanCues is the reference track matching ItalianCues.
func GermanCues() []Cue {
	return []Cue{
		{Start: 0.1, End: 1.9, Text: "hallo welt"},
		{Start: 500.2, End: 502.4, Text: "der Zauberstab wählt den Zauberer"},
		{Start: 900.1, End: 902.9, Text: "aus dem Fenster"},
	}
}

// WriteSamplePair writes ItalianCues and GermanCues under dir and returns
// both paths.
func WriteSamplePair(t testing.TB, dir string) (string, string) {
	t.Helper()
	primary := WriteSRT(t, filepath.Join(dir, "hp1.it.srt"), ItalianCues()...)
	secondary := WriteSRT(t, filepath.Join(dir, "hp1.de.srt"), GermanCues()...)
	return primary, secondary
}
