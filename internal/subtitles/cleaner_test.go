package subtitles

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Ciao mondo", "Ciao mondo"},
		{"italic tags", "<i>Ciao</i> <b>mondo</b>", "Ciao mondo"},
		{"font tag with attrs", `<font color="#ffff00">Harry!</font>`, "Harry!"},
		{"override directive", `{\an8}Sopra`, "Sopra"},
		{"sound annotation", "[TUONO] Chi è là?", "Chi è là?"},
		{"musical note", "♪ la la la ♪", "la la la"},
		{"whitespace", "  troppi \t  spazi qui ", "troppi spazi qui"},
		{"only noise", "[MUSICA] ♪", ""},
		{"stacked tags", "<i><b>testo</b></i>", "testo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Fatalf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanTextIsFixedPoint(t *testing.T) {
	inputs := []string{
		"<i>Ciao</i>  mondo",
		"<<b>i>nested</i>",
		`{\{\an8}a}b`,
		"[[rumore]] ♪ [x]y",
		"normale testo, con virgole.",
	}
	for _, input := range inputs {
		once := CleanText(input)
		twice := CleanText(once)
		if once != twice {
			t.Fatalf("CleanText not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestIsAdvertisement(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"www.OpenSubtitles.org", true},
		{"Subtitles by AwesomeSubs", true},
		{"Synced and corrected by someone", true},
		{"Visit https://example.com", true},
		{"Ciao, come stai?", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsAdvertisement(tt.text); got != tt.want {
			t.Errorf("IsAdvertisement(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
