package language

import (
	"testing"

	textlang "golang.org/x/text/language"
)

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"it", "it"},
		{"IT", "it"},
		{"ita", "it"},
		{"deu", "de"},
		{"ger", "de"},
		{"fre", "fr"},
		{"dut", "nl"},
		{"italian", "it"},
		{"Deutsch", "de"},
		{"xy", "xy"},
		{"jpn", "ja"},
		{"xyz", ""},
		{"", ""},
		{" ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ToISO2(tt.input); result != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"it", "Italian"},
		{"ger", "German"},
		{"xx", "XX"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestLetterClass(t *testing.T) {
	if got := LetterClass("it"); got != `a-zàèéìòóù'` {
		t.Fatalf("Italian letter class = %q", got)
	}
	if got := LetterClass("de"); got != defaultLetters {
		t.Fatalf("German letter class = %q", got)
	}
	if got := LetterClass("zz"); got != defaultLetters {
		t.Fatalf("unknown letter class = %q", got)
	}
}

func TestTag(t *testing.T) {
	if got := Tag("ita"); got != textlang.Italian {
		t.Fatalf("Tag(ita) = %v", got)
	}
	if got := Tag("tr"); got != textlang.Turkish {
		t.Fatalf("Tag(tr) = %v", got)
	}
	if got := Tag(""); got != textlang.Und {
		t.Fatalf("Tag(empty) = %v", got)
	}
}

func TestStopSet(t *testing.T) {
	set := NewStopSet("it", " Harry ", "l’", "")
	for _, word := range []string{"di", "che", "è", "harry", "l'"} {
		if !set.Contains(word) {
			t.Errorf("expected %q to be a stop word", word)
		}
	}
	if set.Contains("mondo") {
		t.Error("mondo should not be a stop word")
	}
	if want := len(StopWords("it")) + 1; set.Len() != want {
		t.Fatalf("Len = %d, want %d", set.Len(), want)
	}
}

func TestStopWordsReturnsCopy(t *testing.T) {
	first := StopWords("it")
	if len(first) == 0 {
		t.Fatal("expected Italian stop words")
	}
	first[0] = "mutated"
	if StopWords("it")[0] == "mutated" {
		t.Fatal("StopWords leaked internal slice")
	}
	if StopWords("zz") != nil {
		t.Fatal("expected nil for unknown language")
	}
}
