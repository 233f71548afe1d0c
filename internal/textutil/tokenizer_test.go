package textutil

import (
	"reflect"
	"testing"
)

func TestTokenizeItalian(t *testing.T) {
	tok := NewTokenizer("it")
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "Ciao mondo!", []string{"ciao", "mondo"}},
		{"accents", "Perché è così?", []string{"perché", "è", "così"}},
		{"curly apostrophe", "L’uomo dell’anno", []string{"l'uomo", "dell'anno"}},
		{"decomposed accent", "citta\u0300", []string{"citt\u00e0"}},
		{"digits split", "007 agente", []string{"agente"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeGermanUsesUnicodeLetters(t *testing.T) {
	tok := NewTokenizer("de")
	got := tok.Tokenize("Straße, Größe und Ärger")
	want := []string{"straße", "größe", "und", "ärger"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestWordsFiltersLengthAndSkip(t *testing.T) {
	tok := NewTokenizer("it")
	stop := map[string]bool{"nuovo": true}
	got := tok.Words("Ciao di nuovo, tu sei qui", 3, func(s string) bool { return stop[s] })
	want := []string{"ciao", "sei", "qui"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Words = %v, want %v", got, want)
	}
}

func TestWordsCountsRunes(t *testing.T) {
	tok := NewTokenizer("it")
	got := tok.Words("però più", 4, nil)
	if !reflect.DeepEqual(got, []string{"però"}) {
		t.Fatalf("Words = %v", got)
	}
}
