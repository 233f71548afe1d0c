package language

import (
	"sort"
	"strings"
)

var stopWords = map[string][]string{
	"it": {
		"che", "e", "di", "a", "da", "in", "un", "una", "il", "lo", "la", "i", "gli", "le",
		"mi", "ti", "si", "ci", "vi", "non", "per", "con", "su", "ma", "o", "ora", "poi",
		"sono", "sei", "era", "hai", "ho", "ha", "abbiamo", "avete", "hanno",
		"del", "della", "dei", "delle",
		"al", "allo", "alla", "ai", "agli", "alle", "nel", "nello", "nella", "nei", "negli", "nelle",
		"un'", "l'", "d'", "c'", "m'", "t'", "s'", "e'", "è",
	},
	"de": {
		"der", "die", "das", "den", "dem", "des", "ein", "eine", "einen", "einem", "einer",
		"und", "oder", "aber", "nicht", "ich", "du", "er", "sie", "es", "wir", "ihr",
		"mit", "von", "zu", "auf", "für", "ist", "bin", "bist", "sind", "war", "hat", "habe",
		"haben", "in", "im", "an", "am", "so", "ja", "nein", "was", "wie", "dass",
	},
	"en": {
		"the", "and", "you", "for", "are", "was", "but", "not", "with", "this", "that",
		"have", "has", "had", "his", "her", "she", "him", "they", "them", "what", "who",
		"a", "an", "of", "to", "in", "is", "it", "on", "at", "be", "i", "me", "my",
		"i'm", "it's", "don't", "that's",
	},
	"fr": {
		"le", "la", "les", "un", "une", "des", "du", "de", "et", "ou", "mais", "pas", "ne",
		"je", "tu", "il", "elle", "nous", "vous", "ils", "elles", "est", "suis", "es", "sont",
		"pour", "avec", "dans", "sur", "que", "qui", "ce", "ça", "l'", "d'", "j'", "c'", "n'", "qu'",
	},
	"es": {
		"el", "la", "los", "las", "un", "una", "unos", "unas", "de", "del", "al", "y", "o",
		"pero", "no", "que", "qué", "yo", "tú", "él", "ella", "es", "soy", "eres", "son",
		"por", "para", "con", "en", "lo", "le", "se", "me", "te", "mi", "su",
	},
}

// StopWords returns a copy of the built-in stop-word list for a language,
// sorted for stable output. Languages without a list yield nil.
func StopWords(code string) []string {
	list := stopWords[ToISO2(code)]
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	sort.Strings(out)
	return out
}

// StopSet is an immutable set of lower-cased stop words.
type StopSet struct {
	words map[string]struct{}
}

// NewStopSet builds a set from the language defaults plus extra words.
// Extra words are trimmed and lower-cased; curly apostrophes are folded to
// ASCII so they match tokenizer output.
func NewStopSet(code string, extra ...string) StopSet {
	base := stopWords[ToISO2(code)]
	words := make(map[string]struct{}, len(base)+len(extra))
	for _, w := range base {
		words[w] = struct{}{}
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(w, "’", "'")))
		if w != "" {
			words[w] = struct{}{}
		}
	}
	return StopSet{words: words}
}

// Contains reports whether token is a stop word.
func (s StopSet) Contains(token string) bool {
	_, ok := s.words[token]
	return ok
}

// Len returns the number of words in the set.
func (s StopSet) Len() int {
	return len(s.words)
}
