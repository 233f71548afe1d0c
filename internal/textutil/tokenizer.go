package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"subdeck/internal/language"
)

var apostropheReplacer = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Tokenizer splits text into lower-cased word tokens for one language.
// It holds no mutable state after construction.
type Tokenizer struct {
	pattern *regexp.Regexp
	caser   cases.Caser
}

// NewTokenizer returns a tokenizer using the letter class and case rules of
// the given language code.
func NewTokenizer(lang string) *Tokenizer {
	class := language.LetterClass(lang)
	return &Tokenizer{
		pattern: regexp.MustCompile(`[` + class + `]+`),
		caser:   cases.Lower(language.Tag(lang)),
	}
}

// Tokenize returns every token in text in encounter order, duplicates kept.
func (t *Tokenizer) Tokenize(text string) []string {
	text = norm.NFC.String(text)
	text = apostropheReplacer.Replace(text)
	// cases.Caser is stateful; String resets it before use.
	text = t.caser.String(text)
	return t.pattern.FindAllString(text, -1)
}

// Words returns the tokens of text that are at least minLength runes long
// and not rejected by skip.
func (t *Tokenizer) Words(text string, minLength int, skip func(string) bool) []string {
	raw := t.Tokenize(text)
	out := raw[:0]
	for _, token := range raw {
		if utf8.RuneCountInString(token) < minLength {
			continue
		}
		if skip != nil && skip(token) {
			continue
		}
		out = append(out, token)
	}
	return out
}
