package cards

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Card type labels.
const (
	TypePhrase = "phrase"
	TypeWord   = "word"
)

// Provenance labels written into every card.
const (
	SourcePhrasePrimary   = "srt"
	SourcePhraseSecondary = "srt-aligned-window"
	SourceWordPrimary     = "srt-derived"
	SourceWordSecondary   = "manual/override-or-api-later"
)

// Languages names the primary (learned) and secondary (reference) tracks.
type Languages struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// ReservedKeys are the fixed card and example fields. Language codes share
// the same JSON object, so a code may not equal any of them.
var ReservedKeys = []string{
	"id", "type", "chapterId", "start", "end", "timestamp",
	"source", "freq", "examples", "wordInfo",
}

// IsReservedKey reports whether code would collide with a fixed card field.
func IsReservedKey(code string) bool {
	code = strings.TrimSpace(code)
	return slices.ContainsFunc(ReservedKeys, func(key string) bool {
		return strings.EqualFold(key, code)
	})
}

// Validate requires two distinct, non-empty language codes that do not
// collide with a fixed card field.
func (l Languages) Validate() error {
	primary := strings.TrimSpace(l.Primary)
	secondary := strings.TrimSpace(l.Secondary)
	if primary == "" || secondary == "" {
		return fmt.Errorf("both primary and secondary language are required")
	}
	if strings.EqualFold(primary, secondary) {
		return fmt.Errorf("primary and secondary language must differ (both %q)", primary)
	}
	for _, code := range []string{primary, secondary} {
		if IsReservedKey(code) {
			return fmt.Errorf("language code %q collides with a card field", code)
		}
	}
	return nil
}

// marshalUnescaped encodes v without HTML escaping so subtitle text keeps
// its literal '&', '<' and '>'.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Provenance records where each side of a card's text came from.
type Provenance struct {
	Primary   string
	Secondary string
}

func (p Provenance) object(langs Languages) map[string]string {
	return map[string]string{langs.Primary: p.Primary, langs.Secondary: p.Secondary}
}

// PhraseCard pairs one primary subtitle line with its aligned reference text.
type PhraseCard struct {
	ID        string
	ChapterID int
	Start     float64
	End       float64
	Timestamp string
	Primary   string
	Secondary string
	Source    Provenance
	Languages Languages
}

// MarshalJSON renders the card with language-coded text keys.
func (c PhraseCard) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":        c.ID,
		"type":      TypePhrase,
		"chapterId": c.ChapterID,
		"start":     c.Start,
		"end":       c.End,
		"timestamp": c.Timestamp,
		"source":    c.Source.object(c.Languages),
	}
	out[c.Languages.Primary] = c.Primary
	out[c.Languages.Secondary] = c.Secondary
	return marshalUnescaped(out)
}

// Example is one usage of a word token.
type Example struct {
	Timestamp string
	Primary   string
	Secondary string
	Languages Languages
}

// MarshalJSON renders the example with language-coded text keys.
func (e Example) MarshalJSON() ([]byte, error) {
	return marshalUnescaped(map[string]string{
		"timestamp":           e.Timestamp,
		e.Languages.Primary:   e.Primary,
		e.Languages.Secondary: e.Secondary,
	})
}

// WordInfo holds grammatical placeholders. Always empty for now.
type WordInfo struct {
	POS        string `json:"pos"`
	Lemma      string `json:"lemma"`
	Infinitive string `json:"infinitive"`
}

// WordCard is one token of one chapter with its frequency and examples.
type WordCard struct {
	ID        string
	ChapterID int
	Token     string
	Meaning   string
	Freq      int
	Examples  []Example
	Info      WordInfo
	Source    Provenance
	Languages Languages
}

// MarshalJSON renders the card with language-coded text keys.
func (c WordCard) MarshalJSON() ([]byte, error) {
	examples := c.Examples
	if examples == nil {
		examples = []Example{}
	}
	out := map[string]any{
		"id":        c.ID,
		"type":      TypeWord,
		"chapterId": c.ChapterID,
		"freq":      c.Freq,
		"examples":  examples,
		"wordInfo":  c.Info,
		"source":    c.Source.object(c.Languages),
	}
	out[c.Languages.Primary] = c.Token
	out[c.Languages.Secondary] = c.Meaning
	return marshalUnescaped(out)
}
