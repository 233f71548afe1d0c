package pipeline

import (
	"fmt"
	"strings"

	"subdeck/internal/cards"
)

// Version is written into every deck as meta.autoversion.
const Version = "v0.3.0"

// Meta describes one generated deck. Consumers must tolerate new fields.
type Meta struct {
	AutoVersion    string          `json:"autoversion"`
	RunID          string          `json:"runId,omitempty"`
	GeneratedAt    string          `json:"generatedAt,omitempty"`
	PathID         string          `json:"pathId"`
	MovieID        string          `json:"movieId"`
	Languages      cards.Languages `json:"languages"`
	Window         Window          `json:"window"`
	ChapterMinutes int             `json:"chapterMinutes"`
	Chapters       int             `json:"chapters"`
	Config         MetaConfig      `json:"config"`
	Counts         Counts          `json:"counts"`
	Inputs         []Source        `json:"inputs,omitempty"`
	Notes          []string        `json:"notes"`
}

// Window is the processed time range in seconds.
type Window struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	EndHMS string  `json:"endHms"`
}

// MetaConfig records the knobs that shaped the deck.
type MetaConfig struct {
	MinTokenLength      int  `json:"minTokenLength"`
	MaxTokensPerChapter int  `json:"maxTokensPerChapter"`
	MaxExamplesPerToken int  `json:"maxExamplesPerToken"`
	MergeAdjacent       bool `json:"mergeAdjacent"`
	MergeGapMS          int  `json:"mergeGapMs"`
	AlignPadMS          int  `json:"alignPadMs"`
	AlignMaxLines       int  `json:"alignMaxLines"`
	DropAdvertisements  bool `json:"dropAdvertisements"`
	StopWords           int  `json:"stopWords"`
}

// Counts summarizes what the pipeline kept and dropped.
type Counts struct {
	Phrases           int `json:"phrases"`
	Words             int `json:"words"`
	PrimarySegments   int `json:"primarySegments"`
	SecondarySegments int `json:"secondarySegments"`
	MergedSegments    int `json:"mergedSegments"`
	UnmatchedPhrases  int `json:"unmatchedPhrases"`
	SkippedBlocks     int `json:"skippedBlocks"`
}

func buildNotes(langs cards.Languages) []string {
	primary := strings.ToUpper(langs.Primary)
	secondary := strings.ToUpper(langs.Secondary)
	return []string{
		fmt.Sprintf("%s text for phrases is aligned from the %s SRT by timestamp overlap within a padded window.", secondary, secondary),
		fmt.Sprintf("Word cards do not have a direct %s meaning yet; use the examples or add overrides later.", secondary),
		"POS/lemma/infinitive fields are placeholders for a later NLP step.",
		fmt.Sprintf("Word tokens come from the %s track only.", primary),
	}
}
