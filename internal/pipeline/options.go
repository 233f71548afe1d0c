package pipeline

import (
	"fmt"
	"time"

	"subdeck/internal/cards"
	"subdeck/internal/config"
	"subdeck/internal/language"
	"subdeck/internal/services"
	"subdeck/internal/subtitles"
)

// Options is the immutable set of knobs for one Run.
type Options struct {
	Languages           cards.Languages
	PathID              string
	MovieID             string
	Encoding            string
	DropAdvertisements  bool
	MaxWindowMinutes    int
	ChapterMinutes      int
	MinTokenLength      int
	MaxTokensPerChapter int
	MaxExamplesPerToken int
	MergeAdjacent       bool
	MergeGap            time.Duration
	AlignPad            time.Duration
	AlignMaxLines       int
	StopWords           language.StopSet
}

// OptionsFromConfig freezes the relevant configuration values, including the
// stop-word set for the primary language plus words.extra_stopwords.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	return Options{
		Languages: cards.Languages{
			Primary:   cfg.Deck.PrimaryLanguage,
			Secondary: cfg.Deck.SecondaryLanguage,
		},
		PathID:              cfg.Deck.PathID,
		MovieID:             cfg.Deck.MovieID,
		Encoding:            cfg.Input.Encoding,
		DropAdvertisements:  cfg.Input.DropAdvertisements,
		MaxWindowMinutes:    cfg.Window.MaxMinutes,
		ChapterMinutes:      cfg.Window.ChapterMinutes,
		MinTokenLength:      cfg.Words.MinTokenLength,
		MaxTokensPerChapter: cfg.Words.MaxTokensPerChapter,
		MaxExamplesPerToken: cfg.Words.MaxExamplesPerToken,
		MergeAdjacent:       cfg.Merge.Enabled,
		MergeGap:            time.Duration(cfg.Merge.GapMS) * time.Millisecond,
		AlignPad:            time.Duration(cfg.Align.PadMS) * time.Millisecond,
		AlignMaxLines:       cfg.Align.MaxLines,
		StopWords:           language.NewStopSet(cfg.Deck.PrimaryLanguage, cfg.StopWords()...),
	}
}

// Validate fails fast on values that would make the output misleading.
func (o Options) Validate() error {
	if err := o.Languages.Validate(); err != nil {
		return invalid("%v", err)
	}
	switch {
	case o.MaxWindowMinutes <= 0:
		return invalid("max window minutes must be positive, got %d", o.MaxWindowMinutes)
	case o.ChapterMinutes <= 0:
		return invalid("chapter minutes must be positive, got %d", o.ChapterMinutes)
	case o.MinTokenLength < 1:
		return invalid("min token length must be at least 1, got %d", o.MinTokenLength)
	case o.MaxTokensPerChapter <= 0:
		return invalid("max tokens per chapter must be positive, got %d", o.MaxTokensPerChapter)
	case o.MaxExamplesPerToken < 0:
		return invalid("max examples per token must not be negative, got %d", o.MaxExamplesPerToken)
	case o.MergeGap < 0:
		return invalid("merge gap must not be negative, got %s", o.MergeGap)
	case o.AlignPad < 0:
		return invalid("align pad must not be negative, got %s", o.AlignPad)
	case o.AlignMaxLines <= 0:
		return invalid("align max lines must be positive, got %d", o.AlignMaxLines)
	case !subtitles.SupportedEncoding(o.Encoding):
		return invalid("unsupported input encoding %q", o.Encoding)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return services.Wrap(services.ErrConfiguration, "pipeline", "validate options", fmt.Sprintf(format, args...), nil)
}
