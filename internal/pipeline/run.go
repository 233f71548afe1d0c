package pipeline

import (
	"context"
	"log/slog"

	"subdeck/internal/alignment"
	"subdeck/internal/cards"
	"subdeck/internal/chapters"
	"subdeck/internal/logging"
	"subdeck/internal/services"
	"subdeck/internal/subtitles"
	"subdeck/internal/textutil"
)

// summaryTopWords bounds ChapterSummary.TopWords.
const summaryTopWords = 5

// Result holds everything one Run produced.
type Result struct {
	Meta           Meta                   `json:"meta"`
	Phrases        []cards.PhraseCard     `json:"phrases"`
	Words          []cards.WordCard       `json:"words"`
	Pairs          []alignment.Pair       `json:"-"`
	Summary        []cards.ChapterSummary `json:"summary"`
	PrimaryStats   subtitles.ParseStats   `json:"primaryStats"`
	SecondaryStats subtitles.ParseStats   `json:"secondaryStats"`
}

// Run executes the full card pipeline on two decoded documents.
func Run(ctx context.Context, opts Options, primary, secondary string, logger *slog.Logger) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "pipeline"))

	bucketer, err := chapters.NewBucketer(float64(opts.ChapterMinutes))
	if err != nil {
		return nil, err
	}

	parseOpts := subtitles.ParseOptions{DropAdvertisements: opts.DropAdvertisements}
	primarySegs, primaryStats := subtitles.Parse(primary, parseOpts)
	secondarySegs, secondaryStats := subtitles.Parse(secondary, parseOpts)
	logger.Debug("tracks parsed",
		logging.Int("primary_segments", primaryStats.Segments),
		logging.Int("primary_skipped", primaryStats.Skipped),
		logging.Int("secondary_segments", secondaryStats.Segments),
		logging.Int("secondary_skipped", secondaryStats.Skipped),
	)

	window := float64(opts.MaxWindowMinutes)
	primarySegs = chapters.Window(primarySegs, window)
	secondarySegs = chapters.Window(secondarySegs, window)
	windowedPrimary := len(primarySegs)

	if opts.MergeAdjacent {
		primarySegs = subtitles.Merge(primarySegs, opts.MergeGap)
		logger.Debug("primary segments merged",
			logging.Int("before", windowedPrimary),
			logging.Int("after", len(primarySegs)),
			logging.Duration("gap", opts.MergeGap),
		)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pairs, err := alignment.Align(primarySegs, secondarySegs, alignment.Options{
		Pad:      opts.AlignPad,
		MaxLines: opts.AlignMaxLines,
	})
	if err != nil {
		return nil, err
	}

	phrases := cards.BuildPhrases(pairs, bucketer, opts.Languages)
	words := cards.BuildWords(pairs, bucketer, textutil.NewTokenizer(opts.Languages.Primary), opts.Languages, cards.WordOptions{
		MinTokenLength:      opts.MinTokenLength,
		MaxTokensPerChapter: opts.MaxTokensPerChapter,
		MaxExamplesPerToken: opts.MaxExamplesPerToken,
		StopWords:           opts.StopWords,
	})

	unmatched := alignment.Unmatched(pairs)
	result := &Result{
		Meta:           buildMeta(opts, bucketer),
		Phrases:        phrases,
		Words:          words,
		Pairs:          pairs,
		Summary:        cards.Summarize(phrases, words, bucketer, summaryTopWords),
		PrimaryStats:   primaryStats,
		SecondaryStats: secondaryStats,
	}
	result.Meta.Counts = Counts{
		Phrases:           len(phrases),
		Words:             len(words),
		PrimarySegments:   windowedPrimary,
		SecondarySegments: len(secondarySegs),
		MergedSegments:    len(primarySegs),
		UnmatchedPhrases:  unmatched,
		SkippedBlocks:     primaryStats.Skipped + secondaryStats.Skipped,
	}

	if windowedPrimary == 0 {
		logging.WarnWithContext(logger, "no primary subtitles inside the window", "empty_primary_window",
			logging.Int("window_minutes", opts.MaxWindowMinutes),
			logging.String(logging.FieldErrorHint, "check the primary file and window.max_minutes"),
			logging.String(logging.FieldImpact, "decks will contain no cards"),
		)
	} else if len(secondarySegs) == 0 {
		logging.WarnWithContext(logger, "no secondary subtitles inside the window", "empty_secondary_window",
			logging.String(logging.FieldErrorHint, "check the secondary file and its encoding"),
			logging.String(logging.FieldImpact, "phrase cards will have no translation"),
		)
	} else if unmatched*2 > len(pairs) {
		logging.WarnWithContext(logger, "most phrases have no aligned translation", "alignment_gaps",
			logging.Int("unmatched", unmatched),
			logging.Int("phrases", len(pairs)),
			logging.String(logging.FieldErrorHint, "the tracks may be out of sync; try a larger align.pad_ms"),
			logging.String(logging.FieldImpact, "many phrase cards lack a translation"),
		)
	}

	logger.Info("cards built",
		logging.Int("phrases", len(phrases)),
		logging.Int("words", len(words)),
		logging.Int("chapters", result.Meta.Chapters),
		logging.Int("unmatched", unmatched),
	)
	return result, nil
}

// RunSources runs the pipeline on decoded sources and records them in the
// metadata.
func RunSources(ctx context.Context, opts Options, primary, secondary Source, logger *slog.Logger) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithStage(ctx, "cards")
	result, err := Run(ctx, opts, primary.Text, secondary.Text, logger)
	if err != nil {
		return nil, err
	}
	result.Meta.Inputs = []Source{primary, secondary}
	return result, nil
}

func buildMeta(opts Options, bucketer chapters.Bucketer) Meta {
	end := float64(opts.MaxWindowMinutes * 60)
	return Meta{
		AutoVersion:    Version,
		PathID:         opts.PathID,
		MovieID:        opts.MovieID,
		Languages:      opts.Languages,
		Window:         Window{Start: 0, End: end, EndHMS: chapters.Clock(end)},
		ChapterMinutes: opts.ChapterMinutes,
		Chapters:       bucketer.Count(float64(opts.MaxWindowMinutes)),
		Config: MetaConfig{
			MinTokenLength:      opts.MinTokenLength,
			MaxTokensPerChapter: opts.MaxTokensPerChapter,
			MaxExamplesPerToken: opts.MaxExamplesPerToken,
			MergeAdjacent:       opts.MergeAdjacent,
			MergeGapMS:          int(opts.MergeGap.Milliseconds()),
			AlignPadMS:          int(opts.AlignPad.Milliseconds()),
			AlignMaxLines:       opts.AlignMaxLines,
			DropAdvertisements:  opts.DropAdvertisements,
			StopWords:           opts.StopWords.Len(),
		},
		Notes: buildNotes(opts.Languages),
	}
}
