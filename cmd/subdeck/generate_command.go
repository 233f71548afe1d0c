package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"subdeck/internal/archive"
	"subdeck/internal/cards"
	"subdeck/internal/config"
	"subdeck/internal/deck"
	"subdeck/internal/language"
	"subdeck/internal/logging"
	"subdeck/internal/pipeline"
	"subdeck/internal/services"
)

type generateFlags struct {
	primary             string
	secondary           string
	outDir              string
	pathID              string
	movieID             string
	primaryLanguage     string
	secondaryLanguage   string
	encoding            string
	maxMinutes          int
	chapterMinutes      int
	minTokenLength      int
	maxTokensPerChapter int
	maxExamplesPerToken int
	merge               bool
	mergeGapMS          int
	padMS               int
	maxLines            int
	dropAds             bool
	archive             bool
	jsonOutput          bool
}

type generateOutput struct {
	RunID       string                 `json:"runId"`
	PhrasesPath string                 `json:"phrasesPath"`
	WordsPath   string                 `json:"wordsPath"`
	Archived    bool                   `json:"archived"`
	Meta        pipeline.Meta          `json:"meta"`
	Summary     []cards.ChapterSummary `json:"summary"`
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate phrase and word decks from two subtitle files",
		Long: "Generate reads a primary-language and a secondary-language SRT file for the\n" +
			"same video, aligns them by time, and writes phrases.base.<lang>.json and\n" +
			"words.base.<lang>.json into the output directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := applyGenerateOverrides(cmd, *base, flags)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cfg)
			if err != nil {
				return err
			}
			return runGenerate(cmd, cfg, flags, logger)
		},
	}

	cmd.Flags().StringVarP(&flags.primary, "primary", "p", "", "Primary-language SRT file (cards are built from this track)")
	cmd.Flags().StringVarP(&flags.secondary, "secondary", "s", "", "Secondary-language SRT file used as translation reference")
	cmd.Flags().StringVarP(&flags.outDir, "out", "o", "", "Output directory (overrides paths.output_dir)")
	cmd.Flags().StringVar(&flags.pathID, "path-id", "", "Learning path identifier written into meta")
	cmd.Flags().StringVar(&flags.movieID, "movie-id", "", "Movie identifier written into meta")
	cmd.Flags().StringVar(&flags.primaryLanguage, "primary-lang", "", "Primary language code")
	cmd.Flags().StringVar(&flags.secondaryLanguage, "secondary-lang", "", "Secondary language code")
	cmd.Flags().StringVar(&flags.encoding, "encoding", "", "Input encoding (auto, utf-8, windows-1252, iso-8859-1, iso-8859-15)")
	cmd.Flags().IntVar(&flags.maxMinutes, "max-minutes", 0, "Only use subtitles starting before this minute")
	cmd.Flags().IntVar(&flags.chapterMinutes, "chapter-minutes", 0, "Chapter length in minutes")
	cmd.Flags().IntVar(&flags.minTokenLength, "min-token-length", 0, "Minimum word length in letters")
	cmd.Flags().IntVar(&flags.maxTokensPerChapter, "max-tokens", 0, "Maximum word cards per chapter")
	cmd.Flags().IntVar(&flags.maxExamplesPerToken, "max-examples", 0, "Maximum examples per word card")
	cmd.Flags().BoolVar(&flags.merge, "merge", false, "Merge adjacent primary subtitles")
	cmd.Flags().IntVar(&flags.mergeGapMS, "merge-gap-ms", 0, "Largest gap in milliseconds bridged by --merge")
	cmd.Flags().IntVar(&flags.padMS, "pad-ms", 0, "Alignment window padding in milliseconds")
	cmd.Flags().IntVar(&flags.maxLines, "max-lines", 0, "Maximum secondary lines attached to one phrase")
	cmd.Flags().BoolVar(&flags.dropAds, "drop-ads", false, "Drop subtitle-site advertisement cues")
	cmd.Flags().BoolVar(&flags.archive, "archive", false, "Record the run in the SQLite archive")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("primary")
	_ = cmd.MarkFlagRequired("secondary")

	return cmd
}

// applyGenerateOverrides copies explicitly set flags onto cfg and validates
// the result.
func applyGenerateOverrides(cmd *cobra.Command, cfg config.Config, flags generateFlags) (*config.Config, error) {
	changed := cmd.Flags().Changed

	if changed("out") {
		dir, err := config.ExpandPath(strings.TrimSpace(flags.outDir))
		if err != nil {
			return nil, fmt.Errorf("resolve --out: %w", err)
		}
		cfg.Paths.OutputDir = dir
	}
	if changed("path-id") {
		cfg.Deck.PathID = strings.TrimSpace(flags.pathID)
	}
	if changed("movie-id") {
		cfg.Deck.MovieID = strings.TrimSpace(flags.movieID)
	}
	if changed("primary-lang") {
		cfg.Deck.PrimaryLanguage = normalizeLanguageFlag(flags.primaryLanguage)
	}
	if changed("secondary-lang") {
		cfg.Deck.SecondaryLanguage = normalizeLanguageFlag(flags.secondaryLanguage)
	}
	if changed("encoding") {
		cfg.Input.Encoding = flags.encoding
	}
	if changed("max-minutes") {
		cfg.Window.MaxMinutes = flags.maxMinutes
	}
	if changed("chapter-minutes") {
		cfg.Window.ChapterMinutes = flags.chapterMinutes
	}
	if changed("min-token-length") {
		cfg.Words.MinTokenLength = flags.minTokenLength
	}
	if changed("max-tokens") {
		cfg.Words.MaxTokensPerChapter = flags.maxTokensPerChapter
	}
	if changed("max-examples") {
		cfg.Words.MaxExamplesPerToken = flags.maxExamplesPerToken
	}
	if changed("merge") {
		cfg.Merge.Enabled = flags.merge
	}
	if changed("merge-gap-ms") {
		cfg.Merge.GapMS = flags.mergeGapMS
	}
	if changed("pad-ms") {
		cfg.Align.PadMS = flags.padMS
	}
	if changed("max-lines") {
		cfg.Align.MaxLines = flags.maxLines
	}
	if changed("drop-ads") {
		cfg.Input.DropAdvertisements = flags.dropAds
	}
	if changed("archive") {
		cfg.Archive.Enabled = flags.archive
	}

	if err := cfg.Validate(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "generate flags", "", err)
	}
	return &cfg, nil
}

func normalizeLanguageFlag(value string) string {
	value = strings.TrimSpace(value)
	if code := language.ToISO2(value); code != "" {
		return code
	}
	return strings.ToLower(value)
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, flags generateFlags, logger *slog.Logger) error {
	runID := uuid.NewString()
	runCtx := services.WithRunID(cmd.Context(), runID)
	logger = logging.WithContext(runCtx, logging.NewComponentLogger(logger, "cli"))

	opts := pipeline.OptionsFromConfig(cfg)
	primary, secondary, err := pipeline.ReadTracks(flags.primary, flags.secondary, opts.Encoding)
	if err != nil {
		return err
	}

	result, err := pipeline.RunSources(runCtx, opts, primary, secondary, logger)
	if err != nil {
		return err
	}

	written, err := deck.NewWriter(cfg.Paths.OutputDir, logger).Write(runCtx, result)
	if err != nil {
		return err
	}

	archived := false
	if cfg.Archive.Enabled {
		if err := archiveRun(runCtx, cfg.Archive.Path, written, result, logger); err != nil {
			logging.WarnWithContext(logger, "deck archive failed", "archive_failed",
				logging.Error(err),
				logging.String("archive_path", cfg.Archive.Path),
				logging.String(logging.FieldErrorHint, "check archive.path or delete the archive file to start over"),
				logging.String(logging.FieldImpact, "the decks were written but this run is not listed by subdeck runs"),
			)
		} else {
			archived = true
		}
	}

	if flags.jsonOutput {
		return writeJSON(cmd, generateOutput{
			RunID:       written.RunID,
			PhrasesPath: written.PhrasesPath,
			WordsPath:   written.WordsPath,
			Archived:    archived,
			Meta:        written.Meta,
			Summary:     result.Summary,
		})
	}

	renderGenerateSummary(cmd, written, result, archived)
	return nil
}

func archiveRun(ctx context.Context, path string, written *deck.Written, result *pipeline.Result, logger *slog.Logger) error {
	store, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, archive.Record{
		Meta:      written.Meta,
		OutputDir: written.Dir,
		Phrases:   result.Phrases,
		Words:     result.Words,
	}); err != nil {
		return err
	}
	logging.NewComponentLogger(logger, "archive").Debug("run archived", logging.String("archive_path", path))
	return nil
}

func renderGenerateSummary(cmd *cobra.Command, written *deck.Written, result *pipeline.Result, archived bool) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	counts := written.Meta.Counts

	for _, line := range renderSectionHeader("Deck "+written.RunID, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Phrases", statusOK, written.PhrasesPath, colorize))
	fmt.Fprintln(out, renderStatusLine("Words", statusOK, written.WordsPath, colorize))

	alignKind := statusOK
	if counts.Phrases > 0 && counts.UnmatchedPhrases*2 > counts.Phrases {
		alignKind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Aligned", alignKind,
		fmt.Sprintf("%d of %d phrases", counts.Phrases-counts.UnmatchedPhrases, counts.Phrases), colorize))
	if counts.SkippedBlocks > 0 {
		fmt.Fprintln(out, renderStatusLine("Skipped blocks", statusWarn, strconv.Itoa(counts.SkippedBlocks), colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Archived", statusInfo, yesNo(archived), colorize))
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(result.Summary))
	for _, chapter := range result.Summary {
		rows = append(rows, []string{
			strconv.Itoa(chapter.Chapter),
			chapter.From + "-" + chapter.To,
			strconv.Itoa(chapter.Phrases),
			strconv.Itoa(chapter.Unmatched),
			strconv.Itoa(chapter.Words),
			strings.Join(chapter.TopWords, ", "),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Chapter", "Span", "Phrases", "Unmatched", "Words", "Top words"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
}
