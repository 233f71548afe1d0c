package testsupport

import (
	"path/filepath"
	"testing"

	"subdeck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "cards")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Archive.Enabled = false
	cfgVal.Archive.Path = filepath.Join(base, "decks.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLanguages overrides the primary and secondary deck languages.
func WithLanguages(primary, secondary string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Deck.PrimaryLanguage = primary
		b.cfg.Deck.SecondaryLanguage = secondary
	}
}

// WithArchive enables the SQLite deck archive inside the temp directory.
func WithArchive() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Archive.Enabled = true
	}
}

// WithMerge enables adjacent segment merging with the given gap.
func WithMerge(gapMS int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Merge.Enabled = true
		b.cfg.Merge.GapMS = gapMS
	}
}

// WithWindow overrides the processing window and chapter length.
func WithWindow(maxMinutes, chapterMinutes int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Window.MaxMinutes = maxMinutes
		b.cfg.Window.ChapterMinutes = chapterMinutes
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
