// Package deck writes generated cards as JSON documents.
//
// Each deck is one document of the form {"meta": ..., "cards": [...]}. The
// phrase and word decks of one run are staged together and renamed into place
// only after both were written, while an advisory lock on the output
// directory keeps concurrent runs from interleaving.
package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"subdeck/internal/fileutil"
	"subdeck/internal/logging"
	"subdeck/internal/pipeline"
	"subdeck/internal/services"
	"subdeck/internal/textutil"
)

// LockFileName is created inside the output directory while a deck is written.
const LockFileName = ".subdeck.lock"

// Document is the on-disk layout of one deck.
type Document struct {
	Meta  pipeline.Meta `json:"meta"`
	Cards any           `json:"cards"`
}

// Written describes the files of a finished deck.
type Written struct {
	RunID       string        `json:"runId"`
	Dir         string        `json:"dir"`
	PhrasesPath string        `json:"phrasesPath"`
	WordsPath   string        `json:"wordsPath"`
	Meta        pipeline.Meta `json:"meta"`
}

// Writer stores decks below one output directory.
type Writer struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option customizes a Writer.
type Option func(*Writer)

// WithClock overrides the time source used for meta.generatedAt.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithIDGenerator overrides run id generation.
func WithIDGenerator(newID func() string) Option {
	return func(w *Writer) {
		if newID != nil {
			w.newID = newID
		}
	}
}

// NewWriter returns a Writer for dir.
func NewWriter(dir string, logger *slog.Logger, opts ...Option) *Writer {
	w := &Writer{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "deck"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// FileNames returns the phrase and word deck file names for a secondary
// language code.
func FileNames(secondary string) (string, string) {
	code := textutil.SanitizeToken(secondary)
	return fmt.Sprintf("phrases.base.%s.json", code), fmt.Sprintf("words.base.%s.json", code)
}

// Write stamps the run id and generation time into the meta and writes both
// decks. A run id already present on ctx is reused.
func (w *Writer) Write(ctx context.Context, result *pipeline.Result) (*Written, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if result == nil {
		return nil, services.Wrap(services.ErrValidation, "deck", "write", "no cards to write", nil)
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure output directory: %w", err)
	}

	lockPath := filepath.Join(w.dir, LockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire deck lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrConflict, "deck", "lock",
			fmt.Sprintf("output directory is in use by another run (lock file %s)", lockPath), nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			w.logger.Warn("failed to release deck lock", logging.String("lock", lockPath), logging.Error(err))
		}
	}()

	runID, ok := services.RunIDFromContext(ctx)
	if !ok {
		runID = w.newID()
	}
	meta := result.Meta
	meta.RunID = runID
	meta.GeneratedAt = w.now().UTC().Format(time.RFC3339)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	phraseData, err := Encode(meta, nonNil(result.Phrases))
	if err != nil {
		return nil, fmt.Errorf("encode phrase deck: %w", err)
	}
	wordData, err := Encode(meta, nonNil(result.Words))
	if err != nil {
		return nil, fmt.Errorf("encode word deck: %w", err)
	}

	phraseName, wordName := FileNames(meta.Languages.Secondary)
	written := &Written{
		RunID:       runID,
		Dir:         w.dir,
		PhrasesPath: filepath.Join(w.dir, phraseName),
		WordsPath:   filepath.Join(w.dir, wordName),
		Meta:        meta,
	}
	if err := fileutil.WriteFilesAtomic([]fileutil.File{
		{Path: written.PhrasesPath, Data: phraseData, Mode: 0o644},
		{Path: written.WordsPath, Data: wordData, Mode: 0o644},
	}); err != nil {
		return nil, fmt.Errorf("write decks: %w", err)
	}

	logging.WithContext(services.WithRunID(ctx, runID), w.logger).Info("decks written",
		logging.String("phrases_path", written.PhrasesPath),
		logging.String("words_path", written.WordsPath),
		logging.Int("phrases", len(result.Phrases)),
		logging.Int("words", len(result.Words)),
	)
	return written, nil
}

// Encode renders one deck document with two-space indentation and without
// HTML escaping.
func Encode(meta pipeline.Meta, cards any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Document{Meta: meta, Cards: cards}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
