package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"subdeck/internal/cards"
	"subdeck/internal/pipeline"
	"subdeck/internal/services"
)

// Record is one generated deck to archive.
type Record struct {
	Meta      pipeline.Meta
	OutputDir string
	Phrases   []cards.PhraseCard
	Words     []cards.WordCard
}

// Run is an archived deck summary.
type Run struct {
	ID                string `json:"id"`
	GeneratedAt       string `json:"generatedAt"`
	PathID            string `json:"pathId"`
	MovieID           string `json:"movieId"`
	PrimaryLanguage   string `json:"primaryLanguage"`
	SecondaryLanguage string `json:"secondaryLanguage"`
	OutputDir         string `json:"outputDir"`
	Chapters          int    `json:"chapters"`
	Phrases           int    `json:"phrases"`
	Words             int    `json:"words"`
	Unmatched         int    `json:"unmatched"`
	PrimarySHA256     string `json:"primarySha256"`
	SecondarySHA256   string `json:"secondarySha256"`
}

// PhraseRow is an archived phrase card.
type PhraseRow struct {
	CardID    string  `json:"cardId"`
	Chapter   int     `json:"chapter"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Primary   string  `json:"primary"`
	Secondary string  `json:"secondary"`
}

// WordRow is an archived word card.
type WordRow struct {
	CardID  string `json:"cardId"`
	Chapter int    `json:"chapter"`
	Token   string `json:"token"`
	Freq    int    `json:"freq"`
}

const runColumns = `id, generated_at, path_id, movie_id, primary_language, secondary_language,
	output_dir, chapters, phrase_count, word_count, unmatched_count, primary_sha256, secondary_sha256`

// Save stores a deck and its cards in one transaction. The meta must carry
// a run id.
func (s *Store) Save(ctx context.Context, rec Record) error {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(rec.Meta.RunID) == "" {
		return services.Wrap(services.ErrValidation, "archive", "save", "run id is required", nil)
	}
	metaJSON, err := json.Marshal(rec.Meta)
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	primarySum, secondarySum := inputDigests(rec.Meta.Inputs)

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin archive tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `INSERT INTO runs (`+runColumns+`, meta_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.Meta.RunID,
			rec.Meta.GeneratedAt,
			rec.Meta.PathID,
			rec.Meta.MovieID,
			rec.Meta.Languages.Primary,
			rec.Meta.Languages.Secondary,
			rec.OutputDir,
			rec.Meta.Chapters,
			len(rec.Phrases),
			len(rec.Words),
			rec.Meta.Counts.UnmatchedPhrases,
			primarySum,
			secondarySum,
			string(metaJSON),
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		phraseStmt, err := tx.PrepareContext(ctx, `INSERT INTO phrase_cards
			(run_id, card_id, chapter, start_seconds, end_seconds, primary_text, secondary_text)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare phrase insert: %w", err)
		}
		defer phraseStmt.Close()
		for _, card := range rec.Phrases {
			if _, err := phraseStmt.ExecContext(ctx, rec.Meta.RunID, card.ID, card.ChapterID,
				card.Start, card.End, card.Primary, card.Secondary); err != nil {
				return fmt.Errorf("insert phrase %s: %w", card.ID, err)
			}
		}

		wordStmt, err := tx.PrepareContext(ctx, `INSERT INTO word_cards
			(run_id, card_id, chapter, token, freq, position)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare word insert: %w", err)
		}
		defer wordStmt.Close()
		for i, card := range rec.Words {
			if _, err := wordStmt.ExecContext(ctx, rec.Meta.RunID, card.ID, card.ChapterID,
				card.Token, card.Freq, i); err != nil {
				return fmt.Errorf("insert word %s: %w", card.ID, err)
			}
		}

		return tx.Commit()
	})
}

func inputDigests(inputs []pipeline.Source) (string, string) {
	var primary, secondary string
	for _, in := range inputs {
		switch in.Track {
		case pipeline.TrackPrimary:
			primary = in.SHA256
		case pipeline.TrackSecondary:
			secondary = in.SHA256
		}
	}
	return primary, secondary
}

// List returns the most recent runs first. A limit <= 0 returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY generated_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns one run. Unknown ids are tagged with services.ErrNotFound.
// A unique id prefix is accepted.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, services.Wrap(services.ErrValidation, "archive", "get", "run id is required", nil)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		id, escapeLike(id)+"%")
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		if run.ID == id {
			return &run, nil
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, services.Wrap(services.ErrNotFound, "archive", "get", fmt.Sprintf("no run %q", id), nil)
	case 1:
		return &found[0], nil
	default:
		return nil, services.Wrap(services.ErrValidation, "archive", "get", fmt.Sprintf("run id prefix %q is ambiguous", id), nil)
	}
}

// Phrases returns the archived phrase cards of a run in card order.
func (s *Store) Phrases(ctx context.Context, runID string) ([]PhraseRow, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT card_id, chapter, start_seconds, end_seconds, primary_text, secondary_text
		FROM phrase_cards WHERE run_id = ? ORDER BY card_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list phrases: %w", err)
	}
	defer rows.Close()

	var out []PhraseRow
	for rows.Next() {
		var row PhraseRow
		if err := rows.Scan(&row.CardID, &row.Chapter, &row.Start, &row.End, &row.Primary, &row.Secondary); err != nil {
			return nil, fmt.Errorf("scan phrase: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Words returns the archived word cards of a run in card order. A chapter
// <= 0 returns every chapter.
func (s *Store) Words(ctx context.Context, runID string, chapter int) ([]WordRow, error) {
	ctx = ensureContext(ctx)
	query := `SELECT card_id, chapter, token, freq FROM word_cards WHERE run_id = ?`
	args := []any{runID}
	if chapter > 0 {
		query += ` AND chapter = ?`
		args = append(args, chapter)
	}
	query += ` ORDER BY position`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var out []WordRow
	for rows.Next() {
		var row WordRow
		if err := rows.Scan(&row.CardID, &row.Chapter, &row.Token, &row.Freq); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Delete removes a run and its cards.
func (s *Store) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)
	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return services.Wrap(services.ErrNotFound, "archive", "delete", fmt.Sprintf("no run %q", id), nil)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	if err := row.Scan(
		&run.ID,
		&run.GeneratedAt,
		&run.PathID,
		&run.MovieID,
		&run.PrimaryLanguage,
		&run.SecondaryLanguage,
		&run.OutputDir,
		&run.Chapters,
		&run.Phrases,
		&run.Words,
		&run.Unmatched,
		&run.PrimarySHA256,
		&run.SecondarySHA256,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, services.Wrap(services.ErrNotFound, "archive", "scan", "run not found", err)
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	return run, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
