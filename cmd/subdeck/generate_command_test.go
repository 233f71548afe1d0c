package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"subdeck/internal/pipeline"
	"subdeck/internal/services"
)

func TestGenerateWritesDecksAndSummary(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"generate", "--primary", env.primaryPath, "--secondary", env.secondaryPath}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	requireContains(t, out, filepath.Join(env.cfg.Paths.OutputDir, "phrases.base.de.json"))
	requireContains(t, out, filepath.Join(env.cfg.Paths.OutputDir, "words.base.de.json"))
	requireContains(t, out, "[OK] 2 of 3 phrases")
	requireContains(t, out, "bacchetta, sceglie, mago")
	requireContains(t, out, "00:07:00-00:14:00")

	for _, name := range []string{"phrases.base.de.json", "words.base.de.json"} {
		if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestGenerateJSONAndArchive(t *testing.T) {
	env := setupCLITestEnv(t)
	outDir := filepath.Join(env.baseDir, "custom-out")

	out, _, err := runCLI(t, []string{
		"generate",
		"--primary", env.primaryPath,
		"--secondary", env.secondaryPath,
		"--out", outDir,
		"--movie-id", "hp2",
		"--json",
	}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var got generateOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.RunID == "" || got.Meta.RunID != got.RunID {
		t.Fatalf("unexpected run id: %+v", got)
	}
	if !got.Archived {
		t.Fatal("expected run to be archived")
	}
	if got.Meta.MovieID != "hp2" || got.Meta.Counts.Phrases != 3 {
		t.Fatalf("unexpected meta: %+v", got.Meta)
	}
	if filepath.Dir(got.PhrasesPath) != outDir {
		t.Fatalf("expected decks under %s, got %s", outDir, got.PhrasesPath)
	}

	runsOut, _, err := runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, runsOut, got.RunID[:8])
	requireContains(t, runsOut, "hp2")

	showOut, _, err := runCLI(t, []string{"runs", "show", got.RunID}, env.configPath)
	if err != nil {
		t.Fatalf("runs show: %v", err)
	}
	requireContains(t, showOut, "ciao mondo")
	requireContains(t, showOut, "hallo welt")

	wordsOut, _, err := runCLI(t, []string{"runs", "show", got.RunID[:8], "--words", "--chapter", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("runs show --words: %v", err)
	}
	requireContains(t, wordsOut, "bacchetta")
	requireNotContains(t, wordsOut, "mondo")

	deleteOut, _, err := runCLI(t, []string{"runs", "delete", got.RunID}, env.configPath)
	if err != nil {
		t.Fatalf("runs delete: %v", err)
	}
	requireContains(t, deleteOut, "Deleted run "+got.RunID)

	emptyOut, _, err := runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs after delete: %v", err)
	}
	requireContains(t, emptyOut, "No archived runs")
}

func TestGenerateRejectsInvalidOverrides(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{
		"generate",
		"--primary", env.primaryPath,
		"--secondary", env.secondaryPath,
		"--chapter-minutes", "0",
	}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	_, _, err = runCLI(t, []string{
		"generate",
		"--primary", env.primaryPath,
		"--secondary", env.secondaryPath,
		"--secondary-lang", "ITA",
	}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected equal languages to be rejected, got %v", err)
	}
}

func TestGenerateMissingInput(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{
		"generate",
		"--primary", env.primaryPath,
		"--secondary", filepath.Join(env.baseDir, "missing.srt"),
	}, env.configPath)
	var inputErr *pipeline.InputError
	if !errors.As(err, &inputErr) || inputErr.Track != pipeline.TrackSecondary {
		t.Fatalf("expected secondary input error, got %v", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found marker, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, "phrases.base.de.json")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no deck to be written, stat err=%v", statErr)
	}
}

func TestGenerateRequiresBothTracks(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"generate", "--primary", env.primaryPath}, env.configPath); err == nil {
		t.Fatal("expected missing --secondary to fail")
	}
}
