package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains output and log directories.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Deck identifies the learning path, the movie and the two track languages.
type Deck struct {
	PathID            string `toml:"path_id"`
	MovieID           string `toml:"movie_id"`
	PrimaryLanguage   string `toml:"primary_language"`
	SecondaryLanguage string `toml:"secondary_language"`
}

// Input controls how subtitle files are decoded and filtered.
type Input struct {
	Encoding           string `toml:"encoding"`
	DropAdvertisements bool   `toml:"drop_advertisements"`
}

// Window limits processing to the opening minutes and sets chapter length.
type Window struct {
	MaxMinutes     int `toml:"max_minutes"`
	ChapterMinutes int `toml:"chapter_minutes"`
}

// Words bounds word-card extraction.
type Words struct {
	MinTokenLength      int      `toml:"min_token_length"`
	MaxTokensPerChapter int      `toml:"max_tokens_per_chapter"`
	MaxExamplesPerToken int      `toml:"max_examples_per_token"`
	ExtraStopwords      []string `toml:"extra_stopwords"`
}

// Merge controls fusing of adjacent primary segments.
type Merge struct {
	Enabled bool `toml:"enabled"`
	GapMS   int  `toml:"gap_ms"`
}

// Align controls the padded-window aligner.
type Align struct {
	PadMS    int `toml:"pad_ms"`
	MaxLines int `toml:"max_lines"`
}

// Archive controls the optional SQLite history of generated decks.
type Archive struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for subdeck.
//
// Configuration sections by concern:
//   - Paths: deck output and log directories
//   - Deck: path/movie labels and the primary/secondary languages
//   - Input: subtitle charset decoding and advertisement filtering
//   - Window: processed time window and chapter length
//   - Words: token length, per-chapter limits and extra stop words
//   - Merge: optional fusing of adjacent primary lines
//   - Align: window padding and line cap for the aligner
//   - Archive: SQLite history of generated decks
//   - Logging: log format, level, and retention
type Config struct {
	Paths   Paths   `toml:"paths"`
	Deck    Deck    `toml:"deck"`
	Input   Input   `toml:"input"`
	Window  Window  `toml:"window"`
	Words   Words   `toml:"words"`
	Merge   Merge   `toml:"merge"`
	Align   Align   `toml:"align"`
	Archive Archive `toml:"archive"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute location of the per-user config file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load resolves, decodes, normalizes and validates the configuration. An
// explicit path wins; otherwise the per-user file is tried, then subdeck.toml
// in the working directory. When no file exists the defaults are used and
// the per-user path is reported with found=false.
func Load(path string) (cfg *Config, resolved string, found bool, err error) {
	resolved, found, err = locate(path)
	if err != nil {
		return nil, "", false, err
	}

	loaded := Default()
	if found {
		if err := decodeFile(resolved, &loaded); err != nil {
			return nil, "", false, err
		}
	}
	if err := loaded.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := loaded.Validate(); err != nil {
		return nil, "", false, err
	}
	return &loaded, resolved, found, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("config %s: unknown keys:\n%s", path, strings.TrimSpace(strict.String()))
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("config %s:%d:%d: %s", path, row, col, decodeErr.Error())
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// locate picks the config file to read. found is false when the chosen path
// does not exist.
func locate(explicit string) (string, bool, error) {
	var candidates []string
	if strings.TrimSpace(explicit) != "" {
		candidates = []string{explicit}
	} else {
		candidates = []string{defaultConfigPath, projectConfigName}
	}

	var first string
	for _, candidate := range candidates {
		path, err := expandPath(candidate)
		if err != nil {
			return "", false, err
		}
		if first == "" {
			first = path
		}
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return path, true, nil
		case err == nil:
			return "", false, fmt.Errorf("config path %s is a directory", path)
		case !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("stat config %s: %w", path, err)
		}
	}
	return first, false, nil
}

// EnsureDirectories creates the output and log directories, plus the archive
// directory when the archive is enabled.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, c.Paths.LogDir}
	if c.Archive.Enabled && c.Archive.Path != "" {
		dirs = append(dirs, filepath.Dir(c.Archive.Path))
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// StopWords returns a copy of the normalized extra stop words.
func (c *Config) StopWords() []string {
	return slices.Clone(c.Words.ExtraStopwords)
}

// ExpandPath resolves a leading "~" to the home directory and returns the
// cleaned absolute path. Empty input stays empty.
func ExpandPath(value string) (string, error) {
	return expandPath(value)
}

func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") || strings.HasPrefix(value, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %q: %w", value, err)
		}
		value = filepath.Join(home, value[1:])
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", value, err)
	}
	return abs, nil
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
