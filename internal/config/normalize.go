package config

import (
	"fmt"
	"os"
	"strings"

	"subdeck/internal/language"
	"subdeck/internal/subtitles"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDeck()
	c.normalizeInput()
	c.normalizeWords()
	if err := c.normalizeArchive(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if value, ok := os.LookupEnv(outputDirEnv); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDeck() {
	c.Deck.PathID = strings.TrimSpace(c.Deck.PathID)
	c.Deck.MovieID = strings.TrimSpace(c.Deck.MovieID)
	c.Deck.PrimaryLanguage = normalizeLanguage(c.Deck.PrimaryLanguage)
	c.Deck.SecondaryLanguage = normalizeLanguage(c.Deck.SecondaryLanguage)
}

func normalizeLanguage(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if mapped := language.ToISO2(value); mapped != "" {
		return mapped
	}
	return value
}

func (c *Config) normalizeInput() {
	c.Input.Encoding = subtitles.NormalizeEncoding(c.Input.Encoding)
}

func (c *Config) normalizeWords() {
	if len(c.Words.ExtraStopwords) == 0 {
		c.Words.ExtraStopwords = nil
		return
	}
	words := make([]string, 0, len(c.Words.ExtraStopwords))
	seen := make(map[string]struct{}, len(c.Words.ExtraStopwords))
	for _, word := range c.Words.ExtraStopwords {
		normalized := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(word, "’", "'")))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		words = append(words, normalized)
	}
	c.Words.ExtraStopwords = words
}

func (c *Config) normalizeArchive() error {
	var err error
	if strings.TrimSpace(c.Archive.Path) == "" {
		c.Archive.Path = defaultArchivePath
	}
	if c.Archive.Path, err = expandPath(strings.TrimSpace(c.Archive.Path)); err != nil {
		return fmt.Errorf("archive.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
