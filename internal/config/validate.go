package config

import (
	"errors"
	"fmt"
	"strings"

	"subdeck/internal/cards"
	"subdeck/internal/subtitles"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDeck(); err != nil {
		return err
	}
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateWindow(); err != nil {
		return err
	}
	if err := c.validateWords(); err != nil {
		return err
	}
	if err := c.validateMergeAlign(); err != nil {
		return err
	}
	if err := c.validateArchive(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDeck() error {
	if c.Deck.PrimaryLanguage == "" {
		return errors.New("deck.primary_language must be set")
	}
	if c.Deck.SecondaryLanguage == "" {
		return errors.New("deck.secondary_language must be set")
	}
	if c.Deck.PrimaryLanguage == c.Deck.SecondaryLanguage {
		return fmt.Errorf("deck.secondary_language must differ from deck.primary_language (both %q)", c.Deck.PrimaryLanguage)
	}
	for key, code := range map[string]string{
		"deck.primary_language":   c.Deck.PrimaryLanguage,
		"deck.secondary_language": c.Deck.SecondaryLanguage,
	} {
		if cards.IsReservedKey(code) {
			return fmt.Errorf("%s %q collides with a card field name", key, code)
		}
	}
	return nil
}

func (c *Config) validateInput() error {
	if !subtitles.SupportedEncoding(c.Input.Encoding) {
		return fmt.Errorf("input.encoding must be one of auto, utf-8, windows-1252, iso-8859-1, iso-8859-15 (got %q)", c.Input.Encoding)
	}
	return nil
}

func (c *Config) validateWindow() error {
	if err := ensurePositiveMap(map[string]int{
		"window.max_minutes":     c.Window.MaxMinutes,
		"window.chapter_minutes": c.Window.ChapterMinutes,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWords() error {
	if c.Words.MinTokenLength < 1 {
		return errors.New("words.min_token_length must be >= 1")
	}
	if c.Words.MaxTokensPerChapter <= 0 {
		return errors.New("words.max_tokens_per_chapter must be positive")
	}
	if c.Words.MaxExamplesPerToken < 0 {
		return errors.New("words.max_examples_per_token must be >= 0")
	}
	return nil
}

func (c *Config) validateMergeAlign() error {
	if c.Merge.GapMS < 0 {
		return errors.New("merge.gap_ms must be >= 0")
	}
	if c.Align.PadMS < 0 {
		return errors.New("align.pad_ms must be >= 0")
	}
	if c.Align.MaxLines <= 0 {
		return errors.New("align.max_lines must be positive")
	}
	return nil
}

func (c *Config) validateArchive() error {
	if c.Archive.Enabled && strings.TrimSpace(c.Archive.Path) == "" {
		return errors.New("archive.path must be set when archive.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
