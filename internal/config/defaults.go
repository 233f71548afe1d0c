package config

const (
	defaultConfigPath          = "~/.config/subdeck/config.toml"
	projectConfigName          = "subdeck.toml"
	defaultOutputDir           = "cards"
	defaultLogDir              = "~/.local/share/subdeck/logs"
	defaultArchivePath         = "~/.local/share/subdeck/decks.db"
	defaultPathID              = "italian-with-harry"
	defaultMovieID             = "hp1"
	defaultPrimaryLanguage     = "it"
	defaultSecondaryLanguage   = "de"
	defaultInputEncoding       = "auto"
	defaultMaxMinutes          = 14
	defaultChapterMinutes      = 7
	defaultMinTokenLength      = 3
	defaultMaxTokensPerChapter = 80
	defaultMaxExamplesPerToken = 2
	defaultMergeGapMS          = 300
	defaultAlignPadMS          = 250
	defaultAlignMaxLines       = 4
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogRetentionDays    = 30
	outputDirEnv               = "SUBDECK_OUTPUT_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Deck: Deck{
			PathID:            defaultPathID,
			MovieID:           defaultMovieID,
			PrimaryLanguage:   defaultPrimaryLanguage,
			SecondaryLanguage: defaultSecondaryLanguage,
		},
		Input: Input{
			Encoding: defaultInputEncoding,
		},
		Window: Window{
			MaxMinutes:     defaultMaxMinutes,
			ChapterMinutes: defaultChapterMinutes,
		},
		Words: Words{
			MinTokenLength:      defaultMinTokenLength,
			MaxTokensPerChapter: defaultMaxTokensPerChapter,
			MaxExamplesPerToken: defaultMaxExamplesPerToken,
		},
		Merge: Merge{
			GapMS: defaultMergeGapMS,
		},
		Align: Align{
			PadMS:    defaultAlignPadMS,
			MaxLines: defaultAlignMaxLines,
		},
		Archive: Archive{
			Path: defaultArchivePath,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
