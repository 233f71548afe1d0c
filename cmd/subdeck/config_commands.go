package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"subdeck/internal/config"
	"subdeck/internal/language"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigValidateCommand(ctx), newConfigInitCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				_, statErr := os.Stat(target)
				switch {
				case statErr == nil:
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				case !errors.Is(statErr, fs.ErrNotExist):
					return fmt.Errorf("check config path: %w", statErr)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit [deck] to pick your languages before running subdeck generate.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	return cmd
}

// initTarget resolves the --path flag, falling back to the default config
// location.
func initTarget(flag string) (string, error) {
	if flag = strings.TrimSpace(flag); flag == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(flag)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range configReport(cfg, ctx.configPath) {
				fmt.Fprintln(out, renderStatusLine(line.label, line.kind, line.value, colorize))
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

type reportLine struct {
	label string
	kind  statusKind
	value string
}

func configReport(cfg *config.Config, path string) []reportLine {
	source := reportLine{"Config", statusOK, path}
	if _, err := os.Stat(path); err != nil {
		source = reportLine{"Config", statusWarn, path + " (not found, defaults used)"}
	}
	primary, secondary := cfg.Deck.PrimaryLanguage, cfg.Deck.SecondaryLanguage
	archive := "disabled"
	if cfg.Archive.Enabled {
		archive = cfg.Archive.Path
	}
	return []reportLine{
		source,
		{"Output dir", statusInfo, cfg.Paths.OutputDir},
		{"Languages", languageStatus(primary, secondary),
			language.DisplayName(primary) + " -> " + language.DisplayName(secondary)},
		{"Stop words", statusInfo,
			fmt.Sprintf("%d built-in, %d extra", len(language.StopWords(primary)), len(cfg.StopWords()))},
		{"Archive", statusInfo, archive},
	}
}

// languageStatus warns when a language has no letter class or stop words of
// its own.
func languageStatus(primary, secondary string) statusKind {
	if !language.Known(primary) || !language.Known(secondary) || len(language.StopWords(primary)) == 0 {
		return statusWarn
	}
	return statusOK
}
