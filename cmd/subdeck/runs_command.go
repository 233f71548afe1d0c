package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"subdeck/internal/archive"
	"subdeck/internal/config"
	"subdeck/internal/subtitles"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List and inspect archived deck runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchive(ctx, cmd, func(store *archive.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					if runs == nil {
						runs = []archive.Run{}
					}
					return writeJSON(cmd, runs)
				}
				renderRuns(cmd, runs)
				return nil
			})
		},
	}
	runsCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")
	runsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")

	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsDeleteCommand(ctx))
	return runsCmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var words bool
	var chapter int

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the phrase or word cards of an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchive(ctx, cmd, func(store *archive.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s (%s, %s -> %s)\n", run.ID, run.GeneratedAt, run.PrimaryLanguage, run.SecondaryLanguage)

				if words {
					rows, err := store.Words(cmd.Context(), run.ID, chapter)
					if err != nil {
						return err
					}
					table := make([][]string, 0, len(rows))
					for _, row := range rows {
						table = append(table, []string{strconv.Itoa(row.Chapter), row.Token, strconv.Itoa(row.Freq)})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Chapter", "Word", "Freq"},
						table,
						[]columnAlignment{alignRight, alignLeft, alignRight},
					))
					return nil
				}

				rows, err := store.Phrases(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				table := make([][]string, 0, len(rows))
				for _, row := range rows {
					if chapter > 0 && row.Chapter != chapter {
						continue
					}
					table = append(table, []string{
						row.CardID,
						subtitles.FormatTimestamp(row.Start),
						truncateText(row.Primary, inspectTextWidth/2),
						truncateText(row.Secondary, inspectTextWidth/2),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Card", "Start", run.PrimaryLanguage, run.SecondaryLanguage},
					table,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&words, "words", false, "Show word cards instead of phrase cards")
	cmd.Flags().IntVar(&chapter, "chapter", 0, "Only show one chapter")
	return cmd
}

func newRunsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Remove an archived run (deck files are left untouched)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchive(ctx, cmd, func(store *archive.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := store.Delete(cmd.Context(), run.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", run.ID)
				return nil
			})
		},
	}
}

// withArchive opens the archive configured in archive.path. A missing
// database is reported instead of being created.
func withArchive(ctx *commandContext, cmd *cobra.Command, fn func(*archive.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	path, err := config.ExpandPath(cfg.Archive.Path)
	if err != nil {
		return fmt.Errorf("resolve archive path: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no archive at %s (enable [archive] or pass --archive to generate)", path)
		}
		return fmt.Errorf("check archive: %w", err)
	}
	store, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func renderRuns(cmd *cobra.Command, runs []archive.Run) {
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No archived runs")
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.GeneratedAt,
			run.MovieID,
			run.PrimaryLanguage + "/" + run.SecondaryLanguage,
			strconv.Itoa(run.Phrases),
			strconv.Itoa(run.Unmatched),
			strconv.Itoa(run.Words),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Generated", "Movie", "Langs", "Phrases", "Unmatched", "Words"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
