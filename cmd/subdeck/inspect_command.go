package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"subdeck/internal/pipeline"
	"subdeck/internal/subtitles"
)

const inspectTextWidth = 60

type inspectOutput struct {
	Path     string               `json:"path"`
	SHA256   string               `json:"sha256"`
	Stats    subtitles.ParseStats `json:"stats"`
	Merged   int                  `json:"merged,omitempty"`
	Segments []subtitles.Segment  `json:"segments"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var merge bool
	var gapMS int
	var encoding string
	var dropAds bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect <srt>",
		Short: "Show how a subtitle file is parsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("encoding") {
				encoding = cfg.Input.Encoding
			}
			if !cmd.Flags().Changed("drop-ads") {
				dropAds = cfg.Input.DropAdvertisements
			}
			if !cmd.Flags().Changed("gap-ms") {
				gapMS = cfg.Merge.GapMS
			}
			if gapMS < 0 {
				return fmt.Errorf("--gap-ms must be >= 0")
			}

			src, err := pipeline.ReadTrack(pipeline.TrackPrimary, args[0], encoding)
			if err != nil {
				return err
			}
			segments, stats := subtitles.Parse(src.Text, subtitles.ParseOptions{DropAdvertisements: dropAds})
			out := inspectOutput{Path: src.Path, SHA256: src.SHA256, Stats: stats}
			if merge {
				segments = subtitles.Merge(segments, time.Duration(gapMS)*time.Millisecond)
				out.Merged = len(segments)
			}
			if limit > 0 && len(segments) > limit {
				segments = segments[:limit]
			}
			out.Segments = segments
			if out.Segments == nil {
				out.Segments = []subtitles.Segment{}
			}

			if jsonOutput {
				return writeJSON(cmd, out)
			}
			renderInspect(cmd, out, merge)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum segments to print (0 for all)")
	cmd.Flags().BoolVar(&merge, "merge", false, "Merge adjacent segments before printing")
	cmd.Flags().IntVar(&gapMS, "gap-ms", 0, "Largest gap in milliseconds bridged by --merge (defaults to merge.gap_ms)")
	cmd.Flags().StringVar(&encoding, "encoding", "", "Input encoding (defaults to input.encoding)")
	cmd.Flags().BoolVar(&dropAds, "drop-ads", false, "Drop subtitle-site advertisement cues")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print segments as JSON")
	return cmd
}

func renderInspect(cmd *cobra.Command, out inspectOutput, merged bool) {
	w := cmd.OutOrStdout()
	colorize := shouldColorize(w)

	rows := make([][]string, 0, len(out.Segments))
	for _, seg := range out.Segments {
		rows = append(rows, []string{
			strconv.Itoa(seg.Index),
			subtitles.FormatTimestamp(seg.Start),
			subtitles.FormatTimestamp(seg.End),
			truncateText(seg.Text, inspectTextWidth),
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(w, renderTable(
			[]string{"#", "Start", "End", "Text"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
		))
	} else {
		fmt.Fprintln(w, "No segments found")
	}

	stats := out.Stats
	fmt.Fprintln(w, renderStatusLine("Blocks", statusInfo, strconv.Itoa(stats.Blocks), colorize))
	fmt.Fprintln(w, renderStatusLine("Segments", statusOK, strconv.Itoa(stats.Segments), colorize))
	skippedKind := statusOK
	if stats.Skipped > 0 {
		skippedKind = statusWarn
	}
	fmt.Fprintln(w, renderStatusLine("Skipped", skippedKind, strconv.Itoa(stats.Skipped), colorize))
	if stats.Advertisements > 0 {
		fmt.Fprintln(w, renderStatusLine("Advertisements", statusInfo, strconv.Itoa(stats.Advertisements), colorize))
	}
	if merged {
		fmt.Fprintln(w, renderStatusLine("After merge", statusInfo, strconv.Itoa(out.Merged), colorize))
	}
}
