package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtlab/go-shot-metrics/internal/engine"
	"github.com/courtlab/go-shot-metrics/internal/export"
	"github.com/courtlab/go-shot-metrics/internal/report"
)

var (
	exportOut    string
	exportVideo  string
	exportDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export <hash-prefix> <pattern.json>",
	Short: "Cut matched shot windows into a highlight video",
	Long: `Run a pattern against a match and cut every matched window out of the
source video into a single concatenated clip. Requires ffmpeg.`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "highlights.mp4", "output video path")
	exportCmd.Flags().StringVar(&exportVideo, "video", "", "source video (defaults to the path stored at ingest)")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "print the clip list without running ffmpeg")
}

func runExport(cmd *cobra.Command, args []string) error {
	pattern, err := patternFromFile(args[1])
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	match, shots, err := loadMatch(db, args[0])
	if err != nil {
		return err
	}

	matched := engine.MatchSequence(shots, pattern)
	clips := export.ClipsFromWindows(matched, len(pattern))
	if len(clips) == 0 {
		fmt.Fprintln(os.Stdout, "No matches — nothing to export.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n%d clip(s) to export\n", len(clips))
	report.PrintClipTable(os.Stdout, clips)
	if exportDryRun {
		return nil
	}

	video := exportVideo
	if video == "" {
		video = match.VideoPath
	}
	if video == "" {
		return fmt.Errorf("no source video: pass --video or re-ingest with --video")
	}

	exporter := &export.Exporter{FFmpegBin: cfg.FFmpegBin}
	fmt.Fprintf(os.Stdout, "Cutting %s -> %s...\n", video, exportOut)
	if err := exporter.Export(cmd.Context(), video, clips, exportOut); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", exportOut)
	return nil
}
