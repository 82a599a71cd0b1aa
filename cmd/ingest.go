package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/courtlab/go-shot-metrics/internal/engine"
	"github.com/courtlab/go-shot-metrics/internal/model"
	"github.com/courtlab/go-shot-metrics/internal/parser"
	"github.com/courtlab/go-shot-metrics/internal/report"
	"github.com/courtlab/go-shot-metrics/internal/storage"
)

var (
	ingestFPS   float64
	ingestVideo string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <shots.csv>",
	Short: "Ingest a detection CSV and store derived analytics",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().Float64Var(&ingestFPS, "fps", 0, "source video frame rate (defaults to config)")
	ingestCmd.Flags().StringVar(&ingestVideo, "video", "", "path to the source video, for export")
}

func runIngest(cmd *cobra.Command, args []string) error {
	csvPath := args[0]

	fps := ingestFPS
	if fps == 0 {
		fps = cfg.FPS
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(os.Stdout, "Ingesting %s...\n", csvPath)
	res, err := parser.ParseCSV(csvPath, fps)
	if err != nil {
		return fmt.Errorf("parse csv: %w", err)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	exists, err := db.MatchExists(res.Hash)
	if err != nil {
		return fmt.Errorf("check match: %w", err)
	}
	if exists {
		fmt.Fprintf(os.Stdout, "Match %s already stored — showing cached results.\n", res.Hash[:12])
		return showByPrefix(db, res.Hash)
	}

	rallies := engine.GroupRallies(res.Shots)
	summary := model.MatchSummary{
		Hash:       res.Hash,
		Source:     filepath.Base(csvPath),
		VideoPath:  ingestVideo,
		IngestDate: time.Now().Format("2006-01-02"),
		FPS:        fps,
		ShotCount:  len(res.Shots),
		RallyCount: len(rallies),
	}

	if err := db.InsertMatch(summary); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	if err := db.InsertShots(res.Hash, res.Shots); err != nil {
		return fmt.Errorf("insert shots: %w", err)
	}
	if err := db.InsertRallies(res.Hash, rallies); err != nil {
		return fmt.Errorf("insert rallies: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, summary)
	report.PrintRallyTable(os.Stdout, rallies)
	report.PrintZoneTable(os.Stdout, res.Shots)
	report.PrintPlayerTable(os.Stdout, engine.BuildPlayerStats(res.Shots, rallies))
	return nil
}

// loadMatch resolves a hash prefix and loads the match with its shot stream.
func loadMatch(db *storage.DB, prefix string) (*model.MatchSummary, []model.Shot, error) {
	match, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return nil, nil, err
	}
	shots, err := db.GetShots(match.Hash)
	if err != nil {
		return nil, nil, fmt.Errorf("load shots: %w", err)
	}
	return match, shots, nil
}
