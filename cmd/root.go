package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/courtlab/go-shot-metrics/internal/config"
	"github.com/courtlab/go-shot-metrics/internal/storage"
)

var (
	cfg    *config.Config
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "shotmetrics",
	Short: "Racket-sport shot analytics tool",
	Long:  "Ingest per-shot detection CSVs and query rallies, landing zones, and shot patterns.",
}

// Execute loads configuration and runs the root command.
func Execute() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (overrides config)")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(ralliesCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(sequenceCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(serveCmd)
}

// databasePath resolves the db location: the --db flag wins over config.
func databasePath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.DBPath
}

func openDB() (*storage.DB, error) {
	path := databasePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}
