package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/courtlab/go-shot-metrics/internal/engine"
	"github.com/courtlab/go-shot-metrics/internal/report"
	"github.com/courtlab/go-shot-metrics/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cGreeting.Println("shotmetrics shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("shotmetrics")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <hash-prefix>")
				continue
			}
			if err := showByPrefix(db, args[0]); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
			}
		case "rallies":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: rallies <hash-prefix>")
				continue
			}
			shellRallies(db, args[0])
		case "shots":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: shots <hash-prefix> [type]")
				continue
			}
			shotType := ""
			if len(args) > 1 {
				shotType = args[1]
			}
			shellShots(db, args[0], shotType)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q — type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored matches"},
		{"show <hash-prefix>", "show a match's rally, zone, and player tables"},
		{"rallies <hash-prefix>", "show the rally timeline"},
		{"shots <hash-prefix> [type]", "dump the shot stream, optionally one shot type"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-30s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	matches, err := db.ListMatches()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(matches) == 0 {
		cMuted.Println("No matches stored yet.")
		return
	}
	report.PrintMatchTable(os.Stdout, matches)
}

func shellRallies(db *storage.DB, prefix string) {
	_, shots, err := loadMatch(db, prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	report.PrintRallyTable(os.Stdout, engine.GroupRallies(shots))
}

func shellShots(db *storage.DB, prefix, shotType string) {
	_, shots, err := loadMatch(db, prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if shotType != "" {
		c := engine.NewConstraint()
		c.ShotType = shotType
		shots = engine.FilterShots(shots, c)
	}
	if len(shots) == 0 {
		cMuted.Println("No shots matched.")
		return
	}
	report.PrintShotTable(os.Stdout, shots)
}
