// shotmetrics ingests per-shot detection CSVs from racket-sport match
// footage and answers questions about rallies, landing zones, and shot
// patterns.
package main

import "github.com/courtlab/go-shot-metrics/cmd"

func main() {
	cmd.Execute()
}
