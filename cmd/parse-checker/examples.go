// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"parsecheck/internal/config"
	"parsecheck/internal/corpus"
	"parsecheck/internal/report"
)

// runExamples prints every specification and formula below a directory and
// compares the output with the stored snapshots.
func runExamples(args []string) int {
	fs := flag.NewFlagSet("parse-checker examples", flag.ExitOnError)
	snapshots := fs.String("snapshots", "", "snapshot directory (default from the configuration)")
	update := fs.Bool("update", false, "overwrite the snapshots with the current output")
	configPath := fs.String("config", config.FileName, "configuration file")
	verbosity := fs.Int("v", 0, "log verbosity")
	fs.Usage = usage(fs)
	fs.Parse(args)

	dir := "examples"
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}

	cfg, err := setup(*configPath, *verbosity)
	if err != nil {
		color.Red("%s", err)
		return 1
	}

	snapshotDir := cfg.Corpus.SnapshotDir
	if *snapshots != "" {
		snapshotDir = *snapshots
	}

	checker := &corpus.Checker{
		SnapshotDir:  snapshotDir,
		Update:       *update,
		Quantitative: cfg.IsQuantitative,
		Root:         dir,
	}
	results, err := checker.CheckAll(os.DirFS(dir), cfg.Corpus.Patterns)
	if err != nil {
		color.Red("%s", err)
		return 1
	}

	for _, res := range results {
		name := filepath.Join(dir, filepath.FromSlash(res.Path))
		switch {
		case res.Err != nil:
			color.Red("FAIL %s (%s)", name, res.Kind)
			fmt.Printf("     %s\n", res.Err)
		case res.SnapshotMismatch:
			color.Red("FAIL %s (%s): output differs from snapshot", name, res.Kind)
			report.Diff(os.Stdout, res.Output, res.Snapshot)
			fmt.Println()
		case res.Updated:
			color.Cyan("UPDATED %s", name)
		default:
			color.Green("ok   %s", name)
		}
	}

	failed := corpus.Summary(results)
	if failed > 0 {
		color.Red("%d of %d examples failed", failed, len(results))
		return 1
	}
	color.Green("%d examples passed", len(results))
	return 0
}
