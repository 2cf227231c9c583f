// Package corpus checks a directory of example specifications: every file is
// printed through the bridge and compared with a stored snapshot.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tliron/commonlog"
	"parsecheck/internal/bridge"
	"parsecheck/internal/source"
)

var log = commonlog.GetLogger("parsecheck.corpus")

// Discover returns the files in fsys matching any of patterns, sorted and
// without duplicates.
func Discover(fsys fs.FS, patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var paths []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to match %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// KindOf picks the print mode from the file extension: ".mcf" files are
// formulas, anything else is a process specification.
func KindOf(p string, quantitative bool) bridge.Mode {
	if strings.EqualFold(path.Ext(p), ".mcf") {
		if quantitative {
			return bridge.ModeQuantitativeFormula
		}
		return bridge.ModeFormula
	}
	return bridge.ModeProcess
}

// Result is the outcome of checking one file.
type Result struct {
	Path   string
	Kind   bridge.Mode
	Output string
	Err    error
	// Snapshot is the stored output, empty when none exists.
	Snapshot         string
	SnapshotMismatch bool
	Updated          bool
}

// Failed reports whether the file failed to print or differs from its
// snapshot.
func (r Result) Failed() bool {
	return r.Err != nil || r.SnapshotMismatch
}

// Checker prints corpus files and compares them with snapshots stored under
// SnapshotDir, mirroring the corpus layout.
type Checker struct {
	Bridge      *bridge.Bridge
	SnapshotDir string
	// Update writes the current output as the new snapshot instead of
	// comparing.
	Update bool
	// Quantitative reports which formula files use the quantitative dialect.
	Quantitative func(path string) bool
	// Root is the directory the checked fs.FS is rooted at. When SnapshotDir
	// lies inside it, CheckAll skips the snapshots.
	Root string
}

// snapshotPrefix returns SnapshotDir as a slash path relative to Root, or ""
// when it lies outside Root.
func (c *Checker) snapshotPrefix() string {
	if c.Root == "" || c.SnapshotDir == "" {
		return ""
	}
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return ""
	}
	snapshots, err := filepath.Abs(c.SnapshotDir)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(root, snapshots)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel) + "/"
}

func (c *Checker) bridge() *bridge.Bridge {
	if c.Bridge != nil {
		return c.Bridge
	}
	return bridge.Default()
}

func (c *Checker) snapshotPath(p string) string {
	return filepath.Join(c.SnapshotDir, filepath.FromSlash(p))
}

// Check prints the file at p in fsys and compares it with its snapshot.
func (c *Checker) Check(fsys fs.FS, p string) Result {
	quantitative := c.Quantitative != nil && c.Quantitative(p)
	res := Result{Path: p, Kind: KindOf(p, quantitative)}

	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		res.Err = err
		return res
	}
	text, err := source.Decode(data)
	if err != nil {
		res.Err = err
		return res
	}

	res.Output, res.Err = c.bridge().Print(res.Kind, text)
	if res.Err != nil || c.SnapshotDir == "" {
		return res
	}

	snapshot := c.snapshotPath(p)
	if c.Update {
		if err := os.MkdirAll(filepath.Dir(snapshot), 0o755); err != nil {
			res.Err = fmt.Errorf("failed to create snapshot directory: %w", err)
			return res
		}
		if err := os.WriteFile(snapshot, []byte(res.Output), 0o644); err != nil {
			res.Err = fmt.Errorf("failed to write snapshot: %w", err)
			return res
		}
		log.Infof("updated snapshot %s", snapshot)
		res.Updated = true
		return res
	}

	stored, err := os.ReadFile(snapshot)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf("no snapshot for %s", p)
		return res
	}
	if err != nil {
		res.Err = fmt.Errorf("failed to read snapshot: %w", err)
		return res
	}
	res.Snapshot = string(stored)
	res.SnapshotMismatch = strings.TrimSpace(res.Snapshot) != strings.TrimSpace(res.Output)
	return res
}

// CheckAll discovers the files matching patterns and checks each of them.
func (c *Checker) CheckAll(fsys fs.FS, patterns []string) ([]Result, error) {
	paths, err := Discover(fsys, patterns)
	if err != nil {
		return nil, err
	}

	if prefix := c.snapshotPrefix(); prefix != "" {
		kept := paths[:0]
		for _, p := range paths {
			if !strings.HasPrefix(p, prefix) {
				kept = append(kept, p)
			}
		}
		paths = kept
	}

	results := make([]Result, len(paths))
	for i, p := range paths {
		results[i] = c.Check(fsys, p)
		if results[i].Failed() {
			log.Warningf("%s failed", p)
		}
	}
	return results, nil
}

// Summary counts the failed results.
func Summary(results []Result) (failed int) {
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	return failed
}
