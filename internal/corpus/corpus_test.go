package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"parsecheck/internal/bridge"
)

var examples = os.DirFS("testdata/examples")

func TestDiscover(t *testing.T) {
	paths, err := Discover(examples, []string{"**/*.mcrl2", "**/*.mcf", "*.mcrl2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"buffer.mcrl2", "formulas/broken.mcf", "formulas/no_deadlock.mcf"}, paths)
}

func TestDiscoverInvalidPattern(t *testing.T) {
	_, err := Discover(examples, []string{"[unclosed"})
	assert.Error(t, err)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, bridge.ModeProcess, KindOf("a/b.mcrl2", false))
	assert.Equal(t, bridge.ModeFormula, KindOf("a/b.mcf", false))
	assert.Equal(t, bridge.ModeQuantitativeFormula, KindOf("a/b.MCF", true))
	assert.Equal(t, bridge.ModeProcess, KindOf("README", true))
}

func TestCheckAgainstSnapshots(t *testing.T) {
	c := &Checker{SnapshotDir: "testdata/snapshot"}
	results, err := c.CheckAll(examples, []string{"**/*.mcrl2", "**/*.mcf"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	buffer := results[0]
	assert.NoError(t, buffer.Err)
	assert.False(t, buffer.SnapshotMismatch, buffer.Output)

	broken := results[1]
	assert.Error(t, broken.Err)
	assert.Equal(t, bridge.ModeFormula, broken.Kind)

	deadlock := results[2]
	assert.NoError(t, deadlock.Err)
	assert.Equal(t, "[true*]<true>true\n", deadlock.Output)
	assert.True(t, deadlock.SnapshotMismatch)

	assert.Equal(t, 2, Summary(results))
}

func TestCheckWithoutSnapshot(t *testing.T) {
	c := &Checker{SnapshotDir: t.TempDir()}
	res := c.Check(examples, "formulas/no_deadlock.mcf")

	assert.NoError(t, res.Err)
	assert.False(t, res.Failed())
	assert.Empty(t, res.Snapshot)
}

func TestUpdateWritesSnapshots(t *testing.T) {
	dir := t.TempDir()
	c := &Checker{SnapshotDir: dir, Update: true}

	res := c.Check(examples, "formulas/no_deadlock.mcf")
	require.NoError(t, res.Err)
	assert.True(t, res.Updated)

	stored, err := os.ReadFile(filepath.Join(dir, "formulas", "no_deadlock.mcf"))
	require.NoError(t, err)
	assert.Equal(t, res.Output, string(stored))

	c.Update = false
	assert.False(t, c.Check(examples, "formulas/no_deadlock.mcf").Failed())
}

func TestQuantitativeFiles(t *testing.T) {
	c := &Checker{Quantitative: func(p string) bool { return true }}
	res := c.Check(examples, "formulas/no_deadlock.mcf")

	assert.Equal(t, bridge.ModeQuantitativeFormula, res.Kind)
	assert.NoError(t, res.Err)
}

func TestCheckAllSkipsSnapshotsInsideRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "buffer.mcrl2"), []byte("act a;\ninit a;"), 0o644))

	c := &Checker{Root: root, SnapshotDir: filepath.Join(root, "snapshot"), Update: true}
	patterns := []string{"**/*.mcrl2"}

	for range 2 {
		results, err := c.CheckAll(os.DirFS(root), patterns)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "buffer.mcrl2", results[0].Path)
	}

	assert.FileExists(t, filepath.Join(root, "snapshot", "buffer.mcrl2"))
	assert.NoDirExists(t, filepath.Join(root, "snapshot", "snapshot"))
}

func TestSnapshotPrefix(t *testing.T) {
	assert.Equal(t, "snapshot/", (&Checker{Root: "examples", SnapshotDir: "examples/snapshot"}).snapshotPrefix())
	assert.Empty(t, (&Checker{Root: "examples", SnapshotDir: "snapshot"}).snapshotPrefix())
	assert.Empty(t, (&Checker{Root: "examples", SnapshotDir: "examples"}).snapshotPrefix())
	assert.Empty(t, (&Checker{SnapshotDir: "snapshot"}).snapshotPrefix())
}
