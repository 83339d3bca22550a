// Package tuitest compares rendered views against recorded snapshots.
package tuitest

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update snapshot files")

// AssertSnapshot compares output with testdata/<test name>.snap.
// Escape sequences are stripped first so snapshots do not depend on the
// color profile of the terminal running the tests. A missing snapshot is
// recorded and the test passes.
func AssertSnapshot(t *testing.T, output string) {
	t.Helper()

	output = ansi.Strip(output)
	snapshotPath := filepath.Join("testdata", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "_"))+".snap")

	snapshot, err := os.ReadFile(snapshotPath)
	if *update || os.IsNotExist(err) {
		require.NoError(t, os.MkdirAll(filepath.Dir(snapshotPath), 0755))
		require.NoError(t, os.WriteFile(snapshotPath, []byte(output), 0644))
		t.Logf("recorded snapshot: %s", snapshotPath)
		return
	}
	require.NoError(t, err)

	require.Equal(t, string(snapshot), output, "snapshot does not match. run with -update to update it.")
}
