package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/craftkit/internal/crafting"
	"github.com/roach88/craftkit/internal/harness"
	"github.com/roach88/craftkit/internal/journal"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// seedJournal records one press_once craft with id "craft-1" into a new
// journal file and returns its path.
func seedJournal(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "craft.db")
	store, err := journal.Open(path)
	require.NoError(t, err)

	scenario, err := harness.LoadScenario("testdata/scenarios/press_once.yaml")
	require.NoError(t, err)
	result, err := harness.Run(t.Context(), scenario, harness.Options{
		Journal: store,
		IDs:     crafting.NewFixedGenerator("craft-1"),
	})
	require.NoError(t, err)
	require.True(t, result.Pass, result.Errors)
	require.NoError(t, store.Close())
	return path
}
