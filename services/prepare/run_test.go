package prepare

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "textbooks_raw.csv")
	require.NoError(t, os.WriteFile(input, []byte(rawCSV), 0644))

	outDir := filepath.Join(dir, "processed")
	dbPath := filepath.Join(dir, "textbooks.db")
	err := Run(context.Background(), input, outDir, RunOptions{DbPath: dbPath})
	require.NoError(t, err)

	for _, name := range []string{
		"textbooks_for_import.csv",
		"textbook_relations.json",
		"textbooks_for_import_minimal.csv",
	} {
		_, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err)
	}

	store, err := OpenStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestRunMinimalOnly(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "textbooks_raw.csv")
	require.NoError(t, os.WriteFile(input, []byte(rawCSV), 0644))

	outDir := filepath.Join(dir, "processed")
	require.NoError(t, Run(context.Background(), input, outDir, RunOptions{MinimalOnly: true}))

	_, err := os.Stat(filepath.Join(outDir, "textbooks_for_import_minimal.csv"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "textbooks_for_import.csv"))
	require.True(t, os.IsNotExist(err))
}
