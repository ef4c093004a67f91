package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunInsertsAndReportsSearches(t *testing.T) {
	script := strings.Join([]string{
		"4",
		"5",
		"I 10, 100",
		"I 20, 200",
		"B 10",
		"B 99",
		"R 10",
	}, "\n") + "\n"

	var out bytes.Buffer
	dbPath := filepath.Join(t.TempDir(), "database")
	require.NoError(t, Run(strings.NewReader(script), &out, dbPath))

	got := out.String()
	require.Contains(t, got, msgFound)
	require.Contains(t, got, msgNotFound)
	require.Contains(t, got, "-- ARVORE B")
	require.Contains(t, got, "root: ")
}

func TestRunUnsupportedOperation(t *testing.T) {
	script := strings.Join([]string{
		"4",
		"1",
		"X 1",
	}, "\n") + "\n"

	var out bytes.Buffer
	dbPath := filepath.Join(t.TempDir(), "database")
	require.NoError(t, Run(strings.NewReader(script), &out, dbPath))
	require.Contains(t, out.String(), msgUnsupported)
}

func TestRunEmptyScriptStillDumps(t *testing.T) {
	script := "4\n0\n"

	var out bytes.Buffer
	dbPath := filepath.Join(t.TempDir(), "database")
	require.NoError(t, Run(strings.NewReader(script), &out, dbPath))
	require.Contains(t, out.String(), "Árvore vazia")
}
