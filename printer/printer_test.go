package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"btreedb/btree"
)

func TestDumpEmptyTree(t *testing.T) {
	tr, err := btree.Create(4)
	require.NoError(t, err)
	defer tr.Destroy()

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, tr))
	require.Equal(t, "Árvore vazia\n", buf.String())
}

func TestDumpMatchesBracketFormat(t *testing.T) {
	tr, err := btree.Create(4)
	require.NoError(t, err)
	defer tr.Destroy()

	for _, k := range []int32{10, 20, 5, 6, 12, 30, 7, 17} {
		require.NoError(t, tr.Insert(k, k))
	}

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, tr))

	out := buf.String()
	require.Contains(t, out, "root: [ key0:")
	require.Contains(t, out, "1-level: ")
	require.NotContains(t, out, "2-level: ")
}

func TestVisualizeEmptyTree(t *testing.T) {
	tr, err := btree.Create(4)
	require.NoError(t, err)
	defer tr.Destroy()

	v := &Visualizer{Tree: tr}
	require.Contains(t, v.Visualize(), "empty")
}

func TestVisualizeNonEmptyTreeContainsKeys(t *testing.T) {
	tr, err := btree.Create(4)
	require.NoError(t, err)
	defer tr.Destroy()

	require.NoError(t, tr.Insert(1, 1))
	require.NoError(t, tr.Insert(2, 2))

	v := &Visualizer{Tree: tr}
	out := v.Visualize()
	require.Contains(t, out, "key0: 1")
}
