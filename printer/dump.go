// Package printer renders a tree's level-order structure: Dump writes
// the exact plain-text transcript format the original tooling around
// this B-tree produced, and Visualizer renders a colorized variant of
// the same traversal for interactive use.
package printer

import (
	"fmt"
	"io"
	"strings"

	"btreedb/btree"
)

// Dump writes tr's structure to w in level-order, one line per depth,
// matching the transcript format byte-for-byte: "root: " followed by
// the root's bracketed key list, then "<n>-level: " followed by that
// depth's nodes joined with ", ". An empty tree writes a single
// "Árvore vazia" line.
func Dump(w io.Writer, tr *btree.Tree) error {
	levels, err := tr.Traverse()
	if err != nil {
		return err
	}
	if len(levels) == 0 {
		_, err := fmt.Fprintln(w, "Árvore vazia")
		return err
	}

	if _, err := fmt.Fprintf(w, "root: %s\n", formatNode(levels[0])); err != nil {
		return err
	}

	depth := -1
	var line []string
	flush := func() error {
		if depth <= 0 {
			return nil
		}
		_, err := fmt.Fprintf(w, "%d-level: %s\n", depth, strings.Join(line, ", "))
		return err
	}

	for _, lv := range levels[1:] {
		if lv.Depth != depth {
			if err := flush(); err != nil {
				return err
			}
			depth = lv.Depth
			line = nil
		}
		line = append(line, formatNode(lv))
	}
	return flush()
}

func formatNode(lv btree.LevelNode) string {
	parts := make([]string, len(lv.Keys))
	for i, k := range lv.Keys {
		parts[i] = fmt.Sprintf("key%d: %d", i, k)
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}
