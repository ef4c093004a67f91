package printer

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"btreedb/btree"
)

// Visualizer renders a colorized, human-skimmable view of a tree for
// interactive sessions: the root in bold cyan, internal nodes in
// green, leaves in yellow. It never touches Dump's plain-text format,
// which a driven session may be diffing byte-for-byte.
type Visualizer struct {
	Tree *btree.Tree
}

var (
	rootColor     = color.New(color.FgCyan, color.Bold)
	internalColor = color.New(color.FgGreen)
	leafColor     = color.New(color.FgYellow)
	emptyColor    = color.New(color.FgHiBlack)
)

// Visualize returns the colorized level-order rendering of the bound
// tree, or a dim "(empty)" marker when there is nothing to show.
func (v *Visualizer) Visualize() string {
	levels, err := v.Tree.Traverse()
	if err != nil {
		return color.New(color.FgRed).Sprintf("error: %v", err)
	}
	if len(levels) == 0 {
		return emptyColor.Sprint("(empty)")
	}

	maxDepth := 0
	for _, lv := range levels {
		if lv.Depth > maxDepth {
			maxDepth = lv.Depth
		}
	}

	var b strings.Builder
	depth := -1
	var line []string
	flush := func() {
		if len(line) > 0 {
			fmt.Fprintf(&b, "%s\n", strings.Join(line, "  "))
		}
	}

	for _, lv := range levels {
		if lv.Depth != depth {
			flush()
			depth = lv.Depth
			line = nil
		}
		line = append(line, colorFor(lv.Depth, maxDepth).Sprint(formatNode(lv)))
	}
	flush()

	return strings.TrimRight(b.String(), "\n")
}

func colorFor(depth, maxDepth int) *color.Color {
	switch {
	case depth == 0:
		return rootColor
	case depth == maxDepth:
		return leafColor
	default:
		return internalColor
	}
}
