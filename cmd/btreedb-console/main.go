// Command btreedb-console is an interactive SET/DEL/GET session over
// an in-memory B-tree, for exploring the structure live.
package main

import (
	"fmt"
	"os"

	"btreedb/btree"
	"btreedb/console"
)

func main() {
	order := 4
	if len(os.Args) > 1 {
		fmt.Sscanf(os.Args[1], "%d", &order)
	}

	tree, err := btree.Create(order)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer tree.Destroy()

	console.New(os.Stdin, os.Stdout, tree).Start()
}
