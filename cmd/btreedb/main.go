// Command btreedb runs an operation script against a file-backed
// B-tree index: btreedb <input-script> <output-transcript>.
package main

import (
	"fmt"
	"os"

	"btreedb/cli"
)

func main() {
	if len(os.Args) <= 2 {
		fmt.Fprintln(os.Stderr, "usage: btreedb <input-script> <output-transcript>")
		os.Exit(1)
	}

	in, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := os.Create(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer out.Close()

	if err := cli.Run(in, out, "database"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
