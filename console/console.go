// Package console is an interactive REPL over a tree: SET/DEL/GET/EXIT
// commands driving integer keys/values and a colorized visualizer.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"btreedb/btree"
	"btreedb/kerr"
	"btreedb/printer"
)

// Console wraps a tree with a line scanner and visualizer, driving a
// SET/DEL/GET/EXIT command loop.
type Console struct {
	scanner    *bufio.Scanner
	tree       *btree.Tree
	visualizer *printer.Visualizer
	out        io.Writer
}

// New builds a Console reading commands from r and writing output to w.
func New(r io.Reader, w io.Writer, tree *btree.Tree) *Console {
	return &Console{
		scanner:    bufio.NewScanner(r),
		tree:       tree,
		visualizer: &printer.Visualizer{Tree: tree},
		out:        w,
	}
}

// Start prints the help banner and then drives commands until EXIT or
// end of input.
func (c *Console) Start() {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		c.processInput(c.scanner.Text())
		c.printPrompt()
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `
B-Tree Console

Available Commands:
  SET <key> <value>  Insert a key-value pair
  DEL <key>           Remove a key
  GET <key>           Retrieve the value for key
  EXIT                Terminate this session
`)
}

func (c *Console) printPrompt() {
	fmt.Fprint(c.out, "> ")
}

func (c *Console) processInput(line string) {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return
	}
	switch strings.ToLower(fields[0]) {
	case "set":
		c.processSet(fields[1:])
	case "del":
		c.processDel(fields[1:])
	case "get":
		c.processGet(fields[1:])
	case "exit":
		os.Exit(0)
	default:
		fmt.Fprintf(c.out, "Unknown command %q\n", fields[0])
	}
}

func (c *Console) processSet(args []string) {
	key, value, err := parsePair(args)
	if err != nil {
		fmt.Fprintln(c.out, "Usage: SET <key> <value>")
		return
	}
	if err := c.tree.Insert(key, value); err != nil {
		fmt.Fprintf(c.out, "insert failed: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, c.visualizer.Visualize())
}

func (c *Console) processDel(args []string) {
	key, err := parseSingle(args)
	if err != nil {
		fmt.Fprintln(c.out, "Usage: DEL <key>")
		return
	}
	if err := c.tree.Remove(key); err != nil {
		if errors.Is(err, kerr.ErrNotFound) {
			fmt.Fprintln(c.out, "Key not found.")
			return
		}
		fmt.Fprintf(c.out, "remove failed: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, c.visualizer.Visualize())
}

func (c *Console) processGet(args []string) {
	key, err := parseSingle(args)
	if err != nil {
		fmt.Fprintln(c.out, "Usage: GET <key>")
		return
	}
	res, err := c.tree.Search(key)
	if err != nil {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprintln(c.out, res.Value)
}

func parsePair(args []string) (int32, int32, error) {
	if len(args) != 2 {
		return 0, 0, kerr.ErrInvalidParam
	}
	key, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return 0, 0, err
	}
	value, err := strconv.ParseInt(args[1], 10, 32)
	if err != nil {
		return 0, 0, err
	}
	return int32(key), int32(value), nil
}

func parseSingle(args []string) (int32, error) {
	if len(args) != 1 {
		return 0, kerr.ErrInvalidParam
	}
	key, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(key), nil
}
