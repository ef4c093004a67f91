// Package cli drives a tree from a line-oriented operation script: an
// order, an operation count, then that many "I key, value" / "R key" /
// "B key" lines, writing one response line per operation followed by
// a final structural dump (spec §6, grounded on the original script
// driver's insert/remove/search loop).
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"btreedb/btree"
	"btreedb/kerr"
	"btreedb/printer"
)

const (
	msgFound       = "O REGISTRO ESTA NA ARVORE!"
	msgNotFound    = "O REGISTRO NAO ESTA NA ARVORE!"
	msgUnsupported = "OPERACAO NAO SUPORTADA!"
)

// Run reads a script from r and writes its transcript to w, backing
// the tree with a file store at dbPath. The tree is destroyed when Run
// returns, which frees every node slot and clears the stored root, so
// the file does not hold a reusable index afterward.
func Run(r io.Reader, w io.Writer, dbPath string) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	order, err := nextInt(sc)
	if err != nil {
		return fmt.Errorf("cli: reading order: %w", err)
	}

	tree, err := btree.CreateFile(order, dbPath, "w+b")
	if err != nil {
		return fmt.Errorf("cli: creating tree: %w", err)
	}
	defer tree.Destroy()

	opCount, err := nextInt(sc)
	if err != nil {
		return fmt.Errorf("cli: reading operation count: %w", err)
	}

	for i := 0; i < opCount; i++ {
		if !sc.Scan() {
			break
		}
		if err := runOp(tree, w, sc.Text()); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\n-- ARVORE B"); err != nil {
		return err
	}
	return printer.Dump(w, tree)
}

func runOp(tree *btree.Tree, w io.Writer, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "I":
		key, value, err := parsePair(fields[1:])
		if err != nil {
			return err
		}
		return tree.Insert(key, value)

	case "R":
		key, err := parseSingle(fields[1:])
		if err != nil {
			return err
		}
		if err := tree.Remove(key); err != nil && !errors.Is(err, kerr.ErrNotFound) {
			return err
		}
		return nil

	case "B":
		key, err := parseSingle(fields[1:])
		if err != nil {
			return err
		}
		_, err = tree.Search(key)
		if err == nil {
			_, err = fmt.Fprintln(w, msgFound)
			return err
		}
		if errors.Is(err, kerr.ErrNotFound) {
			_, err = fmt.Fprintln(w, msgNotFound)
			return err
		}
		return err

	default:
		_, err := fmt.Fprintln(w, msgUnsupported)
		return err
	}
}

func parsePair(fields []string) (int32, int32, error) {
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("cli: malformed insert operation: %w", kerr.ErrInvalidParam)
	}
	key, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("cli: parsing key: %w", err)
	}
	value, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("cli: parsing value: %w", err)
	}
	return int32(key), int32(value), nil
}

func parseSingle(fields []string) (int32, error) {
	if len(fields) != 1 {
		return 0, fmt.Errorf("cli: malformed operation: %w", kerr.ErrInvalidParam)
	}
	key, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("cli: parsing key: %w", err)
	}
	return int32(key), nil
}

func nextInt(sc *bufio.Scanner) (int, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("cli: unexpected end of input: %w", kerr.ErrInvalidParam)
	}
	return strconv.Atoi(strings.TrimSpace(sc.Text()))
}
