// Package btree implements the pure B-tree algorithms — search,
// bottom-up split-on-overflow insertion, and bottom-up delete with
// borrow/merge fix-ups on the way back up — parameterized over a
// store.Store so the same code drives both the in-memory and
// file-backed node stores.
package btree

import (
	"fmt"

	"btreedb/kerr"
	"btreedb/store"
)

// Tree is the facade: order, root ID (or store.NoneID for an empty
// tree), a running node count, and the bound store.
type Tree struct {
	order  int
	rootID store.NodeID
	nNodes int
	store  store.Store
}

// Create builds a tree of the given order backed by an in-memory
// store. Rejects order < 3.
func Create(order int) (*Tree, error) {
	if order < 3 {
		return nil, fmt.Errorf("btree: create: order %d: %w", order, kerr.ErrInvalidParam)
	}
	return &Tree{
		order:  order,
		rootID: store.NoneID,
		store:  store.NewMemStore(order),
	}, nil
}

// CreateFile builds a tree of the given order backed by a file at
// filename, opened with the given fopen-style mode. If the file
// already holds a tree (i.e. it is being reopened, not freshly
// created), the root is recovered from the file's header — see
// SPEC_FULL.md §10 — instead of coming back empty.
func CreateFile(order int, filename, mode string) (*Tree, error) {
	if order < 3 {
		return nil, fmt.Errorf("btree: create: order %d: %w", order, kerr.ErrInvalidParam)
	}
	fs, err := store.OpenFileStore(filename, order, mode)
	if err != nil {
		return nil, err
	}
	tr := &Tree{
		order:  order,
		rootID: fs.RootID(),
		store:  fs,
	}
	levels, err := tr.Traverse()
	if err != nil {
		fs.Close()
		return nil, err
	}
	tr.nNodes = len(levels)
	return tr, nil
}

// Order returns the tree's configured order.
func (t *Tree) Order() int { return t.order }

// NNodes returns the number of live nodes currently in the store.
func (t *Tree) NNodes() int { return t.nNodes }

// Empty reports whether the tree currently holds no keys.
func (t *Tree) Empty() bool { return t.rootID == store.NoneID }

// allocate wraps store.Allocate, keeping nNodes in sync with every
// slot the store hands out.
func (t *Tree) allocate(isLeaf bool) (*store.Node, error) {
	n, err := t.store.Allocate(isLeaf)
	if err != nil {
		return nil, err
	}
	t.nNodes++
	return n, nil
}

// free wraps store.Free, keeping nNodes in sync with every slot
// released.
func (t *Tree) free(id store.NodeID) error {
	if err := t.store.Free(id); err != nil {
		return err
	}
	t.nNodes--
	return nil
}

// Destroy performs a post-order free of every reachable node, then
// closes the underlying store. Per spec §4.5, an empty tree still
// closes cleanly even though there is nothing to walk.
func (t *Tree) Destroy() error {
	if t.rootID != store.NoneID {
		if err := t.destroyNode(t.rootID); err != nil {
			return err
		}
		t.rootID = store.NoneID
		if err := t.store.SetRootID(store.NoneID); err != nil {
			return err
		}
	}
	return t.store.Close()
}

func (t *Tree) destroyNode(id store.NodeID) error {
	n, err := t.store.Read(id)
	if err != nil {
		return err
	}
	if !n.IsLeaf {
		for i := 0; i <= n.NumKeys; i++ {
			if n.Children[i] == store.NoneID {
				continue
			}
			if err := t.destroyNode(n.Children[i]); err != nil {
				return err
			}
		}
	}
	return t.free(id)
}

// minKeys is the minimum key count for a non-root node: ceil(t/2) - 1.
func minKeys(order int) int { return ceilDiv(order, 2) - 1 }

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// locate returns the smallest index i such that key <= keys[i] within
// the first n.NumKeys entries of n, and whether that entry is an exact
// match. Shared by Search and the deletion algorithm (spec §4.2).
func locate(n *store.Node, key int32) (int, bool) {
	i := 0
	for i < n.NumKeys && key > n.Keys[i] {
		i++
	}
	return i, i < n.NumKeys && key == n.Keys[i]
}
