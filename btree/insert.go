package btree

import (
	"errors"

	"btreedb/kerr"
	"btreedb/store"
)

// splitResult carries a key promoted out of a node that overflowed
// while absorbing a new entry, plus the ID of the freshly allocated
// right sibling holding the overflowed node's upper half.
type splitResult struct {
	key, value int32
	siblingID  store.NodeID
}

// Insert places key/value into the tree. If key is already present,
// no structural change happens — the existing payload is overwritten
// in place and the owning node is written back (the persistent-variant
// duplicate policy). Otherwise the new entry is inserted into its
// target leaf first; any node left holding one entry over its maximum
// by that insertion (or by a child's split result arriving from
// below) is split on the way back up, so both halves of a split are
// sized from the node's actual post-insertion contents instead of
// being pre-divided before the new entry exists. That is what keeps
// an odd-order split from stranding an empty half below minimum fill
// — the descending half that still needs the new key is never
// finalized before it arrives.
func (t *Tree) Insert(key, value int32) error {
	if res, err := t.Search(key); err == nil {
		n, rerr := t.store.Read(res.NodeID)
		if rerr != nil {
			return rerr
		}
		n.Values[res.Index] = value
		return t.store.Write(n)
	} else if !errors.Is(err, kerr.ErrNotFound) {
		return err
	}

	if t.rootID == store.NoneID {
		root, err := t.allocate(true)
		if err != nil {
			return err
		}
		root.Keys[0] = key
		root.Values[0] = value
		root.NumKeys = 1
		if err := t.store.Write(root); err != nil {
			return err
		}
		t.rootID = root.ID
		return t.store.SetRootID(t.rootID)
	}

	split, err := t.insertInto(t.rootID, key, value)
	if err != nil {
		return err
	}
	if split == nil {
		return nil
	}

	newRoot, err := t.allocate(false)
	if err != nil {
		return err
	}
	newRoot.Keys[0] = split.key
	newRoot.Values[0] = split.value
	newRoot.Children[0] = t.rootID
	newRoot.Children[1] = split.siblingID
	newRoot.NumKeys = 1
	if err := t.store.Write(newRoot); err != nil {
		return err
	}
	t.rootID = newRoot.ID
	return t.store.SetRootID(t.rootID)
}

// insertInto places key/value into the subtree rooted at id. A leaf
// gets the new entry directly; an internal node routes it into the
// matching child and, if that recursive call reports a split, absorbs
// the promoted key and new sibling pointer. Either way, if the node
// this call touched ends up holding one more entry than its maximum,
// it is split before returning, and the split's promoted key/sibling
// is handed back to the caller instead of being resolved here.
func (t *Tree) insertInto(id store.NodeID, key, value int32) (*splitResult, error) {
	n, err := t.store.Read(id)
	if err != nil {
		return nil, err
	}

	if n.IsLeaf {
		insertEntry(n, key, value)
	} else {
		i := n.NumKeys - 1
		for i >= 0 && key < n.Keys[i] {
			i--
		}
		i++

		split, err := t.insertInto(n.Children[i], key, value)
		if err != nil {
			return nil, err
		}
		if split == nil {
			return nil, nil
		}
		absorbSplit(n, i, split)
	}

	if n.NumKeys <= t.order-1 {
		return nil, t.store.Write(n)
	}
	return t.splitOverfull(n)
}

// insertEntry shifts n's keys/values to open a slot and writes key,
// value into it in sorted order. The caller guarantees n has at least
// one free slot, which every node does until it reaches t.order keys.
func insertEntry(n *store.Node, key, value int32) {
	i := n.NumKeys - 1
	for i >= 0 && key < n.Keys[i] {
		n.Keys[i+1] = n.Keys[i]
		n.Values[i+1] = n.Values[i]
		i--
	}
	n.Keys[i+1] = key
	n.Values[i+1] = value
	n.NumKeys++
}

// absorbSplit inserts a child's promoted key/value at position i and
// its new sibling at i+1, shifting n's existing keys and child
// pointers right to make room.
func absorbSplit(n *store.Node, i int, split *splitResult) {
	for j := n.NumKeys; j > i; j-- {
		n.Keys[j] = n.Keys[j-1]
		n.Values[j] = n.Values[j-1]
	}
	for j := n.NumKeys + 1; j > i+1; j-- {
		n.Children[j] = n.Children[j-1]
	}
	n.Keys[i] = split.key
	n.Values[i] = split.value
	n.Children[i+1] = split.siblingID
	n.NumKeys++
}

// splitOverfull splits n, which holds exactly t.order keys (one over
// its logical maximum), into two nodes of floor(order/2) and the
// remainder, promoting the median key to the caller. This split point
// divides what's actually present after the triggering insertion,
// rather than guessing a division before it, which is what lets it
// satisfy minimum fill on both halves for every order, odd or even.
func (t *Tree) splitOverfull(n *store.Node) (*splitResult, error) {
	order := t.order
	m := order / 2

	sibling, err := t.allocate(n.IsLeaf)
	if err != nil {
		return nil, err
	}

	rightCount := n.NumKeys - (m + 1)
	copy(sibling.Keys, n.Keys[m+1:n.NumKeys])
	copy(sibling.Values, n.Values[m+1:n.NumKeys])
	sibling.NumKeys = rightCount
	if !n.IsLeaf {
		copy(sibling.Children, n.Children[m+1:n.NumKeys+1])
	}

	midKey := n.Keys[m]
	midVal := n.Values[m]

	for i := m; i < n.NumKeys; i++ {
		n.Keys[i] = -1
		n.Values[i] = -1
	}
	if !n.IsLeaf {
		for i := m + 1; i <= n.NumKeys; i++ {
			n.Children[i] = store.NoneID
		}
	}
	n.NumKeys = m

	if err := t.store.Write(n); err != nil {
		return nil, err
	}
	if err := t.store.Write(sibling); err != nil {
		return nil, err
	}

	return &splitResult{key: midKey, value: midVal, siblingID: sibling.ID}, nil
}
