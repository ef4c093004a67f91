package btree

import (
	"btreedb/kerr"
	"btreedb/store"
)

// Result identifies where a search landed: the node holding the key
// and its index within that node's Keys/Values, plus the payload.
type Result struct {
	NodeID store.NodeID
	Index  int
	Value  int32
}

// Search walks from the root scanning left-to-right within each
// visited node for the smallest index i with key <= keys[i]. An exact
// match returns immediately; otherwise, at a leaf the key is absent,
// at an internal node the walk descends through children[i]. Search
// never mutates the store.
func (t *Tree) Search(key int32) (Result, error) {
	if t.rootID == store.NoneID {
		return Result{}, kerr.ErrNotFound
	}
	return t.search(t.rootID, key)
}

func (t *Tree) search(id store.NodeID, key int32) (Result, error) {
	n, err := t.store.Read(id)
	if err != nil {
		return Result{}, err
	}

	idx, found := locate(n, key)
	if found {
		return Result{NodeID: id, Index: idx, Value: n.Values[idx]}, nil
	}
	if n.IsLeaf {
		return Result{}, kerr.ErrNotFound
	}
	return t.search(n.Children[idx], key)
}
