package btree

import "btreedb/store"

// LevelNode is one node's contribution to a level-order traversal: its
// depth (root is 0) and the key/value pairs it holds, in order.
type LevelNode struct {
	Depth  int
	Keys   []int32
	Values []int32
}

// Traverse walks the tree breadth-first, returning every node grouped
// by depth. An empty tree yields a nil slice. Used by the printer
// package; never mutates the store.
func (t *Tree) Traverse() ([]LevelNode, error) {
	if t.rootID == store.NoneID {
		return nil, nil
	}

	var out []LevelNode
	queue := []store.NodeID{t.rootID}
	depth := 0

	for len(queue) > 0 {
		var next []store.NodeID
		for _, id := range queue {
			n, err := t.store.Read(id)
			if err != nil {
				return nil, err
			}
			lv := LevelNode{
				Depth:  depth,
				Keys:   append([]int32(nil), n.Keys[:n.NumKeys]...),
				Values: append([]int32(nil), n.Values[:n.NumKeys]...),
			}
			out = append(out, lv)
			if !n.IsLeaf {
				for i := 0; i <= n.NumKeys; i++ {
					if n.Children[i] != store.NoneID {
						next = append(next, n.Children[i])
					}
				}
			}
		}
		queue = next
		depth++
	}

	return out, nil
}
