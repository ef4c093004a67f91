package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"btreedb/kerr"
)

// FileStore is the file-backed node store. A node ID is a slot index
// into a single binary file. The file begins with a header of two
// machine words — the allocated slot count, then the current root
// slot index (or NoneID) — followed by one fixed-size record per slot
// at offset header_size + id*slot_size.
//
// Writes go through os.File.WriteAt, an unbuffered syscall, so a
// subsequent ReadAt of the same offset in the same process already
// observes the new bytes without an explicit flush; Sync is only
// needed (and only called) on Close, matching spec §4.1's "no
// durability guaranteed" stance.
type FileStore struct {
	file      *os.File
	order     int
	slotSize  int
	slotCount int64
	root      NodeID
}

const (
	wordSize   = 8
	headerSize = 2 * wordSize // slot count, root id
)

// slotSizeFor computes the fixed record size for a tree of order t: n_keys
// + is_leaf(padded) + own_id + t keys + t values + (t+1) child ids. The
// record carries one slot beyond the logical t-1 key / t child maximum,
// matching store.NewNode's headroom for a node caught mid-split or
// mid-merge, so a FileStore round-trips the same transient shapes a
// MemStore does.
func slotSizeFor(order int) int {
	return wordSize /* n_keys */ + wordSize /* is_leaf, padded */ + wordSize /* own_id */ +
		order*4 /* keys */ + order*4 /* values */ + (order+1)*4 /* children */
}

// OpenFileStore opens (or creates) the backing file for a tree of the
// given order. mode follows the C fopen-style vocabulary from
// btree_create(order, filename, mode): a mode containing "w" truncates
// any existing file, anything else opens for read/write, creating the
// file if absent. If the file already holds a header (i.e. it is
// being reopened rather than created), the slot count and root ID are
// read back from it, resolving the root-recovery open question in
// spec §9/§6 — the caller does not need to know the root out of band.
func OpenFileStore(path string, order int, mode string) (*FileStore, error) {
	if order < 3 {
		return nil, fmt.Errorf("store: open file store: order %d: %w", order, kerr.ErrInvalidParam)
	}

	flag := os.O_RDWR | os.O_CREATE
	if strings.Contains(mode, "w") {
		flag |= os.O_TRUNC
	}
	file, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, kerr.ErrIO)
	}

	fs := &FileStore{
		file:     file,
		order:    order,
		slotSize: slotSizeFor(order),
		root:     NoneID,
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("store: stat %s: %w", path, kerr.ErrIO)
	}

	if info.Size() >= headerSize {
		if err := fs.readHeader(); err != nil {
			file.Close()
			return nil, err
		}
	} else if err := fs.writeHeader(); err != nil {
		file.Close()
		return nil, err
	}

	return fs, nil
}

func (s *FileStore) readHeader() error {
	buf := make([]byte, headerSize)
	if _, err := s.file.ReadAt(buf, 0); err != nil {
		return fmt.Errorf("store: read header: %w", kerr.ErrIO)
	}
	s.slotCount = int64(binary.LittleEndian.Uint64(buf[0:8]))
	s.root = NodeID(int64(binary.LittleEndian.Uint64(buf[8:16])))
	return nil
}

func (s *FileStore) writeHeader() error {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(s.slotCount))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(s.root))
	if _, err := s.file.WriteAt(buf, 0); err != nil {
		return fmt.Errorf("store: write header: %w", kerr.ErrIO)
	}
	return nil
}

func (s *FileStore) Order() int { return s.order }

func (s *FileStore) offset(id NodeID) int64 {
	return headerSize + int64(id)*int64(s.slotSize)
}

func (s *FileStore) Allocate(isLeaf bool) (*Node, error) {
	n := NewNode(s.order, isLeaf)
	n.ID = NodeID(s.slotCount)
	s.slotCount++
	if err := s.writeHeader(); err != nil {
		return nil, err
	}
	if err := s.Write(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *FileStore) Read(id NodeID) (*Node, error) {
	if id < 0 || int64(id) >= s.slotCount {
		return nil, fmt.Errorf("store: read node %d: %w", id, kerr.ErrInvalidParam)
	}
	buf := make([]byte, s.slotSize)
	if _, err := s.file.ReadAt(buf, s.offset(id)); err != nil {
		return nil, fmt.Errorf("store: read node %d: %w", id, kerr.ErrIO)
	}
	return decodeNode(buf, s.order, id)
}

func (s *FileStore) Write(n *Node) error {
	if n.ID < 0 || int64(n.ID) >= s.slotCount {
		return fmt.Errorf("store: write node %d: %w", n.ID, kerr.ErrInvalidParam)
	}
	buf := encodeNode(n, s.slotSize)
	if _, err := s.file.WriteAt(buf, s.offset(n.ID)); err != nil {
		return fmt.Errorf("store: write node %d: %w", n.ID, kerr.ErrIO)
	}
	return nil
}

// Free does not reclaim the slot. spec §4.1/§9: the design as
// specified does not free file slots — tombstoning or compaction is
// an explicit open question left to a production follow-up, not
// something this store guesses at. The slot's bytes are zeroed so a
// stray read of a freed ID is at least not mistaken for live data.
func (s *FileStore) Free(id NodeID) error {
	if id < 0 || int64(id) >= s.slotCount {
		return fmt.Errorf("store: free node %d: %w", id, kerr.ErrInvalidParam)
	}
	buf := make([]byte, s.slotSize)
	if _, err := s.file.WriteAt(buf, s.offset(id)); err != nil {
		return fmt.Errorf("store: free node %d: %w", id, kerr.ErrIO)
	}
	return nil
}

func (s *FileStore) RootID() NodeID { return s.root }

func (s *FileStore) SetRootID(id NodeID) error {
	s.root = id
	return s.writeHeader()
}

func (s *FileStore) Close() error {
	if s.file == nil {
		return nil
	}
	if err := s.file.Sync(); err != nil {
		s.file.Close()
		return fmt.Errorf("store: sync on close: %w", kerr.ErrIO)
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return fmt.Errorf("store: close: %w", kerr.ErrIO)
	}
	return nil
}

// encodeNode serializes n into a slotSize-byte record:
// n_keys(8) | is_leaf(8, padded) | own_id(8) | keys(4 each) | values(4 each) | children(4 each).
func encodeNode(n *Node, slotSize int) []byte {
	buf := make([]byte, slotSize)
	off := 0

	binary.LittleEndian.PutUint64(buf[off:], uint64(n.NumKeys))
	off += wordSize

	if n.IsLeaf {
		buf[off] = 1
	}
	off += wordSize

	binary.LittleEndian.PutUint64(buf[off:], uint64(n.ID))
	off += wordSize

	for _, k := range n.Keys {
		binary.LittleEndian.PutUint32(buf[off:], uint32(k))
		off += 4
	}
	for _, v := range n.Values {
		binary.LittleEndian.PutUint32(buf[off:], uint32(v))
		off += 4
	}
	for _, c := range n.Children {
		binary.LittleEndian.PutUint32(buf[off:], uint32(int32(c)))
		off += 4
	}

	return buf
}

func decodeNode(buf []byte, order int, id NodeID) (*Node, error) {
	if len(buf) != slotSizeFor(order) {
		return nil, fmt.Errorf("store: decode node %d: record size mismatch: %w", id, kerr.ErrIO)
	}

	n := &Node{ID: id}
	off := 0

	n.NumKeys = int(binary.LittleEndian.Uint64(buf[off:]))
	off += wordSize

	n.IsLeaf = buf[off] == 1
	off += wordSize

	storedID := NodeID(int64(binary.LittleEndian.Uint64(buf[off:])))
	off += wordSize
	if storedID != id {
		return nil, fmt.Errorf("store: decode node %d: id mismatch (stored %d): %w", id, storedID, kerr.ErrIO)
	}

	n.Keys = make([]int32, order)
	for i := range n.Keys {
		n.Keys[i] = int32(binary.LittleEndian.Uint32(buf[off:]))
		off += 4
	}

	n.Values = make([]int32, order)
	for i := range n.Values {
		n.Values[i] = int32(binary.LittleEndian.Uint32(buf[off:]))
		off += 4
	}

	n.Children = make([]NodeID, order+1)
	for i := range n.Children {
		n.Children[i] = NodeID(int32(binary.LittleEndian.Uint32(buf[off:])))
		off += 4
	}

	return n, nil
}
