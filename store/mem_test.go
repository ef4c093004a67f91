package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemStoreAllocateReadWrite(t *testing.T) {
	s := NewMemStore(4)

	n, err := s.Allocate(true)
	require.NoError(t, err)
	require.Equal(t, NodeID(0), n.ID)
	require.True(t, n.IsLeaf)
	require.Len(t, n.Keys, 4)
	require.Len(t, n.Children, 5)

	n.Keys[0] = 42
	n.Values[0] = 99
	n.NumKeys = 1
	require.NoError(t, s.Write(n))

	got, err := s.Read(n.ID)
	require.NoError(t, err)
	require.Equal(t, int32(42), got.Keys[0])
	require.Equal(t, int32(99), got.Values[0])
	require.Equal(t, 1, got.NumKeys)

	// Read returns an independent copy: mutating it must not affect the store.
	got.Keys[0] = -7
	again, err := s.Read(n.ID)
	require.NoError(t, err)
	require.Equal(t, int32(42), again.Keys[0])
}

func TestMemStoreFreeThenReadFails(t *testing.T) {
	s := NewMemStore(4)
	n, err := s.Allocate(true)
	require.NoError(t, err)

	require.NoError(t, s.Free(n.ID))
	_, err = s.Read(n.ID)
	require.Error(t, err)
}

func TestMemStoreRootRoundTrip(t *testing.T) {
	s := NewMemStore(4)
	require.Equal(t, NoneID, s.RootID())
	require.NoError(t, s.SetRootID(NodeID(3)))
	require.Equal(t, NodeID(3), s.RootID())
}
