package relay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitwit/modledger/types"
)

func TestStoreHoldsSeededAddress(t *testing.T) {
	initial := types.HexToAddress("0x4000000000000000000000000000000000000001")
	s := NewStore(initial)
	require.Equal(t, initial, s.Address())
}

func TestStoreSetOverwrites(t *testing.T) {
	initial := types.HexToAddress("0x4000000000000000000000000000000000000001")
	next := types.HexToAddress("0xdf230f62739bedcb1bed428906232a44bc37de3a")

	s := NewStore(initial)
	s.SetAddress(next)
	require.Equal(t, next, s.Address())

	// set it back
	s.SetAddress(initial)
	require.Equal(t, initial, s.Address())
}

func TestStoreAcceptsOpaqueValues(t *testing.T) {
	s := NewStore(types.ZeroAddress)
	require.Equal(t, types.ZeroAddress, s.Address())

	// no reachability or code checks; any address value sticks
	unknown := types.HexToAddress("0x00000000000000000000000000000000deadbeef")
	s.SetAddress(unknown)
	require.Equal(t, unknown, s.Address())
}
