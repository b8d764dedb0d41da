package registry

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitwit/modledger/types"
)

func TestMemoryListAndResolve(t *testing.T) {
	seller := types.HexToAddress("0x0c")
	reg := NewMemory()

	id, err := reg.ListModule(big.NewInt(50_000), "alice", "fastsort", "alice/fastsort", "0x00000001", seller)
	require.NoError(t, err)
	require.False(t, id.IsZero())

	require.Equal(t, id, reg.GetModuleID("alice/fastsort"))

	listing := reg.Resolve(id)
	require.NotNil(t, listing)
	require.Equal(t, "alice", listing.SellerUsername)
	require.Equal(t, "fastsort", listing.ModuleName)
	require.Equal(t, big.NewInt(50_000), listing.Price)
	require.Equal(t, seller, listing.SellerAddress)
	require.Equal(t, "0x00000001", listing.LicenseID)

	// resolved listings are copies
	listing.Price.SetInt64(1)
	require.Equal(t, big.NewInt(50_000), reg.Resolve(id).Price)
}

func TestMemoryZeroIDIsSentinel(t *testing.T) {
	reg := NewMemory()
	require.Nil(t, reg.Resolve(0))
	require.Nil(t, reg.Resolve(42))
	require.True(t, reg.GetModuleID("nobody/nothing").IsZero())
}

func TestMemoryDuplicateKeyRejected(t *testing.T) {
	seller := types.HexToAddress("0x0c")
	reg := NewMemory()

	_, err := reg.ListModule(big.NewInt(1), "alice", "fastsort", "alice/fastsort", "0x01", seller)
	require.NoError(t, err)

	_, err = reg.ListModule(big.NewInt(2), "alice", "fastsort", "alice/fastsort", "0x01", seller)
	require.True(t, errors.Is(err, &types.LedgerError{Code: types.ErrDuplicateListing}))
}
