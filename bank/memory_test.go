package bank

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitwit/modledger/types"
)

func TestMemoryTransfer(t *testing.T) {
	ctx := context.Background()
	a := types.HexToAddress("0x0a")
	b := types.HexToAddress("0x0b")

	m := NewMemory()
	m.Deposit(a, big.NewInt(1_000))

	require.NoError(t, m.Transfer(ctx, a, b, big.NewInt(400)))

	balA, err := m.BalanceOf(ctx, a)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(600), balA)

	balB, err := m.BalanceOf(ctx, b)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(400), balB)
}

func TestMemoryTransferInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	a := types.HexToAddress("0x0a")
	b := types.HexToAddress("0x0b")

	m := NewMemory()
	m.Deposit(a, big.NewInt(100))

	err := m.Transfer(ctx, a, b, big.NewInt(101))
	require.True(t, errors.Is(err, &types.LedgerError{Code: types.ErrInsufficientFunds}))

	balA, _ := m.BalanceOf(ctx, a)
	require.Equal(t, big.NewInt(100), balA)
	balB, _ := m.BalanceOf(ctx, b)
	require.Zero(t, balB.Sign())
}
