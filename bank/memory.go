package bank

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/vitwit/modledger/types"
)

// Memory is the in-memory Bank used for single-process deployments and
// tests.
type Memory struct {
	mu       sync.RWMutex
	balances map[types.Address]*big.Int
}

// NewMemory creates an empty in-memory bank.
func NewMemory() *Memory {
	return &Memory{balances: make(map[types.Address]*big.Int)}
}

// Deposit credits the account out of thin air. Test and genesis helper; the
// settlement engine itself only ever calls Transfer.
func (m *Memory) Deposit(account types.Address, amount *big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[account] = new(big.Int).Add(m.balance(account), amount)
}

// Transfer moves amount between accounts, failing without mutation when the
// source balance is short.
func (m *Memory) Transfer(ctx context.Context, from, to types.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return &types.LedgerError{
			Code:    types.ErrInvalidAmount,
			Message: "amount must be a non-negative integer",
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.balance(from).Cmp(amount) < 0 {
		return &types.LedgerError{
			Code:    types.ErrInsufficientFunds,
			Message: fmt.Sprintf("native balance of %s is below %s", from, amount),
		}
	}

	m.balances[from] = new(big.Int).Sub(m.balance(from), amount)
	m.balances[to] = new(big.Int).Add(m.balance(to), amount)
	return nil
}

// BalanceOf returns the account's native balance.
func (m *Memory) BalanceOf(ctx context.Context, account types.Address) (*big.Int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return new(big.Int).Set(m.balance(account)), nil
}

func (m *Memory) balance(account types.Address) *big.Int {
	if b := m.balances[account]; b != nil {
		return b
	}
	return big.NewInt(0)
}
