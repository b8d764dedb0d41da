// Package bank abstracts native-currency movement for the settlement
// engine. The interface exists so payout failures can be injected in tests
// without a real payment rail.
package bank

import (
	"context"
	"math/big"

	"github.com/vitwit/modledger/types"
)

// Bank moves native currency between accounts.
type Bank interface {
	// Transfer moves amount from one account to another. It either
	// commits fully or returns an error with no state change.
	Transfer(ctx context.Context, from, to types.Address, amount *big.Int) error

	// BalanceOf returns the account's native balance, zero for unknown
	// accounts.
	BalanceOf(ctx context.Context, account types.Address) (*big.Int, error)
}
