// Package ledger implements the fungible token ledger: per-account balances,
// delegated allowances, and reward minting. Every committed balance movement
// is appended to the shared event log.
package ledger

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/vitwit/modledger/events"
	"github.com/vitwit/modledger/types"
)

// Ledger tracks balances and allowances. The surrounding environment
// serializes state-mutating calls; the mutex keeps individual operations
// consistent under concurrent reads.
type Ledger struct {
	mu          sync.RWMutex
	balances    map[types.Address]*big.Int
	allowances  map[types.Address]map[types.Address]*big.Int
	totalSupply *big.Int
	log         *events.Log
}

// New creates a ledger with the full genesis supply credited to owner.
// Genesis does not emit a transfer event; only post-genesis movements do.
func New(owner types.Address, totalSupply *big.Int, log *events.Log) *Ledger {
	l := &Ledger{
		balances:    make(map[types.Address]*big.Int),
		allowances:  make(map[types.Address]map[types.Address]*big.Int),
		totalSupply: new(big.Int).Set(totalSupply),
		log:         log,
	}
	l.balances[owner] = new(big.Int).Set(totalSupply)
	return l
}

// Transfer moves amount from one account to another. The total supply is
// unchanged. A Transfer event is appended on success.
func (l *Ledger) Transfer(from, to types.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance(from).Cmp(amount) < 0 {
		return &types.LedgerError{
			Code:    types.ErrInsufficientBalance,
			Message: fmt.Sprintf("balance of %s is below %s", from, amount),
		}
	}

	l.move(from, to, amount)
	l.log.AppendTransfer(events.Transfer{From: from, To: to, Amount: new(big.Int).Set(amount)})
	return nil
}

// Approve sets the spender's allowance over the owner's funds to exactly
// amount, overwriting any previous grant.
//
// The overwrite is deliberate and matches the widely deployed token
// semantic. It carries the known approval race: changing a nonzero
// allowance can be front-run by a spend of the old value plus a spend of
// the new one. Callers who care should set the allowance to zero first.
func (l *Ledger) Approve(owner, spender types.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	grants := l.allowances[owner]
	if grants == nil {
		grants = make(map[types.Address]*big.Int)
		l.allowances[owner] = grants
	}
	grants[spender] = new(big.Int).Set(amount)
	return nil
}

// TransferFrom moves amount from owner to dst on behalf of spender,
// consuming the spender's allowance. Both the allowance and the balance are
// checked before anything mutates, so a failure leaves all state untouched.
func (l *Ledger) TransferFrom(spender, owner, dst types.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	granted := l.allowance(owner, spender)
	if granted.Cmp(amount) < 0 {
		return &types.LedgerError{
			Code:    types.ErrInsufficientAllowance,
			Message: fmt.Sprintf("allowance of %s for %s is below %s", owner, spender, amount),
		}
	}

	if l.balance(owner).Cmp(amount) < 0 {
		return &types.LedgerError{
			Code:    types.ErrInsufficientBalance,
			Message: fmt.Sprintf("balance of %s is below %s", owner, amount),
		}
	}

	l.allowances[owner][spender] = new(big.Int).Sub(granted, amount)
	l.move(owner, dst, amount)
	l.log.AppendTransfer(events.Transfer{From: owner, To: dst, Amount: new(big.Int).Set(amount)})
	return nil
}

// Mint credits amount to the account and grows the total supply by the same
// amount. It is the only supply-expanding operation and is reserved for the
// settlement engine's reward minting. The event records the zero address as
// the source.
func (l *Ledger) Mint(to types.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.credit(to, amount)
	l.totalSupply.Add(l.totalSupply, amount)
	l.log.AppendTransfer(events.Transfer{From: types.ZeroAddress, To: to, Amount: new(big.Int).Set(amount)})
	return nil
}

// BalanceOf returns the account's balance, zero for unknown accounts.
func (l *Ledger) BalanceOf(account types.Address) *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(big.Int).Set(l.balance(account))
}

// Allowance returns the spender's remaining grant over the owner's funds,
// zero when none was made.
func (l *Ledger) Allowance(owner, spender types.Address) *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(big.Int).Set(l.allowance(owner, spender))
}

// TotalSupply returns the current supply: genesis plus all minted rewards.
func (l *Ledger) TotalSupply() *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(big.Int).Set(l.totalSupply)
}

// balance returns the stored balance without copying. Callers hold l.mu.
func (l *Ledger) balance(account types.Address) *big.Int {
	if b := l.balances[account]; b != nil {
		return b
	}
	return big.NewInt(0)
}

// allowance returns the stored grant without copying. Callers hold l.mu.
func (l *Ledger) allowance(owner, spender types.Address) *big.Int {
	if grants := l.allowances[owner]; grants != nil {
		if a := grants[spender]; a != nil {
			return a
		}
	}
	return big.NewInt(0)
}

// move debits from and credits to. Callers hold l.mu and have checked the
// source balance.
func (l *Ledger) move(from, to types.Address, amount *big.Int) {
	l.balances[from] = new(big.Int).Sub(l.balance(from), amount)
	l.credit(to, amount)
}

func (l *Ledger) credit(to types.Address, amount *big.Int) {
	l.balances[to] = new(big.Int).Add(l.balance(to), amount)
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return &types.LedgerError{
			Code:    types.ErrInvalidAmount,
			Message: "amount must be a non-negative integer",
		}
	}
	return nil
}
