// Package modledger is the state-transition core of a token-based module
// marketplace: a fungible token ledger with delegated spending rights, and
// a settlement engine that converts a purchase into an atomic set of ledger
// mutations, a durable sale record, and replayable audit events.
package modledger

import (
	"context"
	"math/big"
	"time"

	"github.com/vitwit/modledger/bank"
	"github.com/vitwit/modledger/events"
	"github.com/vitwit/modledger/ledger"
	"github.com/vitwit/modledger/logger"
	"github.com/vitwit/modledger/metrics"
	"github.com/vitwit/modledger/registry"
	"github.com/vitwit/modledger/relay"
	"github.com/vitwit/modledger/sales"
	"github.com/vitwit/modledger/settlement"
	"github.com/vitwit/modledger/types"
)

// Marketplace wires the ledger, settlement engine, registry, relay store,
// and audit logs behind one caller-facing API. The surrounding execution
// environment is expected to serialize state-mutating calls and to
// authenticate the caller addresses handed in.
type Marketplace struct {
	ledger *ledger.Ledger
	engine *settlement.Engine
	events *events.Log
	sales  *sales.Store
	relay  *relay.Store

	bank     bank.Bank
	registry registry.Resolver
	custody  types.Address
	clock    func() time.Time
	logger   logger.Logger
	metrics  metrics.Recorder
}

// New creates a marketplace from a validated config. The full genesis
// supply is credited to the owner. Collaborators default to the in-memory
// implementations unless overridden by options.
func New(cfg *types.Config, opts ...Option) (*Marketplace, error) {
	if cfg == nil {
		return nil, &types.LedgerError{
			Code:    types.ErrInvalidConfiguration,
			Message: "config is required",
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Marketplace{
		logger:  logger.NoopLogger{},
		metrics: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.bank == nil {
		m.bank = bank.NewMemory()
	}
	if m.registry == nil {
		m.registry = registry.NewMemory()
	}

	m.events = events.NewLog()
	m.sales = sales.NewStore()
	m.relay = relay.NewStore(cfg.RelayAddress)
	m.ledger = ledger.New(cfg.Owner, cfg.TotalSupply, m.events)

	engine, err := settlement.NewEngine(settlement.Params{
		Owner:       cfg.Owner,
		Custody:     m.custody,
		Ledger:      m.ledger,
		Bank:        m.bank,
		Registry:    m.registry,
		Relay:       m.relay,
		Events:      m.events,
		Sales:       m.sales,
		TokenReward: cfg.TokenReward,
		SaleFee:     cfg.SaleFee,
		Clock:       m.clock,
		Logger:      m.logger,
		Metrics:     m.metrics,
	})
	if err != nil {
		return nil, err
	}
	m.engine = engine

	return m, nil
}

// Transfer moves tokens between accounts on behalf of from.
func (m *Marketplace) Transfer(from, to types.Address, amount *big.Int) error {
	return m.ledger.Transfer(from, to, amount)
}

// Approve sets spender's allowance over owner's tokens to exactly amount.
// The previous grant is overwritten, not added to.
func (m *Marketplace) Approve(owner, spender types.Address, amount *big.Int) error {
	return m.ledger.Approve(owner, spender, amount)
}

// TransferFrom moves owner's tokens to dst on behalf of spender, consuming
// the allowance.
func (m *Marketplace) TransferFrom(spender, owner, dst types.Address, amount *big.Int) error {
	return m.ledger.TransferFrom(spender, owner, dst, amount)
}

// BalanceOf returns the token balance, zero for unknown accounts.
func (m *Marketplace) BalanceOf(account types.Address) *big.Int {
	return m.ledger.BalanceOf(account)
}

// Allowance returns spender's remaining grant over owner's tokens.
func (m *Marketplace) Allowance(owner, spender types.Address) *big.Int {
	return m.ledger.Allowance(owner, spender)
}

// TotalSupply returns genesis supply plus all minted rewards.
func (m *Marketplace) TotalSupply() *big.Int {
	return m.ledger.TotalSupply()
}

// MakeSale settles the purchase of a listed module by buyer. The payment
// must equal the listed price exactly.
func (m *Marketplace) MakeSale(ctx context.Context, buyer types.Address, moduleID types.ModuleID, payment *big.Int) (*types.SaleRecord, error) {
	return m.engine.MakeSale(ctx, buyer, moduleID, payment)
}

// SetTokenReward overwrites the per-sale reward. Administrator only.
func (m *Marketplace) SetTokenReward(caller types.Address, value *big.Int) error {
	return m.engine.SetTokenReward(caller, value)
}

// TokenReward returns the current per-sale reward.
func (m *Marketplace) TokenReward() *big.Int {
	return m.engine.TokenReward()
}

// SetSaleFee overwrites the fee divisor. Administrator only; zero is
// rejected.
func (m *Marketplace) SetSaleFee(caller types.Address, value uint64) error {
	return m.engine.SetSaleFee(caller, value)
}

// SaleFee returns the current fee divisor.
func (m *Marketplace) SaleFee() uint64 {
	return m.engine.SaleFee()
}

// SetRelayContractAddress overwrites the relay address. Administrator only.
func (m *Marketplace) SetRelayContractAddress(caller types.Address, addr types.Address) error {
	return m.engine.SetRelayContractAddress(caller, addr)
}

// RelayContractAddress returns the stored relay address.
func (m *Marketplace) RelayContractAddress() types.Address {
	return m.engine.RelayContractAddress()
}

// CustodyAddress returns the account retaining network fees.
func (m *Marketplace) CustodyAddress() types.Address {
	return m.engine.CustodyAddress()
}

// Events returns the committed events with ordinals in [from, to).
func (m *Marketplace) Events(from, to uint64) []events.Event {
	return m.events.Range(from, to)
}

// AllEvents replays the full audit log from genesis.
func (m *Marketplace) AllEvents() []events.Event {
	return m.events.All()
}

// LicenseSales returns only the settlement events, in commit order.
func (m *Marketplace) LicenseSales() []events.Event {
	return m.events.LicenseSales()
}

// Sales returns every committed sale record in commit order.
func (m *Marketplace) Sales() []types.SaleRecord {
	return m.sales.All()
}

// Registry exposes the module lookup capability.
func (m *Marketplace) Registry() registry.Resolver {
	return m.registry
}

// Bank exposes the native-currency bank.
func (m *Marketplace) Bank() bank.Bank {
	return m.bank
}
