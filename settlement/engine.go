// Package settlement orchestrates purchases: it validates payment against
// the registry listing, splits the fee, routes native currency, mints the
// seller reward, and records the sale.
package settlement

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vitwit/modledger/bank"
	"github.com/vitwit/modledger/events"
	"github.com/vitwit/modledger/ledger"
	"github.com/vitwit/modledger/logger"
	"github.com/vitwit/modledger/metrics"
	"github.com/vitwit/modledger/registry"
	"github.com/vitwit/modledger/relay"
	"github.com/vitwit/modledger/sales"
	"github.com/vitwit/modledger/types"
)

// DefaultCustodyAddress holds retained network fees when no custody account
// is configured.
var DefaultCustodyAddress = common.BytesToAddress([]byte("modledger/treasury"))

// Params wires an Engine. All collaborators are required except Clock,
// Logger, and Metrics, which default to time.Now and no-ops.
type Params struct {
	Owner    types.Address
	Custody  types.Address
	Ledger   *ledger.Ledger
	Bank     bank.Bank
	Registry registry.Resolver
	Relay    *relay.Store
	Events   *events.Log
	Sales    *sales.Store

	TokenReward *big.Int
	SaleFee     uint64

	Clock   func() time.Time
	Logger  logger.Logger
	Metrics metrics.Recorder
}

// policy is the mutable marketplace configuration. It lives in one struct,
// guarded by one mutex, and changes only through the gated setters.
type policy struct {
	tokenReward *big.Int
	saleFee     uint64
}

// Engine converts one purchase request into an atomic set of ledger and log
// mutations.
type Engine struct {
	owner   types.Address
	custody types.Address

	ledger   *ledger.Ledger
	bank     bank.Bank
	registry registry.Resolver
	relay    *relay.Store
	events   *events.Log
	sales    *sales.Store

	mu     sync.RWMutex
	policy policy

	clock   func() time.Time
	logger  logger.Logger
	metrics metrics.Recorder
}

// NewEngine creates a settlement engine from validated parameters.
func NewEngine(p Params) (*Engine, error) {
	if p.SaleFee == 0 {
		return nil, &types.LedgerError{
			Code:    types.ErrInvalidConfiguration,
			Message: "sale fee divisor must be nonzero",
		}
	}
	if p.TokenReward == nil || p.TokenReward.Sign() < 0 {
		return nil, &types.LedgerError{
			Code:    types.ErrInvalidConfiguration,
			Message: "token reward must be a non-negative integer",
		}
	}

	custody := p.Custody
	if custody == (types.Address{}) {
		custody = DefaultCustodyAddress
	}

	clock := p.Clock
	if clock == nil {
		clock = time.Now
	}

	log := p.Logger
	if log == nil {
		log = logger.NoopLogger{}
	}

	rec := p.Metrics
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}

	e := &Engine{
		owner:    p.Owner,
		custody:  custody,
		ledger:   p.Ledger,
		bank:     p.Bank,
		registry: p.Registry,
		relay:    p.Relay,
		events:   p.Events,
		sales:    p.Sales,
		policy: policy{
			tokenReward: new(big.Int).Set(p.TokenReward),
			saleFee:     p.SaleFee,
		},
		clock:   clock,
		logger:  log,
		metrics: rec,
	}
	return e, nil
}

// MakeSale settles one purchase of the given module. The payment must match
// the listed price exactly. On success the seller receives the price minus
// the network fee in native currency plus the current token reward, and
// exactly one sale record and one LicenseSale event are committed. On
// failure nothing is.
func (e *Engine) MakeSale(ctx context.Context, buyer types.Address, moduleID types.ModuleID, payment *big.Int) (*types.SaleRecord, error) {
	start := e.clock()

	rec, err := e.makeSale(ctx, buyer, moduleID, payment)

	outcome := "ok"
	if err != nil {
		outcome = types.ErrorCode(err)
	}
	e.metrics.IncCounter("settlement", map[string]string{"outcome": outcome})
	e.metrics.ObserveLatency("make_sale", e.clock().Sub(start), map[string]string{"outcome": outcome})

	return rec, err
}

func (e *Engine) makeSale(ctx context.Context, buyer types.Address, moduleID types.ModuleID, payment *big.Int) (*types.SaleRecord, error) {
	listing := e.registry.Resolve(moduleID)
	if listing == nil {
		return nil, &types.LedgerError{
			Code:    types.ErrModuleNotFound,
			Message: fmt.Sprintf("module %d is not listed", moduleID),
		}
	}

	// Exact-match payment policy. Overpayment is rejected rather than
	// refunded; see DESIGN.md.
	if payment == nil || payment.Cmp(listing.Price) != 0 {
		return nil, &types.LedgerError{
			Code:    types.ErrIncorrectPayment,
			Message: fmt.Sprintf("payment must equal the listed price %s", listing.Price),
		}
	}

	// Truncating division. A divisor above the price rounds the fee to
	// zero.
	reward, saleFee := e.currentPolicy()
	networkFee := new(big.Int).Div(listing.Price, new(big.Int).SetUint64(saleFee))
	sellerPayout := new(big.Int).Sub(listing.Price, networkFee)

	// Native moves first: they are the only fallible mutations, so
	// ordering them ahead of mint and log appends keeps failed
	// settlements free of partial state.
	if err := e.bank.Transfer(ctx, buyer, e.custody, listing.Price); err != nil {
		return nil, &types.LedgerError{
			Code:    types.ErrPayoutFailed,
			Message: fmt.Sprintf("escrow of payment failed: %v", err),
		}
	}

	if err := e.bank.Transfer(ctx, e.custody, listing.SellerAddress, sellerPayout); err != nil {
		if refundErr := e.bank.Transfer(ctx, e.custody, buyer, listing.Price); refundErr != nil {
			e.logger.Error("refund after failed payout did not commit", map[string]any{
				"buyer":  buyer.Hex(),
				"amount": listing.Price.String(),
				"error":  refundErr.Error(),
			})
		}
		return nil, &types.LedgerError{
			Code:    types.ErrPayoutFailed,
			Message: fmt.Sprintf("seller payout failed: %v", err),
		}
	}

	if err := e.ledger.Mint(listing.SellerAddress, reward); err != nil {
		return nil, err
	}

	soldAt := e.clock()
	record := e.sales.Append(types.SaleRecord{
		ModuleName:     listing.ModuleName,
		SellerUsername: listing.SellerUsername,
		SellerAddress:  listing.SellerAddress,
		BuyerAddress:   buyer,
		Price:          new(big.Int).Set(listing.Price),
		SoldAt:         soldAt,
		RewardedTokens: new(big.Int).Set(reward),
		NetworkFee:     networkFee,
		LicenseID:      listing.LicenseID,
	})

	e.events.AppendLicenseSale(events.LicenseSale{
		ModuleName:     record.ModuleName,
		SellerUsername: record.SellerUsername,
		SellerAddress:  record.SellerAddress,
		BuyerAddress:   record.BuyerAddress,
		Price:          new(big.Int).Set(record.Price),
		SoldAt:         record.SoldAt,
		RewardedTokens: new(big.Int).Set(record.RewardedTokens),
		NetworkFee:     new(big.Int).Set(record.NetworkFee),
		LicenseID:      record.LicenseID,
	})

	e.logger.Info("sale settled", map[string]any{
		"module":    record.ModuleName,
		"seller":    record.SellerAddress.Hex(),
		"buyer":     record.BuyerAddress.Hex(),
		"price":     types.FormatUnits(record.Price, types.TokenDecimals),
		"fee":       types.FormatUnits(record.NetworkFee, types.TokenDecimals),
		"reward":    types.FormatUnits(record.RewardedTokens, types.TokenDecimals),
		"licenseId": record.LicenseID,
	})

	return &record, nil
}

func (e *Engine) currentPolicy() (*big.Int, uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return new(big.Int).Set(e.policy.tokenReward), e.policy.saleFee
}

// SetTokenReward overwrites the per-sale reward. Administrator only; the
// new value applies to subsequent sales.
func (e *Engine) SetTokenReward(caller types.Address, value *big.Int) error {
	if err := e.authorize(caller); err != nil {
		return err
	}
	if value == nil || value.Sign() < 0 {
		return &types.LedgerError{
			Code:    types.ErrInvalidConfiguration,
			Message: "token reward must be a non-negative integer",
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.policy.tokenReward = new(big.Int).Set(value)
	return nil
}

// TokenReward returns the current per-sale reward.
func (e *Engine) TokenReward() *big.Int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return new(big.Int).Set(e.policy.tokenReward)
}

// SetSaleFee overwrites the fee divisor. Administrator only; zero is
// rejected because the fee computation divides by it.
func (e *Engine) SetSaleFee(caller types.Address, value uint64) error {
	if err := e.authorize(caller); err != nil {
		return err
	}
	if value == 0 {
		return &types.LedgerError{
			Code:    types.ErrInvalidConfiguration,
			Message: "sale fee divisor must be nonzero",
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.policy.saleFee = value
	return nil
}

// SaleFee returns the current fee divisor.
func (e *Engine) SaleFee() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.policy.saleFee
}

// SetRelayContractAddress overwrites the stored relay address.
// Administrator only. The address is not validated beyond the caller check.
func (e *Engine) SetRelayContractAddress(caller types.Address, addr types.Address) error {
	if err := e.authorize(caller); err != nil {
		return err
	}
	e.relay.SetAddress(addr)
	return nil
}

// RelayContractAddress returns the stored relay address.
func (e *Engine) RelayContractAddress() types.Address {
	return e.relay.Address()
}

// CustodyAddress returns the account holding retained network fees.
func (e *Engine) CustodyAddress() types.Address {
	return e.custody
}

func (e *Engine) authorize(caller types.Address) error {
	if caller != e.owner {
		return &types.LedgerError{
			Code:    types.ErrUnauthorized,
			Message: fmt.Sprintf("caller %s is not the owner", caller),
		}
	}
	return nil
}
