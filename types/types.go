package types

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Address identifies an account. Addresses are opaque to the ledger; the
// 20-byte Ethereum form is used purely as a stable, comparable key.
type Address = common.Address

// ZeroAddress is the sentinel account. Mints are recorded as transfers from it.
var ZeroAddress = common.Address{}

// HexToAddress parses a 0x-prefixed hex string into an Address.
func HexToAddress(s string) Address {
	return common.HexToAddress(s)
}

// ModuleID identifies a listed module inside the registry.
// The zero value means "not listed".
type ModuleID uint64

// IsZero reports whether the id is the not-listed sentinel.
func (id ModuleID) IsZero() bool {
	return id == 0
}

// Listing is a module offer as resolved from the registry. Read-only to the
// settlement core; the registry owns creation and updates.
type Listing struct {
	ModuleID       ModuleID `json:"moduleId"`
	SellerUsername string   `json:"sellerUsername"`
	ModuleName     string   `json:"moduleName"`
	Price          *big.Int `json:"price"`
	SellerAddress  Address  `json:"sellerAddress"`
	LicenseID      string   `json:"licenseId"`
}

// SaleRecord is the immutable audit entry for one completed purchase.
// Created exactly once per successful settlement, never mutated.
type SaleRecord struct {
	ID             string    `json:"id"`
	ModuleName     string    `json:"moduleName"`
	SellerUsername string    `json:"sellerUsername"`
	SellerAddress  Address   `json:"sellerAddress"`
	BuyerAddress   Address   `json:"buyerAddress"`
	Price          *big.Int  `json:"price"`
	SoldAt         time.Time `json:"soldAt"`
	RewardedTokens *big.Int  `json:"rewardedTokens"`
	NetworkFee     *big.Int  `json:"networkFee"`
	LicenseID      string    `json:"licenseId"`
}

// Config contains the construction-time parameters of the marketplace core.
type Config struct {
	// Owner is the administrator credential. Gated setters compare the
	// caller against this address.
	Owner Address `json:"owner" validate:"required"`

	// TotalSupply is minted to Owner at genesis. Fixed afterwards except
	// for reward minting.
	TotalSupply *big.Int `json:"totalSupply" validate:"required"`

	// TokenReward is minted to the seller on each successful sale.
	TokenReward *big.Int `json:"tokenReward" validate:"required"`

	// SaleFee is the fee divisor: networkFee = price / SaleFee,
	// integer truncation. Must be nonzero.
	SaleFee uint64 `json:"saleFee" validate:"required,gt=0"`

	// RelayAddress is the auxiliary routing contract. Stored and returned
	// as-is; this core never calls into it.
	RelayAddress Address `json:"relayAddress,omitempty"`
}

// Validate checks that the Config contains all required fields.
func (c *Config) Validate() error {
	if c.TotalSupply == nil {
		return &LedgerError{
			Code:    ErrInvalidConfiguration,
			Message: "config.totalSupply is required",
		}
	}

	if c.TokenReward == nil {
		return &LedgerError{
			Code:    ErrInvalidConfiguration,
			Message: "config.tokenReward is required",
		}
	}

	if err := validate.Struct(c); err != nil {
		return &LedgerError{
			Code:    ErrInvalidConfiguration,
			Message: fmt.Sprintf("invalid config: %v", err),
		}
	}

	if c.TotalSupply.Sign() < 0 {
		return &LedgerError{
			Code:    ErrInvalidConfiguration,
			Message: "config.totalSupply must not be negative",
		}
	}

	if c.TokenReward.Sign() < 0 {
		return &LedgerError{
			Code:    ErrInvalidConfiguration,
			Message: "config.tokenReward must not be negative",
		}
	}

	return nil
}
