// Package events provides the append-only audit trail of the marketplace
// core. Every committed balance movement and every settlement lands here in
// commit order, replayable from genesis.
package events

import (
	"math/big"
	"time"

	"github.com/vitwit/modledger/types"
)

// Kind discriminates event payloads.
type Kind string

const (
	KindTransfer    Kind = "transfer"
	KindLicenseSale Kind = "license_sale"
)

// Transfer records one balance movement. Mints carry the zero address as From.
type Transfer struct {
	From   types.Address `json:"from"`
	To     types.Address `json:"to"`
	Amount *big.Int      `json:"amount"`
}

// LicenseSale records one completed settlement. Field-for-field it mirrors
// the sale record written in the same commit.
type LicenseSale struct {
	ModuleName     string        `json:"moduleName"`
	SellerUsername string        `json:"sellerUsername"`
	SellerAddress  types.Address `json:"sellerAddress"`
	BuyerAddress   types.Address `json:"buyerAddress"`
	Price          *big.Int      `json:"price"`
	SoldAt         time.Time     `json:"soldAt"`
	RewardedTokens *big.Int      `json:"rewardedTokens"`
	NetworkFee     *big.Int      `json:"networkFee"`
	LicenseID      string        `json:"licenseId"`
}

// Event is one committed log entry. Ordinal is assigned at append time and
// increases by one per entry, starting at zero.
type Event struct {
	Ordinal     uint64       `json:"ordinal"`
	Kind        Kind         `json:"kind"`
	Transfer    *Transfer    `json:"transfer,omitempty"`
	LicenseSale *LicenseSale `json:"licenseSale,omitempty"`
}
