package registry

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/vitwit/modledger/types"
)

// Memory is an in-memory registry. Ids are assigned sequentially starting
// at 1 so the zero id stays free as the not-listed sentinel.
type Memory struct {
	mu       sync.RWMutex
	nextID   types.ModuleID
	listings map[types.ModuleID]*types.Listing
	byKey    map[string]types.ModuleID
}

// NewMemory creates an empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{
		nextID:   1,
		listings: make(map[types.ModuleID]*types.Listing),
		byKey:    make(map[string]types.ModuleID),
	}
}

// ListModule creates a listing under the composite key and returns its
// assigned id. Composite keys are unique; relisting an existing key fails.
func (m *Memory) ListModule(price *big.Int, sellerUsername, moduleName, compositeKey, licenseID string, seller types.Address) (types.ModuleID, error) {
	if price == nil || price.Sign() < 0 {
		return 0, &types.LedgerError{
			Code:    types.ErrInvalidAmount,
			Message: "listing price must be a non-negative integer",
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byKey[compositeKey]; exists {
		return 0, &types.LedgerError{
			Code:    types.ErrDuplicateListing,
			Message: fmt.Sprintf("module %q is already listed", compositeKey),
		}
	}

	id := m.nextID
	m.nextID++

	m.listings[id] = &types.Listing{
		ModuleID:       id,
		SellerUsername: sellerUsername,
		ModuleName:     moduleName,
		Price:          new(big.Int).Set(price),
		SellerAddress:  seller,
		LicenseID:      licenseID,
	}
	m.byKey[compositeKey] = id
	return id, nil
}

// Resolve returns a copy of the listing, or nil for the zero or an unknown
// id.
func (m *Memory) Resolve(id types.ModuleID) *types.Listing {
	if id.IsZero() {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	listing := m.listings[id]
	if listing == nil {
		return nil
	}

	out := *listing
	out.Price = new(big.Int).Set(listing.Price)
	return &out
}

// GetModuleID maps the composite key to its id, zero when not listed.
func (m *Memory) GetModuleID(compositeKey string) types.ModuleID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byKey[compositeKey]
}
