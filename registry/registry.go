// Package registry defines the lookup capability the settlement engine
// consumes, plus an in-memory registry carrying the listing write path.
package registry

import (
	"github.com/vitwit/modledger/types"
)

// Resolver is the read-only view the settlement engine depends on. Listing
// creation, pricing updates, and ownership transfer belong to the registry
// implementation behind it.
type Resolver interface {
	// Resolve returns the listing for a module id, or nil when the id is
	// zero or unknown.
	Resolve(id types.ModuleID) *types.Listing

	// GetModuleID maps a "sellerUsername/moduleName" composite key to a
	// module id, zero when not listed.
	GetModuleID(compositeKey string) types.ModuleID
}
