// Package relay stores the address of the external relay contract. The
// core never calls into the relay; it only holds and returns the pointer.
package relay

import (
	"sync"

	"github.com/vitwit/modledger/types"
)

// Store holds the relay contract address. The address is accepted as
// opaque; no reachability or code checks are made. Administrator gating
// lives in the settlement engine, which owns the owner credential.
type Store struct {
	mu   sync.RWMutex
	addr types.Address
}

// NewStore creates a store seeded with the initial relay address.
func NewStore(addr types.Address) *Store {
	return &Store{addr: addr}
}

// Address returns the current relay contract address.
func (s *Store) Address() types.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// SetAddress overwrites the relay contract address.
func (s *Store) SetAddress(addr types.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addr = addr
}
