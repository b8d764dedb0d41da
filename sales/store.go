// Package sales keeps the append-only log of completed sales. Records are
// immutable once appended; there is no update or delete path.
package sales

import (
	"math/big"
	"sync"

	"github.com/google/uuid"

	"github.com/vitwit/modledger/types"
)

// Store is the in-memory sale record log.
type Store struct {
	mu      sync.RWMutex
	records []types.SaleRecord
}

// NewStore creates an empty sale record store.
func NewStore() *Store {
	return &Store{}
}

// Append assigns the record an id and commits it. The returned record does
// not alias the stored one, so callers cannot mutate the committed entry.
func (s *Store) Append(rec types.SaleRecord) types.SaleRecord {
	rec = cloneRecord(rec)
	rec.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return cloneRecord(rec)
}

// Count returns the number of committed sale records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// All returns a copy of every sale record in commit order.
func (s *Store) All() []types.SaleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.SaleRecord, len(s.records))
	for i, rec := range s.records {
		out[i] = cloneRecord(rec)
	}
	return out
}

// cloneRecord copies the record's amount pointers so stored entries never
// share big.Int values with callers.
func cloneRecord(rec types.SaleRecord) types.SaleRecord {
	if rec.Price != nil {
		rec.Price = new(big.Int).Set(rec.Price)
	}
	if rec.RewardedTokens != nil {
		rec.RewardedTokens = new(big.Int).Set(rec.RewardedTokens)
	}
	if rec.NetworkFee != nil {
		rec.NetworkFee = new(big.Int).Set(rec.NetworkFee)
	}
	return rec
}
