package sales

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitwit/modledger/types"
)

func TestStoreAppendAssignsIDs(t *testing.T) {
	s := NewStore()

	first := s.Append(types.SaleRecord{ModuleName: "a", Price: big.NewInt(1)})
	second := s.Append(types.SaleRecord{ModuleName: "b", Price: big.NewInt(2)})

	require.NotEmpty(t, first.ID)
	require.NotEmpty(t, second.ID)
	require.NotEqual(t, first.ID, second.ID)

	require.Equal(t, 2, s.Count())

	all := s.All()
	require.Len(t, all, 2)
	require.Equal(t, "a", all[0].ModuleName)
	require.Equal(t, "b", all[1].ModuleName)
}

func TestStoreRecordsAreImmutable(t *testing.T) {
	s := NewStore()

	rec := s.Append(types.SaleRecord{
		ModuleName:     "a",
		Price:          big.NewInt(50_000),
		RewardedTokens: big.NewInt(100),
		NetworkFee:     big.NewInt(500),
	})

	// mutating the returned record must not touch the committed entry
	rec.Price.SetInt64(1)
	rec.RewardedTokens.SetInt64(1)
	rec.NetworkFee.SetInt64(1)

	stored := s.All()[0]
	require.Equal(t, big.NewInt(50_000), stored.Price)
	require.Equal(t, big.NewInt(100), stored.RewardedTokens)
	require.Equal(t, big.NewInt(500), stored.NetworkFee)

	// neither must mutating a replayed copy
	stored.NetworkFee.SetInt64(2)
	require.Equal(t, big.NewInt(500), s.All()[0].NetworkFee)
}
