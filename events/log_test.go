package events

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitwit/modledger/types"
)

func transferAt(l *Log, n int64) Event {
	return l.AppendTransfer(Transfer{
		From:   types.HexToAddress("0x01"),
		To:     types.HexToAddress("0x02"),
		Amount: big.NewInt(n),
	})
}

func TestLogOrdinalsAreSequential(t *testing.T) {
	log := NewLog()

	for i := int64(0); i < 5; i++ {
		ev := transferAt(log, i)
		require.Equal(t, uint64(i), ev.Ordinal)
	}
	require.Equal(t, 5, log.Len())
}

func TestLogRange(t *testing.T) {
	log := NewLog()
	for i := int64(0); i < 10; i++ {
		transferAt(log, i)
	}

	got := log.Range(3, 6)
	require.Len(t, got, 3)
	require.Equal(t, uint64(3), got[0].Ordinal)
	require.Equal(t, uint64(5), got[2].Ordinal)

	// to is clamped to the committed range
	require.Len(t, log.Range(8, 100), 2)

	// empty and inverted ranges
	require.Nil(t, log.Range(4, 4))
	require.Nil(t, log.Range(6, 3))
	require.Nil(t, log.Range(50, 60))
}

func TestLogReplayFromGenesis(t *testing.T) {
	log := NewLog()
	transferAt(log, 1)
	log.AppendLicenseSale(LicenseSale{ModuleName: "mod", Price: big.NewInt(100)})
	transferAt(log, 2)

	all := log.All()
	require.Len(t, all, 3)
	require.Equal(t, KindTransfer, all[0].Kind)
	require.Equal(t, KindLicenseSale, all[1].Kind)
	require.Equal(t, KindTransfer, all[2].Kind)

	sales := log.LicenseSales()
	require.Len(t, sales, 1)
	require.Equal(t, uint64(1), sales[0].Ordinal)
	require.Equal(t, "mod", sales[0].LicenseSale.ModuleName)
}
