package ledger

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vitwit/modledger/events"
	"github.com/vitwit/modledger/types"
)

var (
	owner   = types.HexToAddress("0x1000000000000000000000000000000000000001")
	alice   = types.HexToAddress("0x1000000000000000000000000000000000000002")
	bob     = types.HexToAddress("0x1000000000000000000000000000000000000003")
	genesis = big.NewInt(1_000_000)
)

type LedgerSuite struct {
	suite.Suite
	log    *events.Log
	ledger *Ledger
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.log = events.NewLog()
	s.ledger = New(owner, genesis, s.log)
}

func (s *LedgerSuite) TestGenesis() {
	s.Equal(genesis, s.ledger.TotalSupply())
	s.Equal(genesis, s.ledger.BalanceOf(owner))

	s.Run("unknown accounts read zero", func() {
		s.Zero(s.ledger.BalanceOf(alice).Sign())
		s.Zero(s.ledger.Allowance(owner, alice).Sign())
	})

	s.Run("genesis emits no events", func() {
		s.Equal(0, s.log.Len())
	})
}

func (s *LedgerSuite) TestTransfer() {
	s.Run("moves exactly the requested amount", func() {
		s.Require().NoError(s.ledger.Transfer(owner, alice, big.NewInt(500)))

		s.Equal(big.NewInt(999_500), s.ledger.BalanceOf(owner))
		s.Equal(big.NewInt(500), s.ledger.BalanceOf(alice))
		s.Equal(genesis, s.ledger.TotalSupply())
	})

	s.Run("emits one transfer event", func() {
		all := s.log.All()
		s.Require().Len(all, 1)
		s.Equal(events.KindTransfer, all[0].Kind)
		s.Equal(owner, all[0].Transfer.From)
		s.Equal(alice, all[0].Transfer.To)
		s.Equal(big.NewInt(500), all[0].Transfer.Amount)
	})

	s.Run("insufficient balance leaves state unchanged", func() {
		err := s.ledger.Transfer(alice, bob, big.NewInt(501))
		s.Require().Error(err)
		s.True(errors.Is(err, &types.LedgerError{Code: types.ErrInsufficientBalance}))

		s.Equal(big.NewInt(500), s.ledger.BalanceOf(alice))
		s.Zero(s.ledger.BalanceOf(bob).Sign())
		s.Equal(1, s.log.Len())
	})

	s.Run("negative amount rejected", func() {
		err := s.ledger.Transfer(owner, alice, big.NewInt(-1))
		s.True(errors.Is(err, &types.LedgerError{Code: types.ErrInvalidAmount}))
	})
}

func (s *LedgerSuite) TestApproveOverwrites() {
	s.Require().NoError(s.ledger.Approve(owner, alice, big.NewInt(200)))
	s.Require().NoError(s.ledger.Approve(owner, alice, big.NewInt(50)))

	// overwrite, not additive
	s.Equal(big.NewInt(50), s.ledger.Allowance(owner, alice))
}

func (s *LedgerSuite) TestTransferFrom() {
	s.Require().NoError(s.ledger.Approve(owner, alice, big.NewInt(300)))

	s.Run("spends allowance and moves balance", func() {
		s.Require().NoError(s.ledger.TransferFrom(alice, owner, bob, big.NewInt(200)))

		s.Equal(big.NewInt(100), s.ledger.Allowance(owner, alice))
		s.Equal(big.NewInt(999_800), s.ledger.BalanceOf(owner))
		s.Equal(big.NewInt(200), s.ledger.BalanceOf(bob))
	})

	s.Run("beyond allowance fails without mutation", func() {
		err := s.ledger.TransferFrom(alice, owner, bob, big.NewInt(101))
		s.True(errors.Is(err, &types.LedgerError{Code: types.ErrInsufficientAllowance}))

		s.Equal(big.NewInt(100), s.ledger.Allowance(owner, alice))
		s.Equal(big.NewInt(999_800), s.ledger.BalanceOf(owner))
		s.Equal(big.NewInt(200), s.ledger.BalanceOf(bob))
	})

	s.Run("beyond balance fails without consuming allowance", func() {
		s.Require().NoError(s.ledger.Transfer(bob, alice, big.NewInt(150)))
		s.Require().NoError(s.ledger.Approve(bob, alice, big.NewInt(100)))

		err := s.ledger.TransferFrom(alice, bob, owner, big.NewInt(75))
		s.True(errors.Is(err, &types.LedgerError{Code: types.ErrInsufficientBalance}))

		s.Equal(big.NewInt(100), s.ledger.Allowance(bob, alice))
		s.Equal(big.NewInt(50), s.ledger.BalanceOf(bob))
	})
}

func (s *LedgerSuite) TestMint() {
	s.Require().NoError(s.ledger.Mint(alice, big.NewInt(1_000)))

	s.Run("grows balance and supply together", func() {
		s.Equal(big.NewInt(1_000), s.ledger.BalanceOf(alice))
		s.Equal(big.NewInt(1_001_000), s.ledger.TotalSupply())
	})

	s.Run("records a transfer from the zero address", func() {
		all := s.log.All()
		s.Require().Len(all, 1)
		s.Equal(types.ZeroAddress, all[0].Transfer.From)
		s.Equal(alice, all[0].Transfer.To)
		s.Equal(big.NewInt(1_000), all[0].Transfer.Amount)
	})
}

// Sum of balances stays equal to genesis plus all minted rewards through an
// arbitrary interleaving of operations.
func (s *LedgerSuite) TestSupplyInvariant() {
	minted := big.NewInt(0)

	s.Require().NoError(s.ledger.Transfer(owner, alice, big.NewInt(10_000)))
	s.Require().NoError(s.ledger.Mint(bob, big.NewInt(777)))
	minted.Add(minted, big.NewInt(777))
	s.Require().NoError(s.ledger.Approve(alice, bob, big.NewInt(4_000)))
	s.Require().NoError(s.ledger.TransferFrom(bob, alice, owner, big.NewInt(2_500)))
	s.Require().NoError(s.ledger.Mint(alice, big.NewInt(223)))
	minted.Add(minted, big.NewInt(223))

	sum := new(big.Int)
	for _, acct := range []types.Address{owner, alice, bob} {
		sum.Add(sum, s.ledger.BalanceOf(acct))
	}

	want := new(big.Int).Add(genesis, minted)
	s.Equal(want, sum)
	s.Equal(want, s.ledger.TotalSupply())
}
