package modledger

import (
	"time"

	"github.com/vitwit/modledger/bank"
	"github.com/vitwit/modledger/logger"
	"github.com/vitwit/modledger/metrics"
	"github.com/vitwit/modledger/registry"
	"github.com/vitwit/modledger/types"
)

type Option func(*Marketplace)

func WithLogger(l logger.Logger) Option {
	return func(m *Marketplace) {
		m.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(m *Marketplace) {
		m.metrics = r
	}
}

// WithClock overrides the settlement timestamp source. Tests use this for
// deterministic SoldAt values.
func WithClock(clock func() time.Time) Option {
	return func(m *Marketplace) {
		m.clock = clock
	}
}

// WithBank replaces the in-memory native-currency bank.
func WithBank(b bank.Bank) Option {
	return func(m *Marketplace) {
		m.bank = b
	}
}

// WithRegistry replaces the in-memory module registry.
func WithRegistry(r registry.Resolver) Option {
	return func(m *Marketplace) {
		m.registry = r
	}
}

// WithCustodyAddress sets the account that retains network fees.
func WithCustodyAddress(addr types.Address) Option {
	return func(m *Marketplace) {
		m.custody = addr
	}
}
