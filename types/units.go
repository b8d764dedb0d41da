package types

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// TokenDecimals is the display precision of the marketplace token.
const TokenDecimals = 18

// FormatUnits renders an atomic amount as a human-readable decimal string,
// e.g. FormatUnits(big.NewInt(1500000000000000000), 18) == "1.5".
func FormatUnits(amount *big.Int, decimals int32) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -decimals).String()
}

// ParseUnits converts a human-readable decimal string into atomic units.
// Fractional digits beyond the given precision are rejected rather than
// silently truncated.
func ParseUnits(s string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", s, err)
	}

	scaled := d.Shift(decimals)
	if !scaled.IsInteger() {
		return nil, &LedgerError{
			Code:    ErrInvalidAmount,
			Message: fmt.Sprintf("amount %q has more than %d fractional digits", s, decimals),
		}
	}

	return scaled.BigInt(), nil
}
