package types

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// LedgerError is the error type surfaced by every operation in this core.
type LedgerError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *LedgerError) Error() string {
	return e.Message
}

// Is makes errors.Is match on the code, so callers can compare against a
// bare &LedgerError{Code: ...}.
func (e *LedgerError) Is(target error) bool {
	t, ok := target.(*LedgerError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Common error codes
const (
	ErrInsufficientBalance   = "INSUFFICIENT_BALANCE"
	ErrInsufficientAllowance = "INSUFFICIENT_ALLOWANCE"
	ErrUnauthorized          = "UNAUTHORIZED"
	ErrInvalidConfiguration  = "INVALID_CONFIGURATION"
	ErrModuleNotFound        = "MODULE_NOT_FOUND"
	ErrIncorrectPayment      = "INCORRECT_PAYMENT"
	ErrPayoutFailed          = "PAYOUT_FAILED"
	ErrInsufficientFunds     = "INSUFFICIENT_FUNDS"
	ErrDuplicateListing      = "DUPLICATE_LISTING"
	ErrInvalidAmount         = "INVALID_AMOUNT"
)

// ErrorCode extracts the ledger error code from err, or "" if err is not a
// LedgerError.
func ErrorCode(err error) string {
	if le, ok := err.(*LedgerError); ok {
		return le.Code
	}
	return ""
}
