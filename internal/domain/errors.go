package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Input errors
	ErrInvalidInput    = errors.New("missing or malformed input fields")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidFuelType = errors.New("unknown fuel type")

	// Lookup errors
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrRewardNotFound      = errors.New("reward not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrRedemptionNotFound  = errors.New("redemption not found")
	ErrStaffNotFound       = errors.New("staff not found")
	ErrOfficerNotFound     = errors.New("officer not found")

	// Admission errors
	ErrInsufficientPoints = errors.New("points balance too low for redemption")
	ErrInsufficientStock  = errors.New("reward stock too low for redemption")

	// Ledger errors
	ErrIDGenerationFailed = errors.New("could not generate a unique identifier")
	ErrLedgerBusy         = errors.New("ledger busy, concurrent update in progress")
)
