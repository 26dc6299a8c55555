// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import "time"

// ─── Customer Types ─────────────────────────────────────────────────────────

// Customer is a loyalty-program member. PointsBalance is the spendable total;
// Dividend is always 1% of the balance as of the last balance change.
type Customer struct {
	CustomerID    string    `json:"customer_id"`
	PhoneNumber   string    `json:"phone_number"`
	Name          string    `json:"name,omitempty"`
	PointsBalance int64     `json:"points_balance"`
	Dividend      float64   `json:"dividend"`
	CreatedAt     time.Time `json:"created_at"`
}

// DividendRate is the fixed share of the points balance paid out as dividend.
const DividendRate = 0.01

// DividendFor computes the dividend owed for a given points balance.
func DividendFor(balance int64) float64 {
	return float64(balance) * DividendRate
}

// ─── Fuel Types ─────────────────────────────────────────────────────────────

// FuelType is static reference data; the ledger only ever reads it.
type FuelType struct {
	FuelTypeID   int64  `json:"fuel_type_id"`
	FuelTypeName string `json:"fuel_type_name"`
}

// ─── Transaction Types ──────────────────────────────────────────────────────

// Transaction is an immutable record of one fuel purchase.
type Transaction struct {
	TransactionID   string    `json:"transaction_id"`
	CustomerID      string    `json:"customer_id"`
	FuelTypeID      int64     `json:"fuel_type_id"`
	Amount          float64   `json:"amount"`
	PointsEarned    int64     `json:"points_earned"`
	StaffID         string    `json:"staff_id"`
	TransactionDate time.Time `json:"transaction_date"`
}

// ─── Reward Types ───────────────────────────────────────────────────────────

// Reward is a catalog entry. Quantity is remaining stock and never goes
// negative.
type Reward struct {
	RewardID       string `json:"reward_id"`
	Name           string `json:"name"`
	PointsRequired int64  `json:"points_required"`
	Quantity       int64  `json:"quantity"`
	Description    string `json:"description,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
}

// ─── Redemption Types ───────────────────────────────────────────────────────

// RedemptionStatus is the lifecycle state of a redemption.
type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "pending"
	RedemptionCompleted RedemptionStatus = "completed"
)

// Redemption links a customer to a reward they spent points on.
// PointsUsed is the total debit: unit cost × quantity.
type Redemption struct {
	RedemptionID string           `json:"redemption_id"`
	CustomerID   string           `json:"customer_id"`
	RewardID     string           `json:"reward_id"`
	PointsUsed   int64            `json:"points_used"`
	Quantity     int64            `json:"quantity"`
	Status       RedemptionStatus `json:"status"`
	StaffID      string           `json:"staff_id,omitempty"`
	RedeemedAt   time.Time        `json:"redeemed_at"`
}

// ─── Staff Types ────────────────────────────────────────────────────────────

// Staff is a station employee who records transactions and fulfils
// redemptions.
type Staff struct {
	StaffID     string `json:"staff_id"`
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name,omitempty"`
}

// Officer is a back-office role with reporting access.
type Officer struct {
	OfficerID   string `json:"officer_id"`
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name,omitempty"`
}

// ─── Accrual Policy ─────────────────────────────────────────────────────────

// AccrualPolicy selects how a purchase amount converts into points.
// The source system shipped three divergent formulas; exactly one is active,
// chosen by configuration.
type AccrualPolicy string

const (
	// AccrualPerTen credits one point per 10 currency units: floor(amount/10).
	AccrualPerTen AccrualPolicy = "per-ten"
	// AccrualPerUnit credits one point per currency unit: floor(amount).
	AccrualPerUnit AccrualPolicy = "per-unit"
	// AccrualDirect treats the submitted amount as points, unconverted.
	AccrualDirect AccrualPolicy = "direct"
)

// Valid reports whether the policy is one of the known formulas.
func (p AccrualPolicy) Valid() bool {
	switch p {
	case AccrualPerTen, AccrualPerUnit, AccrualDirect:
		return true
	}
	return false
}

// Points applies the policy to a purchase amount. Negative amounts accrue
// nothing.
func (p AccrualPolicy) Points(amount float64) int64 {
	if amount < 0 {
		return 0
	}
	switch p {
	case AccrualPerUnit, AccrualDirect:
		return int64(amount)
	default: // AccrualPerTen
		return int64(amount / 10)
	}
}
