// Package ledger implements the loyalty points ledger: earning points through
// fuel purchases and spending them through reward redemptions.
//
// Every mutating operation is one serialisable unit of work against the
// store. The admission checks (balance, stock) and the writes they guard
// commit together or not at all, so two concurrent redemptions can never both
// pass against a stale snapshot.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pumppoints/pumppoints/internal/domain"
	"github.com/pumppoints/pumppoints/internal/infra/observability"
	"github.com/pumppoints/pumppoints/internal/infra/sqlite"
)

// Config controls ledger behaviour.
type Config struct {
	// Accrual converts a purchase amount into points. The source system had
	// three contradictory formulas; exactly one is active, set here.
	Accrual domain.AccrualPolicy
	// IDMaxAttempts bounds the random-identifier collision retry loop.
	IDMaxAttempts int
	// OpTimeout bounds each unit of work. Contention past this surfaces as
	// ErrLedgerBusy rather than a hang.
	OpTimeout time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Accrual:       domain.AccrualPerTen,
		IDMaxAttempts: 5,
		OpTimeout:     5 * time.Second,
	}
}

// maxPurchaseAmount bounds a single fuel purchase. Larger amounts would
// overflow the accrual conversion long before any real pump reaches them.
const maxPurchaseAmount = 1e15

// Service is the points/redemption ledger.
type Service struct {
	db  *sqlite.DB
	cfg Config
}

// New creates a ledger service over the given store.
func New(db *sqlite.DB, cfg Config) *Service {
	if cfg.IDMaxAttempts <= 0 {
		cfg.IDMaxAttempts = DefaultConfig().IDMaxAttempts
	}
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = DefaultConfig().OpTimeout
	}
	if !cfg.Accrual.Valid() {
		cfg.Accrual = domain.AccrualPerTen
	}
	return &Service{db: db, cfg: cfg}
}

// Accrual returns the active accrual policy.
func (s *Service) Accrual() domain.AccrualPolicy { return s.cfg.Accrual }

// ─── Record Transaction ─────────────────────────────────────────────────────

// RecordTransactionInput is one fuel purchase to record.
type RecordTransactionInput struct {
	PhoneNumber string
	FuelType    string
	Amount      float64
	StaffID     string
}

// RecordTransactionResult echoes the effect of a recorded purchase.
type RecordTransactionResult struct {
	TransactionID    string  `json:"transaction_id"`
	PointsEarned     int64   `json:"points_earned"`
	NewPointsBalance int64   `json:"new_points_balance"`
	NewDividend      float64 `json:"new_dividend"`
}

// RecordTransaction records a fuel purchase and credits the customer's
// points, recomputing the dividend in the same unit of work.
func (s *Service) RecordTransaction(ctx context.Context, in RecordTransactionInput) (RecordTransactionResult, error) {
	defer track("record_transaction")()

	// Input validation fails before any lookup.
	if strings.TrimSpace(in.PhoneNumber) == "" || strings.TrimSpace(in.FuelType) == "" {
		return RecordTransactionResult{}, domain.ErrInvalidInput
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount < 0 || in.Amount > maxPurchaseAmount {
		return RecordTransactionResult{}, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OpTimeout)
	defer cancel()

	var res RecordTransactionResult
	err := s.db.WithTx(ctx, func(tx *sqlite.Tx) error {
		customer, err := tx.CustomerByPhone(ctx, in.PhoneNumber)
		if err != nil {
			return err
		}
		fuel, err := tx.FuelTypeByName(ctx, in.FuelType)
		if err != nil {
			return err
		}

		points := s.cfg.Accrual.Points(in.Amount)
		tr := domain.Transaction{
			TransactionID:   uuid.NewString(),
			CustomerID:      customer.CustomerID,
			FuelTypeID:      fuel.FuelTypeID,
			Amount:          in.Amount,
			PointsEarned:    points,
			StaffID:         in.StaffID,
			TransactionDate: time.Now().UTC(),
		}
		if err := tx.InsertTransaction(ctx, tr); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		newBalance := customer.PointsBalance + points
		newDividend := domain.DividendFor(newBalance)
		if err := tx.UpdateCustomerBalance(ctx, customer.CustomerID, newBalance, newDividend); err != nil {
			return fmt.Errorf("update balance: %w", err)
		}

		res = RecordTransactionResult{
			TransactionID:    tr.TransactionID,
			PointsEarned:     points,
			NewPointsBalance: newBalance,
			NewDividend:      newDividend,
		}
		return nil
	})
	if err != nil {
		return RecordTransactionResult{}, countBusy(err)
	}

	observability.TransactionsRecorded.Inc()
	observability.PointsEarned.Add(float64(res.PointsEarned))
	return res, nil
}

// ─── Redeem Reward ──────────────────────────────────────────────────────────

// RedeemInput is one redemption request.
type RedeemInput struct {
	CustomerID    string
	RewardID      string
	PointsPerUnit int64
	Quantity      int64
}

// Redeem exchanges points for reward stock. Admission checks and all four
// writes (stock debit, balance debit, dividend recompute, redemption insert)
// happen atomically; on any failure nothing is visible.
func (s *Service) Redeem(ctx context.Context, in RedeemInput) (string, error) {
	defer track("redeem")()

	if strings.TrimSpace(in.CustomerID) == "" || strings.TrimSpace(in.RewardID) == "" {
		return "", domain.ErrInvalidInput
	}
	if in.PointsPerUnit <= 0 {
		return "", domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		observability.Redemptions.WithLabelValues("invalid_quantity").Inc()
		return "", domain.ErrInvalidQuantity
	}
	// Both factors are caller-controlled; a wrapped product would defeat the
	// balance admission check below.
	if in.PointsPerUnit > math.MaxInt64/in.Quantity {
		return "", domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OpTimeout)
	defer cancel()

	total := in.PointsPerUnit * in.Quantity

	var redemptionID string
	err := s.db.WithTx(ctx, func(tx *sqlite.Tx) error {
		customer, err := tx.CustomerByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if customer.PointsBalance < total {
			return domain.ErrInsufficientPoints
		}
		reward, err := tx.RewardByID(ctx, in.RewardID)
		if err != nil {
			return err
		}
		if reward.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}

		redemptionID, err = s.freeRedemptionID(ctx, tx)
		if err != nil {
			return err
		}

		if err := tx.DecrementRewardStock(ctx, in.RewardID, in.Quantity); err != nil {
			return err
		}
		newBalance := customer.PointsBalance - total
		if err := tx.UpdateCustomerBalance(ctx, customer.CustomerID, newBalance, domain.DividendFor(newBalance)); err != nil {
			return err
		}
		return tx.InsertRedemption(ctx, domain.Redemption{
			RedemptionID: redemptionID,
			CustomerID:   in.CustomerID,
			RewardID:     in.RewardID,
			PointsUsed:   total,
			Quantity:     in.Quantity,
			Status:       domain.RedemptionPending,
			RedeemedAt:   time.Now().UTC(),
		})
	})
	if err != nil {
		observability.Redemptions.WithLabelValues(outcomeLabel(err)).Inc()
		return "", countBusy(err)
	}

	observability.Redemptions.WithLabelValues("ok").Inc()
	observability.PointsSpent.Add(float64(total))
	return redemptionID, nil
}

// freeRedemptionID draws random identifiers until one is unused, up to the
// configured attempt cap.
func (s *Service) freeRedemptionID(ctx context.Context, tx *sqlite.Tx) (string, error) {
	for attempt := 0; attempt < s.cfg.IDMaxAttempts; attempt++ {
		id, err := domain.NewShortID()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrIDGenerationFailed, err)
		}
		exists, err := tx.RedemptionIDExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
		observability.IDRetries.Inc()
	}
	return "", domain.ErrIDGenerationFailed
}

// ─── Redemption Lifecycle ───────────────────────────────────────────────────

// CompleteRedemption moves a pending redemption to completed and stamps the
// fulfilling staff member. Completing an already completed redemption is an
// idempotent success; completed is terminal.
func (s *Service) CompleteRedemption(ctx context.Context, redemptionID, staffID string) error {
	defer track("complete_redemption")()

	if strings.TrimSpace(redemptionID) == "" || strings.TrimSpace(staffID) == "" {
		return domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OpTimeout)
	defer cancel()

	return countBusy(s.db.WithTx(ctx, func(tx *sqlite.Tx) error {
		rd, err := tx.RedemptionByID(ctx, redemptionID)
		if err != nil {
			return err
		}
		if rd.Status == domain.RedemptionCompleted {
			return nil
		}
		return tx.MarkRedemptionCompleted(ctx, redemptionID, staffID)
	}))
}

// DeleteRedemption removes a redemption record unconditionally. Deleting does
// NOT restore reward stock or customer points — that matches the source
// system, warts and all.
func (s *Service) DeleteRedemption(ctx context.Context, redemptionID string) error {
	defer track("delete_redemption")()

	if strings.TrimSpace(redemptionID) == "" {
		return domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OpTimeout)
	defer cancel()

	return countBusy(s.db.WithTx(ctx, func(tx *sqlite.Tx) error {
		return tx.DeleteRedemption(ctx, redemptionID)
	}))
}

// ─── Transaction Maintenance ────────────────────────────────────────────────

// UpdateTransactionInput rewrites an existing transaction.
type UpdateTransactionInput struct {
	TransactionID string
	PhoneNumber   string
	FuelType      string
	Amount        float64
	StaffID       string
}

// UpdateTransaction rewrites a recorded purchase and rebalances the affected
// customers in the same unit of work: the old points are reversed and the
// recomputed points applied, so the balance invariant holds across edits.
// An edit whose reversal would drive a balance negative (the points were
// already spent) is rejected with ErrInsufficientPoints.
func (s *Service) UpdateTransaction(ctx context.Context, in UpdateTransactionInput) error {
	defer track("update_transaction")()

	if strings.TrimSpace(in.TransactionID) == "" || strings.TrimSpace(in.PhoneNumber) == "" ||
		strings.TrimSpace(in.FuelType) == "" {
		return domain.ErrInvalidInput
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount < 0 || in.Amount > maxPurchaseAmount {
		return domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OpTimeout)
	defer cancel()

	return countBusy(s.db.WithTx(ctx, func(tx *sqlite.Tx) error {
		old, err := tx.TransactionByID(ctx, in.TransactionID)
		if err != nil {
			return err
		}
		customer, err := tx.CustomerByPhone(ctx, in.PhoneNumber)
		if err != nil {
			return err
		}
		fuel, err := tx.FuelTypeByName(ctx, in.FuelType)
		if err != nil {
			return err
		}

		newPoints := s.cfg.Accrual.Points(in.Amount)

		if old.CustomerID != customer.CustomerID {
			// Reassigned: reverse points on the old customer, credit the new.
			oldOwner, err := tx.CustomerByID(ctx, old.CustomerID)
			if err != nil {
				return err
			}
			reversed := oldOwner.PointsBalance - old.PointsEarned
			if reversed < 0 {
				return domain.ErrInsufficientPoints
			}
			if err := tx.UpdateCustomerBalance(ctx, oldOwner.CustomerID, reversed, domain.DividendFor(reversed)); err != nil {
				return err
			}
			credited := customer.PointsBalance + newPoints
			if err := tx.UpdateCustomerBalance(ctx, customer.CustomerID, credited, domain.DividendFor(credited)); err != nil {
				return err
			}
		} else {
			adjusted := customer.PointsBalance - old.PointsEarned + newPoints
			if adjusted < 0 {
				return domain.ErrInsufficientPoints
			}
			if err := tx.UpdateCustomerBalance(ctx, customer.CustomerID, adjusted, domain.DividendFor(adjusted)); err != nil {
				return err
			}
		}

		return tx.UpdateTransaction(ctx, domain.Transaction{
			TransactionID: in.TransactionID,
			CustomerID:    customer.CustomerID,
			FuelTypeID:    fuel.FuelTypeID,
			Amount:        in.Amount,
			PointsEarned:  newPoints,
			StaffID:       in.StaffID,
		})
	}))
}

// DeleteTransaction removes a recorded purchase and reverses its earned
// points on the owning customer, atomically. Like UpdateTransaction, the
// delete is rejected if the earned points were already spent.
func (s *Service) DeleteTransaction(ctx context.Context, transactionID string) error {
	defer track("delete_transaction")()

	if strings.TrimSpace(transactionID) == "" {
		return domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OpTimeout)
	defer cancel()

	return countBusy(s.db.WithTx(ctx, func(tx *sqlite.Tx) error {
		old, err := tx.TransactionByID(ctx, transactionID)
		if err != nil {
			return err
		}
		customer, err := tx.CustomerByID(ctx, old.CustomerID)
		if err != nil {
			return err
		}
		reversed := customer.PointsBalance - old.PointsEarned
		if reversed < 0 {
			return domain.ErrInsufficientPoints
		}
		if err := tx.UpdateCustomerBalance(ctx, customer.CustomerID, reversed, domain.DividendFor(reversed)); err != nil {
			return err
		}
		return tx.DeleteTransaction(ctx, transactionID)
	}))
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func track(op string) func() {
	start := time.Now()
	return func() {
		observability.OpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

func countBusy(err error) error {
	if errors.Is(err, domain.ErrLedgerBusy) {
		observability.LedgerBusy.Inc()
	}
	return err
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "insufficient_points"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrCustomerNotFound), errors.Is(err, domain.ErrRewardNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrLedgerBusy):
		return "busy"
	default:
		return "error"
	}
}
