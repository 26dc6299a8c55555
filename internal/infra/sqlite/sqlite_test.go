package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pumppoints/pumppoints/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), time.Second)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ─── Customers ──────────────────────────────────────────────────────────────

func TestCustomerRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := db.InsertCustomer(ctx, domain.Customer{
		CustomerID:    "C1",
		PhoneNumber:   "0812345678",
		Name:          "Somchai",
		PointsBalance: 50,
		Dividend:      0.5,
	})
	if err != nil {
		t.Fatalf("InsertCustomer() error: %v", err)
	}

	c, err := db.CustomerByPhone(ctx, "0812345678")
	if err != nil {
		t.Fatalf("CustomerByPhone() error: %v", err)
	}
	if c.CustomerID != "C1" {
		t.Errorf("CustomerID = %q, want C1", c.CustomerID)
	}
	if c.PointsBalance != 50 {
		t.Errorf("PointsBalance = %d, want 50", c.PointsBalance)
	}
	if c.Dividend != 0.5 {
		t.Errorf("Dividend = %v, want 0.5", c.Dividend)
	}

	if _, err := db.CustomerByPhone(ctx, "none"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("missing customer error = %v, want ErrCustomerNotFound", err)
	}
}

func TestFindCustomerLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	db.InsertCustomer(ctx, domain.Customer{CustomerID: "C1", PhoneNumber: "0812345678"})

	if _, err := db.FindCustomerLogin(ctx, "C1", "0812345678"); err != nil {
		t.Errorf("valid login error: %v", err)
	}
	if _, err := db.FindCustomerLogin(ctx, "C1", "wrong"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("bad phone error = %v, want ErrCustomerNotFound", err)
	}
}

// ─── Unit of Work ───────────────────────────────────────────────────────────

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	db.InsertCustomer(ctx, domain.Customer{CustomerID: "C1", PhoneNumber: "081", PointsBalance: 10})

	sentinel := errors.New("boom")
	err := db.WithTx(ctx, func(tx *Tx) error {
		if err := tx.UpdateCustomerBalance(ctx, "C1", 999, 9.99); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("WithTx() error = %v, want sentinel", err)
	}

	c, _ := db.CustomerByID(ctx, "C1")
	if c.PointsBalance != 10 {
		t.Errorf("balance after rollback = %d, want 10", c.PointsBalance)
	}
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	db.InsertCustomer(ctx, domain.Customer{CustomerID: "C1", PhoneNumber: "081"})

	err := db.WithTx(ctx, func(tx *Tx) error {
		return tx.UpdateCustomerBalance(ctx, "C1", 42, 0.42)
	})
	if err != nil {
		t.Fatalf("WithTx() error: %v", err)
	}

	c, _ := db.CustomerByID(ctx, "C1")
	if c.PointsBalance != 42 {
		t.Errorf("balance = %d, want 42", c.PointsBalance)
	}
	if c.Dividend != 0.42 {
		t.Errorf("dividend = %v, want 0.42", c.Dividend)
	}
}

// ─── Rewards ────────────────────────────────────────────────────────────────

func TestRewardCatalog(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rw := domain.Reward{RewardID: "AAAAAAAAAA", Name: "Coffee", PointsRequired: 20, Quantity: 5}
	if err := db.InsertReward(ctx, rw); err != nil {
		t.Fatalf("InsertReward() error: %v", err)
	}

	exists, err := db.RewardIDExists(ctx, "AAAAAAAAAA")
	if err != nil || !exists {
		t.Errorf("RewardIDExists = %v, %v, want true, nil", exists, err)
	}

	rw.Name = "Iced Coffee"
	rw.Quantity = 7
	if err := db.UpdateReward(ctx, rw); err != nil {
		t.Fatalf("UpdateReward() error: %v", err)
	}
	got, _ := db.RewardByID(ctx, "AAAAAAAAAA")
	if got.Name != "Iced Coffee" || got.Quantity != 7 {
		t.Errorf("after update got %+v", got)
	}

	if err := db.DeleteReward(ctx, "AAAAAAAAAA"); err != nil {
		t.Fatalf("DeleteReward() error: %v", err)
	}
	if err := db.DeleteReward(ctx, "AAAAAAAAAA"); !errors.Is(err, domain.ErrRewardNotFound) {
		t.Errorf("second delete error = %v, want ErrRewardNotFound", err)
	}
}

func TestDecrementRewardStock_Guard(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	db.InsertReward(ctx, domain.Reward{RewardID: "AAAAAAAAAA", Name: "Cap", PointsRequired: 10, Quantity: 3})

	err := db.WithTx(ctx, func(tx *Tx) error {
		return tx.DecrementRewardStock(ctx, "AAAAAAAAAA", 5)
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("over-decrement error = %v, want ErrInsufficientStock", err)
	}

	rw, _ := db.RewardByID(ctx, "AAAAAAAAAA")
	if rw.Quantity != 3 {
		t.Errorf("stock = %d, want 3 (unchanged)", rw.Quantity)
	}
}

// ─── Transactions ───────────────────────────────────────────────────────────

func seedTxFixtures(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()
	db.InsertCustomer(ctx, domain.Customer{CustomerID: "C1", PhoneNumber: "081"})
	db.InsertCustomer(ctx, domain.Customer{CustomerID: "C2", PhoneNumber: "082"})
	db.InsertFuelType(ctx, "Diesel")
	db.InsertFuelType(ctx, "Gasohol 95")

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []domain.Transaction{
		{TransactionID: "T1", CustomerID: "C1", FuelTypeID: 1, Amount: 500, PointsEarned: 50, StaffID: "S1", TransactionDate: base},
		{TransactionID: "T2", CustomerID: "C1", FuelTypeID: 2, Amount: 300, PointsEarned: 30, StaffID: "S2", TransactionDate: base.AddDate(0, 0, 1)},
		{TransactionID: "T3", CustomerID: "C2", FuelTypeID: 1, Amount: 700, PointsEarned: 70, StaffID: "S1", TransactionDate: base.AddDate(1, 0, 0)},
	}
	err := db.WithTx(ctx, func(tx *Tx) error {
		for _, tr := range rows {
			if err := tx.InsertTransaction(ctx, tr); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed transactions: %v", err)
	}
}

func TestListTransactions_Filters(t *testing.T) {
	db := newTestDB(t)
	seedTxFixtures(t, db)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter TransactionFilter
		want   int
	}{
		{"all", TransactionFilter{}, 3},
		{"by customer", TransactionFilter{CustomerID: "C1"}, 2},
		{"by staff", TransactionFilter{StaffID: "S1"}, 2},
		{"by fuel type", TransactionFilter{FuelTypeID: 2}, 1},
		{"by window", TransactionFilter{
			From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		}, 2},
		{"combined", TransactionFilter{CustomerID: "C1", StaffID: "S1"}, 1},
		{"limited", TransactionFilter{Limit: 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.ListTransactions(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListTransactions() error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d rows, want %d", len(got), tt.want)
			}
		})
	}
}

// ─── Redemptions ────────────────────────────────────────────────────────────

func TestRedemptionLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	db.InsertCustomer(ctx, domain.Customer{CustomerID: "C1", PhoneNumber: "081"})
	db.InsertReward(ctx, domain.Reward{RewardID: "AAAAAAAAAA", Name: "Cap", PointsRequired: 10, Quantity: 3})

	rd := domain.Redemption{
		RedemptionID: "RDRDRDRDRD",
		CustomerID:   "C1",
		RewardID:     "AAAAAAAAAA",
		PointsUsed:   20,
		Quantity:     2,
		Status:       domain.RedemptionPending,
		RedeemedAt:   time.Now().UTC(),
	}
	err := db.WithTx(ctx, func(tx *Tx) error {
		exists, err := tx.RedemptionIDExists(ctx, rd.RedemptionID)
		if err != nil {
			return err
		}
		if exists {
			t.Error("fresh id reported as existing")
		}
		return tx.InsertRedemption(ctx, rd)
	})
	if err != nil {
		t.Fatalf("insert redemption: %v", err)
	}

	err = db.WithTx(ctx, func(tx *Tx) error {
		return tx.MarkRedemptionCompleted(ctx, "RDRDRDRDRD", "S1")
	})
	if err != nil {
		t.Fatalf("complete redemption: %v", err)
	}

	got, err := db.RedemptionByID(ctx, "RDRDRDRDRD")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.RedemptionCompleted || got.StaffID != "S1" {
		t.Errorf("got status=%q staff=%q, want completed/S1", got.Status, got.StaffID)
	}

	err = db.WithTx(ctx, func(tx *Tx) error {
		return tx.MarkRedemptionCompleted(ctx, "MISSING000", "S1")
	})
	if !errors.Is(err, domain.ErrRedemptionNotFound) {
		t.Errorf("missing redemption error = %v, want ErrRedemptionNotFound", err)
	}
}

// ─── Reports ────────────────────────────────────────────────────────────────

func TestFuelUsage(t *testing.T) {
	db := newTestDB(t)
	seedTxFixtures(t, db)
	ctx := context.Background()

	usage, err := db.FuelUsage(ctx, "C1", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("FuelUsage() error: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("got %d fuel types, want 2", len(usage))
	}
	// Ordered by total amount descending: Diesel (500) first.
	if usage[0].FuelTypeName != "Diesel" {
		t.Errorf("first fuel = %q, want Diesel", usage[0].FuelTypeName)
	}
	if usage[0].TotalAmount != 500 || usage[0].TotalPoints != 50 || usage[0].Purchases != 1 {
		t.Errorf("Diesel usage = %+v", usage[0])
	}
}

func TestAnnualDividends(t *testing.T) {
	db := newTestDB(t)
	seedTxFixtures(t, db)
	ctx := context.Background()

	rows, err := db.AnnualDividends(ctx, 2025, "")
	if err != nil {
		t.Fatalf("AnnualDividends() error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows for 2025, want 1", len(rows))
	}
	if rows[0].CustomerID != "C1" || rows[0].PointsEarned != 80 {
		t.Errorf("2025 row = %+v, want C1 with 80 points", rows[0])
	}
	if rows[0].Dividend != 0.8 {
		t.Errorf("dividend = %v, want 0.8", rows[0].Dividend)
	}

	all, err := db.AnnualDividends(ctx, 0, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("got %d rows for all years, want 2", len(all))
	}
}

// ─── Staff ──────────────────────────────────────────────────────────────────

func TestStaffLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	db.InsertStaff(ctx, domain.Staff{StaffID: "S1", PhoneNumber: "089", Name: "Pim"})

	s, err := db.FindStaffLogin(ctx, "S1", "089")
	if err != nil {
		t.Fatalf("FindStaffLogin() error: %v", err)
	}
	if s.Name != "Pim" {
		t.Errorf("Name = %q, want Pim", s.Name)
	}

	if _, err := db.FindStaffLogin(ctx, "S1", "000"); !errors.Is(err, domain.ErrStaffNotFound) {
		t.Errorf("bad credentials error = %v, want ErrStaffNotFound", err)
	}
}
