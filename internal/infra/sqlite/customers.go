package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pumppoints/pumppoints/internal/domain"
)

// ─── Customer Operations ────────────────────────────────────────────────────

func scanCustomer(row *sql.Row) (domain.Customer, error) {
	var c domain.Customer
	var createdStr string
	err := row.Scan(&c.CustomerID, &c.PhoneNumber, &c.Name, &c.PointsBalance, &c.Dividend, &createdStr)
	if err == sql.ErrNoRows {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	if err != nil {
		return domain.Customer{}, err
	}
	c.CreatedAt, _ = time.Parse(timeFormat, createdStr)
	if c.CreatedAt.IsZero() {
		c.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdStr)
	}
	return c, nil
}

const customerCols = `customer_id, phone_number, name, points_balance, dividend, created_at`

// InsertCustomer creates a customer row.
func (db *DB) InsertCustomer(ctx context.Context, c domain.Customer) error {
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO customers (customer_id, phone_number, name, points_balance, dividend, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.CustomerID, c.PhoneNumber, c.Name, c.PointsBalance, c.Dividend, time.Now().UTC().Format(timeFormat))
	return err
}

// CustomerByPhone looks a customer up by phone number.
func (db *DB) CustomerByPhone(ctx context.Context, phone string) (domain.Customer, error) {
	row := db.db.QueryRowContext(ctx, `
		SELECT `+customerCols+` FROM customers WHERE phone_number = ?
	`, phone)
	return scanCustomer(row)
}

// CustomerByID looks a customer up by ID.
func (db *DB) CustomerByID(ctx context.Context, id string) (domain.Customer, error) {
	row := db.db.QueryRowContext(ctx, `
		SELECT `+customerCols+` FROM customers WHERE customer_id = ?
	`, id)
	return scanCustomer(row)
}

// FindCustomerLogin matches customer credentials directly against stored
// values. Reproduces the source system's plaintext comparison; hardening is
// out of scope here.
func (db *DB) FindCustomerLogin(ctx context.Context, customerID, phone string) (domain.Customer, error) {
	row := db.db.QueryRowContext(ctx, `
		SELECT `+customerCols+` FROM customers WHERE customer_id = ? AND phone_number = ?
	`, customerID, phone)
	return scanCustomer(row)
}

// ─── Transactional Customer Operations ──────────────────────────────────────

// CustomerByPhone reads a customer inside the unit of work.
func (t *Tx) CustomerByPhone(ctx context.Context, phone string) (domain.Customer, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT `+customerCols+` FROM customers WHERE phone_number = ?
	`, phone)
	return scanCustomer(row)
}

// CustomerByID reads a customer inside the unit of work.
func (t *Tx) CustomerByID(ctx context.Context, id string) (domain.Customer, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT `+customerCols+` FROM customers WHERE customer_id = ?
	`, id)
	return scanCustomer(row)
}

// UpdateCustomerBalance writes a customer's points balance and dividend
// together. The two must never be updated separately.
func (t *Tx) UpdateCustomerBalance(ctx context.Context, id string, balance int64, dividend float64) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE customers SET points_balance = ?, dividend = ? WHERE customer_id = ?
	`, balance, dividend, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
