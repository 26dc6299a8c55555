package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pumppoints/pumppoints/internal/domain"
)

// ─── Transaction Operations ─────────────────────────────────────────────────

const txCols = `transaction_id, customer_id, fuel_type_id, amount, points_earned, staff_id, transaction_date`

func scanTransaction(scan func(dest ...any) error) (domain.Transaction, error) {
	var tr domain.Transaction
	var dateStr string
	err := scan(&tr.TransactionID, &tr.CustomerID, &tr.FuelTypeID, &tr.Amount, &tr.PointsEarned, &tr.StaffID, &dateStr)
	if err == sql.ErrNoRows {
		return domain.Transaction{}, domain.ErrTransactionNotFound
	}
	if err != nil {
		return domain.Transaction{}, err
	}
	tr.TransactionDate, _ = time.Parse(timeFormat, dateStr)
	return tr, nil
}

// TransactionByID retrieves one transaction.
func (db *DB) TransactionByID(ctx context.Context, id string) (domain.Transaction, error) {
	row := db.db.QueryRowContext(ctx, `
		SELECT `+txCols+` FROM transactions WHERE transaction_id = ?
	`, id)
	return scanTransaction(row.Scan)
}

// TransactionFilter narrows a transaction listing. Zero values are ignored.
type TransactionFilter struct {
	CustomerID string
	StaffID    string
	FuelTypeID int64
	From       time.Time
	To         time.Time
	Limit      int
}

// ListTransactions returns transactions matching the filter, newest first.
// The WHERE clause is built from placeholders only — values are never
// interpolated into the query text.
func (db *DB) ListTransactions(ctx context.Context, f TransactionFilter) ([]domain.Transaction, error) {
	q := `SELECT ` + txCols + ` FROM transactions WHERE 1=1`
	var args []any

	if f.CustomerID != "" {
		q += ` AND customer_id = ?`
		args = append(args, f.CustomerID)
	}
	if f.StaffID != "" {
		q += ` AND staff_id = ?`
		args = append(args, f.StaffID)
	}
	if f.FuelTypeID != 0 {
		q += ` AND fuel_type_id = ?`
		args = append(args, f.FuelTypeID)
	}
	if !f.From.IsZero() {
		q += ` AND transaction_date >= ?`
		args = append(args, f.From.UTC().Format(timeFormat))
	}
	if !f.To.IsZero() {
		q += ` AND transaction_date <= ?`
		args = append(args, f.To.UTC().Format(timeFormat))
	}
	q += ` ORDER BY transaction_date DESC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		tr, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, tr)
	}
	return result, rows.Err()
}

// ─── Transactional Transaction Operations ───────────────────────────────────

// InsertTransaction writes a fuel-purchase record inside the unit of work.
func (t *Tx) InsertTransaction(ctx context.Context, tr domain.Transaction) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO transactions (`+txCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, tr.TransactionID, tr.CustomerID, tr.FuelTypeID, tr.Amount, tr.PointsEarned, tr.StaffID,
		tr.TransactionDate.UTC().Format(timeFormat))
	return err
}

// TransactionByID reads a transaction inside the unit of work.
func (t *Tx) TransactionByID(ctx context.Context, id string) (domain.Transaction, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT `+txCols+` FROM transactions WHERE transaction_id = ?
	`, id)
	return scanTransaction(row.Scan)
}

// UpdateTransaction rewrites the mutable fields of a transaction record.
func (t *Tx) UpdateTransaction(ctx context.Context, tr domain.Transaction) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE transactions
		SET customer_id = ?, fuel_type_id = ?, amount = ?, points_earned = ?, staff_id = ?
		WHERE transaction_id = ?
	`, tr.CustomerID, tr.FuelTypeID, tr.Amount, tr.PointsEarned, tr.StaffID, tr.TransactionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction record inside the unit of work.
func (t *Tx) DeleteTransaction(ctx context.Context, id string) error {
	res, err := t.tx.ExecContext(ctx, `
		DELETE FROM transactions WHERE transaction_id = ?
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}
