package sqlite

import (
	"context"
	"time"

	"github.com/pumppoints/pumppoints/internal/domain"
)

// ─── Reporting Operations ───────────────────────────────────────────────────
// Read-only aggregations. No invariant enforcement beyond correct filtering.

// FuelUsageRow is one fuel type's usage within a report window.
type FuelUsageRow struct {
	FuelTypeName string  `json:"fuel_type_name"`
	Purchases    int64   `json:"purchases"`
	TotalAmount  float64 `json:"total_amount"`
	TotalPoints  int64   `json:"total_points"`
}

// FuelUsage aggregates a customer's purchases by fuel type over a window.
// Zero From/To leave the window open on that side.
func (db *DB) FuelUsage(ctx context.Context, customerID string, from, to time.Time) ([]FuelUsageRow, error) {
	q := `
		SELECT ft.fuel_type_name, COUNT(*), SUM(t.amount), SUM(t.points_earned)
		FROM transactions t
		JOIN fuel_types ft ON ft.fuel_type_id = t.fuel_type_id
		WHERE t.customer_id = ?`
	args := []any{customerID}

	if !from.IsZero() {
		q += ` AND t.transaction_date >= ?`
		args = append(args, from.UTC().Format(timeFormat))
	}
	if !to.IsZero() {
		q += ` AND t.transaction_date <= ?`
		args = append(args, to.UTC().Format(timeFormat))
	}
	q += ` GROUP BY ft.fuel_type_name ORDER BY SUM(t.amount) DESC`

	rows, err := db.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []FuelUsageRow
	for rows.Next() {
		var r FuelUsageRow
		if err := rows.Scan(&r.FuelTypeName, &r.Purchases, &r.TotalAmount, &r.TotalPoints); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// DividendRow is one customer's dividend accrual for a calendar year.
type DividendRow struct {
	CustomerID   string  `json:"customer_id"`
	Year         int     `json:"year"`
	PointsEarned int64   `json:"points_earned"`
	Dividend     float64 `json:"dividend"`
}

// AnnualDividends lists dividends by calendar year, optionally scoped to one
// customer. The dividend is the fixed rate applied to points earned that year.
func (db *DB) AnnualDividends(ctx context.Context, year int, customerID string) ([]DividendRow, error) {
	q := `
		SELECT customer_id, CAST(strftime('%Y', transaction_date) AS INTEGER) AS yr, SUM(points_earned)
		FROM transactions WHERE 1=1`
	var args []any

	if year != 0 {
		q += ` AND strftime('%Y', transaction_date) = ?`
		args = append(args, formatYear(year))
	}
	if customerID != "" {
		q += ` AND customer_id = ?`
		args = append(args, customerID)
	}
	q += ` GROUP BY customer_id, yr ORDER BY yr DESC, customer_id`

	rows, err := db.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DividendRow
	for rows.Next() {
		var r DividendRow
		if err := rows.Scan(&r.CustomerID, &r.Year, &r.PointsEarned); err != nil {
			return nil, err
		}
		r.Dividend = domain.DividendFor(r.PointsEarned)
		result = append(result, r)
	}
	return result, rows.Err()
}

func formatYear(year int) string {
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")
}
