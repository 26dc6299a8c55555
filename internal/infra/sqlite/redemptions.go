package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pumppoints/pumppoints/internal/domain"
)

// ─── Redemption Operations ──────────────────────────────────────────────────

const redemptionCols = `redemption_id, customer_id, reward_id, points_used, quantity, status, staff_id, redeemed_at`

func scanRedemption(scan func(dest ...any) error) (domain.Redemption, error) {
	var rd domain.Redemption
	var status, atStr string
	err := scan(&rd.RedemptionID, &rd.CustomerID, &rd.RewardID, &rd.PointsUsed, &rd.Quantity, &status, &rd.StaffID, &atStr)
	if err == sql.ErrNoRows {
		return domain.Redemption{}, domain.ErrRedemptionNotFound
	}
	if err != nil {
		return domain.Redemption{}, err
	}
	rd.Status = domain.RedemptionStatus(status)
	rd.RedeemedAt, _ = time.Parse(timeFormat, atStr)
	return rd, nil
}

// RedemptionByID retrieves one redemption.
func (db *DB) RedemptionByID(ctx context.Context, id string) (domain.Redemption, error) {
	row := db.db.QueryRowContext(ctx, `
		SELECT `+redemptionCols+` FROM redemptions WHERE redemption_id = ?
	`, id)
	return scanRedemption(row.Scan)
}

// ListRedemptions returns redemptions, optionally scoped to one customer.
func (db *DB) ListRedemptions(ctx context.Context, customerID string) ([]domain.Redemption, error) {
	q := `SELECT ` + redemptionCols + ` FROM redemptions`
	var args []any
	if customerID != "" {
		q += ` WHERE customer_id = ?`
		args = append(args, customerID)
	}
	q += ` ORDER BY redeemed_at DESC`

	rows, err := db.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Redemption
	for rows.Next() {
		rd, err := scanRedemption(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, rd)
	}
	return result, rows.Err()
}

// ─── Transactional Redemption Operations ────────────────────────────────────

// RedemptionIDExists re-checks a generated ID against existing rows inside
// the unit of work.
func (t *Tx) RedemptionIDExists(ctx context.Context, id string) (bool, error) {
	var cnt int
	err := t.tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM redemptions WHERE redemption_id = ?
	`, id).Scan(&cnt)
	return cnt > 0, err
}

// InsertRedemption writes a redemption row inside the unit of work.
func (t *Tx) InsertRedemption(ctx context.Context, rd domain.Redemption) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO redemptions (`+redemptionCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rd.RedemptionID, rd.CustomerID, rd.RewardID, rd.PointsUsed, rd.Quantity,
		string(rd.Status), rd.StaffID, rd.RedeemedAt.UTC().Format(timeFormat))
	return err
}

// RedemptionByID reads a redemption inside the unit of work.
func (t *Tx) RedemptionByID(ctx context.Context, id string) (domain.Redemption, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT `+redemptionCols+` FROM redemptions WHERE redemption_id = ?
	`, id)
	return scanRedemption(row.Scan)
}

// MarkRedemptionCompleted moves a redemption to completed and stamps the
// fulfilling staff member.
func (t *Tx) MarkRedemptionCompleted(ctx context.Context, id, staffID string) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE redemptions SET status = ?, staff_id = ? WHERE redemption_id = ?
	`, string(domain.RedemptionCompleted), staffID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRedemptionNotFound
	}
	return nil
}

// DeleteRedemption removes a redemption row inside the unit of work.
func (t *Tx) DeleteRedemption(ctx context.Context, id string) error {
	res, err := t.tx.ExecContext(ctx, `
		DELETE FROM redemptions WHERE redemption_id = ?
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRedemptionNotFound
	}
	return nil
}
