package sqlite

import (
	"context"
	"database/sql"

	"github.com/pumppoints/pumppoints/internal/domain"
)

// ─── Reward Catalog Operations ──────────────────────────────────────────────

const rewardCols = `reward_id, name, points_required, quantity, description, image_url`

func scanReward(scan func(dest ...any) error) (domain.Reward, error) {
	var rw domain.Reward
	err := scan(&rw.RewardID, &rw.Name, &rw.PointsRequired, &rw.Quantity, &rw.Description, &rw.ImageURL)
	if err == sql.ErrNoRows {
		return domain.Reward{}, domain.ErrRewardNotFound
	}
	return rw, err
}

// InsertReward creates a catalog entry.
func (db *DB) InsertReward(ctx context.Context, rw domain.Reward) error {
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO rewards (`+rewardCols+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rw.RewardID, rw.Name, rw.PointsRequired, rw.Quantity, rw.Description, rw.ImageURL)
	return err
}

// RewardByID retrieves one catalog entry.
func (db *DB) RewardByID(ctx context.Context, id string) (domain.Reward, error) {
	row := db.db.QueryRowContext(ctx, `
		SELECT `+rewardCols+` FROM rewards WHERE reward_id = ?
	`, id)
	return scanReward(row.Scan)
}

// RewardIDExists reports whether a reward ID is already taken.
func (db *DB) RewardIDExists(ctx context.Context, id string) (bool, error) {
	var cnt int
	err := db.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM rewards WHERE reward_id = ?
	`, id).Scan(&cnt)
	return cnt > 0, err
}

// ListRewards returns the catalog ordered by points cost.
func (db *DB) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	rows, err := db.db.QueryContext(ctx, `
		SELECT `+rewardCols+` FROM rewards ORDER BY points_required, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Reward
	for rows.Next() {
		rw, err := scanReward(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, rw)
	}
	return result, rows.Err()
}

// UpdateReward rewrites a catalog entry.
func (db *DB) UpdateReward(ctx context.Context, rw domain.Reward) error {
	res, err := db.db.ExecContext(ctx, `
		UPDATE rewards
		SET name = ?, points_required = ?, quantity = ?, description = ?, image_url = ?
		WHERE reward_id = ?
	`, rw.Name, rw.PointsRequired, rw.Quantity, rw.Description, rw.ImageURL, rw.RewardID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRewardNotFound
	}
	return nil
}

// DeleteReward removes a catalog entry.
func (db *DB) DeleteReward(ctx context.Context, id string) error {
	res, err := db.db.ExecContext(ctx, `
		DELETE FROM rewards WHERE reward_id = ?
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRewardNotFound
	}
	return nil
}

// ─── Transactional Reward Operations ────────────────────────────────────────

// RewardIDExists re-checks a generated ID against existing rows inside the
// unit of work.
func (t *Tx) RewardIDExists(ctx context.Context, id string) (bool, error) {
	var cnt int
	err := t.tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM rewards WHERE reward_id = ?
	`, id).Scan(&cnt)
	return cnt > 0, err
}

// InsertReward creates a catalog entry inside the unit of work.
func (t *Tx) InsertReward(ctx context.Context, rw domain.Reward) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO rewards (`+rewardCols+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rw.RewardID, rw.Name, rw.PointsRequired, rw.Quantity, rw.Description, rw.ImageURL)
	return err
}

// RewardByID reads a catalog entry inside the unit of work.
func (t *Tx) RewardByID(ctx context.Context, id string) (domain.Reward, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT `+rewardCols+` FROM rewards WHERE reward_id = ?
	`, id)
	return scanReward(row.Scan)
}

// DecrementRewardStock debits stock inside the unit of work. The guard in the
// WHERE clause keeps quantity from going negative even if the caller's
// admission check raced.
func (t *Tx) DecrementRewardStock(ctx context.Context, id string, qty int64) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE rewards SET quantity = quantity - ? WHERE reward_id = ? AND quantity >= ?
	`, qty, id, qty)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}
