package sqlite

import (
	"context"
	"database/sql"

	"github.com/pumppoints/pumppoints/internal/domain"
)

// ─── Fuel Type Operations ───────────────────────────────────────────────────
// Fuel types are static reference data; only seeding writes them.

// InsertFuelType adds a fuel type if it does not exist yet.
func (db *DB) InsertFuelType(ctx context.Context, name string) error {
	_, err := db.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO fuel_types (fuel_type_name) VALUES (?)
	`, name)
	return err
}

// ListFuelTypes returns all fuel types ordered by name.
func (db *DB) ListFuelTypes(ctx context.Context) ([]domain.FuelType, error) {
	rows, err := db.db.QueryContext(ctx, `
		SELECT fuel_type_id, fuel_type_name FROM fuel_types ORDER BY fuel_type_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FuelType
	for rows.Next() {
		var ft domain.FuelType
		if err := rows.Scan(&ft.FuelTypeID, &ft.FuelTypeName); err != nil {
			return nil, err
		}
		result = append(result, ft)
	}
	return result, rows.Err()
}

// FuelTypeByName resolves a fuel type inside the unit of work.
func (t *Tx) FuelTypeByName(ctx context.Context, name string) (domain.FuelType, error) {
	var ft domain.FuelType
	err := t.tx.QueryRowContext(ctx, `
		SELECT fuel_type_id, fuel_type_name FROM fuel_types WHERE fuel_type_name = ?
	`, name).Scan(&ft.FuelTypeID, &ft.FuelTypeName)
	if err == sql.ErrNoRows {
		return domain.FuelType{}, domain.ErrInvalidFuelType
	}
	return ft, err
}
