package sqlite

import (
	"context"
	"database/sql"

	"github.com/pumppoints/pumppoints/internal/domain"
)

// ─── Staff and Officer Operations ───────────────────────────────────────────

// InsertStaff creates a staff row.
func (db *DB) InsertStaff(ctx context.Context, s domain.Staff) error {
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO staff (staff_id, phone_number, name) VALUES (?, ?, ?)
	`, s.StaffID, s.PhoneNumber, s.Name)
	return err
}

// StaffByID retrieves one staff member.
func (db *DB) StaffByID(ctx context.Context, id string) (domain.Staff, error) {
	var s domain.Staff
	err := db.db.QueryRowContext(ctx, `
		SELECT staff_id, phone_number, name FROM staff WHERE staff_id = ?
	`, id).Scan(&s.StaffID, &s.PhoneNumber, &s.Name)
	if err == sql.ErrNoRows {
		return domain.Staff{}, domain.ErrStaffNotFound
	}
	return s, err
}

// FindStaffLogin matches staff credentials directly against stored values.
func (db *DB) FindStaffLogin(ctx context.Context, staffID, phone string) (domain.Staff, error) {
	var s domain.Staff
	err := db.db.QueryRowContext(ctx, `
		SELECT staff_id, phone_number, name FROM staff WHERE staff_id = ? AND phone_number = ?
	`, staffID, phone).Scan(&s.StaffID, &s.PhoneNumber, &s.Name)
	if err == sql.ErrNoRows {
		return domain.Staff{}, domain.ErrStaffNotFound
	}
	return s, err
}

// InsertOfficer creates an officer row.
func (db *DB) InsertOfficer(ctx context.Context, o domain.Officer) error {
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO officers (officer_id, phone_number, name) VALUES (?, ?, ?)
	`, o.OfficerID, o.PhoneNumber, o.Name)
	return err
}

// FindOfficerLogin matches officer credentials directly against stored values.
func (db *DB) FindOfficerLogin(ctx context.Context, officerID, phone string) (domain.Officer, error) {
	var o domain.Officer
	err := db.db.QueryRowContext(ctx, `
		SELECT officer_id, phone_number, name FROM officers WHERE officer_id = ? AND phone_number = ?
	`, officerID, phone).Scan(&o.OfficerID, &o.PhoneNumber, &o.Name)
	if err == sql.ErrNoRows {
		return domain.Officer{}, domain.ErrOfficerNotFound
	}
	return o, err
}
