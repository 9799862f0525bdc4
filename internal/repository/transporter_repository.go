package repository // repository defines data access for transporters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/veloxbus/fleet-inventory/internal/model"
)

// ErrTransporterNotFound is returned when a transporter lookup yields no rows.
var ErrTransporterNotFound = errors.New("transporter not found")

// TransporterRepo provides methods to work with transporters in the database.
type TransporterRepo struct {
	db *sql.DB
}

// NewTransporterRepo constructs a TransporterRepo with the given DB handle.
func NewTransporterRepo(db *sql.DB) *TransporterRepo {
	return &TransporterRepo{db: db}
}

const transporterCols = `id, name, tax_id, contact_name, contact_phone, contact_email,
	is_active, created_at, updated_at, deleted_at`

func scanTransporter(row interface{ Scan(...any) error }) (*model.Transporter, error) {
	var t model.Transporter
	var cName, cPhone, cEmail sql.NullString
	var deleted sql.NullTime
	if err := row.Scan(
		&t.ID, &t.Name, &t.TaxID, &cName, &cPhone, &cEmail,
		&t.IsActive, &t.CreatedAt, &t.UpdatedAt, &deleted,
	); err != nil {
		return nil, err
	}
	if cName.Valid {
		t.ContactName = &cName.String
	}
	if cPhone.Valid {
		t.ContactPhone = &cPhone.String
	}
	if cEmail.Valid {
		t.ContactEmail = &cEmail.String
	}
	if deleted.Valid {
		d := deleted.Time
		t.DeletedAt = &d
	}
	return &t, nil
}

// Create inserts a transporter record. On success the ID is populated.
func (r *TransporterRepo) Create(ctx context.Context, t *model.Transporter) error {
	const q = `INSERT INTO transporters (name, tax_id, contact_name, contact_phone, contact_email, is_active)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.TaxID, t.ContactName, t.ContactPhone, t.ContactEmail, t.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID retrieves an alive transporter by its id.
func (r *TransporterRepo) GetByID(ctx context.Context, id uint64) (*model.Transporter, error) {
	const q = `SELECT ` + transporterCols + ` FROM transporters WHERE id = ? AND deleted_at IS NULL`
	t, err := scanTransporter(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransporterNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns alive transporters ordered by name.
func (r *TransporterRepo) List(ctx context.Context) ([]model.Transporter, error) {
	const q = `SELECT ` + transporterCols + ` FROM transporters WHERE deleted_at IS NULL ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Transporter
	for rows.Next() {
		t, err := scanTransporter(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites the editable transporter fields.
// Returns sql.ErrNoRows when the transporter does not exist.
func (r *TransporterRepo) Update(ctx context.Context, t *model.Transporter) error {
	const q = `UPDATE transporters
	           SET name = ?, tax_id = ?, contact_name = ?, contact_phone = ?, contact_email = ?,
	               is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.TaxID, t.ContactName, t.ContactPhone, t.ContactEmail, t.IsActive, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete marks a transporter deleted.  Fails with ErrConflict when
// the transporter still has alive buses.
func (r *TransporterRepo) SoftDelete(ctx context.Context, id uint64) error {
	const qc = `SELECT COUNT(*) FROM buses WHERE transporter_id = ? AND deleted_at IS NULL`
	var n int
	if err := r.db.QueryRowContext(ctx, qc, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `UPDATE transporters SET deleted_at = CURRENT_TIMESTAMP, is_active = FALSE
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrTransporterNotFound
	}
	return nil
}
