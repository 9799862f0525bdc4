package repository // repository defines data access for buses

import (
	"context"
	"database/sql"
	"errors"

	"github.com/veloxbus/fleet-inventory/internal/model"
)

// ErrBusNotFound is returned when a bus lookup yields no rows.
var ErrBusNotFound = errors.New("bus not found")

// BusRepo provides methods to work with buses in the database.
type BusRepo struct {
	db *sql.DB
}

// NewBusRepo constructs a BusRepo with the given DB handle.
func NewBusRepo(db *sql.DB) *BusRepo {
	return &BusRepo{db: db}
}

const busCols = `id, transporter_id, seat_diagram_id, plate, internal_code, brand, model, year,
	is_active, created_at, updated_at, deleted_at`

func scanBus(row interface{ Scan(...any) error }) (*model.Bus, error) {
	var b model.Bus
	var code sql.NullString
	var deleted sql.NullTime
	if err := row.Scan(&b.ID, &b.TransporterID, &b.SeatDiagramID, &b.Plate, &code,
		&b.Brand, &b.Model, &b.Year, &b.IsActive, &b.CreatedAt, &b.UpdatedAt, &deleted); err != nil {
		return nil, err
	}
	if code.Valid {
		b.InternalCode = &code.String
	}
	if deleted.Valid {
		d := deleted.Time
		b.DeletedAt = &d
	}
	return &b, nil
}

// CreateTx inserts a bus record on an open transaction.  Bus creation
// always runs in a transaction because the bus's seat diagram instance
// and its seats are cloned from a template in the same unit of work.
func (r *BusRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Bus) error {
	const q = `INSERT INTO buses (transporter_id, seat_diagram_id, plate, internal_code, brand, model, year, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.TransporterID, b.SeatDiagramID, b.Plate, b.InternalCode,
		b.Brand, b.Model, b.Year, b.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetByID retrieves an alive bus by its id.
func (r *BusRepo) GetByID(ctx context.Context, id uint64) (*model.Bus, error) {
	const q = `SELECT ` + busCols + ` FROM buses WHERE id = ? AND deleted_at IS NULL`
	b, err := scanBus(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}
	return b, nil
}

// List returns alive buses, optionally filtered by transporter, newest first.
func (r *BusRepo) List(ctx context.Context, transporterID uint64) ([]model.Bus, error) {
	q := `SELECT ` + busCols + ` FROM buses WHERE deleted_at IS NULL`
	args := []any{}
	if transporterID != 0 {
		q += ` AND transporter_id = ?`
		args = append(args, transporterID)
	}
	q += ` ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Bus
	for rows.Next() {
		b, err := scanBus(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites the editable bus fields (ownership and diagram links
// are fixed at creation).  Returns sql.ErrNoRows when not found.
func (r *BusRepo) Update(ctx context.Context, b *model.Bus) error {
	const q = `UPDATE buses
	           SET plate = ?, internal_code = ?, brand = ?, model = ?, year = ?, is_active = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, b.Plate, b.InternalCode, b.Brand, b.Model, b.Year, b.IsActive, b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete marks a bus deleted and soft-deletes its seat diagram
// instance (which deactivates the diagram's seats) in one transaction.
func (r *BusRepo) SoftDelete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	var diagramID uint64
	const qd = `SELECT seat_diagram_id FROM buses WHERE id = ? AND deleted_at IS NULL FOR UPDATE`
	if err := tx.QueryRowContext(ctx, qd, id).Scan(&diagramID); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBusNotFound
		}
		return err
	}
	const qb = `UPDATE buses SET deleted_at = CURRENT_TIMESTAMP, is_active = FALSE
	            WHERE id = ?`
	if _, err := tx.ExecContext(ctx, qb, id); err != nil {
		_ = tx.Rollback()
		return err
	}
	const qsd = `UPDATE seat_diagrams SET deleted_at = CURRENT_TIMESTAMP, is_active = FALSE
	             WHERE id = ? AND deleted_at IS NULL`
	if _, err := tx.ExecContext(ctx, qsd, diagramID); err != nil {
		_ = tx.Rollback()
		return err
	}
	const qs = `UPDATE bus_seats SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
	            WHERE seat_diagram_id = ?`
	if _, err := tx.ExecContext(ctx, qs, diagramID); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
