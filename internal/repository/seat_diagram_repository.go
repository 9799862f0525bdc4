package repository // repository defines data access for seat diagrams

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/veloxbus/fleet-inventory/internal/model"
)

// ErrSeatDiagramNotFound is returned when a diagram lookup yields no rows
// or only a soft-deleted row.
var ErrSeatDiagramNotFound = errors.New("seat diagram not found")

// SeatDiagramRepo provides methods to work with seat diagrams in the database.
type SeatDiagramRepo struct {
	db *sql.DB
}

// NewSeatDiagramRepo constructs a SeatDiagramRepo with the given DB handle.
func NewSeatDiagramRepo(db *sql.DB) *SeatDiagramRepo {
	return &SeatDiagramRepo{db: db}
}

const seatDiagramCols = `id, name, description, max_capacity, num_floors, seats_per_floor,
	total_seats, is_factory_default, is_modified, is_active, created_at, updated_at, deleted_at`

// scanSeatDiagram maps one row onto a model.SeatDiagram, decoding the
// seats_per_floor JSON column.
func scanSeatDiagram(row interface{ Scan(...any) error }) (*model.SeatDiagram, error) {
	var d model.SeatDiagram
	var desc sql.NullString
	var floors []byte
	var deleted sql.NullTime
	if err := row.Scan(
		&d.ID, &d.Name, &desc, &d.MaxCapacity, &d.NumFloors, &floors,
		&d.TotalSeats, &d.IsFactoryDefault, &d.IsModified, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt, &deleted,
	); err != nil {
		return nil, err
	}
	if desc.Valid {
		d.Description = &desc.String
	}
	if deleted.Valid {
		t := deleted.Time
		d.DeletedAt = &t
	}
	if len(floors) > 0 {
		if err := json.Unmarshal(floors, &d.SeatsPerFloor); err != nil {
			return nil, err
		}
	}
	return &d, nil
}

// Create inserts a diagram row. On success the diagram's ID is populated.
func (r *SeatDiagramRepo) Create(ctx context.Context, d *model.SeatDiagram) error {
	return r.create(ctx, r.db, d)
}

// CreateTx is Create running on an open transaction, used when a bus
// clones its diagram from a template.
func (r *SeatDiagramRepo) CreateTx(ctx context.Context, tx *sql.Tx, d *model.SeatDiagram) error {
	return r.create(ctx, tx, d)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SeatDiagramRepo) create(ctx context.Context, ex execer, d *model.SeatDiagram) error {
	floors, err := json.Marshal(d.SeatsPerFloor)
	if err != nil {
		return err
	}
	var desc any
	if d.Description != nil {
		desc = *d.Description
	}
	const q = `INSERT INTO seat_diagrams
	           (name, description, max_capacity, num_floors, seats_per_floor,
	            total_seats, is_factory_default, is_modified, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := ex.ExecContext(ctx, q,
		d.Name, desc, d.MaxCapacity, d.NumFloors, floors,
		d.TotalSeats, d.IsFactoryDefault, d.IsModified, d.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID retrieves an alive (not soft-deleted) diagram by its id.
func (r *SeatDiagramRepo) GetByID(ctx context.Context, id uint64) (*model.SeatDiagram, error) {
	const q = `SELECT ` + seatDiagramCols + ` FROM seat_diagrams
	           WHERE id = ? AND deleted_at IS NULL`
	d, err := scanSeatDiagram(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatDiagramNotFound
		}
		return nil, err
	}
	return d, nil
}

// GetByIDForUpdate loads a diagram inside the given transaction and
// locks its row until the transaction ends.  The reconciler takes this
// lock so two concurrent reconciliations of one diagram serialize at
// the database instead of racing.
func (r *SeatDiagramRepo) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint64) (*model.SeatDiagram, error) {
	const q = `SELECT ` + seatDiagramCols + ` FROM seat_diagrams
	           WHERE id = ? AND deleted_at IS NULL FOR UPDATE`
	d, err := scanSeatDiagram(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatDiagramNotFound
		}
		return nil, err
	}
	return d, nil
}

// List returns alive diagrams, optionally filtered to factory templates
// or instances, newest first.
func (r *SeatDiagramRepo) List(ctx context.Context, factoryDefault *bool) ([]model.SeatDiagram, error) {
	q := `SELECT ` + seatDiagramCols + ` FROM seat_diagrams WHERE deleted_at IS NULL`
	args := []any{}
	if factoryDefault != nil {
		q += ` AND is_factory_default = ?`
		args = append(args, *factoryDefault)
	}
	q += ` ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.SeatDiagram
	for rows.Next() {
		d, err := scanSeatDiagram(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateFields writes the directly editable diagram fields.  The caller
// decides whether the change was effective and passes is_modified
// accordingly (direct updates only dirty the diagram on a real change).
func (r *SeatDiagramRepo) UpdateFields(ctx context.Context, d *model.SeatDiagram) error {
	floors, err := json.Marshal(d.SeatsPerFloor)
	if err != nil {
		return err
	}
	var desc any
	if d.Description != nil {
		desc = *d.Description
	}
	const q = `UPDATE seat_diagrams
	           SET name = ?, description = ?, max_capacity = ?, num_floors = ?,
	               seats_per_floor = ?, is_modified = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q,
		d.Name, desc, d.MaxCapacity, d.NumFloors, floors, d.IsModified, d.IsActive, d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateAggregatesTx rewrites the cached seat counters after a
// reconciliation.  is_modified is set unconditionally: the
// reconciliation path always marks the diagram as customized, even
// when the resulting seat set is identical to the previous one.
func (r *SeatDiagramRepo) UpdateAggregatesTx(ctx context.Context, tx *sql.Tx, id uint64, totalSeats int) error {
	const q = `UPDATE seat_diagrams
	           SET total_seats = ?, is_modified = TRUE, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := tx.ExecContext(ctx, q, totalSeats, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatDiagramNotFound
	}
	return nil
}

// SoftDelete marks a diagram deleted and deactivates its seats in one
// transaction.  Seat rows are kept for history.
func (r *SeatDiagramRepo) SoftDelete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	const q = `UPDATE seat_diagrams
	           SET deleted_at = CURRENT_TIMESTAMP, is_active = FALSE
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_ = tx.Rollback()
		return ErrSeatDiagramNotFound
	}
	const qs = `UPDATE bus_seats SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
	            WHERE seat_diagram_id = ?`
	if _, err := tx.ExecContext(ctx, qs, id); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
