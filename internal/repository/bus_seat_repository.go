package repository // repository defines data access for bus seats

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/veloxbus/fleet-inventory/internal/model"
)

// ErrBusSeatNotFound is returned when a seat lookup yields no rows.
var ErrBusSeatNotFound = errors.New("bus seat not found")

// BusSeatRepo provides methods to work with bus seats in the database.
// Seat rows are created in bulk when a diagram is instantiated and then
// mutated only by the configuration reconciler, so the write methods
// all run on a caller-owned transaction.
type BusSeatRepo struct {
	db *sql.DB
}

// NewBusSeatRepo constructs a BusSeatRepo with the given DB handle.
func NewBusSeatRepo(db *sql.DB) *BusSeatRepo {
	return &BusSeatRepo{db: db}
}

const busSeatCols = `id, seat_diagram_id, floor_number, pos_x, pos_y, space_type,
	seat_number, seat_type, amenities, is_active, created_at, updated_at`

func scanBusSeat(row interface{ Scan(...any) error }) (*model.BusSeat, error) {
	var s model.BusSeat
	var seatNumber, seatType sql.NullString
	var amenities []byte
	if err := row.Scan(
		&s.ID, &s.SeatDiagramID, &s.FloorNumber, &s.PosX, &s.PosY, &s.SpaceType,
		&seatNumber, &seatType, &amenities, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if seatNumber.Valid {
		s.SeatNumber = &seatNumber.String
	}
	if seatType.Valid {
		s.SeatType = &seatType.String
	}
	if len(amenities) > 0 {
		if err := json.Unmarshal(amenities, &s.Amenities); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func seatArgs(s *model.BusSeat) ([]any, error) {
	var amenities any
	if s.Amenities != nil {
		b, err := json.Marshal(s.Amenities)
		if err != nil {
			return nil, err
		}
		amenities = b
	}
	var seatNumber, seatType any
	if s.SeatNumber != nil {
		seatNumber = *s.SeatNumber
	}
	if s.SeatType != nil {
		seatType = *s.SeatType
	}
	return []any{
		s.SeatDiagramID, s.FloorNumber, s.PosX, s.PosY, s.SpaceType,
		seatNumber, seatType, amenities, s.IsActive,
	}, nil
}

// CreateBulkTx inserts multiple seats in a single statement on the
// given transaction.  Seat IDs are not populated; bulk creation is
// fire-and-forget from the caller's point of view.
func (r *BusSeatRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, seats []model.BusSeat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO bus_seats
	          (seat_diagram_id, floor_number, pos_x, pos_y, space_type, seat_number, seat_type, amenities, is_active) VALUES `
	args := make([]any, 0, len(seats)*9)
	for i := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?)"
		a, err := seatArgs(&seats[i])
		if err != nil {
			return err
		}
		args = append(args, a...)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByDiagram retrieves every seat row of a diagram, active or not,
// ordered by floor, row and column.  The reconciler needs inactive
// rows too so it can reuse row identity on a position match.
func (r *BusSeatRepo) GetByDiagram(ctx context.Context, diagramID uint64) ([]model.BusSeat, error) {
	return queryBusSeats(ctx, r.db, busSeatsByDiagramQuery, diagramID)
}

// GetByDiagramTx is GetByDiagram running on an open transaction, so
// the reconciler reads the rows it is about to mutate under the same
// snapshot and diagram row lock.
func (r *BusSeatRepo) GetByDiagramTx(ctx context.Context, tx *sql.Tx, diagramID uint64) ([]model.BusSeat, error) {
	return queryBusSeats(ctx, tx, busSeatsByDiagramQuery, diagramID)
}

// GetActiveByDiagram retrieves only the active seat rows of a diagram.
func (r *BusSeatRepo) GetActiveByDiagram(ctx context.Context, diagramID uint64) ([]model.BusSeat, error) {
	const q = `SELECT ` + busSeatCols + ` FROM bus_seats
	           WHERE seat_diagram_id = ? AND is_active = TRUE
	           ORDER BY floor_number, pos_y, pos_x`
	return queryBusSeats(ctx, r.db, q, diagramID)
}

const busSeatsByDiagramQuery = `SELECT ` + busSeatCols + ` FROM bus_seats
	           WHERE seat_diagram_id = ?
	           ORDER BY floor_number, pos_y, pos_x`

type rowQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryBusSeats(ctx context.Context, qr rowQuerier, q string, args ...any) ([]model.BusSeat, error) {
	rows, err := qr.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.BusSeat
	for rows.Next() {
		s, err := scanBusSeat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateTx rewrites all mutable fields of one seat row, including the
// active flag, on the given transaction.  Used by the reconciler when
// a payload position matches an existing row (relabel/reactivate in
// place, identity preserved).
func (r *BusSeatRepo) UpdateTx(ctx context.Context, tx *sql.Tx, s *model.BusSeat) error {
	var amenities any
	if s.Amenities != nil {
		b, err := json.Marshal(s.Amenities)
		if err != nil {
			return err
		}
		amenities = b
	}
	var seatNumber, seatType any
	if s.SeatNumber != nil {
		seatNumber = *s.SeatNumber
	}
	if s.SeatType != nil {
		seatType = *s.SeatType
	}
	const q = `UPDATE bus_seats
	           SET space_type = ?, seat_number = ?, seat_type = ?, amenities = ?,
	               is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, s.SpaceType, seatNumber, seatType, amenities, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBusSeatNotFound
	}
	return nil
}

// DeactivateTx flips is_active off for the given seat ids, leaving all
// other fields untouched.  Deactivation is a flag flip, never a row
// removal, so history and references stay intact.
func (r *BusSeatRepo) DeactivateTx(ctx context.Context, tx *sql.Tx, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE bus_seats SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id IN (`
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// CountActiveByDiagram returns the number of active seat rows of a diagram.
func (r *BusSeatRepo) CountActiveByDiagram(ctx context.Context, diagramID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM bus_seats WHERE seat_diagram_id = ? AND is_active = TRUE`
	var n int
	if err := r.db.QueryRowContext(ctx, q, diagramID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CopyFromDiagramTx clones every seat row of one diagram under another
// diagram id.  Used when a bus instantiates its own diagram from a
// factory template.
func (r *BusSeatRepo) CopyFromDiagramTx(ctx context.Context, tx *sql.Tx, fromID, toID uint64) error {
	const q = `INSERT INTO bus_seats
	           (seat_diagram_id, floor_number, pos_x, pos_y, space_type, seat_number, seat_type, amenities, is_active)
	           SELECT ?, floor_number, pos_x, pos_y, space_type, seat_number, seat_type, amenities, is_active
	           FROM bus_seats WHERE seat_diagram_id = ?`
	_, err := tx.ExecContext(ctx, q, toID, fromID)
	return err
}
