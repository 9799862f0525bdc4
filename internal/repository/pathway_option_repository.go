package repository // repository defines data access for pathway options and toll passes

import (
	"context"
	"database/sql"
	"errors"

	"github.com/veloxbus/fleet-inventory/internal/model"
)

// ErrPathwayOptionNotFound is returned when an option lookup yields no rows.
var ErrPathwayOptionNotFound = errors.New("pathway option not found")

// PathwayOptionRepo provides methods to work with pathway options and
// their toll passes.  Toll passes never live without their option, so
// both tables are managed here.
type PathwayOptionRepo struct {
	db *sql.DB
}

// NewPathwayOptionRepo constructs a PathwayOptionRepo with the given DB handle.
func NewPathwayOptionRepo(db *sql.DB) *PathwayOptionRepo {
	return &PathwayOptionRepo{db: db}
}

const pathwayOptionCols = `id, pathway_id, name, distance_km, duration_min, avg_speed_kmh,
	in_use, is_active, created_at, updated_at`

func scanPathwayOption(row interface{ Scan(...any) error }) (*model.PathwayOption, error) {
	var o model.PathwayOption
	if err := row.Scan(&o.ID, &o.PathwayID, &o.Name, &o.DistanceKm, &o.DurationMin,
		&o.AvgSpeedKmh, &o.InUse, &o.IsActive, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts an option record. On success the ID is populated.
func (r *PathwayOptionRepo) Create(ctx context.Context, o *model.PathwayOption) error {
	return createPathwayOption(ctx, r.db, o)
}

// CreateTx is Create running on an open transaction, used when the
// option and its toll passes are written in one unit of work.
func (r *PathwayOptionRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.PathwayOption) error {
	return createPathwayOption(ctx, tx, o)
}

type optionExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func createPathwayOption(ctx context.Context, ex optionExecer, o *model.PathwayOption) error {
	const q = `INSERT INTO pathway_options
	           (pathway_id, name, distance_km, duration_min, avg_speed_kmh, in_use, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := ex.ExecContext(ctx, q, o.PathwayID, o.Name, o.DistanceKm, o.DurationMin,
		o.AvgSpeedKmh, o.InUse, o.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// GetByID retrieves an option by its id.
func (r *PathwayOptionRepo) GetByID(ctx context.Context, id uint64) (*model.PathwayOption, error) {
	const q = `SELECT ` + pathwayOptionCols + ` FROM pathway_options WHERE id = ?`
	o, err := scanPathwayOption(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPathwayOptionNotFound
		}
		return nil, err
	}
	return o, nil
}

// GetByIDForUpdate loads an option inside the given transaction and
// locks its row, so metric recalculation and the dependent toll-pass
// rewrite serialize with concurrent edits.
func (r *PathwayOptionRepo) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint64) (*model.PathwayOption, error) {
	const q = `SELECT ` + pathwayOptionCols + ` FROM pathway_options WHERE id = ? FOR UPDATE`
	o, err := scanPathwayOption(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPathwayOptionNotFound
		}
		return nil, err
	}
	return o, nil
}

// ListByPathway returns the options of a pathway ordered by name.
func (r *PathwayOptionRepo) ListByPathway(ctx context.Context, pathwayID uint64) ([]model.PathwayOption, error) {
	const q = `SELECT ` + pathwayOptionCols + ` FROM pathway_options WHERE pathway_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, pathwayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PathwayOption
	for rows.Next() {
		o, err := scanPathwayOption(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateTx rewrites the option's editable fields, including the derived
// average speed, on the given transaction.
func (r *PathwayOptionRepo) UpdateTx(ctx context.Context, tx *sql.Tx, o *model.PathwayOption) error {
	const q = `UPDATE pathway_options
	           SET name = ?, distance_km = ?, duration_min = ?, avg_speed_kmh = ?,
	               is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, o.Name, o.DistanceKm, o.DurationMin, o.AvgSpeedKmh, o.IsActive, o.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPathwayOptionNotFound
	}
	return nil
}

// SetInUse flips the usage lock on an option.
func (r *PathwayOptionRepo) SetInUse(ctx context.Context, id uint64, inUse bool) error {
	const q = `UPDATE pathway_options SET in_use = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, inUse, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPathwayOptionNotFound
	}
	return nil
}

// Delete removes an option and its toll passes.  Fails with
// ErrConflict when the option is in use.
func (r *PathwayOptionRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	o, err := r.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if o.InUse {
		_ = tx.Rollback()
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM toll_passes WHERE pathway_option_id = ?`, id); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM pathway_options WHERE id = ?`, id); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// GetTolls returns the toll passes of an option in sequence order.
func (r *PathwayOptionRepo) GetTolls(ctx context.Context, optionID uint64) ([]model.TollPass, error) {
	const q = `SELECT id, pathway_option_id, toll_node_id, sequence, distance_from_origin_km, pass_time_min
	           FROM toll_passes WHERE pathway_option_id = ? ORDER BY sequence`
	rows, err := r.db.QueryContext(ctx, q, optionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.TollPass
	for rows.Next() {
		var t model.TollPass
		if err := rows.Scan(&t.ID, &t.PathwayOptionID, &t.TollNodeID, &t.Sequence,
			&t.DistanceFromOriginKm, &t.PassTimeMin); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReplaceTollsTx deletes the option's toll passes and inserts the given
// list in one statement each, on the caller's transaction.  Used both
// when the client edits the toll list and when a metrics change forces
// a pass-time rewrite.
func (r *PathwayOptionRepo) ReplaceTollsTx(ctx context.Context, tx *sql.Tx, optionID uint64, tolls []model.TollPass) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM toll_passes WHERE pathway_option_id = ?`, optionID); err != nil {
		return err
	}
	if len(tolls) == 0 {
		return nil
	}
	query := `INSERT INTO toll_passes
	          (pathway_option_id, toll_node_id, sequence, distance_from_origin_km, pass_time_min) VALUES `
	args := make([]any, 0, len(tolls)*5)
	for i, t := range tolls {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, optionID, t.TollNodeID, t.Sequence, t.DistanceFromOriginKm, t.PassTimeMin)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
