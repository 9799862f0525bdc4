package repository // repository defines data access for pathways

import (
	"context"
	"database/sql"
	"errors"

	"github.com/veloxbus/fleet-inventory/internal/model"
)

// ErrPathwayNotFound is returned when a pathway lookup yields no rows.
var ErrPathwayNotFound = errors.New("pathway not found")

// PathwayRepo provides methods to work with pathways in the database.
type PathwayRepo struct {
	db *sql.DB
}

// NewPathwayRepo constructs a PathwayRepo with the given DB handle.
func NewPathwayRepo(db *sql.DB) *PathwayRepo {
	return &PathwayRepo{db: db}
}

const pathwayCols = `id, name, origin_node_id, destination_node_id, distance_km,
	is_active, created_at, updated_at, deleted_at`

func scanPathway(row interface{ Scan(...any) error }) (*model.Pathway, error) {
	var p model.Pathway
	var deleted sql.NullTime
	if err := row.Scan(&p.ID, &p.Name, &p.OriginNodeID, &p.DestinationNodeID, &p.DistanceKm,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &deleted); err != nil {
		return nil, err
	}
	if deleted.Valid {
		d := deleted.Time
		p.DeletedAt = &d
	}
	return &p, nil
}

// Create inserts a pathway record. On success the ID is populated.
func (r *PathwayRepo) Create(ctx context.Context, p *model.Pathway) error {
	const q = `INSERT INTO pathways (name, origin_node_id, destination_node_id, distance_km, is_active)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.OriginNodeID, p.DestinationNodeID, p.DistanceKm, p.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID retrieves an alive pathway by its id.
func (r *PathwayRepo) GetByID(ctx context.Context, id uint64) (*model.Pathway, error) {
	const q = `SELECT ` + pathwayCols + ` FROM pathways WHERE id = ? AND deleted_at IS NULL`
	p, err := scanPathway(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPathwayNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns alive pathways ordered by name.
func (r *PathwayRepo) List(ctx context.Context) ([]model.Pathway, error) {
	const q = `SELECT ` + pathwayCols + ` FROM pathways WHERE deleted_at IS NULL ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Pathway
	for rows.Next() {
		p, err := scanPathway(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites the editable pathway fields.
// Returns sql.ErrNoRows when the pathway does not exist.
func (r *PathwayRepo) Update(ctx context.Context, p *model.Pathway) error {
	const q = `UPDATE pathways
	           SET name = ?, origin_node_id = ?, destination_node_id = ?, distance_km = ?,
	               is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.OriginNodeID, p.DestinationNodeID, p.DistanceKm, p.IsActive, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete marks a pathway deleted.  Fails with ErrConflict when any
// of its options is in use.
func (r *PathwayRepo) SoftDelete(ctx context.Context, id uint64) error {
	const qc = `SELECT COUNT(*) FROM pathway_options WHERE pathway_id = ? AND in_use = TRUE`
	var n int
	if err := r.db.QueryRowContext(ctx, qc, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `UPDATE pathways SET deleted_at = CURRENT_TIMESTAMP, is_active = FALSE
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrPathwayNotFound
	}
	return nil
}
