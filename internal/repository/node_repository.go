package repository // repository defines data access for network nodes

import (
	"context"
	"database/sql"
	"errors"

	"github.com/veloxbus/fleet-inventory/internal/model"
)

// ErrNodeNotFound is returned when a node lookup yields no rows.
var ErrNodeNotFound = errors.New("node not found")

// NodeRepo provides methods to work with nodes (terminals, stops,
// tolls, depots) in the database.
type NodeRepo struct {
	db *sql.DB
}

// NewNodeRepo constructs a NodeRepo with the given DB handle.
func NewNodeRepo(db *sql.DB) *NodeRepo {
	return &NodeRepo{db: db}
}

const nodeCols = `id, name, kind, address, lat, lng, is_active, created_at, updated_at, deleted_at`

func scanNode(row interface{ Scan(...any) error }) (*model.Node, error) {
	var n model.Node
	var addr sql.NullString
	var lat, lng sql.NullFloat64
	var deleted sql.NullTime
	if err := row.Scan(&n.ID, &n.Name, &n.Kind, &addr, &lat, &lng,
		&n.IsActive, &n.CreatedAt, &n.UpdatedAt, &deleted); err != nil {
		return nil, err
	}
	if addr.Valid {
		n.Address = &addr.String
	}
	if lat.Valid {
		n.Lat = &lat.Float64
	}
	if lng.Valid {
		n.Lng = &lng.Float64
	}
	if deleted.Valid {
		d := deleted.Time
		n.DeletedAt = &d
	}
	return &n, nil
}

// Create inserts a node record. On success the ID is populated.
func (r *NodeRepo) Create(ctx context.Context, n *model.Node) error {
	const q = `INSERT INTO nodes (name, kind, address, lat, lng, is_active)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, n.Name, n.Kind, n.Address, n.Lat, n.Lng, n.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// GetByID retrieves an alive node by its id.
func (r *NodeRepo) GetByID(ctx context.Context, id uint64) (*model.Node, error) {
	const q = `SELECT ` + nodeCols + ` FROM nodes WHERE id = ? AND deleted_at IS NULL`
	n, err := scanNode(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNodeNotFound
		}
		return nil, err
	}
	return n, nil
}

// List returns alive nodes, optionally filtered by kind, ordered by name.
func (r *NodeRepo) List(ctx context.Context, kind string) ([]model.Node, error) {
	q := `SELECT ` + nodeCols + ` FROM nodes WHERE deleted_at IS NULL`
	args := []any{}
	if kind != "" {
		q += ` AND kind = ?`
		args = append(args, kind)
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites the editable node fields.
// Returns sql.ErrNoRows when the node does not exist.
func (r *NodeRepo) Update(ctx context.Context, n *model.Node) error {
	const q = `UPDATE nodes
	           SET name = ?, kind = ?, address = ?, lat = ?, lng = ?, is_active = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, n.Name, n.Kind, n.Address, n.Lat, n.Lng, n.IsActive, n.ID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete marks a node deleted.  Fails with ErrConflict when the
// node is still referenced by an alive pathway endpoint or toll pass.
func (r *NodeRepo) SoftDelete(ctx context.Context, id uint64) error {
	const qc = `SELECT
	              (SELECT COUNT(*) FROM pathways
	               WHERE (origin_node_id = ? OR destination_node_id = ?) AND deleted_at IS NULL)
	            + (SELECT COUNT(*) FROM toll_passes WHERE toll_node_id = ?)`
	var n int
	if err := r.db.QueryRowContext(ctx, qc, id, id, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `UPDATE nodes SET deleted_at = CURRENT_TIMESTAMP, is_active = FALSE
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNodeNotFound
	}
	return nil
}
