package model

import "time"

// Node kinds recognised by the inventory.
const (
	NodeKindTerminal = "TERMINAL"
	NodeKindStop     = "STOP"
	NodeKindToll     = "TOLL"
	NodeKindDepot    = "DEPOT"
)

// Node represents a physical installation in the network: a terminal,
// an intermediate stop, a toll booth or a depot.  Pathways reference
// nodes as their endpoints and toll passes reference TOLL nodes.
// This struct corresponds to a row in the `nodes` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – installation name.
//  Kind      – one of the NodeKind constants.
//  Address   – optional street address.
//  Lat, Lng  – optional WGS84 coordinates.
//  IsActive  – soft availability flag.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
//  DeletedAt – soft-delete timestamp (nil while alive).
type Node struct {
	ID        uint64     `json:"id"`                  // nodes.id
	Name      string     `json:"name"`                // nodes.name
	Kind      string     `json:"kind"`                // nodes.kind
	Address   *string    `json:"address,omitempty"`   // nodes.address (nullable)
	Lat       *float64   `json:"lat,omitempty"`       // nodes.lat (nullable)
	Lng       *float64   `json:"lng,omitempty"`       // nodes.lng (nullable)
	IsActive  bool       `json:"isActive"`            // nodes.is_active
	CreatedAt time.Time  `json:"createdAt"`           // nodes.created_at
	UpdatedAt time.Time  `json:"updatedAt"`           // nodes.updated_at
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // nodes.deleted_at (nullable)
}
