package model

import "time"

// Bus represents a single vehicle in the fleet.  Every bus belongs to
// a transporter and owns one seat diagram instance that was cloned
// from a factory-default template when the bus was registered.  This
// struct corresponds to a row in the `buses` table.
//
// Fields:
//  ID            – primary key identifier.
//  TransporterID – operating transporter.
//  SeatDiagramID – the bus's own (non-template) seat diagram.
//  Plate         – license plate, unique per transporter.
//  InternalCode  – optional fleet-internal code.
//  Brand         – manufacturer name.
//  Model         – commercial model name.
//  Year          – manufacturing year.
//  IsActive      – soft availability flag.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
//  DeletedAt     – soft-delete timestamp (nil while alive).
type Bus struct {
	ID            uint64     `json:"id"`                     // buses.id
	TransporterID uint64     `json:"transporterId"`          // buses.transporter_id
	SeatDiagramID uint64     `json:"seatDiagramId"`          // buses.seat_diagram_id
	Plate         string     `json:"plate"`                  // buses.plate
	InternalCode  *string    `json:"internalCode,omitempty"` // buses.internal_code (nullable)
	Brand         string     `json:"brand"`                  // buses.brand
	Model         string     `json:"model"`                  // buses.model
	Year          int        `json:"year"`                   // buses.year
	IsActive      bool       `json:"isActive"`               // buses.is_active
	CreatedAt     time.Time  `json:"createdAt"`              // buses.created_at
	UpdatedAt     time.Time  `json:"updatedAt"`              // buses.updated_at
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`    // buses.deleted_at (nullable)
}
