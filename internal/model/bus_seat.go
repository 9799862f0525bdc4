package model

import "time"

// Space types distinguish passenger seats from non-seat grid cells.
const (
	SpaceTypeSeat     = "SEAT"
	SpaceTypeAisle    = "AISLE"
	SpaceTypeBathroom = "BATHROOM"
	SpaceTypeStairs   = "STAIRS"
	SpaceTypeEmpty    = "EMPTY"
)

// Seat classes for SEAT-type spaces.
const (
	SeatTypeRegular   = "REGULAR"
	SeatTypePremium   = "PREMIUM"
	SeatTypeVIP       = "VIP"
	SeatTypeBusiness  = "BUSINESS"
	SeatTypeExecutive = "EXECUTIVE"
)

// BusSeat describes one cell in a seat diagram's grid: either a
// passenger seat or a non-seat space such as an aisle marker,
// bathroom or stairwell.  It corresponds to a row in the `bus_seats`
// table.
//
// Within one diagram at most one active row may occupy a given
// (floor, x, y) position and at most one active SEAT row may carry a
// given seat number.  Rows are created in bulk when a diagram is
// instantiated from a template and afterwards mutated only through
// the configuration reconciler; exclusion from a reconciliation
// payload deactivates a row (IsActive=false), it never deletes it.
//
// Fields:
//  ID            – primary key identifier.
//  SeatDiagramID – owning diagram.
//  FloorNumber   – 1-based floor of the cell.
//  PosX          – column within the row (0 admits the aisle column).
//  PosY          – 1-based row within the floor.
//  SpaceType     – SEAT or a non-seat space constant.
//  SeatNumber    – seat label, set only for SEAT spaces.
//  SeatType      – seat class, set only for SEAT spaces.
//  Amenities     – list of amenity codes, stored as JSON.
//  IsActive      – soft availability flag flipped by the reconciler.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type BusSeat struct {
	ID            uint64    `json:"id"`                   // bus_seats.id
	SeatDiagramID uint64    `json:"seatDiagramId"`        // bus_seats.seat_diagram_id
	FloorNumber   int       `json:"floorNumber"`          // bus_seats.floor_number
	PosX          int       `json:"posX"`                 // bus_seats.pos_x
	PosY          int       `json:"posY"`                 // bus_seats.pos_y
	SpaceType     string    `json:"spaceType"`            // bus_seats.space_type
	SeatNumber    *string   `json:"seatNumber,omitempty"` // bus_seats.seat_number (nullable)
	SeatType      *string   `json:"seatType,omitempty"`   // bus_seats.seat_type (nullable)
	Amenities     []string  `json:"amenities,omitempty"`  // bus_seats.amenities (JSON)
	IsActive      bool      `json:"isActive"`             // bus_seats.is_active
	CreatedAt     time.Time `json:"createdAt"`            // bus_seats.created_at
	UpdatedAt     time.Time `json:"updatedAt"`            // bus_seats.updated_at
}
