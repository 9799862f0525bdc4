package model

import "time"

// FloorLayout declares the geometry of a single floor inside a seat
// diagram: how many seat rows it has and how many seats sit on each
// side of the aisle.  The list of floor layouts is persisted as a JSON
// column on the seat_diagrams table because it is read and written as
// one unit and never queried per-field.
//
// Fields:
//  FloorNumber – 1-based floor index.
//  NumRows     – number of seat rows on this floor.
//  SeatsLeft   – seats on the left side of the aisle per row.
//  SeatsRight  – seats on the right side of the aisle per row.
type FloorLayout struct {
	FloorNumber int `json:"floorNumber"`
	NumRows     int `json:"numRows"`
	SeatsLeft   int `json:"seatsLeft"`
	SeatsRight  int `json:"seatsRight"`
}

// SeatDiagram represents one bus floor-plan layout, either a factory
// default template or a bus-specific instance cloned from one.  It
// corresponds to a row in the `seat_diagrams` table.
//
// TotalSeats is a cached aggregate: it always equals the count of
// active bus_seats rows owned by the diagram as of the last committed
// reconciliation.  IsModified starts false on instances cloned from a
// template and flips to true on the first effective field change or on
// any seat-configuration reconciliation; it never flips back.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – diagram name.
//  Description      – optional free-form description.
//  MaxCapacity      – declared passenger capacity of the layout.
//  NumFloors        – number of floors (len(SeatsPerFloor) must match).
//  SeatsPerFloor    – per-floor geometry, stored as JSON.
//  TotalSeats       – cached count of active seats (see above).
//  IsFactoryDefault – true for reusable templates, false for instances.
//  IsModified       – true once the instance diverged from its template.
//  IsActive         – soft availability flag.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
//  DeletedAt        – soft-delete timestamp (nil while alive).
type SeatDiagram struct {
	ID               uint64        `json:"id"`                    // seat_diagrams.id
	Name             string        `json:"name"`                  // seat_diagrams.name
	Description      *string       `json:"description,omitempty"` // seat_diagrams.description (nullable)
	MaxCapacity      int           `json:"maxCapacity"`           // seat_diagrams.max_capacity
	NumFloors        int           `json:"numFloors"`             // seat_diagrams.num_floors
	SeatsPerFloor    []FloorLayout `json:"seatsPerFloor"`         // seat_diagrams.seats_per_floor (JSON)
	TotalSeats       int           `json:"totalSeats"`            // seat_diagrams.total_seats
	IsFactoryDefault bool          `json:"isFactoryDefault"`      // seat_diagrams.is_factory_default
	IsModified       bool          `json:"isModified"`            // seat_diagrams.is_modified
	IsActive         bool          `json:"isActive"`              // seat_diagrams.is_active
	CreatedAt        time.Time     `json:"createdAt"`             // seat_diagrams.created_at
	UpdatedAt        time.Time     `json:"updatedAt"`             // seat_diagrams.updated_at
	DeletedAt        *time.Time    `json:"deletedAt,omitempty"`   // seat_diagrams.deleted_at (nullable)
}

// FloorLayoutFor returns the declared geometry for the given 1-based
// floor number, or false when the diagram declares no such floor.
func (d *SeatDiagram) FloorLayoutFor(floor int) (FloorLayout, bool) {
	for _, fl := range d.SeatsPerFloor {
		if fl.FloorNumber == floor {
			return fl, true
		}
	}
	return FloorLayout{}, false
}
