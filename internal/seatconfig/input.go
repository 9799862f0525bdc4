// Package seatconfig implements the seat-diagram configuration
// reconciler: it takes the desired list of seats/spaces for a diagram,
// validates it against the diagram's declared geometry, diffs it
// against the persisted seat rows by position and applies the
// resulting creates, updates and deactivations in one transaction
// together with the diagram's cached counters.
package seatconfig

import "github.com/veloxbus/fleet-inventory/internal/model"

// Position is a grid coordinate inside a floor.  X is the column
// (0 admits the aisle/center column), Y is the 1-based row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SeatInput is one desired seat or space in a configuration payload.
// SpaceType defaults to SEAT when a seat number is present and to
// EMPTY otherwise.  Active defaults to true.
type SeatInput struct {
	SeatNumber  *string  `json:"seatNumber,omitempty"`
	FloorNumber int      `json:"floorNumber"`
	Position    Position `json:"position"`
	SpaceType   string   `json:"spaceType,omitempty"`
	SeatType    *string  `json:"seatType,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// spaceType resolves the effective space type of the input.
func (in *SeatInput) spaceType() string {
	if in.SpaceType != "" {
		return in.SpaceType
	}
	if in.SeatNumber != nil && *in.SeatNumber != "" {
		return model.SpaceTypeSeat
	}
	return model.SpaceTypeEmpty
}

// active resolves the effective active flag of the input.
func (in *SeatInput) active() bool {
	if in.Active == nil {
		return true
	}
	return *in.Active
}

// Result summarizes one committed reconciliation.
type Result struct {
	SeatsCreated     int `json:"seatsCreated"`
	SeatsUpdated     int `json:"seatsUpdated"`
	SeatsDeactivated int `json:"seatsDeactivated"`
	TotalActiveSeats int `json:"totalActiveSeats"`
}
