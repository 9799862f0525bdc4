package seatconfig

import (
	"fmt"

	"github.com/veloxbus/fleet-inventory/internal/model"
	"github.com/veloxbus/fleet-inventory/internal/validation"
)

// validateGeometry checks every requested position against the
// diagram's declared floor layout.  All violations are collected and
// returned together; a single bad cell rejects the whole payload.
func validateGeometry(d *model.SeatDiagram, inputs []SeatInput) error {
	var errs validation.Errors
	for i := range inputs {
		in := &inputs[i]
		f := in.FloorNumber
		if f < 1 || f > d.NumFloors {
			errs.Add(fmt.Sprintf("Invalid floor number %d. Must be between 1 and %d", f, d.NumFloors))
			continue
		}
		layout, ok := d.FloorLayoutFor(f)
		if !ok {
			// NumFloors admits the floor but the layout list does not
			// declare it; treat it like a bad floor reference.
			errs.Add(fmt.Sprintf("Invalid floor number %d. Must be between 1 and %d", f, d.NumFloors))
			continue
		}
		if y := in.Position.Y; y < 1 || y > layout.NumRows {
			errs.Add(fmt.Sprintf("Invalid row number %d for floor %d. Must be between 1 and %d", y, f, layout.NumRows))
		}
		// Column 0 through seatsLeft+seatsRight inclusive: one extra
		// column beyond the seat count accommodates the aisle.
		maxCol := layout.SeatsLeft + layout.SeatsRight
		if x := in.Position.X; x < 0 || x > maxCol {
			errs.Add(fmt.Sprintf("Invalid column number %d for floor %d. Must be between 0 and %d", x, f, maxCol))
		}
		if in.spaceType() == model.SpaceTypeSeat && (in.SeatNumber == nil || *in.SeatNumber == "") {
			errs.Add(fmt.Sprintf("Seat number is required for SEAT space at floor %d, position (%d, %d)", f, in.Position.X, in.Position.Y))
		}
	}
	return errs.Err()
}

// validateDuplicates rejects payloads containing duplicate seat
// numbers or duplicate (floor, x, y) positions.  Runs before any
// database access; an empty payload trivially passes (it means
// "deactivate everything").
func validateDuplicates(inputs []SeatInput) error {
	var errs validation.Errors

	seen := make(map[string]bool, len(inputs))
	dupNumbers := false
	for i := range inputs {
		n := inputs[i].SeatNumber
		if n == nil || *n == "" {
			continue
		}
		if seen[*n] {
			dupNumbers = true
			break
		}
		seen[*n] = true
	}
	if dupNumbers {
		errs.Add("Duplicate seat numbers found in payload")
	}

	type pos struct{ f, x, y int }
	seenPos := make(map[pos]bool, len(inputs))
	dupPositions := false
	for i := range inputs {
		p := pos{inputs[i].FloorNumber, inputs[i].Position.X, inputs[i].Position.Y}
		if seenPos[p] {
			dupPositions = true
			break
		}
		seenPos[p] = true
	}
	if dupPositions {
		errs.Add("Duplicate positions found in payload")
	}

	return errs.Err()
}
