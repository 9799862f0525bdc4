package seatconfig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloxbus/fleet-inventory/internal/model"
	"github.com/veloxbus/fleet-inventory/internal/validation"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// twoFloorDiagram declares floor 1 with 10 rows of 2+2 seats and floor 2
// with 8 rows of 2+2 seats, so the valid column range on both is 0..4.
func twoFloorDiagram() *model.SeatDiagram {
	return &model.SeatDiagram{
		ID:        1,
		Name:      "Double Decker 44",
		NumFloors: 2,
		SeatsPerFloor: []model.FloorLayout{
			{FloorNumber: 1, NumRows: 10, SeatsLeft: 2, SeatsRight: 2},
			{FloorNumber: 2, NumRows: 8, SeatsLeft: 2, SeatsRight: 2},
		},
	}
}

func seatAt(number string, floor, x, y int) SeatInput {
	return SeatInput{
		SeatNumber:  strPtr(number),
		FloorNumber: floor,
		Position:    Position{X: x, Y: y},
	}
}

func violations(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	var verr *validation.ValidationError
	require.True(t, errors.As(err, &verr))
	return verr.Violations
}

func TestValidateGeometry_ValidPayload(t *testing.T) {
	d := twoFloorDiagram()
	inputs := []SeatInput{
		seatAt("1A", 1, 0, 1),
		seatAt("1B", 1, 1, 1),
		{FloorNumber: 1, Position: Position{X: 2, Y: 1}, SpaceType: model.SpaceTypeAisle},
		seatAt("2A", 2, 0, 8),
	}
	assert.NoError(t, validateGeometry(d, inputs))
}

func TestValidateGeometry_FloorOutOfRange(t *testing.T) {
	d := twoFloorDiagram()
	inputs := []SeatInput{
		seatAt("1A", 0, 0, 1),
		seatAt("1B", 3, 0, 1),
	}
	got := violations(t, validateGeometry(d, inputs))
	assert.Equal(t, []string{
		"Invalid floor number 0. Must be between 1 and 2",
		"Invalid floor number 3. Must be between 1 and 2",
	}, got)
}

func TestValidateGeometry_UndeclaredFloorLayout(t *testing.T) {
	// NumFloors admits floor 2 but the layout list only declares floor 1.
	d := twoFloorDiagram()
	d.SeatsPerFloor = d.SeatsPerFloor[:1]

	got := violations(t, validateGeometry(d, []SeatInput{seatAt("2A", 2, 0, 1)}))
	assert.Equal(t, []string{"Invalid floor number 2. Must be between 1 and 2"}, got)
}

func TestValidateGeometry_RowOutOfRange(t *testing.T) {
	d := twoFloorDiagram()
	inputs := []SeatInput{
		seatAt("1A", 1, 0, 0),
		seatAt("1B", 1, 0, 11),
	}
	got := violations(t, validateGeometry(d, inputs))
	assert.Equal(t, []string{
		"Invalid row number 0 for floor 1. Must be between 1 and 10",
		"Invalid row number 11 for floor 1. Must be between 1 and 10",
	}, got)
}

func TestValidateGeometry_ColumnOutOfRange(t *testing.T) {
	d := twoFloorDiagram()
	inputs := []SeatInput{
		seatAt("1A", 1, -1, 1),
		seatAt("1B", 1, 5, 1),
	}
	got := violations(t, validateGeometry(d, inputs))
	assert.Equal(t, []string{
		"Invalid column number -1 for floor 1. Must be between 0 and 4",
		"Invalid column number 5 for floor 1. Must be between 0 and 4",
	}, got)
}

func TestValidateGeometry_SeatNumberRequired(t *testing.T) {
	d := twoFloorDiagram()
	inputs := []SeatInput{
		{FloorNumber: 1, Position: Position{X: 0, Y: 1}, SpaceType: model.SpaceTypeSeat},
		{FloorNumber: 1, Position: Position{X: 1, Y: 1}, SpaceType: model.SpaceTypeSeat, SeatNumber: strPtr("")},
	}
	got := violations(t, validateGeometry(d, inputs))
	assert.Equal(t, []string{
		"Seat number is required for SEAT space at floor 1, position (0, 1)",
		"Seat number is required for SEAT space at floor 1, position (1, 1)",
	}, got)
}

func TestValidateGeometry_CollectsAcrossInputs(t *testing.T) {
	// One input can violate row and column at once; a later bad input
	// still gets reported.
	d := twoFloorDiagram()
	inputs := []SeatInput{
		seatAt("1A", 1, 9, 99),
		seatAt("2A", 2, 0, 9),
	}
	got := violations(t, validateGeometry(d, inputs))
	assert.Equal(t, []string{
		"Invalid row number 99 for floor 1. Must be between 1 and 10",
		"Invalid column number 9 for floor 1. Must be between 0 and 4",
		"Invalid row number 9 for floor 2. Must be between 1 and 8",
	}, got)
}

func TestValidateDuplicates_SeatNumbers(t *testing.T) {
	inputs := []SeatInput{
		seatAt("1A", 1, 0, 1),
		seatAt("1A", 1, 1, 1),
		seatAt("1A", 1, 3, 1),
	}
	got := violations(t, validateDuplicates(inputs))
	// One message regardless of how many numbers repeat.
	assert.Equal(t, []string{"Duplicate seat numbers found in payload"}, got)
}

func TestValidateDuplicates_Positions(t *testing.T) {
	inputs := []SeatInput{
		seatAt("1A", 1, 0, 1),
		seatAt("1B", 1, 0, 1),
	}
	got := violations(t, validateDuplicates(inputs))
	assert.Equal(t, []string{"Duplicate positions found in payload"}, got)
}

func TestValidateDuplicates_Both(t *testing.T) {
	inputs := []SeatInput{
		seatAt("1A", 1, 0, 1),
		seatAt("1A", 1, 0, 1),
	}
	got := violations(t, validateDuplicates(inputs))
	assert.Equal(t, []string{
		"Duplicate seat numbers found in payload",
		"Duplicate positions found in payload",
	}, got)
}

func TestValidateDuplicates_MissingNumbersNeverCollide(t *testing.T) {
	// Aisle/empty cells carry no seat number; two of them are not
	// duplicates of each other.
	inputs := []SeatInput{
		{FloorNumber: 1, Position: Position{X: 2, Y: 1}, SpaceType: model.SpaceTypeAisle},
		{FloorNumber: 1, Position: Position{X: 2, Y: 2}, SpaceType: model.SpaceTypeAisle},
		{FloorNumber: 1, Position: Position{X: 2, Y: 3}, SeatNumber: strPtr("")},
	}
	assert.NoError(t, validateDuplicates(inputs))
}

func TestValidateDuplicates_EmptyPayload(t *testing.T) {
	assert.NoError(t, validateDuplicates(nil))
}
