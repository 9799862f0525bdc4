package seatconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloxbus/fleet-inventory/internal/model"
)

func existingSeat(id uint64, number string, floor, x, y int, active bool) model.BusSeat {
	return model.BusSeat{
		ID:            id,
		SeatDiagramID: 1,
		FloorNumber:   floor,
		PosX:          x,
		PosY:          y,
		SpaceType:     model.SpaceTypeSeat,
		SeatNumber:    strPtr(number),
		IsActive:      active,
	}
}

func TestReconcile_CreatesWhenNoPositionMatches(t *testing.T) {
	desired := []SeatInput{
		seatAt("1A", 1, 0, 1),
		{FloorNumber: 1, Position: Position{X: 2, Y: 1}, SpaceType: model.SpaceTypeAisle},
	}

	p := reconcile(1, nil, desired)

	require.Len(t, p.toCreate, 2)
	assert.Empty(t, p.toUpdate)
	assert.Empty(t, p.toDeactivate)

	assert.Equal(t, uint64(1), p.toCreate[0].SeatDiagramID)
	assert.Equal(t, model.SpaceTypeSeat, p.toCreate[0].SpaceType)
	assert.Equal(t, "1A", *p.toCreate[0].SeatNumber)
	assert.True(t, p.toCreate[0].IsActive)

	assert.Equal(t, model.SpaceTypeAisle, p.toCreate[1].SpaceType)
	assert.Nil(t, p.toCreate[1].SeatNumber)
}

func TestReconcile_PositionMatchReusesRowIdentity(t *testing.T) {
	// The matching row is currently deactivated; naming its position
	// again must update it in place and reactivate it, not insert.
	existing := []model.BusSeat{existingSeat(7, "1A", 1, 0, 1, false)}
	desired := []SeatInput{seatAt("1C", 1, 0, 1)}

	p := reconcile(1, existing, desired)

	assert.Empty(t, p.toCreate)
	assert.Empty(t, p.toDeactivate)
	require.Len(t, p.toUpdate, 1)
	assert.Equal(t, uint64(7), p.toUpdate[0].ID)
	assert.Equal(t, "1C", *p.toUpdate[0].SeatNumber)
	assert.True(t, p.toUpdate[0].IsActive)
}

func TestReconcile_UpdateHonorsExplicitInactive(t *testing.T) {
	existing := []model.BusSeat{existingSeat(7, "1A", 1, 0, 1, true)}
	desired := []SeatInput{{
		SeatNumber:  strPtr("1A"),
		FloorNumber: 1,
		Position:    Position{X: 0, Y: 1},
		Active:      boolPtr(false),
	}}

	p := reconcile(1, existing, desired)

	require.Len(t, p.toUpdate, 1)
	assert.False(t, p.toUpdate[0].IsActive)
	assert.Empty(t, p.toDeactivate)
}

func TestReconcile_DeactivatesOnlyUntouchedActiveRows(t *testing.T) {
	existing := []model.BusSeat{
		existingSeat(1, "1A", 1, 0, 1, true),  // named below
		existingSeat(2, "1B", 1, 1, 1, true),  // untouched, active
		existingSeat(3, "1C", 1, 3, 1, false), // untouched, already inactive
	}
	desired := []SeatInput{seatAt("1A", 1, 0, 1)}

	p := reconcile(1, existing, desired)

	assert.Empty(t, p.toCreate)
	require.Len(t, p.toUpdate, 1)
	assert.Equal(t, uint64(1), p.toUpdate[0].ID)
	assert.Equal(t, []uint64{2}, p.toDeactivate)
}

func TestReconcile_EmptyPayloadDeactivatesAllActive(t *testing.T) {
	existing := []model.BusSeat{
		existingSeat(1, "1A", 1, 0, 1, true),
		existingSeat(2, "1B", 1, 1, 1, true),
		existingSeat(3, "1C", 1, 3, 1, false),
	}

	p := reconcile(1, existing, nil)

	assert.Empty(t, p.toCreate)
	assert.Empty(t, p.toUpdate)
	assert.Equal(t, []uint64{1, 2}, p.toDeactivate)
}

func TestReconcile_RenumberingFrontRowRetiresTheBack(t *testing.T) {
	// Two rows of 2+2 seats.  The payload renames the front row's four
	// seats in place and omits the back row entirely, so the plan must
	// update four rows and deactivate the other four, creating nothing.
	existing := []model.BusSeat{
		existingSeat(1, "1A", 1, 0, 1, true),
		existingSeat(2, "1B", 1, 1, 1, true),
		existingSeat(3, "1C", 1, 3, 1, true),
		existingSeat(4, "1D", 1, 4, 1, true),
		existingSeat(5, "2A", 1, 0, 2, true),
		existingSeat(6, "2B", 1, 1, 2, true),
		existingSeat(7, "2C", 1, 3, 2, true),
		existingSeat(8, "2D", 1, 4, 2, true),
	}
	desired := []SeatInput{
		seatAt("1D", 1, 0, 1),
		seatAt("1C", 1, 1, 1),
		seatAt("1B", 1, 3, 1),
		seatAt("1A", 1, 4, 1),
	}

	p := reconcile(1, existing, desired)

	assert.Empty(t, p.toCreate)
	require.Len(t, p.toUpdate, 4)
	assert.Equal(t, []uint64{5, 6, 7, 8}, p.toDeactivate)

	for i, want := range []string{"1D", "1C", "1B", "1A"} {
		assert.Equal(t, existing[i].ID, p.toUpdate[i].ID)
		assert.Equal(t, want, *p.toUpdate[i].SeatNumber)
		assert.True(t, p.toUpdate[i].IsActive)
	}

	// Every previously active row and every brand-new position is
	// accounted for exactly once across the three buckets.
	assert.Equal(t, 8, len(p.toCreate)+len(p.toUpdate)+len(p.toDeactivate))
}

func TestReconcile_MixedPayloadBalancesCounts(t *testing.T) {
	// One position match, two new positions, two untouched active rows.
	existing := []model.BusSeat{
		existingSeat(1, "1A", 1, 0, 1, true),
		existingSeat(2, "1B", 1, 1, 1, true),
		existingSeat(3, "1C", 1, 3, 1, true),
	}
	desired := []SeatInput{
		seatAt("1A", 1, 0, 1), // same position, kept
		seatAt("4A", 1, 0, 4), // new position
		seatAt("4B", 1, 1, 4), // new position
	}

	p := reconcile(1, existing, desired)

	require.Len(t, p.toCreate, 2)
	require.Len(t, p.toUpdate, 1)
	assert.Equal(t, uint64(1), p.toUpdate[0].ID)
	assert.Equal(t, []uint64{2, 3}, p.toDeactivate)

	// 3 active before plus 2 new positions, 5 rows touched in total.
	assert.Equal(t, 5, len(p.toCreate)+len(p.toUpdate)+len(p.toDeactivate))
}

func TestReconcile_Idempotent(t *testing.T) {
	// Re-submitting the current state yields updates only; applying the
	// plan would change nothing.
	existing := []model.BusSeat{
		existingSeat(1, "1A", 1, 0, 1, true),
		existingSeat(2, "1B", 1, 1, 1, true),
	}
	desired := []SeatInput{
		seatAt("1A", 1, 0, 1),
		seatAt("1B", 1, 1, 1),
	}

	p := reconcile(1, existing, desired)

	assert.Empty(t, p.toCreate)
	assert.Empty(t, p.toDeactivate)
	require.Len(t, p.toUpdate, 2)
	for i := range p.toUpdate {
		assert.Equal(t, existing[i].ID, p.toUpdate[i].ID)
		assert.Equal(t, *existing[i].SeatNumber, *p.toUpdate[i].SeatNumber)
		assert.True(t, p.toUpdate[i].IsActive)
	}
}
