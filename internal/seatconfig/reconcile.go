package seatconfig

import "github.com/veloxbus/fleet-inventory/internal/model"

// plan is the output of the diff step: the seat rows to insert, the
// existing rows to rewrite in place and the ids of rows to deactivate.
type plan struct {
	toCreate     []model.BusSeat
	toUpdate     []model.BusSeat
	toDeactivate []uint64
}

// reconcile diffs the desired inputs against the persisted seat rows.
// Rows are matched by (floor, x, y); the position is the natural key
// here because clients never see seat ids.  A position match reuses
// the existing row's identity no matter its current active flag, so a
// previously deactivated cell referenced again becomes an update that
// reactivates it.  Existing rows not named by any input are staged for
// deactivation with all other fields untouched.
//
// Inputs are processed in payload order.  The duplicate detector has
// already guaranteed unique positions, so order only decides which
// call handles which input, never the final state.
func reconcile(diagramID uint64, existing []model.BusSeat, desired []SeatInput) plan {
	type pos struct{ f, x, y int }

	index := make(map[pos]*model.BusSeat, len(existing))
	for i := range existing {
		s := &existing[i]
		index[pos{s.FloorNumber, s.PosX, s.PosY}] = s
	}

	var p plan
	touched := make(map[uint64]bool, len(desired))
	for i := range desired {
		in := &desired[i]
		key := pos{in.FloorNumber, in.Position.X, in.Position.Y}
		if cur, ok := index[key]; ok {
			touched[cur.ID] = true
			upd := *cur
			upd.SpaceType = in.spaceType()
			upd.SeatNumber = in.SeatNumber
			upd.SeatType = in.SeatType
			upd.Amenities = in.Amenities
			upd.IsActive = in.active()
			p.toUpdate = append(p.toUpdate, upd)
			continue
		}
		p.toCreate = append(p.toCreate, model.BusSeat{
			SeatDiagramID: diagramID,
			FloorNumber:   in.FloorNumber,
			PosX:          in.Position.X,
			PosY:          in.Position.Y,
			SpaceType:     in.spaceType(),
			SeatNumber:    in.SeatNumber,
			SeatType:      in.SeatType,
			Amenities:     in.Amenities,
			IsActive:      in.active(),
		})
	}

	// Only rows that are currently active need the flag flipped;
	// untouched inactive rows simply stay as they are.
	for i := range existing {
		if existing[i].IsActive && !touched[existing[i].ID] {
			p.toDeactivate = append(p.toDeactivate, existing[i].ID)
		}
	}
	return p
}
