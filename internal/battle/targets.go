package battle

// SuitableTargets scans each flank row of the defending army and returns the
// units a melee attacker can legally reach. A unit is exposed when every slot
// between it and the attacking side is empty or dead — corpses and gaps do
// not block a charge. An attacker on the left reaches the right-most living
// unit of each row; an attacker on the right reaches the left-most.
//
// Results come back row by row, left-to-right within a row. Dead and absent
// slots are never returned.
func SuitableTargets(rows [][]*Unit, attackerOnLeft bool) []*Unit {
	var suitable []*Unit
	for _, row := range rows {
		for i, u := range row {
			if u == nil || !u.Alive() {
				continue
			}
			if attackerOnLeft {
				if exposedFromRight(row, i) {
					suitable = append(suitable, u)
				}
			} else if exposedFromLeft(row, i) {
				suitable = append(suitable, u)
			}
		}
	}
	return suitable
}

// exposedFromRight reports whether nothing living stands to the right of slot i.
func exposedFromRight(row []*Unit, i int) bool {
	for _, u := range row[i+1:] {
		if u != nil && u.Alive() {
			return false
		}
	}
	return true
}

// exposedFromLeft reports whether nothing living stands to the left of slot i.
func exposedFromLeft(row []*Unit, i int) bool {
	for _, u := range row[:i] {
		if u != nil && u.Alive() {
			return false
		}
	}
	return true
}

// FlankRows lays an army out as the 3 flank rows used by target selection.
// Deployment bands are the 3 columns nearest each field edge: column x maps
// to row x on the left edge and row FieldWidth-1-x on the right edge, and the
// unit's y becomes its slot in the row. Units standing outside both bands
// (mid-field) are not part of any flank row.
func FlankRows(a *Army) [][]*Unit {
	rows := make([][]*Unit, FlankRowCount)
	for i := range rows {
		rows[i] = make([]*Unit, PlacementRows)
	}
	for _, u := range a.Units {
		if !u.Placed() || u.Y < 0 || u.Y >= PlacementRows {
			continue
		}
		switch {
		case u.X < PlacementCols:
			rows[u.X][u.Y] = u
		case u.X >= FieldWidth-PlacementCols:
			rows[FieldWidth-1-u.X][u.Y] = u
		}
	}
	return rows
}
