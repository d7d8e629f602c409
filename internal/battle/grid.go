package battle

// Battlefield dimensions. The path grid is where units stand and move; the
// placement band is the 3-column strip on each edge where generated armies
// deploy. Flank rows (used by target selection) are the 3 placement columns
// read sideways: one row per column, one slot per y.
const (
	FieldWidth  = 27 // path grid columns
	FieldHeight = 21 // path grid rows

	PlacementCols = 3  // deployment band width
	PlacementRows = 21 // deployment band height

	FlankRowCount = 3
)

// Cell is one grid square. It doubles as a path step and as a predecessor
// pointer during path reconstruction.
type Cell struct {
	X, Y int
}

// InField reports whether the cell lies on the path grid.
func (c Cell) InField() bool {
	return c.X >= 0 && c.X < FieldWidth && c.Y >= 0 && c.Y < FieldHeight
}

// Occupancy is the set of cells blocked by standing units. It is rebuilt
// fresh for every path query; nothing caches it across queries.
type Occupancy map[Cell]struct{}

// OccupiedBy collects the cells of every living, placed unit in units,
// skipping any unit listed in exclude. Path queries exclude the attacker and
// the target so both endpoints stay walkable.
func OccupiedBy(units []*Unit, exclude ...*Unit) Occupancy {
	occ := make(Occupancy, len(units))
units:
	for _, u := range units {
		for _, ex := range exclude {
			if u == ex {
				continue units
			}
		}
		if u.Alive() && u.Placed() {
			occ[Cell{u.X, u.Y}] = struct{}{}
		}
	}
	return occ
}

// Blocked returns true if (x,y) is off the path grid or occupied.
func (occ Occupancy) Blocked(x, y int) bool {
	if x < 0 || x >= FieldWidth || y < 0 || y >= FieldHeight {
		return true
	}
	_, taken := occ[Cell{x, y}]
	return taken
}
