package battle

import "testing"

func TestOccupancy_BlockedOutOfBounds(t *testing.T) {
	occ := Occupancy{}
	if !occ.Blocked(-1, 0) {
		t.Fatal("x=-1 should be blocked")
	}
	if !occ.Blocked(0, -1) {
		t.Fatal("y=-1 should be blocked")
	}
	if !occ.Blocked(FieldWidth, 0) {
		t.Fatal("x=FieldWidth should be blocked")
	}
	if !occ.Blocked(0, FieldHeight) {
		t.Fatal("y=FieldHeight should be blocked")
	}
	if occ.Blocked(0, 0) || occ.Blocked(FieldWidth-1, FieldHeight-1) {
		t.Fatal("in-bounds empty cells should be open")
	}
}

func TestOccupancy_BlockedByUnit(t *testing.T) {
	occ := Occupancy{{X: 3, Y: 4}: {}}
	if !occ.Blocked(3, 4) {
		t.Fatal("occupied cell should be blocked")
	}
	if occ.Blocked(4, 4) {
		t.Fatal("neighboring cell should be open")
	}
}

func TestOccupiedBy_SkipsDeadAndExcluded(t *testing.T) {
	attacker := testUnit("attacker", 5, 1, 0, 0)
	target := testUnit("target", 5, 1, 5, 5)
	bystander := testUnit("bystander", 5, 1, 2, 2)
	corpse := testUnit("corpse", 0, 1, 3, 3)
	unplaced := testUnit("unplaced", 5, 1, -1, -1)

	occ := OccupiedBy([]*Unit{attacker, target, bystander, corpse, unplaced}, attacker, target)
	if len(occ) != 1 {
		t.Fatalf("expected exactly the bystander cell, got %d cells", len(occ))
	}
	if !occ.Blocked(2, 2) {
		t.Fatal("bystander cell should be blocked")
	}
	if occ.Blocked(0, 0) || occ.Blocked(5, 5) {
		t.Fatal("attacker and target cells must stay open")
	}
	if occ.Blocked(3, 3) {
		t.Fatal("dead units must not block")
	}
}
