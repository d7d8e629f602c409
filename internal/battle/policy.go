package battle

// AttackPolicy decides, once per turn, whom a unit strikes. Implementations
// may be scripted, heuristic, or interactive; the simulator only sees the
// chosen target. Returning (nil, nil) means the unit stands down this turn.
// Returning an error aborts the battle.
type AttackPolicy interface {
	Attack() (*Unit, error)
}

// PolicyFunc adapts a plain function to AttackPolicy.
type PolicyFunc func() (*Unit, error)

func (f PolicyFunc) Attack() (*Unit, error) { return f() }

// FlankPolicy is the stock melee decision-maker: list the enemy units the
// flank rule exposes, keep the ones a path actually reaches, charge the
// closest and strike it. Both the target selector and the path router feed
// the decision, and the policy applies the strike itself.
type FlankPolicy struct {
	unit     *Unit
	own      *Army
	enemy    *Army
	leftSide bool // true when this unit fights for the left army
}

// NewFlankPolicy binds a policy to its unit and battlefield sides.
func NewFlankPolicy(unit *Unit, own, enemy *Army, leftSide bool) *FlankPolicy {
	return &FlankPolicy{unit: unit, own: own, enemy: enemy, leftSide: leftSide}
}

// Attack picks the exposed enemy with the shortest path from this unit and
// applies one strike to it. Unreachable candidates are skipped; if nothing
// is reachable the unit stands down.
func (p *FlankPolicy) Attack() (*Unit, error) {
	if !p.unit.Alive() {
		return nil, nil
	}

	candidates := SuitableTargets(FlankRows(p.enemy), p.leftSide)
	if len(candidates) == 0 {
		return nil, nil
	}

	all := p.battlefield()
	var best *Unit
	bestLen := 0
	for _, c := range candidates {
		path := FindPath(p.unit, c, all)
		if len(path) == 0 {
			continue
		}
		if best == nil || len(path) < bestLen {
			best = c
			bestLen = len(path)
		}
	}
	if best == nil {
		return nil, nil
	}

	best.TakeDamage(p.unit.DamageAgainst(best))
	return best, nil
}

func (p *FlankPolicy) battlefield() []*Unit {
	all := make([]*Unit, 0, len(p.own.Units)+len(p.enemy.Units))
	all = append(all, p.own.Units...)
	all = append(all, p.enemy.Units...)
	return all
}

// AttachFlankPolicies wires a FlankPolicy into every unit of both armies.
func AttachFlankPolicies(left, right *Army) {
	for _, u := range left.Units {
		u.Policy = NewFlankPolicy(u, left, right, true)
	}
	for _, u := range right.Units {
		u.Policy = NewFlankPolicy(u, right, left, false)
	}
}

// MirrorArmy moves an army deployed in the left band (x < PlacementCols)
// onto the right band, preserving rows. Generated armies all deploy on the
// left; the side fighting from the right gets mirrored before the battle.
func MirrorArmy(a *Army) {
	for _, u := range a.Units {
		if u.Placed() {
			u.X = FieldWidth - 1 - u.X
		}
	}
}
