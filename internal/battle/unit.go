package battle

import "math"

// AttackType classifies how a unit deals damage. Bonus tables are keyed by it.
type AttackType string

const (
	AttackMelee  AttackType = "melee"
	AttackRanged AttackType = "ranged"
	AttackMagic  AttackType = "magic"
)

// Unit is a single combatant. One catalog template spawns many concrete
// units; each gets its own name, health pool and cell. Health only ever
// decreases during a battle, and position is assigned once at deployment.
type Unit struct {
	Name       string
	Type       string
	Health     int
	BaseAttack int
	Cost       int
	AttackType AttackType

	// AttackBonuses is keyed by the defender's attack type: how hard this
	// unit hits that kind of enemy. DefenceBonuses is keyed by the
	// incoming attack type: how well this unit shrugs it off. Missing
	// entries mean 1.0.
	AttackBonuses  map[AttackType]float64
	DefenceBonuses map[AttackType]float64

	// Grid position, or (-1,-1) before deployment.
	X, Y int

	// Policy decides who this unit strikes on its turn. The engine treats
	// it as an opaque collaborator.
	Policy AttackPolicy
}

// Alive reports whether the unit can still act and block cells.
func (u *Unit) Alive() bool {
	return u.Health > 0
}

// Placed reports whether the unit has been assigned a cell.
func (u *Unit) Placed() bool {
	return u.X >= 0 && u.Y >= 0
}

// Cell returns the unit's grid cell.
func (u *Unit) Cell() Cell {
	return Cell{u.X, u.Y}
}

// DamageAgainst computes the damage one strike on target deals: base attack
// scaled up by the attacker's bonus against the target's kind and down by the
// target's defence against the incoming kind. Never less than 1.
func (u *Unit) DamageAgainst(target *Unit) int {
	atk := bonusOr1(u.AttackBonuses, target.AttackType)
	def := bonusOr1(target.DefenceBonuses, u.AttackType)
	dmg := int(math.Round(float64(u.BaseAttack) * atk / def))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// TakeDamage reduces health, flooring at zero.
func (u *Unit) TakeDamage(dmg int) {
	u.Health -= dmg
	if u.Health < 0 {
		u.Health = 0
	}
}

func bonusOr1(bonuses map[AttackType]float64, key AttackType) float64 {
	if b, ok := bonuses[key]; ok && b > 0 {
		return b
	}
	return 1.0
}

// Army is one side's roster plus the point total it was bought for. The point
// total is fixed at build time; losses during a battle do not decrement it.
type Army struct {
	Units  []*Unit
	Points int
}

// Living returns the units still able to fight, in roster order.
func (a *Army) Living() []*Unit {
	var out []*Unit
	for _, u := range a.Units {
		if u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// HasLiving reports whether at least one unit can still fight.
func (a *Army) HasLiving() bool {
	for _, u := range a.Units {
		if u.Alive() {
			return true
		}
	}
	return false
}
