package battle

import "sort"

// Simulator resolves a battle between two armies to elimination. It owns
// both armies for the duration of a run; nothing else may mutate them while
// Simulate is in flight.
type Simulator struct {
	log    BattleLog
	rounds int
}

// NewSimulator creates a simulator reporting attacks to log. A nil log
// records nothing.
func NewSimulator(log BattleLog) *Simulator {
	if log == nil {
		log = NopLog{}
	}
	return &Simulator{log: log}
}

// Simulate runs rounds until one side has no living units. Within a round
// the left army acts in full before the right army — a side acting first can
// eliminate defenders before they ever get a turn that round. The exact
// ordering is load-bearing for battle outcomes and must not be interleaved.
//
// A policy error aborts the whole battle immediately; there is no
// partial-battle recovery. Termination otherwise depends on the attached
// policies actually connecting attacks — the loop itself never times out.
func (s *Simulator) Simulate(left, right *Army) error {
	s.rounds = 0
	leftActive := newRoster(left)
	rightActive := newRoster(right)

	for leftActive.len() > 0 && rightActive.len() > 0 {
		s.rounds++
		if err := s.turn(leftActive, rightActive); err != nil {
			return err
		}
		if err := s.turn(rightActive, leftActive); err != nil {
			return err
		}
	}
	return nil
}

// Rounds returns how many rounds the last Simulate call ran.
func (s *Simulator) Rounds() int {
	return s.rounds
}

// turn lets every living attacker act once, strongest base attack first
// (stable, so equal attackers keep roster order). Dead attackers are culled
// as they come up. A chosen target only counts while it is still in the
// defending active set; a successful attack is reported once, and a kill
// removes the victim from the defence immediately.
func (s *Simulator) turn(attackers, defenders *roster) error {
	order := attackers.snapshot()
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].BaseAttack > order[j].BaseAttack
	})

	for _, u := range order {
		if !u.Alive() {
			attackers.remove(u)
			continue
		}
		if u.Policy == nil {
			continue
		}
		target, err := u.Policy.Attack()
		if err != nil {
			return err
		}
		if target == nil || !defenders.contains(target) {
			continue
		}
		s.log.Record(u, target)
		if !target.Alive() {
			defenders.remove(target)
		}
	}
	return nil
}

// roster is one side's active set during a battle: insertion-ordered so the
// sort tie-break stays stable, with O(1) membership checks and removal marks.
type roster struct {
	order   []*Unit
	present map[*Unit]struct{}
}

func newRoster(a *Army) *roster {
	r := &roster{present: make(map[*Unit]struct{}, len(a.Units))}
	for _, u := range a.Units {
		if u.Alive() {
			r.order = append(r.order, u)
			r.present[u] = struct{}{}
		}
	}
	return r
}

func (r *roster) len() int { return len(r.present) }

func (r *roster) contains(u *Unit) bool {
	_, ok := r.present[u]
	return ok
}

func (r *roster) remove(u *Unit) {
	delete(r.present, u)
}

// snapshot copies the members still present, in insertion order.
func (r *roster) snapshot() []*Unit {
	out := make([]*Unit, 0, len(r.present))
	for _, u := range r.order {
		if r.contains(u) {
			out = append(out, u)
		}
	}
	return out
}
