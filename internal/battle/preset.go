package battle

import (
	"fmt"
	"math/rand"
	"sort"
)

const (
	// maxPerType caps how many copies of one template an army may field.
	maxPerType = 11

	// placementAttempts bounds the random free-cell search per unit before
	// falling back to a deterministic scan. Random placement is expected
	// O(1) while the band is sparse but degrades as it fills.
	placementAttempts = 64
)

// scoredTemplate pairs a catalog template with its cached effectiveness
// score so ranking never relies on map-identity lookups.
type scoredTemplate struct {
	tmpl  *Unit
	score float64
}

// PresetBuilder assembles a computer-controlled army from a catalog of unit
// templates under a point budget. Ranking is computed once per builder and
// reused across Generate calls; only the greedy fill and placement rerun.
// A builder is bound to one catalog — do not share it across catalogs.
type PresetBuilder struct {
	templates []*Unit
	ranked    []scoredTemplate
	rng       *rand.Rand
}

// NewPresetBuilder creates a builder over the given catalog templates.
// rng drives deployment placement; pass a seeded source for deterministic
// armies.
func NewPresetBuilder(templates []*Unit, rng *rand.Rand) *PresetBuilder {
	return &PresetBuilder{templates: templates, rng: rng}
}

// Generate builds an army worth at most budget points. Templates are taken
// greedily in descending effectiveness order, up to maxPerType copies each;
// a template the remaining budget cannot afford is skipped, not terminal.
// The roster never outgrows the deployment band, so every spawned unit gets
// a cell and the army's point total covers deployed units only. It may
// undershoot the budget.
func (b *PresetBuilder) Generate(budget int) *Army {
	army := &Army{}
	spent := 0

	for _, st := range b.ranking() {
		room := PlacementCols*PlacementRows - len(army.Units)
		if room == 0 {
			break
		}
		count := b.affordable(st.tmpl, budget, spent)
		if count > room {
			count = room
		}
		if count == 0 {
			continue
		}
		for i := 0; i < count; i++ {
			army.Units = append(army.Units, spawn(st.tmpl, i))
		}
		spent += count * st.tmpl.Cost
	}

	b.place(army.Units)
	army.Points = spent
	return army
}

// ranking returns the templates sorted by descending effectiveness,
// computing and caching the order on first use. Effectiveness is
// (baseAttack + health) / cost: value per point. Ties keep catalog order.
func (b *PresetBuilder) ranking() []scoredTemplate {
	if b.ranked != nil {
		return b.ranked
	}
	b.ranked = make([]scoredTemplate, 0, len(b.templates))
	for _, t := range b.templates {
		score := float64(t.BaseAttack+t.Health) / float64(t.Cost)
		b.ranked = append(b.ranked, scoredTemplate{tmpl: t, score: score})
	}
	sort.SliceStable(b.ranked, func(i, j int) bool {
		return b.ranked[i].score > b.ranked[j].score
	})
	return b.ranked
}

// affordable returns how many copies of tmpl fit in the remaining budget,
// capped at maxPerType.
func (b *PresetBuilder) affordable(tmpl *Unit, budget, spent int) int {
	n := (budget - spent) / tmpl.Cost
	if n > maxPerType {
		n = maxPerType
	}
	if n < 0 {
		n = 0
	}
	return n
}

// spawn instantiates concrete unit i from a template. Each copy owns its
// health pool and bonus tables; position stays unset until placement.
func spawn(tmpl *Unit, i int) *Unit {
	return &Unit{
		Name:           fmt.Sprintf("%s %d", tmpl.Type, i),
		Type:           tmpl.Type,
		Health:         tmpl.Health,
		BaseAttack:     tmpl.BaseAttack,
		Cost:           tmpl.Cost,
		AttackType:     tmpl.AttackType,
		AttackBonuses:  copyBonuses(tmpl.AttackBonuses),
		DefenceBonuses: copyBonuses(tmpl.DefenceBonuses),
		X:              -1,
		Y:              -1,
		Policy:         tmpl.Policy,
	}
}

func copyBonuses(src map[AttackType]float64) map[AttackType]float64 {
	if src == nil {
		return nil
	}
	dst := make(map[AttackType]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// place assigns every unit a distinct cell in the deployment band, drawing
// uniformly at random and retrying on collisions. After placementAttempts
// misses it falls back to scanning for the first free cell, so placement
// stays bounded even on a crowded band. Generate never spawns more units
// than the band holds, so the scan always finds a cell.
func (b *PresetBuilder) place(units []*Unit) {
	used := make(map[Cell]struct{}, len(units))
	for _, u := range units {
		cell, ok := b.drawFreeCell(used)
		if !ok {
			continue
		}
		used[cell] = struct{}{}
		u.X, u.Y = cell.X, cell.Y
	}
}

func (b *PresetBuilder) drawFreeCell(used map[Cell]struct{}) (Cell, bool) {
	for try := 0; try < placementAttempts; try++ {
		c := Cell{X: b.rng.Intn(PlacementCols), Y: b.rng.Intn(PlacementRows)}
		if _, taken := used[c]; !taken {
			return c, true
		}
	}
	for x := 0; x < PlacementCols; x++ {
		for y := 0; y < PlacementRows; y++ {
			c := Cell{X: x, Y: y}
			if _, taken := used[c]; !taken {
				return c, true
			}
		}
	}
	return Cell{}, false
}
