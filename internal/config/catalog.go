// Package config loads unit-template catalogs from YAML. The battle engine
// assumes catalog data is pre-validated, so validation lives here at the
// loading boundary.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridclash/engine/internal/battle"
)

// Catalog is a set of unit templates, one per distinct unit type.
type Catalog struct {
	Units []UnitDef `yaml:"units"`
}

// UnitDef is one template as written in the catalog file.
type UnitDef struct {
	Name           string             `yaml:"name"`
	Type           string             `yaml:"type"`
	Health         int                `yaml:"health"`
	Attack         int                `yaml:"attack"`
	Cost           int                `yaml:"cost"`
	AttackType     string             `yaml:"attack_type"`
	AttackBonuses  map[string]float64 `yaml:"attack_bonuses"`
	DefenceBonuses map[string]float64 `yaml:"defence_bonuses"`
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks the constraints the engine takes for granted: positive
// cost and health, a non-empty type, and no duplicate types.
func (c *Catalog) Validate() error {
	if len(c.Units) == 0 {
		return fmt.Errorf("no units defined")
	}
	seen := map[string]bool{}
	for i, u := range c.Units {
		if u.Type == "" {
			return fmt.Errorf("unit %d: missing type", i)
		}
		if seen[u.Type] {
			return fmt.Errorf("unit %q: duplicate type", u.Type)
		}
		seen[u.Type] = true
		if u.Cost <= 0 {
			return fmt.Errorf("unit %q: cost must be positive, got %d", u.Type, u.Cost)
		}
		if u.Health <= 0 {
			return fmt.Errorf("unit %q: health must be positive, got %d", u.Type, u.Health)
		}
	}
	return nil
}

// Templates converts the catalog into engine unit templates, in file order.
func (c *Catalog) Templates() []*battle.Unit {
	out := make([]*battle.Unit, 0, len(c.Units))
	for _, u := range c.Units {
		out = append(out, &battle.Unit{
			Name:           u.Name,
			Type:           u.Type,
			Health:         u.Health,
			BaseAttack:     u.Attack,
			Cost:           u.Cost,
			AttackType:     battle.AttackType(u.AttackType),
			AttackBonuses:  toBonuses(u.AttackBonuses),
			DefenceBonuses: toBonuses(u.DefenceBonuses),
			X:              -1,
			Y:              -1,
		})
	}
	return out
}

func toBonuses(src map[string]float64) map[battle.AttackType]float64 {
	if src == nil {
		return nil
	}
	dst := make(map[battle.AttackType]float64, len(src))
	for k, v := range src {
		dst[battle.AttackType(k)] = v
	}
	return dst
}
