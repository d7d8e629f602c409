package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gridclash/engine/internal/battle"
)

const validCatalog = `
units:
  - name: Swordsman
    type: swordsman
    health: 100
    attack: 12
    cost: 30
    attack_type: melee
    attack_bonuses: { ranged: 1.2 }
    defence_bonuses: { melee: 1.1 }
  - name: Archer
    type: archer
    health: 50
    attack: 14
    cost: 28
    attack_type: ranged
`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalog_Valid(t *testing.T) {
	c, err := LoadCatalog(writeCatalog(t, validCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(c.Units))
	}
	if c.Units[0].Type != "swordsman" || c.Units[1].Type != "archer" {
		t.Fatal("units should keep file order")
	}
	if c.Units[0].AttackBonuses["ranged"] != 1.2 {
		t.Fatalf("attack bonus not parsed: %+v", c.Units[0].AttackBonuses)
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadCatalog_RejectsBadData(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty", "units: []", "no units"},
		{"zero cost", `
units:
  - {name: X, type: x, health: 10, attack: 1, cost: 0, attack_type: melee}
`, "cost must be positive"},
		{"negative health", `
units:
  - {name: X, type: x, health: -5, attack: 1, cost: 10, attack_type: melee}
`, "health must be positive"},
		{"missing type", `
units:
  - {name: X, health: 10, attack: 1, cost: 10, attack_type: melee}
`, "missing type"},
		{"duplicate type", `
units:
  - {name: X, type: x, health: 10, attack: 1, cost: 10, attack_type: melee}
  - {name: X2, type: x, health: 12, attack: 2, cost: 12, attack_type: melee}
`, "duplicate type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCatalog(writeCatalog(t, tc.body))
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got: %v", tc.want, err)
			}
		})
	}
}

func TestCatalog_Templates(t *testing.T) {
	c, err := LoadCatalog(writeCatalog(t, validCatalog))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tmpls := c.Templates()
	if len(tmpls) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(tmpls))
	}
	sw := tmpls[0]
	if sw.Type != "swordsman" || sw.Health != 100 || sw.BaseAttack != 12 || sw.Cost != 30 {
		t.Fatalf("swordsman template wrong: %+v", sw)
	}
	if sw.AttackType != battle.AttackMelee {
		t.Fatalf("expected melee attack type, got %s", sw.AttackType)
	}
	if sw.Placed() {
		t.Fatal("templates must start unplaced")
	}
	if sw.AttackBonuses[battle.AttackRanged] != 1.2 {
		t.Fatalf("attack bonuses not converted: %+v", sw.AttackBonuses)
	}
}
