package battle

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// BattleLog receives one Record call per resolved attack. Implementations
// must not fail under engine control; whatever a sink does with errors is
// its own concern.
type BattleLog interface {
	Record(attacker, target *Unit)
}

// NopLog discards everything.
type NopLog struct{}

func (NopLog) Record(attacker, target *Unit) {}

// MultiLog fans every record out to several sinks in order.
type MultiLog []BattleLog

func (m MultiLog) Record(attacker, target *Unit) {
	for _, l := range m {
		l.Record(attacker, target)
	}
}

// AttackRecord is one resolved attack as seen by the recorder. Health and
// the kill flag reflect the target's state at record time.
type AttackRecord struct {
	Seq          int    `json:"seq"`
	Attacker     string `json:"attacker"`
	AttackerType string `json:"attacker_type"`
	Target       string `json:"target"`
	TargetType   string `json:"target_type"`
	TargetHealth int    `json:"target_health"`
	Killed       bool   `json:"killed"`
}

// String formats the record as a fixed-width log line.
//
//	[#012] Archer 3 -> Swordsman 0  hp=14
func (r AttackRecord) String() string {
	suffix := fmt.Sprintf("hp=%d", r.TargetHealth)
	if r.Killed {
		suffix = "killed"
	}
	return fmt.Sprintf("[#%03d] %-14s -> %-14s %s", r.Seq, r.Attacker, r.Target, suffix)
}

// AttackRecorder is an unbounded in-memory battle log, used by tests and the
// report tool. Unlike a streaming sink it can be queried after the battle.
type AttackRecorder struct {
	records []AttackRecord
}

// NewAttackRecorder creates an empty recorder.
func NewAttackRecorder() *AttackRecorder {
	return &AttackRecorder{}
}

// Record appends one attack.
func (ar *AttackRecorder) Record(attacker, target *Unit) {
	ar.records = append(ar.records, AttackRecord{
		Seq:          len(ar.records) + 1,
		Attacker:     attacker.Name,
		AttackerType: attacker.Type,
		Target:       target.Name,
		TargetType:   target.Type,
		TargetHealth: target.Health,
		Killed:       !target.Alive(),
	})
}

// Records returns all recorded attacks in order.
func (ar *AttackRecorder) Records() []AttackRecord {
	return ar.records
}

// Len returns how many attacks were recorded.
func (ar *AttackRecorder) Len() int {
	return len(ar.records)
}

// Kills returns how many recorded attacks were lethal.
func (ar *AttackRecorder) Kills() int {
	n := 0
	for _, r := range ar.records {
		if r.Killed {
			n++
		}
	}
	return n
}

// ByAttacker returns the records for one attacker name.
func (ar *AttackRecorder) ByAttacker(name string) []AttackRecord {
	var out []AttackRecord
	for _, r := range ar.records {
		if r.Attacker == name {
			out = append(out, r)
		}
	}
	return out
}

// Format returns the full log as a single string for t.Log output.
func (ar *AttackRecorder) Format() string {
	var sb strings.Builder
	for _, r := range ar.records {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ZapBattleLog streams attacks to a zap logger, one structured entry each.
type ZapBattleLog struct {
	logger *zap.Logger
}

// NewZapBattleLog wraps a zap logger as a battle log sink.
func NewZapBattleLog(logger *zap.Logger) *ZapBattleLog {
	return &ZapBattleLog{logger: logger}
}

func (z *ZapBattleLog) Record(attacker, target *Unit) {
	z.logger.Info("attack",
		zap.String("attacker", attacker.Name),
		zap.String("attacker_type", attacker.Type),
		zap.String("target", target.Name),
		zap.String("target_type", target.Type),
		zap.Int("target_health", target.Health),
		zap.Bool("killed", !target.Alive()),
	)
}
