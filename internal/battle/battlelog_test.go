package battle

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAttackRecorder_RecordsHealthAndKills(t *testing.T) {
	ar := NewAttackRecorder()
	attacker := testUnit("attacker", 10, 3, 0, 0)
	target := testUnit("target", 5, 1, 1, 0)

	target.TakeDamage(3)
	ar.Record(attacker, target)
	target.TakeDamage(3)
	ar.Record(attacker, target)

	recs := ar.Records()
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].TargetHealth != 2 || recs[0].Killed {
		t.Fatalf("first record wrong: %+v", recs[0])
	}
	if !recs[1].Killed {
		t.Fatalf("second record should be lethal: %+v", recs[1])
	}
	if ar.Kills() != 1 {
		t.Fatalf("expected 1 kill, got %d", ar.Kills())
	}
	if recs[0].Seq != 1 || recs[1].Seq != 2 {
		t.Fatal("records should be sequence-numbered from 1")
	}
}

func TestAttackRecorder_ByAttacker(t *testing.T) {
	ar := NewAttackRecorder()
	a := testUnit("a", 10, 3, 0, 0)
	b := testUnit("b", 10, 3, 0, 1)
	victim := testUnit("victim", 50, 1, 1, 0)

	ar.Record(a, victim)
	ar.Record(b, victim)
	ar.Record(a, victim)

	if got := ar.ByAttacker("a"); len(got) != 2 {
		t.Fatalf("expected 2 records for a, got %d", len(got))
	}
	if got := ar.ByAttacker("missing"); len(got) != 0 {
		t.Fatalf("expected no records for unknown attacker, got %d", len(got))
	}
}

func TestAttackRecord_StringShowsKill(t *testing.T) {
	r := AttackRecord{Seq: 7, Attacker: "a", Target: "t", TargetHealth: 0, Killed: true}
	s := r.String()
	if !strings.Contains(s, "killed") {
		t.Fatalf("lethal record should say killed: %q", s)
	}
	r2 := AttackRecord{Seq: 8, Attacker: "a", Target: "t", TargetHealth: 4}
	if !strings.Contains(r2.String(), "hp=4") {
		t.Fatalf("non-lethal record should show remaining health: %q", r2.String())
	}
}

func TestMultiLog_FansOut(t *testing.T) {
	r1 := NewAttackRecorder()
	r2 := NewAttackRecorder()
	m := MultiLog{r1, r2}

	attacker := testUnit("attacker", 10, 3, 0, 0)
	target := testUnit("target", 5, 1, 1, 0)
	m.Record(attacker, target)

	if r1.Len() != 1 || r2.Len() != 1 {
		t.Fatalf("expected both sinks to record, got %d and %d", r1.Len(), r2.Len())
	}
}

func TestZapBattleLog_OneEntryPerResolvedAttack(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sink := NewZapBattleLog(zap.New(core))

	tb := NewTestBattle(
		WithLeftUnit(testUnit("L0", 12, 4, 0, 0)),
		WithRightUnit(testUnit("R0", 12, 4, 26, 0)),
		WithExtraLog(sink),
	)
	attachStrikeFirst(tb.Left, tb.Right)
	if err := tb.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if logs.Len() != tb.Recorder.Len() {
		t.Fatalf("zap sink saw %d entries, recorder saw %d", logs.Len(), tb.Recorder.Len())
	}
	first := logs.All()[0]
	if first.Message != "attack" {
		t.Fatalf("expected attack entries, got %q", first.Message)
	}
	ctx := first.ContextMap()
	if ctx["attacker"] != "L0" || ctx["target"] != "R0" {
		t.Fatalf("unexpected attack fields: %v", ctx)
	}
	if ctx["target_health"] != int64(8) {
		t.Fatalf("expected target_health 8 after the first strike, got %v", ctx["target_health"])
	}
	if ctx["killed"] != false {
		t.Fatal("the first strike should not be lethal")
	}
}

func TestNopLog_Discards(t *testing.T) {
	var log BattleLog = NopLog{}
	log.Record(testUnit("a", 1, 1, 0, 0), testUnit("b", 1, 1, 1, 0))
}
