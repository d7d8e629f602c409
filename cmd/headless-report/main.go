package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/gridclash/engine/internal/battle"
	"github.com/gridclash/engine/internal/config"
)

type runStats struct {
	runIndex int
	seed     int64

	winner      string // "left", "right", or "draw"
	rounds      int
	attacks     int
	kills       int
	leftPoints  int
	rightPoints int
	leftUnits   int
	rightUnits  int
	leftAlive   int
	rightAlive  int
	typeKills   map[string]int // attacker type -> lethal attacks
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the report and returns the process exit code. Exiting through
// a return (instead of os.Exit inside the body) lets the combat logger's
// deferred flush fire even when a run aborts mid-way.
func run(args []string) int {
	fs := flag.NewFlagSet("headless-report", flag.ContinueOnError)
	runs := fs.Int("runs", 5, "number of headless battle runs")
	budget := fs.Int("budget", 300, "army point budget per side")
	seedBase := fs.Int64("seed-base", 42, "base RNG seed for run 1")
	seedStep := fs.Int64("seed-step", 1, "seed increment between runs")
	catalogPath := fs.String("catalog", "assets/catalog.yaml", "unit template catalog")
	combatLog := fs.String("combat-log", "", "optional file for a structured per-attack log")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return 1
	}
	if *budget <= 0 {
		fmt.Println("error: -budget must be > 0")
		return 1
	}

	catalog, err := config.LoadCatalog(*catalogPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return 1
	}

	var attackSink battle.BattleLog
	if *combatLog != "" {
		logger, err := newCombatLogger(*combatLog)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return 1
		}
		defer logger.Sync()
		attackSink = battle.NewZapBattleLog(logger)
	}

	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("catalog=%s runs=%d budget=%d seed_base=%d seed_step=%d\n\n",
		*catalogPath, *runs, *budget, *seedBase, *seedStep)

	all := make([]runStats, 0, *runs)
	for i := 0; i < *runs; i++ {
		seed := *seedBase + int64(i)*(*seedStep)
		stats, err := runBattle(i+1, seed, *budget, catalog, attackSink)
		if err != nil {
			fmt.Printf("error: run %d aborted: %v\n", i+1, err)
			return 1
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
	return 0
}

// newCombatLogger builds a zap logger that writes structured attack records
// to the given file.
func newCombatLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("combat log: %w", err)
	}
	return logger, nil
}

// runBattle generates both armies from the catalog under the same budget,
// mirrors the right army onto its deployment band, and resolves the battle.
func runBattle(runIndex int, seed int64, budget int, catalog *config.Catalog, extra battle.BattleLog) (runStats, error) {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation seed

	leftBuilder := battle.NewPresetBuilder(catalog.Templates(), rng)
	rightBuilder := battle.NewPresetBuilder(catalog.Templates(), rng)
	left := leftBuilder.Generate(budget)
	right := rightBuilder.Generate(budget)
	battle.MirrorArmy(right)
	battle.AttachFlankPolicies(left, right)

	recorder := battle.NewAttackRecorder()
	var sink battle.BattleLog = recorder
	if extra != nil {
		sink = battle.MultiLog{recorder, extra}
	}
	sim := battle.NewSimulator(sink)
	if err := sim.Simulate(left, right); err != nil {
		return runStats{}, err
	}

	typeKills := map[string]int{}
	for _, r := range recorder.Records() {
		if r.Killed {
			typeKills[r.AttackerType]++
		}
	}

	return runStats{
		runIndex:    runIndex,
		seed:        seed,
		winner:      winnerOf(left, right),
		rounds:      sim.Rounds(),
		attacks:     recorder.Len(),
		kills:       recorder.Kills(),
		leftPoints:  left.Points,
		rightPoints: right.Points,
		leftUnits:   len(left.Units),
		rightUnits:  len(right.Units),
		leftAlive:   len(left.Living()),
		rightAlive:  len(right.Living()),
		typeKills:   typeKills,
	}, nil
}

func winnerOf(left, right *battle.Army) string {
	switch {
	case left.HasLiving() && !right.HasLiving():
		return "left"
	case right.HasLiving() && !left.HasLiving():
		return "right"
	default:
		return "draw"
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("armies: left=%d units (%d pts)  right=%d units (%d pts)\n",
		rs.leftUnits, rs.leftPoints, rs.rightUnits, rs.rightPoints)
	fmt.Printf("outcome: winner=%s rounds=%d attacks=%d kills=%d survivors: left=%d right=%d\n",
		rs.winner, rs.rounds, rs.attacks, rs.kills, rs.leftAlive, rs.rightAlive)
	fmt.Printf("kills_by_type: %s\n", formatTypeKills(rs.typeKills))
	fmt.Println()
}

func printAggregate(all []runStats) {
	leftWins, rightWins, draws := 0, 0, 0
	totalRounds, totalAttacks, totalKills := 0, 0, 0
	typeKills := map[string]int{}

	for _, rs := range all {
		switch rs.winner {
		case "left":
			leftWins++
		case "right":
			rightWins++
		default:
			draws++
		}
		totalRounds += rs.rounds
		totalAttacks += rs.attacks
		totalKills += rs.kills
		for t, n := range rs.typeKills {
			typeKills[t] += n
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d left_wins=%d right_wins=%d draws=%d\n", len(all), leftWins, rightWins, draws)
	fmt.Printf("avg_per_run: rounds=%.1f attacks=%.1f kills=%.1f\n",
		avg(totalRounds, len(all)), avg(totalAttacks, len(all)), avg(totalKills, len(all)))
	fmt.Printf("kills_by_type: %s\n", formatTypeKills(typeKills))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func formatTypeKills(typeKills map[string]int) string {
	if len(typeKills) == 0 {
		return "none"
	}
	types := make([]string, 0, len(typeKills))
	for t := range typeKills {
		types = append(types, t)
	}
	sort.Strings(types)
	out := ""
	for i, t := range types {
		if i > 0 {
			out += "  "
		}
		out += fmt.Sprintf("%s=%d", t, typeKills[t])
	}
	return out
}
