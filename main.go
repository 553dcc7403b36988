// BishopForge - backend diagnostics and a one-ply opponent for the move,
// attack and evaluation core.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hailam/bishopforge/internal/backend"
	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/config"
	"github.com/hailam/bishopforge/internal/engine"
	"github.com/hailam/bishopforge/internal/logging"
	"github.com/hailam/bishopforge/internal/movegen"
	"github.com/hailam/bishopforge/internal/opponent"
)

var (
	fenFlag     = flag.String("fen", "", "position to analyse (default: diagnostics only)")
	profileFlag = flag.String("profile", "", "pick a move for -fen with this opponent profile")
	movesFlag   = flag.String("moves", "", "space-separated UCI moves played from -fen before analysis")
)

var smokeFENs = []string{
	board.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"4k3/1P6/8/8/8/8/6p1/4K3 b - - 0 1",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	log := logging.New(cfg)
	board.SetDebugMoveValidation(cfg.Debug)

	rule := strings.Repeat("=", 70)
	fmt.Println(rule)
	fmt.Println("BishopForge Backend Diagnostic")
	fmt.Println(rule)

	caps := backend.Detect(cfg.Workers)

	fmt.Println("\n1. Runtime")
	fmt.Printf("   %s/%s, %d CPUs, GOMAXPROCS %d\n", caps.GOOS, caps.GOARCH, caps.CPUs, caps.Procs)

	fmt.Println("\n2. CPU features")
	if len(caps.Features) == 0 {
		fmt.Println("   - no vector extensions reported")
	} else {
		fmt.Printf("   + %s\n", strings.Join(caps.Features, ", "))
	}

	fmt.Println("\n3. Data-parallel availability")
	if caps.Parallel {
		fmt.Printf("   + available with %d lanes (%s)\n", caps.Lanes, caps.Reason)
	} else {
		fmt.Printf("   - unavailable: %s\n", caps.Reason)
	}

	eng, err := engine.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("engine init failed")
	}
	defer eng.Close()

	fmt.Println("\n4. Selected backend")
	fmt.Printf("   %s (requested %s)\n", eng.BackendName(), cfg.Backend)

	fmt.Println("\n5. Strategy agreement")
	ok := smokeTest(max(caps.Lanes, 2), cfg.BatchThreshold)

	fmt.Println("\n6. Result cache")
	if cfg.CacheEnabled {
		where := "memory only"
		if cfg.CacheDir != "" {
			where = cfg.CacheDir
		}
		fmt.Printf("   + enabled, TTL %s, %s, %s\n", cfg.CacheTTL, humanize.Bytes(uint64(cfg.CacheMaxCost)), where)
	} else {
		fmt.Println("   - disabled")
	}

	if *fenFlag != "" {
		if err := analyse(eng, *fenFlag, *movesFlag, *profileFlag); err != nil {
			log.Error().Err(err).Str("fen", *fenFlag).Msg("analysis failed")
			ok = false
		}
	}

	fmt.Println()
	fmt.Println(rule)
	if !ok {
		fmt.Println("Diagnostic FAILED")
		fmt.Println(rule)
		eng.Close()
		os.Exit(1)
	}
	fmt.Println("All checks passed")
	fmt.Println(rule)
}

// smokeTest runs both strategies over the smoke positions, one at a time and
// as one batch, and reports whether every result matches.
func smokeTest(lanes, threshold int) bool {
	scalar := backend.Scalar{}
	par := backend.NewParallel(lanes, threshold, nil)

	var boards []board.Board
	var sides []board.Color
	for _, fen := range smokeFENs {
		b, stm := board.MustParseFEN(fen)
		boards = append(boards, b)
		sides = append(sides, stm)
	}

	ok := true
	check := func(name string, same bool) {
		mark := "+"
		if !same {
			mark, ok = "x", false
		}
		fmt.Printf("   %s %s\n", mark, name)
	}

	sameSingle := true
	for i := range boards {
		b := &boards[i]
		if scalar.AttackMaps(b) != par.AttackMaps(b) || scalar.Evaluate(b) != par.Evaluate(b) {
			sameSingle = false
		}
		if !sameMoves(scalar.GenerateMoves(b, sides[i]), par.GenerateMoves(b, sides[i])) {
			sameSingle = false
		}
	}
	check("single-position results", sameSingle)

	sa, pa := scalar.AttackMapsBatch(boards), par.AttackMapsBatch(boards)
	se, pe := scalar.EvaluateBatch(boards), par.EvaluateBatch(boards)
	sameBatch := true
	for i := range boards {
		if sa.At(i) != pa.At(i) || se.At(i) != pe.At(i) {
			sameBatch = false
		}
	}
	check("batch attack maps and evaluation", sameBatch)

	sm, err1 := scalar.GenerateMovesBatch(boards, sides)
	pm, err2 := par.GenerateMovesBatch(boards, sides)
	sameBatchMoves := err1 == nil && err2 == nil && len(sm) == len(pm)
	for i := 0; sameBatchMoves && i < len(sm); i++ {
		sameBatchMoves = sm[i] == pm[i]
	}
	check(fmt.Sprintf("batch move generation (%s records)", humanize.Comma(int64(len(sm)))), sameBatchMoves)

	return ok
}

func sameMoves(a, b []board.Move) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func analyse(eng *engine.Engine, fen, moves, profile string) error {
	b, stm, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	for _, s := range strings.Fields(moves) {
		m, err := board.ParseMove(s, &b)
		if err != nil {
			return err
		}
		if b.Colors[m.From] != stm {
			return fmt.Errorf("move %s: not a %v piece", s, stm)
		}
		b, stm = b.Apply(m), stm.Other()
	}

	score := eng.EvaluateBoard(&b)
	legal := eng.MovesBoard(&b, stm)

	fmt.Println("\n7. Position")
	fmt.Print(b.String())
	fmt.Printf("   %v to move, %d pseudo-legal moves\n", stm, len(legal))
	fmt.Printf("   White offense %d defense %d, Black offense %d defense %d\n",
		score.WhiteOffense, score.WhiteDefense, score.BlackOffense, score.BlackDefense)
	fmt.Printf("   %v would have %d pseudo-legal moves\n", stm.Other(), movegen.Count(&b, stm.Other()))

	if profile == "" {
		return nil
	}
	p, err := opponent.ParseProfile(profile)
	if err != nil {
		return err
	}
	choice, err := opponent.NewChooser(eng, nil).Choose(&b, stm, legal, p)
	if err != nil {
		return err
	}
	fmt.Printf("   %s opponent plays %s", p, choice.Move)
	if choice.Evaluated {
		fmt.Printf(" (score %d, offense %d/%d, defense %d/%d)",
			choice.Score, choice.MyOffense, choice.OppOffense, choice.MyDefense, choice.OppDefense)
	}
	fmt.Println()
	return nil
}
