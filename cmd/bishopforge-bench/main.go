// Command bishopforge-bench times the batch operations on the scalar and
// data-parallel backends for a range of batch sizes.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/hailam/bishopforge/internal/backend"
	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/config"
	"github.com/hailam/bishopforge/internal/logging"
)

var (
	sizesFlag = flag.String("sizes", "1,10,100,1000", "comma-separated batch sizes")
	runsFlag  = flag.Int("runs", 20, "timed runs per measurement")
	fenFlag   = flag.String("fen", board.StartFEN, "position replicated into every batch")
	opsFlag   = flag.String("ops", "eval,attacks,moves", "operations to time")
)

// op runs one batch operation on a backend.
type op struct {
	name string
	run  func(be backend.Backend, boards []board.Board, stm []board.Color)
}

var allOps = []op{
	{"eval", func(be backend.Backend, boards []board.Board, _ []board.Color) {
		be.EvaluateBatch(boards)
	}},
	{"attacks", func(be backend.Backend, boards []board.Board, _ []board.Color) {
		be.AttackMapsBatch(boards)
	}},
	{"moves", func(be backend.Backend, boards []board.Board, stm []board.Color) {
		if _, err := be.GenerateMovesBatch(boards, stm); err != nil {
			panic(err)
		}
	}},
}

// summary holds timing statistics in milliseconds.
type summary struct {
	mean, stddev, median, p95, best float64
}

func summarize(ms []float64) summary {
	sorted := append([]float64(nil), ms...)
	sort.Float64s(sorted)
	return summary{
		mean:   stat.Mean(sorted, nil),
		stddev: stat.StdDev(sorted, nil),
		median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		p95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
		best:   floats.Min(sorted),
	}
}

func measure(o op, be backend.Backend, boards []board.Board, stm []board.Color, runs int) summary {
	o.run(be, boards, stm) // warmup
	ms := make([]float64, runs)
	for i := range ms {
		start := time.Now()
		o.run(be, boards, stm)
		ms[i] = float64(time.Since(start).Microseconds()) / 1000
	}
	return summarize(ms)
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid batch size %q", f)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
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

	sizes, err := parseSizes(*sizesFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -sizes")
	}
	if *runsFlag < 1 {
		log.Fatal().Int("runs", *runsFlag).Msg("-runs must be positive")
	}
	pos, stm, err := board.ParseFEN(*fenFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -fen")
	}

	caps := backend.Detect(cfg.Workers)
	scalar := backend.Scalar{}
	par := backend.NewParallel(max(caps.Lanes, 2), cfg.BatchThreshold, caps.Features)
	if !caps.Parallel {
		log.Warn().Str("reason", caps.Reason).Msg("data-parallel backend not selectable here, timing it anyway")
	}

	fmt.Printf("%s vs %s, %d runs, position %s\n", scalar.Name(), par.Name(), *runsFlag, *fenFlag)

	for _, o := range allOps {
		if !strings.Contains(*opsFlag, o.name) {
			continue
		}
		fmt.Println()
		fmt.Println(strings.Repeat("=", 78))
		fmt.Printf("BENCHMARK: batch %s\n", o.name)
		fmt.Println(strings.Repeat("=", 78))
		fmt.Printf("%-10s %14s %14s %10s %9s %16s\n", "Batch", "Scalar ms", "Parallel ms", "p95 ms", "Speedup", "Boards/s")
		fmt.Println(strings.Repeat("-", 78))

		for _, n := range sizes {
			boards := make([]board.Board, n)
			sides := make([]board.Color, n)
			for i := range boards {
				boards[i], sides[i] = pos, stm
			}

			s := measure(o, scalar, boards, sides, *runsFlag)
			p := measure(o, par, boards, sides, *runsFlag)

			speedup := 0.0
			if p.median > 0 {
				speedup = s.median / p.median
			}
			rate := int64(0)
			if p.median > 0 {
				rate = int64(float64(n) / (p.median / 1000))
			}
			fmt.Printf("%-10s %8.3f ±%4.2f %8.3f ±%4.2f %10.3f %8.1fx %16s\n",
				humanize.Comma(int64(n)), s.median, s.stddev, p.median, p.stddev, p.p95, speedup, humanize.Comma(rate))

			log.Debug().
				Str("op", o.name).
				Int("batch", n).
				Float64("scalar_mean_ms", s.mean).
				Float64("parallel_mean_ms", p.mean).
				Float64("scalar_best_ms", s.best).
				Float64("parallel_best_ms", p.best).
				Msg("measurement")
		}
	}
}
