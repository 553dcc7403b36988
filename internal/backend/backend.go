// Package backend provides the execution strategies behind the engine
// operations and the one-time selection between them.
//
// Two strategies implement the same contract: Scalar runs every operation
// sequentially and is always available; Parallel dispatches batch work over
// goroutine lanes. Both produce bit-identical results for the same input.
package backend

import (
	"fmt"
	"strings"

	"github.com/hailam/bishopforge/internal/attack"
	"github.com/hailam/bishopforge/internal/batch"
	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/eval"
)

// Backend is the operation set shared by all execution strategies.
type Backend interface {
	// Name returns a human-readable identifier of the strategy.
	Name() string

	AttackMaps(b *board.Board) attack.Maps
	Evaluate(b *board.Board) eval.Score
	GenerateMoves(b *board.Board, stm board.Color) []board.Move

	AttackMapsBatch(boards []board.Board) batch.AttackGrid
	EvaluateBatch(boards []board.Board) batch.Scores
	// GenerateMovesBatch returns board.ErrShape unless len(stm) == len(boards).
	GenerateMovesBatch(boards []board.Board, stm []board.Color) ([]board.BatchMove, error)
}

// Kind names a requested strategy.
type Kind int

const (
	KindAuto Kind = iota
	KindScalar
	KindParallel
)

// String returns the configuration spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindParallel:
		return "parallel"
	default:
		return "auto"
	}
}

// ParseKind parses "auto", "scalar" or "parallel" (case-insensitive). The
// spellings "cpu" and "gpu" are accepted as aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return KindAuto, nil
	case "scalar", "cpu":
		return KindScalar, nil
	case "parallel", "gpu":
		return KindParallel, nil
	default:
		return KindAuto, fmt.Errorf("unknown backend %q (want auto, scalar or parallel)", s)
	}
}

// Options controls backend selection.
type Options struct {
	Kind Kind
	// Workers is the number of parallel lanes. Zero means GOMAXPROCS.
	Workers int
	// BatchThreshold is the smallest batch that takes the parallel kernels.
	// Smaller batches run the loop strategy.
	BatchThreshold int
}

// DefaultOptions returns automatic selection with one lane per processor.
func DefaultOptions() Options {
	return Options{Kind: KindAuto, BatchThreshold: 1}
}
