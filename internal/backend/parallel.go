package backend

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/bishopforge/internal/attack"
	"github.com/hailam/bishopforge/internal/batch"
	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/eval"
)

// Parallel dispatches batch operations over a fixed number of goroutine
// lanes. Single-position calls go through a one-board arena into the scalar
// code, so piece logic exists only once.
type Parallel struct {
	lanes     int
	threshold int
	features  []string
	scalar    Scalar
}

// NewParallel returns a data-parallel strategy with the given lane count.
// Batches smaller than threshold use the loop strategy. features only
// decorates the name.
func NewParallel(lanes, threshold int, features []string) *Parallel {
	if lanes < 1 {
		lanes = 1
	}
	if threshold < 1 {
		threshold = 1
	}
	return &Parallel{lanes: lanes, threshold: threshold, features: features}
}

// Lanes returns the number of execution lanes.
func (p *Parallel) Lanes() int { return p.lanes }

// Name implements Backend.
func (p *Parallel) Name() string {
	if len(p.features) == 0 {
		return fmt.Sprintf("Data-parallel (%d lanes)", p.lanes)
	}
	return fmt.Sprintf("Data-parallel (%d lanes, %s)", p.lanes, strings.Join(p.features, ", "))
}

// AttackMaps implements Backend.
func (p *Parallel) AttackMaps(b *board.Board) attack.Maps {
	arena := [1]board.Board{*b}
	return p.scalar.AttackMaps(&arena[0])
}

// Evaluate implements Backend.
func (p *Parallel) Evaluate(b *board.Board) eval.Score {
	arena := [1]board.Board{*b}
	return p.scalar.Evaluate(&arena[0])
}

// GenerateMoves implements Backend.
func (p *Parallel) GenerateMoves(b *board.Board, stm board.Color) []board.Move {
	arena := [1]board.Board{*b}
	return p.scalar.GenerateMoves(&arena[0], stm)
}

// AttackMapsBatch implements Backend. Leaper attacks run as a per-cell
// kernel over every (board, square) pair, then slider rays are ORed in per
// board.
func (p *Parallel) AttackMapsBatch(boards []board.Board) batch.AttackGrid {
	if !p.usesKernels(len(boards)) {
		return p.scalar.AttackMapsBatch(boards)
	}

	grid := batch.NewAttackGrid(len(boards))
	p.forEach(len(boards)*board.NumSquares, func(lo, hi int) {
		leaperKernel(boards, grid, lo, hi)
	})
	p.forEach(len(boards), func(lo, hi int) {
		sliderPass(boards, grid, lo, hi)
	})
	return grid
}

// EvaluateBatch implements Backend.
func (p *Parallel) EvaluateBatch(boards []board.Board) batch.Scores {
	if !p.usesKernels(len(boards)) {
		return p.scalar.EvaluateBatch(boards)
	}

	scores := batch.NewScores(len(boards))
	p.forEach(len(boards), func(lo, hi int) {
		evalKernel(boards, scores, lo, hi)
	})
	return scores
}

// GenerateMovesBatch implements Backend. Each board owns a fixed window of a
// shared arena; the windows are compacted by prefix sum afterwards.
func (p *Parallel) GenerateMovesBatch(boards []board.Board, stm []board.Color) ([]board.BatchMove, error) {
	if err := batch.CheckSides(boards, stm); err != nil {
		return nil, err
	}
	if !p.usesKernels(len(boards)) {
		return p.scalar.GenerateMovesBatch(boards, stm)
	}

	lists := make([][]board.Move, len(boards))
	arena := newMoveArena(len(boards))
	p.forEach(len(boards), func(lo, hi int) {
		moveKernel(boards, stm, arena, lists, lo, hi)
	})

	counts := make([]int, len(lists))
	for i, l := range lists {
		counts[i] = len(l)
	}
	offsets, total := batch.Offsets(counts)

	out := make([]board.BatchMove, total)
	p.forEach(len(boards), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			batch.Scatter(out, offsets[i], i, lists[i])
		}
	})
	return out, nil
}

func (p *Parallel) usesKernels(n int) bool {
	return n >= p.threshold && n > 0
}

// lanePanic carries a panic out of a lane goroutine.
type lanePanic struct {
	value any
}

func (e *lanePanic) Error() string {
	return fmt.Sprintf("backend: lane panicked: %v", e.value)
}

// forEach splits [0, n) into at most p.lanes contiguous chunks and runs fn
// on each concurrently. Chunks write disjoint output cells. A panic in any
// chunk is raised again on the calling goroutine once all lanes finish.
func (p *Parallel) forEach(n int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	chunk := (n + p.lanes - 1) / p.lanes
	if chunk == n {
		fn(0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(p.lanes)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &lanePanic{value: r}
				}
			}()
			fn(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var lp *lanePanic
		if errors.As(err, &lp) {
			panic(lp.value)
		}
		panic(err)
	}
}

var _ Backend = (*Parallel)(nil)
