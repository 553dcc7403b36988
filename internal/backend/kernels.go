package backend

import (
	"github.com/hailam/bishopforge/internal/attack"
	"github.com/hailam/bishopforge/internal/batch"
	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/eval"
	"github.com/hailam/bishopforge/internal/movegen"
)

// leaperKernel fills knight, king and pawn attacks for the flattened cells
// [lo, hi), cell = board*64 + target. Each cell gathers from the squares an
// attacker would have to stand on, so it only writes its own output.
func leaperKernel(boards []board.Board, grid batch.AttackGrid, lo, hi int) {
	for cell := lo; cell < hi; cell++ {
		i, to := cell/board.NumSquares, board.Square(cell%board.NumSquares)
		b := &boards[i]

		for _, from := range board.KnightTargets(to) {
			if b.Pieces[from] == board.Knight {
				markCell(grid, i, to, b.Colors[from])
			}
		}
		for _, from := range board.KingTargets(to) {
			if b.Pieces[from] == board.King {
				markCell(grid, i, to, b.Colors[from])
			}
		}
		// A white pawn attacks to from the squares a black pawn on to would
		// attack, and vice versa.
		for _, from := range board.PawnAttackTargets(board.Black, to) {
			if b.Pieces[from] == board.Pawn && b.Colors[from] == board.White {
				grid.White[i][to] = true
			}
		}
		for _, from := range board.PawnAttackTargets(board.White, to) {
			if b.Pieces[from] == board.Pawn && b.Colors[from] == board.Black {
				grid.Black[i][to] = true
			}
		}
	}
}

func markCell(grid batch.AttackGrid, i int, to board.Square, c board.Color) {
	switch c {
	case board.White:
		grid.White[i][to] = true
	case board.Black:
		grid.Black[i][to] = true
	}
}

// sliderPass ORs bishop, rook and queen rays into boards [lo, hi). Ray walks
// are data dependent and stay per board.
func sliderPass(boards []board.Board, grid batch.AttackGrid, lo, hi int) {
	for i := lo; i < hi; i++ {
		maps := grid.At(i)
		attack.Accumulate(&boards[i], &maps, attack.IsSliderOnly)
		grid.Set(i, maps)
	}
}

func evalKernel(boards []board.Board, scores batch.Scores, lo, hi int) {
	for i := lo; i < hi; i++ {
		b := &boards[i]
		scores.WhiteOffense[i] = eval.Material(b, board.White) + eval.Mobility(b, board.White)
		scores.WhiteDefense[i] = eval.KingShield(b, board.White)
		scores.BlackOffense[i] = eval.Material(b, board.Black) + eval.Mobility(b, board.Black)
		scores.BlackDefense[i] = eval.KingShield(b, board.Black)
	}
}

// moveArena holds one fixed-capacity move window per board.
type moveArena []board.Move

func newMoveArena(n int) moveArena {
	return make(moveArena, n*movegen.MaxMoves)
}

// window returns the empty, capacity-limited buffer of board i. A board that
// overflows it gets a private allocation from append and leaves its
// neighbours untouched.
func (a moveArena) window(i int) []board.Move {
	lo := i * movegen.MaxMoves
	return a[lo:lo:lo+movegen.MaxMoves]
}

func moveKernel(boards []board.Board, stm []board.Color, arena moveArena, lists [][]board.Move, lo, hi int) {
	for i := lo; i < hi; i++ {
		lists[i] = movegen.GenerateInto(&boards[i], stm[i], arena.window(i))
	}
}
