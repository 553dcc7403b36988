package batch

import (
	"github.com/hailam/bishopforge/internal/attack"
	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/eval"
	"github.com/hailam/bishopforge/internal/movegen"
)

// AttackMaps runs the attack generator over boards in index order.
func AttackMaps(boards []board.Board) AttackGrid {
	g := NewAttackGrid(len(boards))
	for i := range boards {
		g.Set(i, attack.Generate(&boards[i]))
	}
	return g
}

// Evaluate scores boards in index order.
func Evaluate(boards []board.Board) Scores {
	s := NewScores(len(boards))
	for i := range boards {
		s.Set(i, eval.Evaluate(&boards[i]))
	}
	return s
}

// GenerateMoves generates moves board by board and concatenates them,
// prefixing every record with its board index.
func GenerateMoves(boards []board.Board, stm []board.Color) ([]board.BatchMove, error) {
	if err := CheckSides(boards, stm); err != nil {
		return nil, err
	}

	out := make([]board.BatchMove, 0, 32*len(boards))
	buf := make([]board.Move, 0, movegen.MaxMoves)
	for i := range boards {
		buf = movegen.GenerateInto(&boards[i], stm[i], buf[:0])
		for _, m := range buf {
			out = append(out, board.BatchMove{Board: i, Move: m})
		}
	}
	return out, nil
}
