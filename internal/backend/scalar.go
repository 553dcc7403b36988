package backend

import (
	"github.com/hailam/bishopforge/internal/attack"
	"github.com/hailam/bishopforge/internal/batch"
	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/eval"
	"github.com/hailam/bishopforge/internal/movegen"
)

// ScalarName identifies the sequential strategy.
const ScalarName = "Scalar (pure Go)"

// Scalar is the reference strategy. Batches are processed board by board.
type Scalar struct{}

// Name implements Backend.
func (Scalar) Name() string { return ScalarName }

// AttackMaps implements Backend.
func (Scalar) AttackMaps(b *board.Board) attack.Maps {
	return attack.Generate(b)
}

// Evaluate implements Backend.
func (Scalar) Evaluate(b *board.Board) eval.Score {
	return eval.Evaluate(b)
}

// GenerateMoves implements Backend.
func (Scalar) GenerateMoves(b *board.Board, stm board.Color) []board.Move {
	return movegen.Generate(b, stm)
}

// AttackMapsBatch implements Backend.
func (Scalar) AttackMapsBatch(boards []board.Board) batch.AttackGrid {
	return batch.AttackMaps(boards)
}

// EvaluateBatch implements Backend.
func (Scalar) EvaluateBatch(boards []board.Board) batch.Scores {
	return batch.Evaluate(boards)
}

// GenerateMovesBatch implements Backend.
func (Scalar) GenerateMovesBatch(boards []board.Board, stm []board.Color) ([]board.BatchMove, error) {
	return batch.GenerateMoves(boards, stm)
}

var _ Backend = Scalar{}
