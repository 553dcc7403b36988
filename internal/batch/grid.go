// Package batch holds the batch containers and the loop strategy: N
// independent boards processed in one call, with grid-shaped or
// board-indexed results.
package batch

import (
	"fmt"

	"github.com/hailam/bishopforge/internal/attack"
	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/eval"
)

// BoardsFromSlices converts (N x 64) piece and color grids into boards. Both
// grids must have the same N and every row exactly 64 entries.
func BoardsFromSlices(pieces, colors [][]int8) ([]board.Board, error) {
	if len(pieces) != len(colors) {
		return nil, fmt.Errorf("%w: %d piece rows but %d color rows", board.ErrShape, len(pieces), len(colors))
	}
	boards := make([]board.Board, len(pieces))
	for i := range pieces {
		b, err := board.FromSlices(pieces[i], colors[i])
		if err != nil {
			return nil, fmt.Errorf("board %d: %w", i, err)
		}
		boards[i] = b
	}
	return boards, nil
}

// SidesFromSlice converts a side-to-move sequence, which must have length n.
func SidesFromSlice(stm []int8, n int) ([]board.Color, error) {
	if len(stm) != n {
		return nil, fmt.Errorf("%w: %d side-to-move entries for %d boards", board.ErrShape, len(stm), n)
	}
	sides := make([]board.Color, n)
	for i, c := range stm {
		sides[i] = board.Color(c)
	}
	return sides, nil
}

// CheckSides returns an error unless there is one side to move per board.
func CheckSides(boards []board.Board, stm []board.Color) error {
	if len(stm) != len(boards) {
		return fmt.Errorf("%w: %d side-to-move entries for %d boards", board.ErrShape, len(stm), len(boards))
	}
	return nil
}

// AttackGrid holds per-board attack maps for both sides.
type AttackGrid struct {
	White []attack.Map
	Black []attack.Map
}

// NewAttackGrid allocates an all-false grid for n boards.
func NewAttackGrid(n int) AttackGrid {
	return AttackGrid{
		White: make([]attack.Map, n),
		Black: make([]attack.Map, n),
	}
}

// Len returns the number of boards in the grid.
func (g AttackGrid) Len() int {
	return len(g.White)
}

// Set stores the maps of board i.
func (g AttackGrid) Set(i int, m attack.Maps) {
	g.White[i] = m.White
	g.Black[i] = m.Black
}

// At returns the maps of board i.
func (g AttackGrid) At(i int) attack.Maps {
	return attack.Maps{White: g.White[i], Black: g.Black[i]}
}

// Slices returns the grid as two (N x 64) boolean slices.
func (g AttackGrid) Slices() (white, black [][]bool) {
	white = make([][]bool, len(g.White))
	black = make([][]bool, len(g.Black))
	for i := range g.White {
		white[i] = append([]bool(nil), g.White[i][:]...)
		black[i] = append([]bool(nil), g.Black[i][:]...)
	}
	return white, black
}

// Scores holds the four evaluation components as length-N sequences.
type Scores struct {
	WhiteOffense []int
	WhiteDefense []int
	BlackOffense []int
	BlackDefense []int
}

// NewScores allocates zeroed scores for n boards.
func NewScores(n int) Scores {
	return Scores{
		WhiteOffense: make([]int, n),
		WhiteDefense: make([]int, n),
		BlackOffense: make([]int, n),
		BlackDefense: make([]int, n),
	}
}

// Len returns the number of boards scored.
func (s Scores) Len() int {
	return len(s.WhiteOffense)
}

// Set stores the score of board i.
func (s Scores) Set(i int, sc eval.Score) {
	s.WhiteOffense[i] = sc.WhiteOffense
	s.WhiteDefense[i] = sc.WhiteDefense
	s.BlackOffense[i] = sc.BlackOffense
	s.BlackDefense[i] = sc.BlackDefense
}

// At returns the score of board i.
func (s Scores) At(i int) eval.Score {
	return eval.Score{
		WhiteOffense: s.WhiteOffense[i],
		WhiteDefense: s.WhiteDefense[i],
		BlackOffense: s.BlackOffense[i],
		BlackDefense: s.BlackDefense[i],
	}
}
