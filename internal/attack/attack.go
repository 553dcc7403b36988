// Package attack computes per-side attack maps for a board encoding.
package attack

import (
	"github.com/hailam/bishopforge/internal/board"
)

// Map marks every square attacked by one side.
type Map [board.NumSquares]bool

// Count returns the number of attacked squares.
func (m *Map) Count() int {
	n := 0
	for _, a := range m {
		if a {
			n++
		}
	}
	return n
}

// Any returns true if at least one square is attacked.
func (m *Map) Any() bool {
	for _, a := range m {
		if a {
			return true
		}
	}
	return false
}

// Maps holds the attack maps of both sides.
type Maps struct {
	White Map
	Black Map
}

// Side returns the attack map of color c.
func (m *Maps) Side(c board.Color) *Map {
	if c == board.Black {
		return &m.Black
	}
	return &m.White
}

// Generate computes the attack maps of both sides. A square counts as
// attacked regardless of what stands on it, including friendly pieces.
func Generate(b *board.Board) Maps {
	var maps Maps
	Accumulate(b, &maps, nil)
	return maps
}

// Accumulate ORs attacks into maps. If only is non-nil, pieces for which it
// returns false are skipped.
func Accumulate(b *board.Board, maps *Maps, only func(board.Piece) bool) {
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		p := b.Pieces[sq]
		if p == board.NoPiece {
			continue
		}
		if only != nil && !only(p) {
			continue
		}
		c := b.Colors[sq]
		if !c.IsValid() {
			continue
		}
		out := maps.Side(c)
		Targets(b, sq, p, c, func(to board.Square) {
			out[to] = true
		})
	}
}

// Targets calls visit for every square the piece p of color c on sq
// attacks. Leaper targets come in offset order, slider targets ray by ray;
// the first occupied square of a ray is included.
func Targets(b *board.Board, sq board.Square, p board.Piece, c board.Color, visit func(board.Square)) {
	switch p {
	case board.Pawn:
		for _, to := range board.PawnAttackTargets(c, sq) {
			visit(to)
		}
	case board.Knight:
		for _, to := range board.KnightTargets(sq) {
			visit(to)
		}
	case board.King:
		for _, to := range board.KingTargets(sq) {
			visit(to)
		}
	case board.Bishop:
		rays(b, sq, board.BishopDirections[:], visit)
	case board.Rook:
		rays(b, sq, board.RookDirections[:], visit)
	case board.Queen:
		rays(b, sq, board.QueenDirections[:], visit)
	}
}

func rays(b *board.Board, sq board.Square, dirs []int, visit func(board.Square)) {
	for _, dir := range dirs {
		for to, ok := board.Step(sq, dir); ok; to, ok = board.Step(to, dir) {
			visit(to)
			if b.Pieces[to] != board.NoPiece {
				break
			}
		}
	}
}

// IsSliderOnly selects bishops, rooks and queens.
func IsSliderOnly(p board.Piece) bool {
	return p.IsSlider()
}
