// Package eval scores positions on the 64-cell encoding.
//
// The score is split per side into offense (material plus mobility) and
// defense (pawn shield in front of the king). It is deterministic and cheap,
// meant for ordering candidate moves rather than for playing strength.
package eval

import (
	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/movegen"
)

const (
	// MobilityWeight is added to offense per pseudo-legal move.
	MobilityWeight = 4
	// ShieldBonus is added to defense per pawn shielding the king.
	ShieldBonus = 20
)

// Score holds the four evaluation components.
type Score struct {
	WhiteOffense int
	WhiteDefense int
	BlackOffense int
	BlackDefense int
}

// Offense returns the offense component of color c.
func (s Score) Offense(c board.Color) int {
	if c == board.Black {
		return s.BlackOffense
	}
	return s.WhiteOffense
}

// Defense returns the defense component of color c.
func (s Score) Defense(c board.Color) int {
	if c == board.Black {
		return s.BlackDefense
	}
	return s.WhiteDefense
}

// Evaluate scores both sides of b.
func Evaluate(b *board.Board) Score {
	return Score{
		WhiteOffense: Offense(b, board.White),
		WhiteDefense: KingShield(b, board.White),
		BlackOffense: Offense(b, board.Black),
		BlackDefense: KingShield(b, board.Black),
	}
}

// Offense returns material plus weighted mobility for c.
func Offense(b *board.Board, c board.Color) int {
	return Material(b, c) + Mobility(b, c)
}

// Material sums the piece values of color c.
func Material(b *board.Board, c board.Color) int {
	total := 0
	for sq := 0; sq < board.NumSquares; sq++ {
		if b.Colors[sq] == c {
			total += b.Pieces[sq].Value()
		}
	}
	return total
}

// Mobility returns MobilityWeight times the pseudo-legal move count of c,
// whichever side is actually to move.
func Mobility(b *board.Board, c board.Color) int {
	return MobilityWeight * movegen.Count(b, c)
}

// KingShield returns ShieldBonus for every own pawn on the three squares
// directly in front of c's king. Without a king the shield is zero.
func KingShield(b *board.Board, c board.Color) int {
	king := b.KingSquare(c)
	if king == board.NoSquare {
		return 0
	}
	ahead, ok := board.Step(king, board.PawnPush[c])
	if !ok {
		return 0
	}

	n := 0
	for _, df := range [3]int{board.West, 0, board.East} {
		sq, ok := ahead, true
		if df != 0 {
			sq, ok = board.Step(ahead, df)
		}
		if ok && b.Pieces[sq] == board.Pawn && b.Colors[sq] == c {
			n++
		}
	}
	return n * ShieldBonus
}
