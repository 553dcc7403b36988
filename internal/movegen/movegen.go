// Package movegen generates pseudo-legal moves for the 64-cell board encoding.
//
// Moves are pseudo-legal: a move may leave the mover's own king attacked.
// Castling and en passant are never generated. Output order is deterministic:
// source squares ascend, and the targets of each piece follow the fixed offset
// tables in package board.
package movegen

import (
	"github.com/hailam/bishopforge/internal/board"
)

// MaxMoves bounds the number of pseudo-legal moves expected in one position.
// Buffers sized to it never grow for positions reachable in play.
const MaxMoves = 256

// Generate returns every pseudo-legal move for stm. The result is never nil.
func Generate(b *board.Board, stm board.Color) []board.Move {
	return GenerateInto(b, stm, make([]board.Move, 0, 64))
}

// GenerateInto appends the pseudo-legal moves for stm to buf and returns the
// extended slice.
func GenerateInto(b *board.Board, stm board.Color, buf []board.Move) []board.Move {
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		if b.Colors[sq] != stm {
			continue
		}
		switch b.Pieces[sq] {
		case board.Pawn:
			buf = pawnMoves(b, sq, stm, buf)
		case board.Knight:
			buf = leaperMoves(b, sq, stm, board.KnightTargets(sq), buf)
		case board.King:
			buf = leaperMoves(b, sq, stm, board.KingTargets(sq), buf)
		case board.Bishop:
			buf = sliderMoves(b, sq, stm, board.BishopDirections[:], buf)
		case board.Rook:
			buf = sliderMoves(b, sq, stm, board.RookDirections[:], buf)
		case board.Queen:
			buf = sliderMoves(b, sq, stm, board.QueenDirections[:], buf)
		}
	}
	return buf
}

// Count returns the number of pseudo-legal moves for side.
func Count(b *board.Board, side board.Color) int {
	var buf [MaxMoves]board.Move
	return len(GenerateInto(b, side, buf[:0]))
}

func pawnMoves(b *board.Board, sq board.Square, c board.Color, buf []board.Move) []board.Move {
	// Pawns on the last rank cannot push or capture.
	if to, ok := board.Step(sq, board.PawnPush[c]); ok && b.IsEmpty(to) {
		buf = pawnMove(sq, to, c, board.FlagNormal, buf)

		if sq.RelativeRank(c) == 1 {
			if two, ok := board.Step(to, board.PawnPush[c]); ok && b.IsEmpty(two) {
				buf = append(buf, board.NewMove(sq, two, board.NoPiece, board.FlagDoublePush))
			}
		}
	}

	for _, to := range board.PawnAttackTargets(c, sq) {
		if b.Colors[to] == c.Other() {
			buf = pawnMove(sq, to, c, board.FlagCapture, buf)
		}
	}
	return buf
}

// pawnMove emits a single move, or four promotion records when to lies on
// the far rank.
func pawnMove(from, to board.Square, c board.Color, flags board.Flag, buf []board.Move) []board.Move {
	if to.RelativeRank(c) != 7 {
		return append(buf, board.NewMove(from, to, board.NoPiece, flags))
	}
	for _, promo := range board.PromotionPieces {
		buf = append(buf, board.NewMove(from, to, promo, flags))
	}
	return buf
}

func leaperMoves(b *board.Board, sq board.Square, c board.Color, targets []board.Square, buf []board.Move) []board.Move {
	for _, to := range targets {
		switch b.Colors[to] {
		case c:
		case board.NoColor:
			buf = append(buf, board.NewMove(sq, to, board.NoPiece, board.FlagNormal))
		default:
			buf = append(buf, board.NewMove(sq, to, board.NoPiece, board.FlagCapture))
		}
	}
	return buf
}

func sliderMoves(b *board.Board, sq board.Square, c board.Color, dirs []int, buf []board.Move) []board.Move {
	for _, dir := range dirs {
		for to, ok := board.Step(sq, dir); ok; to, ok = board.Step(to, dir) {
			if b.IsEmpty(to) {
				buf = append(buf, board.NewMove(sq, to, board.NoPiece, board.FlagNormal))
				continue
			}
			if b.Colors[to] != c {
				buf = append(buf, board.NewMove(sq, to, board.NoPiece, board.FlagCapture))
			}
			break
		}
	}
	return buf
}
