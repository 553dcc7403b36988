package board

import (
	"errors"
	"fmt"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrFEN is returned for FEN text that cannot be converted into a board.
var ErrFEN = errors.New("invalid FEN")

// ParseFEN converts a FEN string into a board and the side to move.
// Only piece placement and side to move are read; castling rights,
// en-passant square and clocks are accepted and ignored. A missing side
// field defaults to White.
func ParseFEN(fen string) (Board, Color, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return Board{}, NoColor, fmt.Errorf("%w: empty string", ErrFEN)
	}

	b := Empty()
	if err := parsePiecePlacement(&b, parts[0]); err != nil {
		return Board{}, NoColor, err
	}

	stm := White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			stm = White
		case "b":
			stm = Black
		default:
			return Board{}, NoColor, fmt.Errorf("%w: invalid side to move: %s", ErrFEN, parts[1])
		}
	}

	return b, stm, nil
}

// MustParseFEN is ParseFEN for literals known to be valid.
func MustParseFEN(fen string) (Board, Color) {
	b, stm, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b, stm
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrFEN, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrFEN, rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			if c > 0x7f {
				return fmt.Errorf("%w: invalid piece character: %c", ErrFEN, c)
			}
			p, col := PieceFromChar(byte(c))
			if p == NoPiece {
				return fmt.Errorf("%w: invalid piece character: %c", ErrFEN, c)
			}
			b.Set(NewSquare(rank, file), p, col)
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: invalid number of squares in rank %d: got %d", ErrFEN, rank+1, file)
		}
	}

	return nil
}

// FEN returns the simplified FEN of the board with the given side to move.
// Castling and en passant are always "-", clocks are "0 1".
func (b *Board) FEN(stm Color) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(rank, file)
			if b.IsEmpty(sq) {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			ch := b.Pieces[sq].Char()
			if b.Colors[sq] == White {
				ch -= 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if stm == Black {
		sb.WriteString(" b")
	} else {
		sb.WriteString(" w")
	}
	sb.WriteString(" - - 0 1")

	return sb.String()
}
