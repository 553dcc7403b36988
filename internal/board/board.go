package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ErrShape is returned when input arrays do not have the expected dimensions.
var ErrShape = errors.New("shape mismatch")

// Board is the fixed 64-cell encoding of a position: two parallel arrays of
// piece types and colors indexed by square. Empty squares hold NoPiece and
// NoColor. Boards are plain values and can be copied freely.
type Board struct {
	Pieces [NumSquares]Piece
	Colors [NumSquares]Color
}

// Empty returns a board with no pieces.
func Empty() Board {
	var b Board
	for i := range b.Colors {
		b.Colors[i] = NoColor
	}
	return b
}

// StartPosition returns the standard chess starting position.
func StartPosition() Board {
	b := Empty()
	back := [8]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := 0; f < 8; f++ {
		b.Set(NewSquare(0, f), back[f], White)
		b.Set(NewSquare(1, f), Pawn, White)
		b.Set(NewSquare(6, f), Pawn, Black)
		b.Set(NewSquare(7, f), back[f], Black)
	}
	return b
}

// FromSlices builds a board from caller-supplied piece and color arrays.
// Both must contain exactly 64 entries. Values are copied without further
// validation.
func FromSlices(pieces, colors []int8) (Board, error) {
	var b Board
	if len(pieces) != NumSquares {
		return b, fmt.Errorf("%w: piece array has length %d, want %d", ErrShape, len(pieces), NumSquares)
	}
	if len(colors) != NumSquares {
		return b, fmt.Errorf("%w: color array has length %d, want %d", ErrShape, len(colors), NumSquares)
	}
	for i := 0; i < NumSquares; i++ {
		b.Pieces[i] = Piece(pieces[i])
		b.Colors[i] = Color(colors[i])
	}
	return b, nil
}

// Slices returns copies of the piece and color arrays.
func (b Board) Slices() (pieces, colors []int8) {
	pieces = make([]int8, NumSquares)
	colors = make([]int8, NumSquares)
	for i := 0; i < NumSquares; i++ {
		pieces[i] = int8(b.Pieces[i])
		colors[i] = int8(b.Colors[i])
	}
	return pieces, colors
}

// Set places a piece of the given color on sq.
func (b *Board) Set(sq Square, p Piece, c Color) {
	b.Pieces[sq] = p
	b.Colors[sq] = c
}

// Clear empties sq.
func (b *Board) Clear(sq Square) {
	b.Pieces[sq] = NoPiece
	b.Colors[sq] = NoColor
}

// IsEmpty returns true if no piece stands on sq.
func (b *Board) IsEmpty(sq Square) bool {
	return b.Pieces[sq] == NoPiece
}

// KingSquare returns the first square holding a king of color c, or NoSquare.
func (b *Board) KingSquare(c Color) Square {
	for sq := Square(0); sq < NumSquares; sq++ {
		if b.Pieces[sq] == King && b.Colors[sq] == c {
			return sq
		}
	}
	return NoSquare
}

// Count returns the number of pieces of type p and color c.
func (b *Board) Count(p Piece, c Color) int {
	n := 0
	for sq := 0; sq < NumSquares; sq++ {
		if b.Pieces[sq] == p && b.Colors[sq] == c {
			n++
		}
	}
	return n
}

// Apply returns a copy of the board with m played. The moving piece is
// relocated, whatever stood on the destination is removed, and a promotion
// piece replaces the pawn. Castling and en-passant side effects are not
// modelled.
func (b Board) Apply(m Move) Board {
	p, c := b.Pieces[m.From], b.Colors[m.From]
	b.Clear(m.From)
	if m.Promo != NoPiece {
		p = m.Promo
	}
	b.Set(m.To, p, c)
	return b
}

// HashWithSide returns a digest over the board and a side to move.
func (b *Board) HashWithSide(stm Color) uint64 {
	var buf [2*NumSquares + 1]byte
	out := b.AppendBytes(buf[:0])
	out = append(out, byte(stm))
	return xxhash.Sum64(out)
}

// AppendBytes appends the 64 piece codes followed by the 64 color codes.
func (b *Board) AppendBytes(dst []byte) []byte {
	for i := 0; i < NumSquares; i++ {
		dst = append(dst, byte(b.Pieces[i]))
	}
	for i := 0; i < NumSquares; i++ {
		dst = append(dst, byte(b.Colors[i]))
	}
	return dst
}

// String returns an ASCII diagram of the board, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  +-----------------+\n")
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d | ", rank+1))
		for file := 0; file < 8; file++ {
			sq := NewSquare(rank, file)
			ch := byte('.')
			if !b.IsEmpty(sq) {
				ch = b.Pieces[sq].Char()
				if b.Colors[sq] == White {
					ch -= 'a' - 'A'
				}
			}
			sb.WriteByte(ch)
			sb.WriteByte(' ')
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  +-----------------+\n")
	sb.WriteString("    a b c d e f g h\n")
	return sb.String()
}
