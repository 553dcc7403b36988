package board

import (
	"fmt"
	"sync/atomic"
)

// Flag is the move flag bitset.
type Flag uint8

// Move flags. FlagEnPassant and FlagCastle are reserved: the generator never
// produces them.
const (
	FlagNormal     Flag = 0
	FlagCapture    Flag = 1
	FlagEnPassant  Flag = 2
	FlagCastle     Flag = 4
	FlagDoublePush Flag = 8
)

// Has reports whether all bits of f2 are set in f.
func (f Flag) Has(f2 Flag) bool {
	return f&f2 == f2
}

// Move is the fixed four-field move record.
type Move struct {
	From  Square
	To    Square
	Promo Piece // NoPiece, Knight, Bishop, Rook or Queen
	Flags Flag
}

// BatchMove is a move record prefixed with the index of its originating board.
type BatchMove struct {
	Board int
	Move
}

var debugMoveValidation atomic.Bool

// SetDebugMoveValidation turns invariant checks on every emitted move record
// on or off. Binaries call it once at startup; libraries never do.
func SetDebugMoveValidation(on bool) {
	debugMoveValidation.Store(on)
}

// DebugMoveValidation reports whether move records are checked.
func DebugMoveValidation() bool {
	return debugMoveValidation.Load()
}

// NewMove creates a move record. With move validation enabled it panics on
// squares outside 0..63 or an impossible promotion piece.
func NewMove(from, to Square, promo Piece, flags Flag) Move {
	m := Move{From: from, To: to, Promo: promo, Flags: flags}
	if debugMoveValidation.Load() {
		m.mustBeValid()
	}
	return m
}

func (m Move) mustBeValid() {
	if !m.From.IsValid() || !m.To.IsValid() {
		panic(fmt.Sprintf("board: move %d->%d has square out of range", m.From, m.To))
	}
	switch m.Promo {
	case NoPiece, Knight, Bishop, Rook, Queen:
	default:
		panic(fmt.Sprintf("board: move %v has invalid promotion piece %d", m, m.Promo))
	}
}

// IsCapture returns true if the move is flagged as a capture.
func (m Move) IsCapture() bool {
	return m.Flags.Has(FlagCapture)
}

// IsPromotion returns true if the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promo != NoPiece
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promo.Char())
	}
	return s
}

// ParseMove parses a UCI move string against b to recover the capture and
// double-push flags.
func ParseMove(s string, b *Board) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return Move{}, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}

	promo := NoPiece
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return Move{}, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	if b.IsEmpty(from) {
		return Move{}, fmt.Errorf("no piece at %s", from)
	}

	flags := FlagNormal
	if !b.IsEmpty(to) {
		flags |= FlagCapture
	}
	if b.Pieces[from] == Pawn && absInt(int(to)-int(from)) == 16 {
		flags |= FlagDoublePush
	}
	return Move{From: from, To: to, Promo: promo, Flags: flags}, nil
}
