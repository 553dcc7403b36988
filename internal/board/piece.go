package board

// Color represents the owner of a square: White, Black, or NoColor for empty squares.
type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

// Other returns the opposite color. NoColor stays NoColor.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

// IsValid returns true for White and Black.
func (c Color) IsValid() bool {
	return c == White || c == Black
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Piece is the type of the piece standing on a square (0 = empty).
type Piece int8

const (
	NoPiece Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (p Piece) String() string {
	switch p {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece (lowercase).
func (p Piece) Char() byte {
	chars := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if p < NoPiece || p > King {
		return ' '
	}
	return chars[p]
}

// IsSlider reports whether the piece moves along rays.
func (p Piece) IsSlider() bool {
	return p == Bishop || p == Rook || p == Queen
}

// PieceValue holds the material value of each piece type in centipawns.
// The king carries no material value.
var PieceValue = [7]int{0, 100, 320, 330, 500, 900, 0}

// Value returns the material value of the piece.
func (p Piece) Value() int {
	if p < NoPiece || p > King {
		return 0
	}
	return PieceValue[p]
}

// PromotionPieces lists promotion targets in emission order.
var PromotionPieces = [4]Piece{Knight, Bishop, Rook, Queen}

// PieceFromChar converts a FEN character to a piece and its color.
func PieceFromChar(c byte) (Piece, Color) {
	switch c {
	case 'P':
		return Pawn, White
	case 'N':
		return Knight, White
	case 'B':
		return Bishop, White
	case 'R':
		return Rook, White
	case 'Q':
		return Queen, White
	case 'K':
		return King, White
	case 'p':
		return Pawn, Black
	case 'n':
		return Knight, Black
	case 'b':
		return Bishop, Black
	case 'r':
		return Rook, Black
	case 'q':
		return Queen, Black
	case 'k':
		return King, Black
	default:
		return NoPiece, NoColor
	}
}
