package board

import (
	"errors"
	"testing"
)

func TestParseFENStartingPosition(t *testing.T) {
	b, stm, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if stm != White {
		t.Errorf("side to move = %v, want White", stm)
	}
	if b != StartPosition() {
		t.Errorf("parsed start position differs:\n%s", b.String())
	}
	if b.Pieces[E1] != King || b.Colors[E1] != White {
		t.Errorf("e1 = %v/%v, want White King", b.Pieces[E1], b.Colors[E1])
	}
	if b.Pieces[D8] != Queen || b.Colors[D8] != Black {
		t.Errorf("d8 = %v/%v, want Black Queen", b.Pieces[D8], b.Colors[D8])
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b - - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"4k3/P7/8/8/8/8/7p/4K3 b - - 0 1",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			b, stm, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			if got := b.FEN(stm); got != fen {
				t.Errorf("FEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w",
		"rnbqkbnr/pppppppp/7/8/8/8/PPPPPPPP/RNBQKBNR w",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x",
		// U+0150 truncates to 'P'
		"4k3/8/8/8/8/8/8/4K2\u0150 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K2\u014e w - - 0 1",
	}

	for _, fen := range bad {
		if _, _, err := ParseFEN(fen); !errors.Is(err, ErrFEN) {
			t.Errorf("ParseFEN(%q) error = %v, want ErrFEN", fen, err)
		}
	}
}

func TestParseFENKeepsEmptyInvariant(t *testing.T) {
	b, _ := MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	for sq := 0; sq < NumSquares; sq++ {
		if (b.Pieces[sq] == NoPiece) != (b.Colors[sq] == NoColor) {
			t.Errorf("square %s: piece %v with color %v", Square(sq), b.Pieces[sq], b.Colors[sq])
		}
	}
}
