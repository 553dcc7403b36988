package movegen

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/hailam/bishopforge/internal/board"
)

// Positions without castling rights or en-passant squares, so every legal
// move the reference generator finds must also be pseudo-legal for us.
var oraclePositions = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b - - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w - - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w - - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"4k3/1P6/8/8/8/8/6p1/4K3 b - - 0 1",
}

type oracleKey struct {
	from, to board.Square
	promo    board.Piece
}

func TestLegalMovesAreSubsetOfPseudoLegal(t *testing.T) {
	for _, fen := range oraclePositions {
		t.Run(fen, func(t *testing.T) {
			b, stm := board.MustParseFEN(fen)
			ours := make(map[oracleKey]bool)
			for _, m := range Generate(&b, stm) {
				ours[oracleKey{m.From, m.To, m.Promo}] = true
			}

			ref := dragontoothmg.ParseFen(fen)
			legal := ref.GenerateLegalMoves()
			for _, m := range legal {
				k := oracleKey{board.Square(m.From()), board.Square(m.To()), board.Piece(m.Promote())}
				if !ours[k] {
					t.Errorf("legal move %s missing from pseudo-legal set", m.String())
				}
			}
			if len(ours) < len(legal) {
				t.Errorf("pseudo-legal %d < legal %d", len(ours), len(legal))
			}
			t.Logf("legal %d, pseudo-legal %d", len(legal), len(ours))
		})
	}
}
