package movegen

import (
	"testing"

	"github.com/hailam/bishopforge/internal/board"
)

func TestStartingPositionMoveCount(t *testing.T) {
	b := board.StartPosition()

	if got := len(Generate(&b, board.White)); got != 20 {
		t.Errorf("white moves = %d, want 20", got)
	}
	if got := len(Generate(&b, board.Black)); got != 20 {
		t.Errorf("black moves = %d, want 20", got)
	}
	if got := Count(&b, board.White); got != 20 {
		t.Errorf("Count = %d, want 20", got)
	}
}

func TestMoveCounts(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"lone knight e4", "8/8/8/8/4N3/8/8/8 w - - 0 1", 8},
		{"lone knight a1", "8/8/8/8/8/8/8/N7 w - - 0 1", 2},
		{"lone rook a1", "8/8/8/8/8/8/8/R7 w - - 0 1", 14},
		{"lone queen d4", "8/8/8/8/3Q4/8/8/8 w - - 0 1", 27},
		{"lone king h8", "7K/8/8/8/8/8/8/8 w - - 0 1", 3},
		// Castling is never generated, so kiwipete yields 48 - 2 castles.
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1", 46},
		{"blocked pawn", "8/8/8/8/4p3/4P3/8/8 w - - 0 1", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, stm := board.MustParseFEN(tc.fen)
			if got := Count(&b, stm); got != tc.want {
				t.Errorf("moves = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEmptyBoardHasNoMoves(t *testing.T) {
	b := board.Empty()
	moves := Generate(&b, board.White)
	if moves == nil {
		t.Error("Generate returned nil, want empty slice")
	}
	if len(moves) != 0 {
		t.Errorf("empty board produced %d moves", len(moves))
	}

	// Only black pieces: white has nothing to move.
	b.Set(board.E8, board.King, board.Black)
	if n := Count(&b, board.White); n != 0 {
		t.Errorf("white without pieces produced %d moves", n)
	}
}

func TestPromotionEmitsFourRecords(t *testing.T) {
	b, _ := board.MustParseFEN("8/P7/8/8/8/8/8/8 w - - 0 1")
	moves := Generate(&b, board.White)

	if len(moves) != 4 {
		t.Fatalf("promotion produced %d records, want 4: %v", len(moves), moves)
	}
	for i, m := range moves {
		if m.From != board.A7 || m.To != board.A8 || m.Flags != board.FlagNormal {
			t.Errorf("record %d = %+v, want a7a8 without flags", i, m)
		}
		if m.Promo != board.PromotionPieces[i] {
			t.Errorf("record %d promotes to %v, want %v", i, m.Promo, board.PromotionPieces[i])
		}
	}
}

func TestPromotionCaptures(t *testing.T) {
	b, _ := board.MustParseFEN("8/8/8/8/8/8/p7/1R6 b - - 0 1")
	moves := Generate(&b, board.Black)

	// a1 push x4 then axb1 x4
	if len(moves) != 8 {
		t.Fatalf("got %d moves, want 8: %v", len(moves), moves)
	}
	for _, m := range moves[4:] {
		if m.To != board.B1 || !m.IsCapture() || !m.IsPromotion() {
			t.Errorf("expected promotion capture on b1, got %+v", m)
		}
	}
}

func TestPawnFlags(t *testing.T) {
	b, _ := board.MustParseFEN("8/8/8/8/8/3p4/4P3/8 w - - 0 1")
	moves := Generate(&b, board.White)

	want := []struct {
		uci   string
		flags board.Flag
	}{
		{"e2e3", board.FlagNormal},
		{"e2e4", board.FlagDoublePush},
		{"e2d3", board.FlagCapture},
	}
	if len(moves) != len(want) {
		t.Fatalf("got %v, want %d moves", moves, len(want))
	}
	for i, w := range want {
		if moves[i].String() != w.uci || moves[i].Flags != w.flags {
			t.Errorf("move %d = %s flags %d, want %s flags %d", i, moves[i], moves[i].Flags, w.uci, w.flags)
		}
	}
}

func TestDoublePushNeedsBothSquaresEmpty(t *testing.T) {
	b, _ := board.MustParseFEN("8/8/8/8/4n3/8/4P3/8 w - - 0 1")
	moves := Generate(&b, board.White)
	if len(moves) != 1 || moves[0].String() != "e2e3" {
		t.Errorf("blocked double push: got %v, want [e2e3]", moves)
	}

	b, _ = board.MustParseFEN("8/4p3/8/8/8/8/8/8 b - - 0 1")
	moves = Generate(&b, board.Black)
	if len(moves) != 2 || !moves[1].Flags.Has(board.FlagDoublePush) || moves[1].To != board.MustParseSquare("e5") {
		t.Errorf("black double push: got %v", moves)
	}
}

func TestNeverCapturesOwnPieces(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b - - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w - - 1 8",
	}

	for _, fen := range fens {
		b, stm := board.MustParseFEN(fen)
		for _, m := range Generate(&b, stm) {
			if b.Colors[m.From] != stm {
				t.Errorf("%s: move %s starts on a square not owned by %v", fen, m, stm)
			}
			if b.Colors[m.To] == stm {
				t.Errorf("%s: move %s lands on own piece", fen, m)
			}
			if m.IsCapture() != (b.Colors[m.To] == stm.Other()) {
				t.Errorf("%s: move %s capture flag disagrees with board", fen, m)
			}
			if m.Flags.Has(board.FlagCastle) || m.Flags.Has(board.FlagEnPassant) {
				t.Errorf("%s: move %s carries a reserved flag", fen, m)
			}
		}
	}
}

func TestGenerationOrderIsStable(t *testing.T) {
	b, stm := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1")
	before := b

	first := Generate(&b, stm)
	second := Generate(&b, stm)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("move %d differs: %v vs %v", i, first[i], second[i])
		}
	}
	if b != before {
		t.Error("Generate modified its input")
	}

	for i := 1; i < len(first); i++ {
		if first[i].From < first[i-1].From {
			t.Errorf("source squares not ascending at %d: %s after %s", i, first[i], first[i-1])
		}
	}
}

func TestKnightOffsetOrder(t *testing.T) {
	b, _ := board.MustParseFEN("8/8/8/8/4N3/8/8/8 w - - 0 1")
	moves := Generate(&b, board.White)
	want := []string{"e4d2", "e4f2", "e4c3", "e4g3", "e4c5", "e4g5", "e4d6", "e4f6"}
	for i, w := range want {
		if moves[i].String() != w {
			t.Errorf("move %d = %s, want %s", i, moves[i], w)
		}
	}
}

func TestGenerateIntoAppends(t *testing.T) {
	b := board.StartPosition()
	buf := make([]board.Move, 0, MaxMoves)
	buf = GenerateInto(&b, board.White, buf)
	buf = GenerateInto(&b, board.Black, buf)
	if len(buf) != 40 {
		t.Errorf("two appends gave %d moves, want 40", len(buf))
	}
}

func BenchmarkGenerate(b *testing.B) {
	pos, stm := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1")
	buf := make([]board.Move, 0, MaxMoves)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = GenerateInto(&pos, stm, buf[:0])
	}
}

func BenchmarkCount(b *testing.B) {
	pos := board.StartPosition()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Count(&pos, board.White)
	}
}
