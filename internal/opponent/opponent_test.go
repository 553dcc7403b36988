package opponent

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/hailam/bishopforge/internal/batch"
	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/eval"
	"github.com/hailam/bishopforge/internal/movegen"
)

type scalarEval struct {
	batches int
}

func (s *scalarEval) EvaluateBoard(b *board.Board) eval.Score { return eval.Evaluate(b) }

func (s *scalarEval) EvaluateBoards(boards []board.Board) batch.Scores {
	s.batches++
	return batch.Evaluate(boards)
}

func newChooser(seed uint64) (*Chooser, *scalarEval) {
	ev := &scalarEval{}
	return NewChooser(ev, rand.New(rand.NewPCG(seed, seed))), ev
}

func TestProfileScore(t *testing.T) {
	d := Delta{MyOffense: 10, MyDefense: 20, OppOffense: -30, OppDefense: 5}
	tests := []struct {
		p    Profile
		want int
	}{
		{Aggressive, 40},
		{Defensive, 50},
		{Moderate, 30},
		{DefensivePassive, 15},
		{Random, 0},
	}
	for _, tc := range tests {
		if got := tc.p.Score(d); got != tc.want {
			t.Errorf("%s score = %d, want %d", tc.p, got, tc.want)
		}
	}
}

func TestParseProfile(t *testing.T) {
	for _, p := range Profiles {
		got, err := ParseProfile(string(p))
		if err != nil || got != p {
			t.Errorf("ParseProfile(%q) = %q, %v", p, got, err)
		}
	}
	if _, err := ParseProfile("berserk"); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("unknown profile: err = %v", err)
	}
}

func TestAggressiveTakesHangingRook(t *testing.T) {
	b, stm := board.MustParseFEN("4k3/8/8/8/8/8/8/r2QK3 w - - 0 1")
	c, ev := newChooser(1)

	choice, err := c.Choose(&b, stm, movegen.Generate(&b, stm), Aggressive)
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if choice.Move.String() != "d1a1" {
		t.Errorf("aggressive chose %s, want d1a1", choice.Move)
	}
	if !choice.Evaluated || choice.OppOffense == 0 || choice.Score <= 0 {
		t.Errorf("unexpected evaluation details %+v", choice)
	}
	if ev.batches != 1 {
		t.Errorf("children scored in %d batches, want 1", ev.batches)
	}
}

func TestBlackPerspective(t *testing.T) {
	b, stm := board.MustParseFEN("4k2q/8/8/8/8/8/8/4K2R b - - 0 1")
	c, _ := newChooser(1)

	choice, err := c.Choose(&b, stm, movegen.Generate(&b, stm), Aggressive)
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if choice.Move.String() != "h8h1" {
		t.Errorf("black aggressive chose %s, want h8h1", choice.Move)
	}
	child := b.Apply(choice.Move)
	after := eval.Evaluate(&child)
	if choice.MyOffense != after.BlackOffense || choice.OppOffense != after.WhiteOffense {
		t.Errorf("details not from black's perspective: %+v vs %+v", choice, after)
	}
}

func TestTiesKeepFirstCandidate(t *testing.T) {
	b, stm := board.MustParseFEN("8/8/8/3n4/4N3/8/8/8 w - - 0 1")
	c, _ := newChooser(1)
	moves := movegen.Generate(&b, stm)

	// No kings, so every defense delta is zero.
	choice, err := c.Choose(&b, stm, moves, DefensivePassive)
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if choice.Move != moves[0] || choice.Score != 0 {
		t.Errorf("tie chose %s (score %d), want first candidate %s", choice.Move, choice.Score, moves[0])
	}
}

func TestRandomIsSeeded(t *testing.T) {
	b := board.StartPosition()
	moves := movegen.Generate(&b, board.White)

	a, _ := newChooser(7)
	z, _ := newChooser(7)
	for i := 0; i < 10; i++ {
		ca, err := a.Choose(&b, board.White, moves, Random)
		if err != nil {
			t.Fatalf("Choose: %v", err)
		}
		cz, _ := z.Choose(&b, board.White, moves, Random)
		if ca.Move != cz.Move {
			t.Fatalf("same seed gave %s and %s", ca.Move, cz.Move)
		}
		if ca.Evaluated {
			t.Error("random choice should not carry evaluation details")
		}
	}
}

func TestChooseErrors(t *testing.T) {
	b := board.StartPosition()
	c, _ := newChooser(1)

	if _, err := c.Choose(&b, board.White, nil, Moderate); !errors.Is(err, ErrNoMoves) {
		t.Errorf("no candidates: err = %v", err)
	}
	moves := movegen.Generate(&b, board.White)
	if _, err := c.Choose(&b, board.White, moves, Profile("chaotic")); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("bad profile: err = %v", err)
	}
	if _, err := c.Choose(&b, board.NoColor, moves, Moderate); err == nil {
		t.Error("invalid side to move should fail")
	}
}
