// Package opponent picks a move for a computer opponent with a playing
// style. It looks exactly one ply ahead: every candidate is applied, the
// children are scored in one batch, and the best profile score wins.
package opponent

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hailam/bishopforge/internal/batch"
	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/eval"
)

var (
	// ErrNoMoves is returned when there is no candidate move to choose from.
	ErrNoMoves = errors.New("no candidate moves")
	// ErrUnknownProfile is returned for an unrecognised profile name.
	ErrUnknownProfile = errors.New("unknown profile")
)

// Profile is a move-selection style.
type Profile string

const (
	Random           Profile = "random"
	Aggressive       Profile = "aggressive"
	Defensive        Profile = "defensive"
	Moderate         Profile = "moderate"
	DefensivePassive Profile = "defensive_passive"
)

// Profiles lists every supported profile.
var Profiles = []Profile{Random, Aggressive, Defensive, Moderate, DefensivePassive}

// ParseProfile validates a profile name.
func ParseProfile(s string) (Profile, error) {
	for _, p := range Profiles {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProfile, s)
}

// Delta is the change of the evaluation components from the mover's point
// of view.
type Delta struct {
	MyOffense, MyDefense   int
	OppOffense, OppDefense int
}

// Score rates d under profile p. Random rates every move 0.
func (p Profile) Score(d Delta) int {
	switch p {
	case Aggressive:
		return d.MyOffense - d.OppOffense
	case Defensive:
		return d.MyDefense - d.OppOffense
	case Moderate:
		return d.MyOffense + d.MyDefense
	case DefensivePassive:
		return d.MyDefense - d.OppDefense
	default:
		return 0
	}
}

// Evaluator scores single boards and batches.
type Evaluator interface {
	EvaluateBoard(b *board.Board) eval.Score
	EvaluateBoards(boards []board.Board) batch.Scores
}

// Choice is the selected move with the evaluation it was chosen on.
type Choice struct {
	Move  board.Move
	Score int
	// Evaluated is false for the random profile; the fields below are then zero.
	Evaluated  bool
	MyOffense  int
	MyDefense  int
	OppOffense int
	OppDefense int
}

// Chooser selects opponent moves.
type Chooser struct {
	eval Evaluator
	rng  *rand.Rand
}

// NewChooser returns a chooser scoring with ev. rng drives the random
// profile; nil seeds a generator from the runtime.
func NewChooser(ev Evaluator, rng *rand.Rand) *Chooser {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Chooser{eval: ev, rng: rng}
}

// Choose picks one of candidates for stm on b. Candidates are typically the
// legal moves; ties keep the first candidate.
func (c *Chooser) Choose(b *board.Board, stm board.Color, candidates []board.Move, p Profile) (Choice, error) {
	if len(candidates) == 0 {
		return Choice{}, ErrNoMoves
	}
	if _, err := ParseProfile(string(p)); err != nil {
		return Choice{}, err
	}
	if !stm.IsValid() {
		return Choice{}, fmt.Errorf("invalid side to move %d", stm)
	}
	if p == Random {
		return Choice{Move: candidates[c.rng.IntN(len(candidates))]}, nil
	}

	current := c.eval.EvaluateBoard(b)
	children := make([]board.Board, len(candidates))
	for i, m := range candidates {
		children[i] = b.Apply(m)
	}
	scores := c.eval.EvaluateBoards(children)

	opp := stm.Other()
	var best Choice
	for i, m := range candidates {
		after := scores.At(i)
		d := Delta{
			MyOffense:  after.Offense(stm) - current.Offense(stm),
			MyDefense:  after.Defense(stm) - current.Defense(stm),
			OppOffense: after.Offense(opp) - current.Offense(opp),
			OppDefense: after.Defense(opp) - current.Defense(opp),
		}
		score := p.Score(d)
		if i == 0 || score > best.Score {
			best = Choice{
				Move:       m,
				Score:      score,
				Evaluated:  true,
				MyOffense:  after.Offense(stm),
				MyDefense:  after.Defense(stm),
				OppOffense: after.Offense(opp),
				OppDefense: after.Defense(opp),
			}
		}
	}
	return best, nil
}
