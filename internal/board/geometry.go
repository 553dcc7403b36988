package board

// Direction offsets for one king step.
const (
	North     = 8
	South     = -8
	East      = 1
	West      = -1
	NorthEast = 9
	NorthWest = 7
	SouthEast = -7
	SouthWest = -9
)

// KingOffsets are the eight king-step offsets. Queen rays use the same order.
var KingOffsets = [8]int{SouthWest, South, SouthEast, West, East, NorthWest, North, NorthEast}

// KnightOffsets are the eight L-shaped knight jumps.
var KnightOffsets = [8]int{-17, -15, -10, -6, 6, 10, 15, 17}

// BishopDirections are the four diagonal ray offsets.
var BishopDirections = [4]int{SouthWest, SouthEast, NorthWest, NorthEast}

// RookDirections are the four orthogonal ray offsets.
var RookDirections = [4]int{South, West, East, North}

// QueenDirections are all eight ray offsets.
var QueenDirections = KingOffsets

// PawnCaptureOffsets holds the diagonal forward offsets per color,
// west-side capture first.
var PawnCaptureOffsets = [2][2]int{
	White: {NorthWest, NorthEast},
	Black: {SouthWest, SouthEast},
}

// PawnPush is the single-push offset per color.
var PawnPush = [2]int{White: North, Black: South}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Step moves one king step from sq along offset. It reports false when the
// target leaves the board or wraps around a board edge.
func Step(sq Square, offset int) (Square, bool) {
	to := int(sq) + offset
	if to < 0 || to >= NumSquares {
		return NoSquare, false
	}
	if absInt(to%8-sq.File()) > 1 {
		return NoSquare, false
	}
	return Square(to), true
}

// Jump applies a knight offset to sq. It reports false when the target leaves
// the board or is not an L-shaped jump from sq (board wrap).
func Jump(sq Square, offset int) (Square, bool) {
	to := int(sq) + offset
	if to < 0 || to >= NumSquares {
		return NoSquare, false
	}
	dr := absInt(to/8 - sq.Rank())
	df := absInt(to%8 - sq.File())
	if (dr == 2 && df == 1) || (dr == 1 && df == 2) {
		return Square(to), true
	}
	return NoSquare, false
}

// Ray appends to buf every square reached by walking from sq along dir,
// stopping after the first occupied square (inclusive). A ray that leaves
// the board immediately appends nothing.
func (b *Board) Ray(sq Square, dir int, buf []Square) []Square {
	for to, ok := Step(sq, dir); ok; to, ok = Step(to, dir) {
		buf = append(buf, to)
		if b.Pieces[to] != NoPiece {
			break
		}
	}
	return buf
}

// KnightTargets returns the valid knight jump targets from sq, in offset order.
func KnightTargets(sq Square) []Square {
	return knightTargets[sq]
}

// KingTargets returns the valid king step targets from sq, in offset order.
func KingTargets(sq Square) []Square {
	return kingTargets[sq]
}

// PawnAttackTargets returns the diagonal squares a pawn of color c on sq attacks.
func PawnAttackTargets(c Color, sq Square) []Square {
	return pawnTargets[c][sq]
}

// Pre-computed leaper target tables.
var (
	knightTargets [NumSquares][]Square
	kingTargets   [NumSquares][]Square
	pawnTargets   [2][NumSquares][]Square
)

func init() {
	for sq := Square(0); sq < NumSquares; sq++ {
		for _, off := range KnightOffsets {
			if to, ok := Jump(sq, off); ok {
				knightTargets[sq] = append(knightTargets[sq], to)
			}
		}
		for _, off := range KingOffsets {
			if to, ok := Step(sq, off); ok {
				kingTargets[sq] = append(kingTargets[sq], to)
			}
		}
		for _, c := range [2]Color{White, Black} {
			for _, off := range PawnCaptureOffsets[c] {
				if to, ok := Step(sq, off); ok {
					pawnTargets[c][sq] = append(pawnTargets[c][sq], to)
				}
			}
		}
	}
}
