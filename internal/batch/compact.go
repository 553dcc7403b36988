package batch

import (
	"github.com/hailam/bishopforge/internal/board"
)

// Offsets returns the exclusive prefix sum of counts and the total. Board i
// owns out[offsets[i] : offsets[i]+counts[i]] in the compacted sequence.
func Offsets(counts []int) (offsets []int, total int) {
	offsets = make([]int, len(counts))
	for i, n := range counts {
		offsets[i] = total
		total += n
	}
	return offsets, total
}

// Scatter writes the moves of board i into dst starting at offset.
func Scatter(dst []board.BatchMove, offset, i int, moves []board.Move) {
	seg := dst[offset : offset+len(moves)]
	for j, m := range moves {
		seg[j] = board.BatchMove{Board: i, Move: m}
	}
}

// Compact flattens per-board move lists into one board-indexed sequence.
func Compact(perBoard [][]board.Move) []board.BatchMove {
	counts := make([]int, len(perBoard))
	for i, moves := range perBoard {
		counts[i] = len(moves)
	}
	offsets, total := Offsets(counts)

	out := make([]board.BatchMove, total)
	for i, moves := range perBoard {
		Scatter(out, offsets[i], i, moves)
	}
	return out
}
