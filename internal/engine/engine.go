// Package engine is the public face of the move, attack and evaluation core.
//
// It accepts the flat piece/color array encoding, validates shapes, routes
// every call through the backend chosen at construction and optionally
// memoizes single-position results.
package engine

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/hailam/bishopforge/internal/backend"
	"github.com/hailam/bishopforge/internal/batch"
	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/cache"
	"github.com/hailam/bishopforge/internal/config"
	"github.com/hailam/bishopforge/internal/eval"
	"github.com/hailam/bishopforge/internal/storage"
)

// Engine is safe for concurrent use. The backend never changes after New.
type Engine struct {
	backend backend.Backend
	log     zerolog.Logger

	scores *cache.Cache[eval.Score]
	moves  *cache.Cache[[]board.Move]
	store  *storage.Storage
}

// New selects a backend and, if enabled, opens the result cache. cfg.Debug
// is applied by the binary through board.SetDebugMoveValidation.
func New(cfg config.Config, logger zerolog.Logger) (*Engine, error) {
	e := &Engine{
		backend: backend.Select(cfg.BackendOptions(), logger),
		log:     logger,
	}
	if !cfg.CacheEnabled {
		return e, nil
	}
	if err := e.openCache(cfg); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// NewWithBackend returns an uncached engine on a given backend.
func NewWithBackend(b backend.Backend, logger zerolog.Logger) *Engine {
	return &Engine{backend: b, log: logger}
}

func (e *Engine) openCache(cfg config.Config) error {
	var err error
	switch cfg.CacheDir {
	case "":
	case config.CacheDirDefault:
		e.store, err = storage.OpenDefault()
	default:
		e.store, err = storage.Open(cfg.CacheDir)
	}
	if err != nil {
		return err
	}

	opts := cache.Options{
		MaxCost: cfg.CacheMaxCost / 2,
		TTL:     cfg.CacheTTL,
		Store:   e.store,
		Logger:  e.log,
	}
	if e.scores, err = cache.New(opts, scoreCost); err != nil {
		return err
	}
	if e.moves, err = cache.New(opts, movesCost); err != nil {
		return err
	}

	e.log.Info().
		Dur("ttl", cfg.CacheTTL).
		Int64("max_cost", cfg.CacheMaxCost).
		Bool("persistent", e.store != nil).
		Msg("result cache enabled")
	return nil
}

func scoreCost(eval.Score) int64 { return 32 }

func movesCost(m []board.Move) int64 { return 24 + 4*int64(len(m)) }

// Close releases the cache and its store.
func (e *Engine) Close() error {
	if e.scores != nil {
		e.scores.Close()
	}
	if e.moves != nil {
		e.moves.Close()
	}
	var err error
	if e.store != nil {
		err = e.store.Close()
		e.store = nil
	}
	return err
}

// Backend returns the active execution strategy.
func (e *Engine) Backend() backend.Backend {
	return e.backend
}

// BackendName returns the diagnostic name of the active strategy.
func (e *Engine) BackendName() string {
	return e.backend.Name()
}

// CacheStats returns the evaluation and move cache counters. Both are zero
// when caching is disabled.
func (e *Engine) CacheStats() (scores, moves cache.Stats) {
	if e.scores != nil {
		scores = e.scores.Stats()
	}
	if e.moves != nil {
		moves = e.moves.Stats()
	}
	return scores, moves
}

// WaitCache blocks until pending cache writes are visible.
func (e *Engine) WaitCache() {
	if e.scores != nil {
		e.scores.Wait()
	}
	if e.moves != nil {
		e.moves.Wait()
	}
}

// AttackMaps returns the squares attacked by White and by Black.
func (e *Engine) AttackMaps(pieces, colors []int8) (white, black []bool, err error) {
	b, err := board.FromSlices(pieces, colors)
	if err != nil {
		return nil, nil, err
	}
	m := e.backend.AttackMaps(&b)
	return append([]bool(nil), m.White[:]...), append([]bool(nil), m.Black[:]...), nil
}

// Evaluate scores a position.
func (e *Engine) Evaluate(pieces, colors []int8) (eval.Score, error) {
	b, err := board.FromSlices(pieces, colors)
	if err != nil {
		return eval.Score{}, err
	}
	return e.EvaluateBoard(&b), nil
}

// GenerateMoves returns the pseudo-legal moves for stm.
func (e *Engine) GenerateMoves(pieces, colors []int8, stm int8) ([]board.Move, error) {
	b, err := board.FromSlices(pieces, colors)
	if err != nil {
		return nil, err
	}
	return e.MovesBoard(&b, board.Color(stm)), nil
}

// EvaluateBoard scores b, consulting the cache when enabled.
func (e *Engine) EvaluateBoard(b *board.Board) eval.Score {
	if e.scores == nil {
		return e.backend.Evaluate(b)
	}
	key := cache.Key(b, board.NoColor, cache.OpEvaluate)
	return e.scores.GetOrCompute(key, func() eval.Score {
		return e.backend.Evaluate(b)
	})
}

// MovesBoard generates the moves of b for stm, consulting the cache when
// enabled. The returned slice belongs to the caller.
func (e *Engine) MovesBoard(b *board.Board, stm board.Color) []board.Move {
	if e.moves == nil {
		return e.backend.GenerateMoves(b, stm)
	}
	key := cache.Key(b, stm, cache.OpMoves)
	moves := e.moves.GetOrCompute(key, func() []board.Move {
		return e.backend.GenerateMoves(b, stm)
	})
	return append(make([]board.Move, 0, len(moves)), moves...)
}

// AttackMapsBatch returns (N x 64) attack grids for both sides.
func (e *Engine) AttackMapsBatch(pieces, colors [][]int8) (white, black [][]bool, err error) {
	boards, err := batch.BoardsFromSlices(pieces, colors)
	if err != nil {
		return nil, nil, err
	}
	white, black = e.backend.AttackMapsBatch(boards).Slices()
	return white, black, nil
}

// EvaluateBatch scores N positions. Batch calls bypass the cache.
func (e *Engine) EvaluateBatch(pieces, colors [][]int8) (batch.Scores, error) {
	boards, err := batch.BoardsFromSlices(pieces, colors)
	if err != nil {
		return batch.Scores{}, err
	}
	return e.backend.EvaluateBatch(boards), nil
}

// EvaluateBoards scores already decoded boards.
func (e *Engine) EvaluateBoards(boards []board.Board) batch.Scores {
	return e.backend.EvaluateBatch(boards)
}

// GenerateMovesBatch returns the concatenated, board-indexed moves of N
// positions. stm must hold one entry per board.
func (e *Engine) GenerateMovesBatch(pieces, colors [][]int8, stm []int8) ([]board.BatchMove, error) {
	boards, err := batch.BoardsFromSlices(pieces, colors)
	if err != nil {
		return nil, err
	}
	sides, err := batch.SidesFromSlice(stm, len(boards))
	if err != nil {
		return nil, err
	}
	return e.backend.GenerateMovesBatch(boards, sides)
}

// IsShapeError reports whether err is an input shape mismatch.
func IsShapeError(err error) bool {
	return errors.Is(err, board.ErrShape)
}
