package cache

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/bishopforge/internal/board"
	"github.com/hailam/bishopforge/internal/storage"
)

func intCost(int) int64 { return 8 }

func newIntCache(t *testing.T, store *storage.Storage) *Cache[int] {
	t.Helper()
	c, err := New(Options{MaxCost: 1 << 20, TTL: time.Minute, Store: store, Logger: zerolog.Nop()}, intCost)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestKey(t *testing.T) {
	b := board.StartPosition()
	if Key(&b, board.White, OpEvaluate) != Key(&b, board.White, OpEvaluate) {
		t.Error("key must be deterministic")
	}
	if Key(&b, board.White, OpMoves) == Key(&b, board.Black, OpMoves) {
		t.Error("side to move must change the key")
	}
	if Key(&b, board.White, OpMoves) == Key(&b, board.White, OpEvaluate) {
		t.Error("operation must change the key")
	}
	other := b.Apply(board.NewMove(board.E2, board.E4, board.NoPiece, board.FlagDoublePush))
	if Key(&b, board.White, OpMoves) == Key(&other, board.White, OpMoves) {
		t.Error("different boards should have different keys")
	}
}

func TestGetSet(t *testing.T) {
	c := newIntCache(t, nil)

	if _, ok := c.Get(1); ok {
		t.Error("empty cache reported a hit")
	}
	c.Set(1, 4080)
	c.Wait()

	v, ok := c.Get(1)
	if !ok || v != 4080 {
		t.Errorf("Get = %d, %v; want 4080, true", v, ok)
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit 1 miss", s)
	}
	if s.HitRate() != 50 {
		t.Errorf("hit rate = %.1f, want 50", s.HitRate())
	}

	c.Clear()
	if s := c.Stats(); s != (Stats{}) {
		t.Errorf("stats after Clear = %+v", s)
	}
}

func TestGetOrCompute(t *testing.T) {
	c := newIntCache(t, nil)
	calls := 0
	fn := func() int {
		calls++
		return 42
	}

	if v := c.GetOrCompute(7, fn); v != 42 {
		t.Errorf("first call = %d", v)
	}
	c.Wait()
	if v := c.GetOrCompute(7, fn); v != 42 {
		t.Errorf("second call = %d", v)
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

func TestSecondLevel(t *testing.T) {
	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	first := newIntCache(t, store)
	first.Set(99, 330)
	first.Wait()

	// A fresh memory level finds the value in the store.
	second := newIntCache(t, store)
	v, ok := second.Get(99)
	if !ok || v != 330 {
		t.Fatalf("Get via store = %d, %v", v, ok)
	}
	if s := second.Stats(); s.L2Hits != 1 || s.Hits != 1 {
		t.Errorf("stats = %+v, want one store hit", s)
	}
}

func TestExpiry(t *testing.T) {
	c, err := New(Options{MaxCost: 1 << 20, TTL: 50 * time.Millisecond, Logger: zerolog.Nop()}, intCost)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	c.Set(3, 1)
	c.Wait()
	time.Sleep(100 * time.Millisecond)
	if _, ok := c.Get(3); ok {
		t.Error("entry survived its TTL")
	}
}
