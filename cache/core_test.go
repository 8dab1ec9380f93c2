package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/rediscache/rcache/backing"
)

// fakeStore is a minimal in-memory backing.Store for cache-layer tests; it
// never talks to a real Redis, implementing the backing.Store contract
// directly instead of faking the wire protocol.
type fakeStore struct {
	mu     sync.Mutex
	ttl    map[string]int64
	strs   map[string]string
	hashes map[string]map[string]string
	lists  map[string][]string
	sets   map[string][]string
	zsets  map[string][]backing.ZMember // ascending by score
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		ttl:    make(map[string]int64),
		strs:   make(map[string]string),
		hashes: make(map[string]map[string]string),
		lists:  make(map[string][]string),
		sets:   make(map[string][]string),
		zsets:  make(map[string][]backing.ZMember),
	}
}

func (f *fakeStore) TTL(ctx context.Context, key string) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ttl, ok := f.ttl[key]
	return ttl, ok, nil
}

func (f *fakeStore) GetString(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.strs[key]
	return v, ok, nil
}

func (f *fakeStore) GetHash(ctx context.Context, key string) (map[string]string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.hashes[key]
	return v, ok, nil
}

func (f *fakeStore) GetList(ctx context.Context, key string) ([]string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.lists[key]
	return v, ok, nil
}

func (f *fakeStore) GetSet(ctx context.Context, key string) ([]string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.sets[key]
	return v, ok, nil
}

func (f *fakeStore) ZCard(ctx context.Context, key string) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.zsets[key]
	return int64(len(v)), ok, nil
}

func (f *fakeStore) ZRangeFromBegin(ctx context.Context, key string, limit int) ([]backing.ZMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.zsets[key]
	if limit > len(v) {
		limit = len(v)
	}
	out := make([]backing.ZMember, limit)
	copy(out, v[:limit])
	return out, nil
}

func (f *fakeStore) ZRangeFromEnd(ctx context.Context, key string, limit int) ([]backing.ZMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.zsets[key]
	start := len(v) - limit
	if start < 0 {
		start = 0
	}
	out := make([]backing.ZMember, len(v)-start)
	copy(out, v[start:])
	return out, nil
}

var _ backing.Store = (*fakeStore)(nil)

func newTestCore(t *testing.T, pos StartPos, itemsPerKey int) (*Core, *fakeStore) {
	t.Helper()
	fs := newFakeStore()
	c, err := New(Config{
		CacheNum:         4,
		CacheStartPos:    pos,
		CacheItemsPerKey: itemsPerKey,
		Store:            fs,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Destroy() })
	return c, fs
}

func TestCoreLifecycle(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if c.status != StatusOK {
		t.Fatalf("expected StatusOK after Init, got %v", c.status)
	}
	if err := c.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := c.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get("k"); !IsKeyNotInCache(err) {
		t.Fatalf("expected key gone after Reset, err=%v", err)
	}
	if err := c.Destroy(); err != nil {
		t.Fatal(err)
	}
	if err := c.Set("k", "v"); !IsCorruption(err) {
		t.Fatalf("expected corruption error once destroyed, got %v", err)
	}
}

func TestCoreInitRejectsZeroShards(t *testing.T) {
	c := &Core{}
	if err := c.Init(Config{CacheNum: 0}); !IsCorruption(err) {
		t.Fatalf("expected corruption error, got %v", err)
	}
}

func TestCoreResetConfigRebindsStartPos(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if err := c.ResetConfig(Config{
		CacheStartPos:    FromEnd,
		CacheItemsPerKey: 20,
		MaxMemory:        1 << 20,
		MaxMemoryPolicy:  "allkeys-lru",
		MaxMemorySamples: 5,
	}); err != nil {
		t.Fatal(err)
	}
	if c.cfg.CacheStartPos != FromEnd {
		t.Fatalf("expected CacheStartPos updated to FromEnd")
	}
}

func TestCoreInfoAndHitRatio(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	c.ClearHitRatio()
	_ = c.Set("k", "v")
	_, _ = c.Get("k")
	_, _ = c.Get("missing")
	info := c.Info()
	if info.KeysNum != 1 {
		t.Fatalf("expected 1 resident key, got %d", info.KeysNum)
	}
	if info.Hits == 0 || info.Misses == 0 {
		t.Fatalf("expected nonzero hits and misses, got %+v", info)
	}
	if ratio := c.HitRatio(); ratio <= 0 || ratio >= 1 {
		t.Fatalf("expected ratio strictly between 0 and 1, got %v", ratio)
	}
}
