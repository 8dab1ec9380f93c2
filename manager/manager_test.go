package manager

import (
	"testing"

	"github.com/rediscache/rcache/cache"
)

func newTestCore(t *testing.T) *cache.Core {
	t.Helper()
	c, err := cache.New(cache.Config{CacheNum: 2, CacheItemsPerKey: 10})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Destroy() })
	return c
}

func TestRegisterAndGet(t *testing.T) {
	m := New(nil)
	core := newTestCore(t)
	m.Register("db0", 0, core)
	got, ok := m.Get("db0", 0)
	if !ok || got != core {
		t.Fatalf("ok=%v got=%v want=%v", ok, got, core)
	}
	if _, ok := m.Get("db0", 1); ok {
		t.Fatal("expected no core registered for slot 1")
	}
}

func TestInitBatchRegistration(t *testing.T) {
	m := New(nil)
	err := m.Init([]DBSlots{
		{
			DBName:  "db0",
			SlotNum: 3,
			NewSlot: func(slot int) (*cache.Core, error) {
				return newTestCore(t), nil
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, ok := m.Get("db0", i); !ok {
			t.Fatalf("expected slot %d registered", i)
		}
	}
}

func TestProcessCronTaskAndHitRatio(t *testing.T) {
	m := New(nil)
	core := newTestCore(t)
	m.Register("db0", 0, core)

	_ = core.Set("k", "v")
	_, _ = core.Get("k")
	_, _ = core.Get("missing")

	m.ProcessCronTask()
	if ratio := m.HitRatio(); ratio <= 0 {
		t.Fatalf("expected nonzero hit ratio, got %v", ratio)
	}
	m.ClearHitRatio()
	if ratio := m.HitRatio(); ratio != 0 {
		t.Fatalf("expected zero hit ratio after clear, got %v", ratio)
	}
}
