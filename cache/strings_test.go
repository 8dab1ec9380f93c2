package cache

import "testing"

// isNotFound reports whether err is any KindNotFound sentinel (key not in
// cache, key not exist, key exist, range errors) — the exported
// IsKeyNotInCache only matches the single "key not in cache" message, which
// is too narrow for xx/nx guard failures tested here.
func isNotFound(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == KindNotFound
}

func TestSetAndGet(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if err := c.Set("k", "hello"); err != nil {
		t.Fatal(err)
	}
	v, err := c.Get("k")
	if err != nil || v != "hello" {
		t.Fatalf("v=%q err=%v", v, err)
	}
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if _, err := c.Get("missing"); !IsKeyNotInCache(err) {
		t.Fatalf("expected not-in-cache error, got %v", err)
	}
}

func TestSetxxGuard(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if err := c.Setxx("k", "v"); !isNotFound(err) {
		t.Fatalf("expected not-exist error on absent key, got %v", err)
	}
	_ = c.Set("k", "v1")
	if err := c.Setxx("k", "v2"); err != nil {
		t.Fatal(err)
	}
	v, _ := c.Get("k")
	if v != "v2" {
		t.Fatalf("expected v2, got %q", v)
	}
}

func TestWriteStringXToCacheTTLBranches(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)

	if err := c.WriteStringXToCache("a", "v", 30); err != nil {
		t.Fatal(err)
	}
	ttl, err := c.TTL("a")
	if err != nil || ttl != 30 {
		t.Fatalf("ttl=%d err=%v", ttl, err)
	}

	if err := c.WriteStringXToCache("b", "v", TTLNone); err != nil {
		t.Fatal(err)
	}
	if !c.Exists("b") {
		t.Fatal("expected b populated with no TTL")
	}

	_ = c.Set("c", "v")
	if err := c.WriteStringXToCache("c", "v", 0); err != nil {
		t.Fatal(err)
	}
	if c.Exists("c") {
		t.Fatal("expected c deleted by a non-positive, non-TTLNone ttl")
	}
}

func TestMSetMGet(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if err := c.MSet(map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatal(err)
	}
	got := c.MGet([]string{"a", "b", "missing"})
	if got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("unexpected MGet result: %v", got)
	}
	if _, ok := got["missing"]; ok {
		t.Fatal("did not expect missing key in MGet result")
	}
}

func TestGetRangeAndStrlen(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	_ = c.Set("k", "hello world")
	sub, err := c.GetRange("k", 0, 4)
	if err != nil || sub != "hello" {
		t.Fatalf("sub=%q err=%v", sub, err)
	}
	n, err := c.Strlen("k")
	if err != nil || n != len("hello world") {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestSetRangexx(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if err := c.SetRangexx("missing", 0, "x"); !isNotFound(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	_ = c.Set("k", "hello world")
	if err := c.SetRangexx("k", 6, "WORLD"); err != nil {
		t.Fatal(err)
	}
	v, _ := c.Get("k")
	if v != "hello WORLD" {
		t.Fatalf("expected \"hello WORLD\", got %q", v)
	}
}

func TestAppendxxAndIncrbyfloatxx(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if _, err := c.Appendxx("missing", "x"); !isNotFound(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	_ = c.Set("k", "foo")
	n, err := c.Appendxx("k", "bar")
	if err != nil || n != 6 {
		t.Fatalf("n=%d err=%v", n, err)
	}

	if _, err := c.Incrbyfloatxx("missing", 1); !isNotFound(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	_ = c.Set("num", "10")
	v, err := c.Incrbyfloatxx("num", 0.5)
	if err != nil || v != 10.5 {
		t.Fatalf("v=%v err=%v", v, err)
	}
}
