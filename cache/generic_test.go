package cache

import "testing"

func TestExistsDelExpireTTLPersistType(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	_ = c.Set("k", "v")
	if !c.Exists("k") {
		t.Fatal("expected k to exist")
	}
	if err := c.Expire("k", 30); err != nil {
		t.Fatal(err)
	}
	ttl, err := c.TTL("k")
	if err != nil || ttl != 30 {
		t.Fatalf("ttl=%d err=%v", ttl, err)
	}
	if err := c.Persist("k"); err != nil {
		t.Fatal(err)
	}
	ttl, _ = c.TTL("k")
	if ttl != 0 {
		t.Fatalf("expected ttl cleared, got %d", ttl)
	}
	typ, err := c.Type("k")
	if err != nil || typ != "string" {
		t.Fatalf("typ=%q err=%v", typ, err)
	}
	if err := c.Del("k"); err != nil {
		t.Fatal(err)
	}
	if c.Exists("k") {
		t.Fatal("expected k removed")
	}
	if err := c.Del("k"); !isNotFound(err) {
		t.Fatalf("expected not-in-cache error deleting missing key, got %v", err)
	}
}

func TestDbSizeFlushDbRandomKey(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	_ = c.Set("a", "1")
	_ = c.Set("b", "2")
	_ = c.Set("c", "3")
	if n := c.DbSize(); n != 3 {
		t.Fatalf("expected 3 keys, got %d", n)
	}
	k, err := c.RandomKey()
	if err != nil || (k != "a" && k != "b" && k != "c") {
		t.Fatalf("k=%q err=%v", k, err)
	}
	c.FlushDb()
	if n := c.DbSize(); n != 0 {
		t.Fatalf("expected 0 keys after flush, got %d", n)
	}
	if _, err := c.RandomKey(); !isNotFound(err) {
		t.Fatalf("expected not-in-cache error on empty db, got %v", err)
	}
}
