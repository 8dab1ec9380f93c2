package cache

import "testing"

func TestHMSetAndHGetall(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if err := c.HMSet("h", map[string]string{"f1": "v1", "f2": "v2"}); err != nil {
		t.Fatal(err)
	}
	all, err := c.HGetall("h")
	if err != nil || len(all) != 2 || all["f1"] != "v1" {
		t.Fatalf("all=%v err=%v", all, err)
	}
}

func TestHSetIfKeyExistGuard(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if err := c.HSetIfKeyExist("h", map[string]string{"f": "v"}); !isNotFound(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	_ = c.HMSet("h", map[string]string{"f0": "v0"})
	if err := c.HSetIfKeyExist("h", map[string]string{"f1": "v1"}); err != nil {
		t.Fatal(err)
	}
	v, err := c.HGet("h", "f1")
	if err != nil || v != "v1" {
		t.Fatalf("v=%q err=%v", v, err)
	}
}

func TestWriteHashXToCacheTTLBranches(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if err := c.WriteHashXToCache("h", map[string]string{"f": "v"}, 30); err != nil {
		t.Fatal(err)
	}
	ttl, err := c.TTL("h")
	if err != nil || ttl != 30 {
		t.Fatalf("ttl=%d err=%v", ttl, err)
	}

	_ = c.HMSet("already", map[string]string{"f": "v"})
	if err := c.WriteHashXToCache("already", map[string]string{"f": "ignored"}, 0); err != nil {
		t.Fatal(err)
	}
	if c.Exists("already") {
		t.Fatal("expected already deleted by non-TTLNone ttl<=0")
	}
}

func TestHDelAndHLenAndHExists(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	_ = c.HMSet("h", map[string]string{"f1": "v1", "f2": "v2"})
	ok, err := c.HExists("h", "f1")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if err := c.HDel("h", []string{"f1"}); err != nil {
		t.Fatal(err)
	}
	n, err := c.HLen("h")
	if err != nil || n != 1 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}
