package cache

import "testing"

func TestSAddIfKeyExistGuard(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if err := c.SAddIfKeyExist("s", []string{"a"}); !isNotFound(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	_ = c.WriteSetXToCache("s", []string{"a"}, TTLNone)
	if err := c.SAddIfKeyExist("s", []string{"b"}); err != nil {
		t.Fatal(err)
	}
	n, err := c.SCard("s")
	if err != nil || n != 2 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestWriteSetXToCacheTTLBranches(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	if err := c.WriteSetXToCache("s", []string{"a", "b"}, 30); err != nil {
		t.Fatal(err)
	}
	ttl, err := c.TTL("s")
	if err != nil || ttl != 30 {
		t.Fatalf("ttl=%d err=%v", ttl, err)
	}

	_ = c.WriteSetXToCache("already", []string{"a"}, TTLNone)
	_ = c.WriteSetXToCache("already", []string{"b"}, 0)
	if c.Exists("already") {
		t.Fatal("expected already deleted by non-TTLNone ttl<=0")
	}
}

func TestSMembersSIsmemberSRem(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 10)
	_ = c.WriteSetXToCache("s", []string{"a", "b", "c"}, TTLNone)
	ok, err := c.SIsmember("s", "b")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if err := c.SRem("s", []string{"b"}); err != nil {
		t.Fatal(err)
	}
	members, err := c.SMembers("s")
	if err != nil || len(members) != 2 {
		t.Fatalf("members=%v err=%v", members, err)
	}
}
