package cache

import (
	"testing"

	"github.com/rediscache/rcache/store"
)

func TestZRangebylexRequiresFullCoverageS5(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 20)
	seed := make([]store.ScoreMember, 10)
	for i := 0; i < 10; i++ {
		seed[i] = store.ScoreMember{Score: float64(i), Member: string(rune('a' + i))}
	}
	if err := c.ZAdd("z", seed); err != nil {
		t.Fatal(err)
	}
	// cache holds 10 of 20 authoritative members: partial coverage, must miss.
	if _, err := c.ZRangebylex("z", "-", "+", false, false, false, 20); !isNotFound(err) {
		t.Fatalf("expected not-in-cache error for partial coverage, got %v", err)
	}
	// Now the cache holds all 10 of 10: wholeSet=true and dbLen matches card.
	out, err := c.ZRangebylex("z", "-", "+", false, false, true, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 10 {
		t.Fatalf("expected 10 members, got %v", out)
	}
}

func TestZRevrangebylexReversesOrder(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 20)
	seed := []store.ScoreMember{{Score: 1, Member: "a"}, {Score: 2, Member: "b"}, {Score: 3, Member: "c"}}
	_ = c.ZAdd("z", seed)
	out, err := c.ZRevrangebylex("z", "-", "+", false, false, true, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"c", "b", "a"}
	for i, m := range want {
		if out[i] != m {
			t.Fatalf("got %v want %v", out, want)
		}
	}
}

func TestZLexcountAndZRemrangebylex(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 20)
	seed := []store.ScoreMember{{Score: 1, Member: "a"}, {Score: 2, Member: "b"}, {Score: 3, Member: "c"}}
	_ = c.ZAdd("z", seed)
	n, err := c.ZLexcount("z", "-", "+", false, false, true, 3)
	if err != nil || n != 3 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	removed, err := c.ZRemrangebylex("z", "a", "b", false, false, true, 3)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	card, _ := c.ZCard("z")
	if card != 1 {
		t.Fatalf("expected 1 member left, got %d", card)
	}
}
