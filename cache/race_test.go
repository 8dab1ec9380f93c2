package cache

import (
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/rediscache/rcache/store"
)

// TestConcurrentMixedWorkload runs a mixed read/write/zset workload across
// many goroutines and keys, the way IvanBrykalov-shardcache/cache/cache_test.go's
// singleflight test drives concurrent callers with an errgroup. It asserts
// no panic/deadlock and that no operation returns an error other than a
// not-found miss — run with -race to exercise the core rwlock / shard mutex
// lock order under contention.
func TestConcurrentMixedWorkload(t *testing.T) {
	c, _ := newTestCore(t, FromBegin, 50)

	const workers = 32
	const opsPerWorker = 200

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < opsPerWorker; i++ {
				key := fmt.Sprintf("k%d", (w+i)%8)
				zkey := fmt.Sprintf("z%d", w%4)
				switch i % 5 {
				case 0:
					if err := c.Set(key, fmt.Sprintf("v%d-%d", w, i)); err != nil {
						return err
					}
				case 1:
					if _, err := c.Get(key); err != nil && !isNotFound(err) {
						return err
					}
				case 2:
					if err := c.ZAdd(zkey, []store.ScoreMember{{Score: float64(i), Member: fmt.Sprintf("m%d", w)}}); err != nil {
						return err
					}
				case 3:
					if _, err := c.ZCard(zkey); err != nil && !isNotFound(err) {
						return err
					}
				case 4:
					_ = c.Del(key)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
