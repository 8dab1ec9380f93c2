// Command bench runs a synthetic Zipf-distributed read/write workload
// against a cache.Core and exposes pprof/Prometheus endpoints, adapted from
// IvanBrykalov-shardcache/cmd/bench for the sharded zset-coherence cache
// instead of a generic capacity-bounded LRU.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rediscache/rcache/backing"
	"github.com/rediscache/rcache/cache"
	"github.com/rediscache/rcache/metrics/prom"
)

type noopStore struct{}

func (noopStore) TTL(context.Context, string) (int64, bool, error)                 { return 0, false, nil }
func (noopStore) GetString(context.Context, string) (string, bool, error)          { return "", false, nil }
func (noopStore) GetHash(context.Context, string) (map[string]string, bool, error) { return nil, false, nil }
func (noopStore) GetList(context.Context, string) ([]string, bool, error)          { return nil, false, nil }
func (noopStore) GetSet(context.Context, string) ([]string, bool, error)           { return nil, false, nil }
func (noopStore) ZCard(context.Context, string) (int64, bool, error)               { return 0, false, nil }
func (noopStore) ZRangeFromBegin(context.Context, string, int) ([]backing.ZMember, error) {
	return nil, nil
}
func (noopStore) ZRangeFromEnd(context.Context, string, int) ([]backing.ZMember, error) {
	return nil, nil
}

var _ backing.Store = noopStore{}

func main() {
	var (
		shards   = flag.Int("shards", 64, "number of shards")
		itemsCap = flag.Int("items_per_key", 1000, "cache_items_per_key")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = keys/2)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	c, err := cache.New(cache.Config{
		CacheNum:         *shards,
		CacheStartPos:    cache.FromBegin,
		CacheItemsPerKey: *itemsCap,
		Store:            noopStore{},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = c.Destroy() }()

	adapter := prom.New(c, "rcache", "bench", nil)
	prometheus.MustRegister(adapter)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	pl := *preload
	if pl == 0 {
		pl = *keys / 2
	}
	for i := 0; i < pl; i++ {
		k := "k:" + strconv.Itoa(i)
		_ = c.Set(k, "v"+strconv.Itoa(i))
	}

	readPctVal := *readPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	var reads, writes, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)
			keyByZipf := func() string {
				return "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
			}
			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				atomic.AddUint64(&total, 1)
				if int(localR.Int31n(100)) < readPctVal {
					atomic.AddUint64(&reads, 1)
					_, _ = c.Get(keyByZipf())
				} else {
					atomic.AddUint64(&writes, 1)
					_ = c.Set(keyByZipf(), "v"+strconv.Itoa(localR.Int()))
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	writesN := atomic.LoadUint64(&writes)
	info := c.Info()

	fmt.Printf("shards=%d items_per_key=%d workers=%d keys=%d dur=%v seed=%d\n",
		*shards, *itemsCap, workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, writesN)
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%\n", info.Hits, info.Misses, c.HitRatio()*100)
	fmt.Printf("keys_num=%d  used_memory=%d\n", info.KeysNum, info.UsedMemory)
}
