// Package prom adapts a cache.Core's Info snapshot to Prometheus, grounded
// on IvanBrykalov-shardcache/metrics/prom/prom.go's adapter shape but
// re-pointed at cache.Info's counters, since the cache package has no
// push-based Metrics interface for mutations to call into — Info() already
// aggregates hits/misses/keys/memory/reload counters across shards in one
// pass, so the adapter polls it on each scrape instead.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rediscache/rcache/cache"
)

// Adapter is a prometheus.Collector backed by a cache.Core.
type Adapter struct {
	core *cache.Core

	keysNum             *prometheus.Desc
	usedMemory          *prometheus.Desc
	hits                *prometheus.Desc
	misses              *prometheus.Desc
	hitRatio            *prometheus.Desc
	asyncLoadKeysNum    *prometheus.Desc
	waittingLoadKeysNum *prometheus.Desc
}

// New constructs a collector for core. Register it with a
// prometheus.Registerer (or prometheus.DefaultRegisterer) the way the
// teacher's adapter was registered.
func New(core *cache.Core, ns, sub string, constLabels prometheus.Labels) *Adapter {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(ns, sub, name), help, nil, constLabels)
	}
	return &Adapter{
		core:                core,
		keysNum:             desc("keys_num", "Number of resident keys across all shards"),
		usedMemory:          desc("used_memory_bytes", "Approximate resident byte count across all shards"),
		hits:                desc("hits_total", "Cache hits"),
		misses:              desc("misses_total", "Cache misses"),
		hitRatio:            desc("hit_ratio", "hits / (hits + misses)"),
		asyncLoadKeysNum:    desc("async_load_keys_total", "Reload jobs completed by the reload daemon"),
		waittingLoadKeysNum: desc("waitting_load_keys", "Current reload queue depth"),
	}
}

func (a *Adapter) Describe(ch chan<- *prometheus.Desc) {
	ch <- a.keysNum
	ch <- a.usedMemory
	ch <- a.hits
	ch <- a.misses
	ch <- a.hitRatio
	ch <- a.asyncLoadKeysNum
	ch <- a.waittingLoadKeysNum
}

func (a *Adapter) Collect(ch chan<- prometheus.Metric) {
	info := a.core.Info()
	ch <- prometheus.MustNewConstMetric(a.keysNum, prometheus.GaugeValue, float64(info.KeysNum))
	ch <- prometheus.MustNewConstMetric(a.usedMemory, prometheus.GaugeValue, float64(info.UsedMemory))
	ch <- prometheus.MustNewConstMetric(a.hits, prometheus.CounterValue, float64(info.Hits))
	ch <- prometheus.MustNewConstMetric(a.misses, prometheus.CounterValue, float64(info.Misses))
	ch <- prometheus.MustNewConstMetric(a.hitRatio, prometheus.GaugeValue, a.core.HitRatio())
	ch <- prometheus.MustNewConstMetric(a.asyncLoadKeysNum, prometheus.CounterValue, float64(info.AsyncLoadKeysNum))
	ch <- prometheus.MustNewConstMetric(a.waittingLoadKeysNum, prometheus.GaugeValue, float64(info.WaittingLoadKeysNum))
}

var _ prometheus.Collector = (*Adapter)(nil)
