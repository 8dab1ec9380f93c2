package reload

import (
	"context"
	"sync"

	"github.com/rediscache/rcache/internal/singleflight"
	"github.com/rediscache/rcache/log"
)

// Loader performs the actual rebuild for one job: reading the authoritative
// state from the backing store and writing it into the owning shard under
// that shard's mutex. Implemented by *cache.Core; kept as an interface here
// so this package never imports cache (cache imports reload, not vice versa).
type Loader interface {
	Reload(ctx context.Context, job Job) error
}

// Daemon is the single background worker per cache core. Its queue is
// unbounded and FIFO; Stop drains in-flight work and then returns,
// mirroring Core.Destroy's draining contract.
type Daemon struct {
	loader Loader
	log    log.Logger

	mu     sync.Mutex
	queue  []Job
	cond   *sync.Cond
	admit  *singleflight.Set[string]
	closed bool

	asyncLoadKeysNum    int64
	waittingLoadKeysNum int64

	wg sync.WaitGroup
}

// New constructs a Daemon bound to loader. Call Start to spawn its worker.
func New(loader Loader, logger log.Logger) *Daemon {
	if logger == nil {
		logger = log.NopLogger{}
	}
	d := &Daemon{
		loader: loader,
		log:    logger,
		admit:  singleflight.NewSet[string](),
	}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// Start spawns the worker goroutine. Safe to call once.
func (d *Daemon) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop drains the queue (in-flight jobs complete) and stops the worker.
func (d *Daemon) Stop() {
	d.mu.Lock()
	d.closed = true
	d.cond.Broadcast()
	d.mu.Unlock()
	d.wg.Wait()
}

// Enqueue admits a reload job, deduplicating against any job for the same
// key already queued or in flight (via the adapted singleflight.Set —
// a hot key under churn would otherwise queue once per miss; DESIGN.md
// records this as the rationale for keeping the teacher's singleflight
// package in this domain).
func (d *Daemon) Enqueue(job Job) bool {
	if !d.admit.TryAdmit(job.Key) {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.admit.Release(job.Key)
		return false
	}
	d.queue = append(d.queue, job)
	d.waittingLoadKeysNum++
	d.cond.Signal()
	return true
}

// AsyncLoadKeysNum returns the total number of jobs the daemon has admitted
// and completed (successfully or not) since creation.
func (d *Daemon) AsyncLoadKeysNum() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.asyncLoadKeysNum
}

// WaittingLoadKeysNum returns the current queue depth.
func (d *Daemon) WaittingLoadKeysNum() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.waittingLoadKeysNum
}

func (d *Daemon) run() {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.queue) == 0 && d.closed {
			d.mu.Unlock()
			return
		}
		job := d.queue[0]
		d.queue = d.queue[1:]
		d.waittingLoadKeysNum--
		d.mu.Unlock()

		d.process(job)

		d.mu.Lock()
		d.asyncLoadKeysNum++
		d.mu.Unlock()
		d.admit.Release(job.Key)
	}
}

func (d *Daemon) process(job Job) {
	if err := d.loader.Reload(context.Background(), job); err != nil {
		d.log.Warn("reload failed", log.Fields{"key": job.Key, "type": job.Type.String(), "error": err.Error()})
		return
	}
	d.log.Debug("reload admitted", log.Fields{"key": job.Key, "type": job.Type.String()})
}
