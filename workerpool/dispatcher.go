package workerpool

import (
	"log"
	"sync"
	"time"
)

// Dispatcher owns the default pool plus any named shared pools. Named pools
// differ from the default only in identity and sizing, not in semantics.
type Dispatcher struct {
	defaultPool *Pool

	mu     sync.Mutex
	shared map[string]*Pool
}

func NewDispatcher(defaultName string, defaultSize int, maxExecuteTime time.Duration) *Dispatcher {
	log.Printf("Worker pool %q created with %d workers", defaultName, defaultSize)
	return &Dispatcher{
		defaultPool: NewPool(defaultName, defaultSize, maxExecuteTime),
		shared:      make(map[string]*Pool),
	}
}

func (d *Dispatcher) Default() *Pool {
	return d.defaultPool
}

// CreateSharedPool returns the pool registered under name, creating it on
// first use. Subsequent calls with the same name share the same workers.
func (d *Dispatcher) CreateSharedPool(name string, size int, maxExecuteTime time.Duration) *Pool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if pool, ok := d.shared[name]; ok {
		return pool
	}
	log.Printf("Shared worker pool %q created with %d workers", name, size)
	pool := NewPool(name, size, maxExecuteTime)
	d.shared[name] = pool
	return pool
}

// Submit runs fn on the default pool.
func (d *Dispatcher) Submit(name string, fn func() (any, error)) *Future {
	return d.defaultPool.Submit(name, fn)
}

// Stats reports every pool, default first.
func (d *Dispatcher) Stats() []PoolStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	stats := make([]PoolStats, 0, len(d.shared)+1)
	stats = append(stats, d.defaultPool.Stats())
	for _, pool := range d.shared {
		stats = append(stats, pool.Stats())
	}
	return stats
}

// Close shuts down all pools and waits for in-flight tasks.
func (d *Dispatcher) Close() {
	d.defaultPool.Close()

	d.mu.Lock()
	pools := make([]*Pool, 0, len(d.shared))
	for _, pool := range d.shared {
		pools = append(pools, pool)
	}
	d.mu.Unlock()

	for _, pool := range pools {
		pool.Close()
	}
}
