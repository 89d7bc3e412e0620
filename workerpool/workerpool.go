// Package workerpool runs blocking work off the request-accepting
// goroutines. Handlers validate, submit, then await the returned future;
// the pool never writes HTTP responses itself.
package workerpool

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

type Result struct {
	Value any
	Err   error
}

// Future is the completion signal for one submitted task. Wait blocks until
// the task has run to completion or failure.
type Future struct {
	done chan Result
}

func (f *Future) Wait() (any, error) {
	result := <-f.done
	return result.Value, result.Err
}

type task struct {
	name   string
	fn     func() (any, error)
	future *Future
}

// Pool is a fixed-size worker pool over a bounded task queue.
type Pool struct {
	name           string
	size           int
	maxExecuteTime time.Duration
	tasks          chan task

	active    atomic.Int64
	queued    atomic.Int64
	completed atomic.Int64

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewPool starts size workers. maxExecuteTime is a pool-wide safety net: a
// task running past it is logged, not cancelled.
func NewPool(name string, size int, maxExecuteTime time.Duration) *Pool {
	p := &Pool{
		name:           name,
		size:           size,
		maxExecuteTime: maxExecuteTime,
		tasks:          make(chan task, size*8),
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) Name() string { return p.name }

// Submit enqueues fn and returns its future. Blocks when the queue is full.
func (p *Pool) Submit(name string, fn func() (any, error)) *Future {
	future := &Future{done: make(chan Result, 1)}
	p.queued.Add(1)
	queueDepth.WithLabelValues(p.name).Inc()
	p.tasks <- task{name: name, fn: fn, future: future}
	return future
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		p.queued.Add(-1)
		queueDepth.WithLabelValues(p.name).Dec()

		p.active.Add(1)
		tasksInFlight.WithLabelValues(p.name).Inc()

		watchdog := time.AfterFunc(p.maxExecuteTime, func() {
			log.Printf("Task %s on pool %s has exceeded max execute time of %v",
				t.name, p.name, p.maxExecuteTime)
		})

		start := time.Now()
		value, err := runTask(t.fn)
		watchdog.Stop()
		taskDuration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())

		p.active.Add(-1)
		tasksInFlight.WithLabelValues(p.name).Dec()
		p.completed.Add(1)

		t.future.done <- Result{Value: value, Err: err}
	}
}

// runTask converts a panicking task into a failed one so a bad request can
// never take a worker down.
func runTask(fn func() (any, error)) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn()
}

// Close stops accepting tasks and waits for in-flight ones to finish.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}

type PoolStats struct {
	Name      string `json:"name"`
	Size      int    `json:"size"`
	Active    int64  `json:"active"`
	Queued    int64  `json:"queued"`
	Completed int64  `json:"completed"`
}

func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Name:      p.name,
		Size:      p.size,
		Active:    p.active.Load(),
		Queued:    p.queued.Load(),
		Completed: p.completed.Load(),
	}
}
