// Package parallel distributes row-range work for per-pixel operations.
//
// Normalization, comparison, and diff rendering have no data dependency
// between pixel positions, so their row loops can run on any number of
// workers without changing the result. This package owns the goroutines
// that do so.
package parallel

import (
	"runtime"
	"sync"
)

// Pool runs row-range jobs on a fixed set of worker goroutines.
//
// A job is a half-open row interval [y0, y1) plus the function to apply to
// it. Workers pull jobs from a shared queue; Rows blocks until every chunk
// of the submitted range has completed.
//
// Thread safety: Pool is safe for concurrent use. Independent Rows calls
// may interleave on the same workers.
type Pool struct {
	workers int
	jobs    chan job

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

type job struct {
	y0, y1 int
	fn     func(y0, y1 int)
	wg     *sync.WaitGroup
}

// New creates a pool with the given number of workers. If workers is 0 or
// negative, GOMAXPROCS is used. Workers start immediately.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		// A couple of queued chunks per worker keeps them fed between
		// scheduling gaps without hoarding memory.
		jobs: make(chan job, workers*2),
		done: make(chan struct{}),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			// Drain queued jobs so no Rows call is left waiting.
			for {
				select {
				case j := <-p.jobs:
					j.run()
				default:
					return
				}
			}
		case j := <-p.jobs:
			j.run()
		}
	}
}

func (j job) run() {
	j.fn(j.y0, j.y1)
	j.wg.Done()
}

// Rows applies fn to [0, height) split into contiguous chunks, one chunk per
// queued job, and waits for all of them. Chunk boundaries are an internal
// detail; fn must be safe to call concurrently on disjoint ranges.
//
// If the pool has been closed, Rows falls back to running fn inline.
func (p *Pool) Rows(height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	select {
	case <-p.done:
		fn(0, height)
		return
	default:
	}

	// Oversubscribe chunks relative to workers so uneven rows still balance.
	chunks := p.workers * 4
	if chunks > height {
		chunks = height
	}
	chunk := (height + chunks - 1) / chunks

	var wg sync.WaitGroup
	for y0 := 0; y0 < height; y0 += chunk {
		y1 := y0 + chunk
		if y1 > height {
			y1 = height
		}
		wg.Add(1)
		select {
		case p.jobs <- job{y0: y0, y1: y1, fn: fn, wg: &wg}:
		case <-p.done:
			fn(y0, y1)
			wg.Done()
		}
	}
	wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

// Close stops the workers after draining queued jobs. Close is safe to call
// multiple times; Rows calls after Close run inline.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
		p.wg.Wait()
	})
}
