// Package parallel runs batch work on a fixed set of workers.
package parallel

import (
	"runtime"
	"sync"
)

// Pool fans submitted funcs out to its workers. With a single worker the
// pool degenerates to running funcs inline on Do.
type Pool struct {
	wg   sync.WaitGroup
	work chan func()
	stop sync.Once
}

// Start launches numWorkers workers. Anything below 1 means one worker
// per CPU.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{}
	if numWorkers == 1 {
		return p
	}

	p.work = make(chan func(), numWorkers)
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for f := range p.work {
				f()
			}
		}()
	}

	return p
}

// Do schedules f. It blocks while all workers are busy and their queue is
// full. Do must not be called after Close.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Close stops accepting work. Safe to call more than once.
func (p *Pool) Close() {
	if p.work != nil {
		p.stop.Do(func() { close(p.work) })
	}
}

// Wait closes the pool and blocks until all scheduled work has finished.
func (p *Pool) Wait() {
	p.Close()
	p.wg.Wait()
}
