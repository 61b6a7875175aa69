package worker

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Task represents a unit of background work, e.g. purging a deleted user's sessions.
type Task func()

// QueueSize is the number of tasks that may wait for a free worker.
const QueueSize = 64

// Pool defines a fixed-size worker pool.
// Submit returns immediately while the queue has room and blocks once
// QueueSize tasks are waiting; Submit after Stop panics.
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, QueueSize)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.run()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup
}

func (p *pool) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.exec(job)
	}
}

// exec 執行單一任務；任務 panic 只記錄，不會讓 worker 結束
func (p *pool) exec(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("worker task panicked")
		}
	}()
	job()
}

func (p *pool) Submit(t Task) {
	p.jobs <- t
}

// Stop waits for queued and in-flight tasks to finish.
func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
