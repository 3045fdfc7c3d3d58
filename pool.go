package qsim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

/*
Pool runs tasks on a fixed set of workers. A manager goroutine hands each
queued task to the next idle worker; results land in the Space, where callers
Await them by task ID.
*/
type Pool struct {
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	workers  chan chan Task
	tasks    chan Task
	space    *Space
	metrics  *Metrics
	config   *Config
	workerMu sync.Mutex
	list     []*Worker
	closed   bool
	closeMu  sync.RWMutex
}

// NewPool starts config.Workers workers and the dispatch loop.
func NewPool(ctx context.Context, config *Config) *Pool {
	if config == nil {
		config = NewConfig()
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		ctx:     ctx,
		cancel:  cancel,
		tasks:   make(chan Task, config.Workers*10),
		workers: make(chan chan Task, config.Workers),
		space:   NewSpace(config.ResultTTL),
		metrics: NewMetrics(),
		config:  config,
	}

	for i := 0; i < config.Workers; i++ {
		p.startWorker()
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.manage()
	}()

	return p
}

func (p *Pool) manage() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case task := <-p.tasks:
			p.metrics.mu.Lock()
			p.metrics.JobQueueSize = len(p.tasks)
			p.metrics.mu.Unlock()

			p.dispatch(task)
		}
	}
}

// dispatch hands task to the next idle worker, or fails it once the
// scheduling timeout passes.
func (p *Pool) dispatch(task Task) {
	timer := time.NewTimer(p.config.SchedulingTimeout)
	defer timer.Stop()

	select {
	case <-p.ctx.Done():
		p.space.Store(task.ID, nil, fmt.Errorf("task %s: %w", task.ID, p.ctx.Err()), task.TTL)
	case workerChan := <-p.workers:
		workerChan <- task
	case <-timer.C:
		errnie.Info("no available workers for task %s, timeout occurred", task.ID)
		p.metrics.recordSchedulingFailure()
		p.space.Store(task.ID, nil, fmt.Errorf("task %s: no available workers", task.ID), task.TTL)
	}
}

// Schedule queues fn and returns a channel that receives its outcome.
func (p *Pool) Schedule(id string, fn func(ctx context.Context) (any, error), opts ...TaskOption) chan Value {
	task := Task{
		ID:        id,
		Fn:        fn,
		TTL:       p.config.ResultTTL,
		Timeout:   p.config.JobTimeout,
		StartTime: time.Now(),
	}

	for _, opt := range opts {
		opt(&task)
	}

	p.closeMu.RLock()
	defer p.closeMu.RUnlock()

	if p.closed {
		return failed(fmt.Errorf("task %s: %w", id, ErrBackendClosed))
	}

	ctx, cancel := context.WithTimeout(p.ctx, p.config.SchedulingTimeout)
	defer cancel()

	result := p.space.Await(id)

	select {
	case p.tasks <- task:
		return result
	case <-ctx.Done():
		p.metrics.recordSchedulingFailure()
		err := fmt.Errorf("task %s: scheduling timeout: %w", id, ctx.Err())
		p.space.Store(id, nil, err, task.TTL)
		return result
	}
}

// Metrics exposes the pool's counters.
func (p *Pool) Metrics() *Metrics {
	return p.metrics
}

func (p *Pool) startWorker() {
	worker := &Worker{
		pool:  p,
		tasks: make(chan Task, 1),
	}

	p.workerMu.Lock()
	p.list = append(p.list, worker)
	p.workerMu.Unlock()

	p.metrics.mu.Lock()
	p.metrics.WorkerCount++
	p.metrics.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		worker.run()
	}()
}

// Close cancels running work, waits for every goroutine to exit and fails
// whatever was still queued so no caller waits forever.
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.cancel()

	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}
	p.closed = true
	p.closeMu.Unlock()

	p.wg.Wait()

	p.workerMu.Lock()
	for _, worker := range p.list {
		p.drain(worker.tasks)
	}
	p.list = nil
	p.workerMu.Unlock()

	p.drain(p.tasks)
	p.space.Close()

	errnie.Info("pool closed after %v jobs", p.metrics.ExportMetrics()["jobs"])
}

func (p *Pool) drain(tasks chan Task) {
	for {
		select {
		case task := <-tasks:
			p.space.Store(task.ID, nil, fmt.Errorf("task %s: %w", task.ID, ErrBackendClosed), task.TTL)
		default:
			return
		}
	}
}

func failed(err error) chan Value {
	ch := make(chan Value, 1)
	ch <- Value{Error: err, CreatedAt: time.Now()}
	close(ch)
	return ch
}
