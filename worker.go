package qsim

import (
	"context"
	"fmt"

	"github.com/theapemachine/errnie"
)

// Worker processes tasks
type Worker struct {
	pool  *Pool
	tasks chan Task
}

func (w *Worker) run() {
	ctx := w.pool.ctx

	for {
		select {
		case <-ctx.Done():
			return
		case w.pool.workers <- w.tasks:
		}

		select {
		case <-ctx.Done():
			return
		case task := <-w.tasks:
			result, err := w.process(ctx, task)
			w.pool.space.Store(task.ID, result, err, task.TTL)
		}
	}
}

func (w *Worker) process(ctx context.Context, task Task) (result any, err error) {
	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("task %s panicked: %v", task.ID, r)
		}
		w.pool.metrics.recordJobExecution(task.StartTime, err == nil)
		if err != nil {
			errnie.Info("task %s failed: %v", task.ID, err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("task %s: %w", task.ID, err)
	}

	return task.Fn(ctx)
}
