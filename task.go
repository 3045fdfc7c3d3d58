package qsim

import (
	"context"
	"time"
)

// Task is a unit of work executed by the pool.
type Task struct {
	ID        string
	Fn        func(ctx context.Context) (any, error)
	TTL       time.Duration
	Timeout   time.Duration
	StartTime time.Time
}

// TaskOption is a function type for configuring tasks
type TaskOption func(*Task)

// WithTTL sets how long the task's value stays in the result space.
func WithTTL(ttl time.Duration) TaskOption {
	return func(t *Task) {
		t.TTL = ttl
	}
}

// WithTimeout bounds the task's execution time.
func WithTimeout(timeout time.Duration) TaskOption {
	return func(t *Task) {
		t.Timeout = timeout
	}
}
