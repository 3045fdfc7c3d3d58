package qsim

import (
	"context"
	"sync"
)

// JobStatus tracks a job from submission to completion.
type JobStatus string

const (
	StatusQueued    JobStatus = "QUEUED"
	StatusRunning   JobStatus = "RUNNING"
	StatusDone      JobStatus = "DONE"
	StatusError     JobStatus = "ERROR"
	StatusCancelled JobStatus = "CANCELLED"
)

// Final reports whether the status can no longer change.
func (s JobStatus) Final() bool {
	return s == StatusDone || s == StatusError || s == StatusCancelled
}

/*
Job is the handle Run returns. Execution happens on the backend's pool;
Result blocks until it has finished, and can be called any number of times.
*/
type Job struct {
	id      string
	backend string

	mu     sync.RWMutex
	status JobStatus
	result *Result
	err    error
	done   chan struct{}
}

func newJob(id, backend string) *Job {
	return &Job{
		id:      id,
		backend: backend,
		status:  StatusQueued,
		done:    make(chan struct{}),
	}
}

func (j *Job) ID() string      { return j.id }
func (j *Job) Backend() string { return j.backend }

func (j *Job) Status() JobStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.status
}

func (j *Job) setStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.status.Final() {
		j.status = status
	}
}

// resolve settles the job once; later calls are ignored.
func (j *Job) resolve(result *Result, err error, status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()

	select {
	case <-j.done:
		return
	default:
	}

	j.result, j.err, j.status = result, err, status
	close(j.done)
}

// Done is closed once the job has a result or an error.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Result blocks until the job finishes.
func (j *Job) Result() (*Result, error) {
	<-j.done

	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.result, j.err
}

// Wait is Result with cancellation. Giving up does not stop the job.
func (j *Job) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-j.done:
		return j.Result()
	}
}
