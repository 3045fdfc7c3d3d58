package qsim

import (
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

// Value wraps a task outcome with metadata
type Value struct {
	Value     any
	Error     error
	CreatedAt time.Time
	TTL       time.Duration
}

/*
Space is the pool's result store. Producers Store a value under a task ID and
any number of consumers Await it, before or after it arrives. Stored values
expire after their TTL.
*/
type Space struct {
	mu      sync.Mutex
	values  map[string]Value
	waiting map[string][]chan Value
	wg      sync.WaitGroup
	done    chan struct{}
	once    sync.Once
}

func NewSpace(cleanupInterval time.Duration) *Space {
	s := &Space{
		values:  make(map[string]Value),
		waiting: make(map[string][]chan Value),
		done:    make(chan struct{}),
	}

	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.cleanup(cleanupInterval)
	}()

	return s
}

// Store stores a value with its metadata and wakes every waiter.
func (s *Space) Store(id string, value any, err error, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := Value{
		Value:     value,
		Error:     err,
		CreatedAt: time.Now(),
		TTL:       ttl,
	}
	s.values[id] = v

	channels := s.waiting[id]
	for _, ch := range channels {
		// Await hands out buffered channels, so this never blocks.
		ch <- v
		close(ch)
	}
	delete(s.waiting, id)

	errnie.Info("stored value for %s (waiters=%d, err=%v)", id, len(channels), err)
}

// Await returns a channel that will receive the value when it's available
func (s *Space) Await(id string) chan Value {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Value, 1)

	if v, ok := s.values[id]; ok {
		ch <- v
		close(ch)
		return ch
	}

	s.waiting[id] = append(s.waiting[id], ch)
	return ch
}

// Len reports how many values are currently held.
func (s *Space) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

func (s *Space) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.Expire(time.Now())
		}
	}
}

// Expire drops every value whose TTL has elapsed at now.
func (s *Space) Expire(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, v := range s.values {
		if v.TTL > 0 && now.Sub(v.CreatedAt) > v.TTL {
			delete(s.values, id)
		}
	}
}

// Close stops the cleanup loop. Values already stored stay readable.
func (s *Space) Close() {
	s.once.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}
