package utils

import (
	"errors"
	"sync"
	"time"
)

// WorkerPool runs jobs on a bounded number of goroutines, spacing job starts
// by at least the configured rate limit.
type WorkerPool struct {
	rateLimit time.Duration
	semaphore chan struct{}
	wg        sync.WaitGroup

	mu        sync.Mutex
	lastStart time.Time
	started   bool
	errs      []error
}

// NewWorkerPool creates a WorkerPool with the given concurrency and rate limit.
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		rateLimit: time.Duration(rateLimitMs) * time.Millisecond,
		semaphore: make(chan struct{}, maxWorkers),
	}
}

// Submit enqueues a job. It blocks while all workers are busy.
func (wp *WorkerPool) Submit(job func() error) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		wp.enforceRateLimit()
		if err := job(); err != nil {
			wp.mu.Lock()
			wp.errs = append(wp.errs, err)
			wp.mu.Unlock()
		}
	}()
}

// Wait blocks until all submitted jobs have completed and returns their
// errors joined together, or nil.
func (wp *WorkerPool) Wait() error {
	wp.wg.Wait()

	wp.mu.Lock()
	defer wp.mu.Unlock()
	return errors.Join(wp.errs...)
}

func (wp *WorkerPool) enforceRateLimit() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.started {
		if elapsed := time.Since(wp.lastStart); elapsed < wp.rateLimit {
			time.Sleep(wp.rateLimit - elapsed)
		}
	}
	wp.started = true
	wp.lastStart = time.Now()
}

// KeySet is a thread-safe set of strings.
type KeySet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewKeySet creates an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{seen: make(map[string]struct{})}
}

// Add returns true if key was newly added, false if already present.
func (s *KeySet) Add(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Contains reports whether key has been added.
func (s *KeySet) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[key]
	return exists
}

// Size returns the number of distinct keys.
func (s *KeySet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
