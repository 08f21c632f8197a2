package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countJob struct {
	counter *int64
	err     error
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	return &countResult{err: j.err}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var counter int64
	for i := 0; i < 20; i++ {
		pool.Submit(&countJob{counter: &counter})
	}

	results := pool.Wait()
	if len(results) != 20 {
		t.Errorf("Expected 20 results, got %d", len(results))
	}
	if atomic.LoadInt64(&counter) != 20 {
		t.Errorf("Expected 20 executions, got %d", counter)
	}
}

func TestPool_BacklogBeyondBuffersCompletes(t *testing.T) {
	// One worker and 50 jobs: both channel buffers overflow long before
	// Wait is called, so the run only finishes if results are drained
	// during submission.
	pool := NewPool(1)
	pool.Start()

	var counter int64
	done := make(chan []Result, 1)
	go func() {
		for i := 0; i < 50; i++ {
			pool.Submit(&countJob{counter: &counter})
		}
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		if len(results) != 50 {
			t.Errorf("Expected 50 results, got %d", len(results))
		}
		if atomic.LoadInt64(&counter) != 50 {
			t.Errorf("Expected 50 executions, got %d", counter)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("Pool stalled on a 50-job backlog with one worker")
	}
}

func TestPool_ZeroWorkersClampedToOne(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	var counter int64
	pool.Submit(&countJob{counter: &counter})
	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}

func TestLimiter_AllowRespectsBurst(t *testing.T) {
	l := NewLimiter(1, 2)

	if !l.Allow() || !l.Allow() {
		t.Errorf("Burst of 2 must allow two immediate requests")
	}
	if l.Allow() {
		t.Errorf("Third immediate request must be throttled")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	_ = l.Allow() // drain the burst

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Errorf("Wait must fail when the context expires first")
	}
}
