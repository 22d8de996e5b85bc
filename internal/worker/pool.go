// Package worker runs blocking work, such as database calls, on a bounded set of
// goroutines so request handlers only wait on the result.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

const DefaultSize = 16

var (
	// ErrDispatch wraps every failure of the pool itself, as opposed to errors
	// returned by the task.
	ErrDispatch   = errors.New("worker: task dispatch failed")
	ErrPoolClosed = errors.New("worker: pool closed")
)

// Pool bounds the number of blocking tasks running at once.
type Pool struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New returns a pool running at most size tasks concurrently. A size below 1
// falls back to DefaultSize.
func New(size int) *Pool {
	if size < 1 {
		size = DefaultSize
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size))}
}

type result[T any] struct {
	val T
	err error
}

// Run hands task to the pool and waits for it. The task receives ctx and should
// honour it; if ctx ends first Run returns without waiting for the task to finish.
func Run[T any](ctx context.Context, p *Pool, task func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return zero, fmt.Errorf("%w: %w", ErrDispatch, ErrPoolClosed)
	}
	p.wg.Add(1)
	p.mu.RUnlock()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		p.wg.Done()
		return zero, fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	done := make(chan result[T], 1)
	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				done <- result[T]{err: fmt.Errorf("%w: task panicked: %v", ErrDispatch, r)}
			}
		}()

		v, err := task(ctx)
		done <- result[T]{val: v, err: err}
	}()

	select {
	case res := <-done:
		return res.val, res.err
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: %w", ErrDispatch, ctx.Err())
	}
}

// Close stops accepting tasks and waits for running ones until ctx ends.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
