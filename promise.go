package oxysearch

import (
	"context"
	"fmt"
)

// Promise is the pending result of a call started with Go.
type Promise[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs fn on a new goroutine and returns a promise for its result.
// The context passed to fn is ctx itself, so cancelling ctx abandons the
// work in progress.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Promise[T] {
	p := &Promise[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		defer func() {
			if r := recover(); r != nil {
				p.err = fmt.Errorf("panic: %v", r)
			}
		}()
		p.value, p.err = fn(ctx)
	}()
	return p
}

// Get waits for the result. If ctx is done first, Get returns ctx.Err()
// and the result of the call is discarded.
func (p *Promise[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-p.done:
		return p.value, p.err
	}
}

// Done is closed once the result is available.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// WaitAll waits for every promise and returns their values in order.
func WaitAll[T any](ctx context.Context, promises []*Promise[T]) ([]T, error) {
	results := make([]T, len(promises))
	var firstError error
	for i, promise := range promises {
		result, err := promise.Get(ctx)
		if err != nil {
			if firstError == nil {
				firstError = err
			}
			continue
		}
		results[i] = result
	}
	if firstError != nil {
		return results, fmt.Errorf("one or more calls failed: %w", firstError)
	}
	return results, nil
}
