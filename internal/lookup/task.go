package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinelookup/internal/services"
)

// ErrSoftTimeout marks artwork that did not arrive within the soft timeout.
// It is always wrapped together with services.ErrArtworkUnavailable.
var ErrSoftTimeout = errors.New("soft timeout")

// Task is a handle to background work producing a T.
type Task[T any] struct {
	token string
	done  chan struct{}
	value T
	err   error
}

// Go starts fn on its own goroutine. Panics are converted into errors so a
// failing background fetch cannot take the process down.
func Go[T any](ctx context.Context, token string, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{token: token, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("task panic: %v", r)
			}
		}()
		t.value, t.err = fn(ctx)
	}()
	return t
}

// Resolved returns an already-completed task.
func Resolved[T any](token string, value T, err error) *Task[T] {
	t := &Task[T]{token: token, done: make(chan struct{}), value: value, err: err}
	close(t.done)
	return t
}

// Token returns the request token the task belongs to.
func (t *Task[T]) Token() string { return t.token }

// Done is closed when the task finishes.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Wait blocks until the task finishes or ctx ends.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// withSoftTimeout stops waiting for fn after d even if fn ignores its
// context. The context passed to fn is cancelled at the deadline and the
// result is dropped; work that must finish regardless, such as the artwork
// cache's shared download, detaches from it.
func withSoftTimeout[T any](ctx context.Context, d time.Duration, operation string, fn func(context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		value, err := fn(ctx)
		ch <- result{value: value, err: err}
	}()

	var zero T
	expired := func() bool { return errors.Is(ctx.Err(), context.DeadlineExceeded) }
	softErr := func() error {
		return services.Wrap(services.ErrArtworkUnavailable, "lookup", operation, d.String(), ErrSoftTimeout)
	}
	select {
	case r := <-ch:
		// fn may notice the deadline first and return its own error.
		if r.err != nil && expired() {
			return zero, softErr()
		}
		return r.value, r.err
	case <-ctx.Done():
		if expired() {
			return zero, softErr()
		}
		return zero, ctx.Err()
	}
}
