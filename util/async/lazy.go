package async

import (
	"context"
	"sync"
)

var (
	_ Future[any] = (*lazyFuture[any])(nil)
	_ Abandoner   = (*lazyFuture[any])(nil)
)

// Create Future for task, the task is not started until the Future is first polled.
//
// Once started, the task runs on a new goroutine, or on the optional runner (e.g., a pool's Go method).
// The task's ctx is cancelled when the Future is abandoned.
//
// If task panics, the panic value is re-raised unchanged on the goroutine that polls the Future.
func Lazy[T any](task func(ctx context.Context) (T, error), runner ...func(func())) Future[T] {
	return LazyCtx(context.Background(), task, runner...)
}

// Same as [Lazy], but the task's ctx is derived from parent.
func LazyCtx[T any](parent context.Context, task func(ctx context.Context) (T, error), runner ...func(func())) Future[T] {
	return &lazyFuture[T]{
		parent: parent,
		task:   task,
		runner: runner,
		done:   NewSignalOnce(),
	}
}

type lazyFuture[T any] struct {
	parent context.Context
	task   func(ctx context.Context) (T, error)
	runner []func(func())
	done   *SignalOnce

	// protects started, cancel and waker
	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	waker   Waker

	// only read after done is notified
	res T
	err error
	cp  *capturedPanic
}

func (l *lazyFuture[T]) Poll(w Waker) Poll[T] {
	l.mu.Lock()
	l.waker = w
	first := !l.started
	var ctx context.Context
	var cancel context.CancelFunc
	if first {
		l.started = true
		ctx, cancel = context.WithCancel(l.parent)
		l.cancel = cancel
	}
	l.mu.Unlock()

	// runner may run the task on the current goroutine, so it's started without holding the lock
	if first {
		l.start(ctx, cancel)
	}

	if !l.done.Closed() {
		return Pending[T]()
	}
	if l.cp != nil {
		l.cp.repanic()
	}
	return Ready(l.res, l.err)
}

func (l *lazyFuture[T]) start(ctx context.Context, cancel context.CancelFunc) {
	run := func() {
		l.cp = capturePanic(func() { l.res, l.err = l.task(ctx) })
		cancel()

		l.mu.Lock()
		l.done.Notify()
		w := l.waker
		l.mu.Unlock()

		if w != nil {
			w.Wake()
		}
	}

	if len(l.runner) > 0 && l.runner[0] != nil {
		l.runner[0](run)
	} else {
		go run()
	}
}

func (l *lazyFuture[T]) Abandon() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
}
