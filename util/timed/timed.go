package timed

import (
	"context"
	"time"

	"github.com/curtisnewbie/instrument/util/async"
)

var (
	_ async.Future[Result[any]] = (*Future[any])(nil)
	_ async.Abandoner           = (*Future[any])(nil)
)

// Result of a completed [Future].
type Result[R any] struct {
	Result  R             // result of the inner Future
	Elapsed time.Duration // time between the first poll and the completion of the inner Future
}

type clockState int

const (
	notStarted clockState = iota
	started
)

// clock is either notStarted or started(at), once started it never changes.
type clock struct {
	state clockState
	at    time.Time
}

// Start the clock if it's not started, returns the start time.
func (c *clock) startOnce(now func() time.Time) time.Time {
	if c.state == notStarted {
		c.at = now()
		c.state = started
	}
	return c.at
}

type Option func(o *options)

type options struct {
	now func() time.Time
}

// Use custom clock source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Future measures how long the inner Future takes to complete.
//
// The clock is started on the first poll, not when the Future is created.
// Errors returned by the inner Future are passed through unchanged along with the elapsed time,
// panics are not recovered.
//
//	res, err := async.Await(ctx, timed.New(fut))
//	log.Printf("took %v", res.Elapsed)
type Future[R any] struct {
	inner async.Future[R]
	clock clock
	now   func() time.Time
}

// Create Future over inner, nothing happens until it's polled.
func New[R any](inner async.Future[R], op ...Option) *Future[R] {
	o := options{now: time.Now}
	for _, f := range op {
		f(&o)
	}
	return &Future[R]{inner: inner, now: o.now}
}

func (f *Future[R]) Poll(w async.Waker) async.Poll[Result[R]] {
	start := f.clock.startOnce(f.now)

	p := f.inner.Poll(w)
	if !p.IsReady() {
		return async.Pending[Result[R]]()
	}

	elapsed := f.now().Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	v, err := p.Get()
	return async.Ready(Result[R]{Result: v, Elapsed: elapsed}, err)
}

// Time when the Future was first polled.
func (f *Future[R]) Started() (time.Time, bool) {
	return f.clock.at, f.clock.state == started
}

// Abandon the inner Future.
func (f *Future[R]) Abandon() {
	async.Abandon(f.inner)
}

// Await inner Future and measure how long it takes.
func Measure[R any](ctx context.Context, inner async.Future[R], op ...Option) (Result[R], error) {
	return async.Await(ctx, New(inner, op...))
}
