package timed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/curtisnewbie/instrument/util/async"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now   time.Time
	calls int
}

func (c *fakeClock) Now() time.Time {
	c.calls++
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// stepped completes after n polls.
type stepped[T any] struct {
	n      int
	polls  int
	v      T
	err    error
	wakers []async.Waker

	abandoned bool
}

func (s *stepped[T]) Poll(w async.Waker) async.Poll[T] {
	s.polls++
	s.wakers = append(s.wakers, w)
	if s.polls >= s.n {
		return async.Ready(s.v, s.err)
	}
	return async.Pending[T]()
}

func (s *stepped[T]) Abandon() {
	s.abandoned = true
}

func noopWaker() async.Waker {
	return async.WakerFunc(func() {})
}

func TestNoSideEffectOnCreate(t *testing.T) {
	c := &fakeClock{now: time.Unix(100, 0)}
	inner := &stepped[int]{n: 1, v: 1}
	f := New[int](inner, WithClock(c.Now))

	assert.Equal(t, 0, c.calls)
	assert.Equal(t, 0, inner.polls)
	_, ok := f.Started()
	assert.False(t, ok)
}

func TestImmediateResult(t *testing.T) {
	c := &fakeClock{now: time.Unix(100, 0)}
	f := New(async.Completed(42, nil), WithClock(c.Now))

	p := f.Poll(noopWaker())
	require.True(t, p.IsReady())
	r, err := p.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, r.Result)
	assert.Equal(t, time.Duration(0), r.Elapsed)
}

func TestStartIsIdempotent(t *testing.T) {
	c := &fakeClock{now: time.Unix(100, 0)}
	inner := &stepped[string]{n: 3, v: "done"}
	f := New[string](inner, WithClock(c.Now))

	assert.False(t, f.Poll(noopWaker()).IsReady())
	first, ok := f.Started()
	require.True(t, ok)

	c.Advance(time.Second)
	assert.False(t, f.Poll(noopWaker()).IsReady())
	second, ok := f.Started()
	require.True(t, ok)
	assert.Equal(t, first, second)

	c.Advance(2 * time.Second)
	p := f.Poll(noopWaker())
	require.True(t, p.IsReady())
	r, err := p.Get()
	require.NoError(t, err)
	assert.Equal(t, "done", r.Result)
	assert.Equal(t, 3*time.Second, r.Elapsed)
	assert.Equal(t, time.Unix(100, 0), first)
}

func TestCreatedLongBeforePolled(t *testing.T) {
	c := &fakeClock{now: time.Unix(100, 0)}
	inner := &stepped[int]{n: 2, v: 1}
	f := New[int](inner, WithClock(c.Now))

	c.Advance(time.Hour) // not counted
	f.Poll(noopWaker())
	c.Advance(time.Second)
	r, _ := f.Poll(noopWaker()).Get()
	assert.Equal(t, time.Second, r.Elapsed)
}

func TestWakerForwarded(t *testing.T) {
	inner := &stepped[int]{n: 2, v: 1}
	f := New[int](inner)

	var woken int
	w := async.WakerFunc(func() { woken++ })
	f.Poll(w)
	f.Poll(w)
	require.Len(t, inner.wakers, 2)
	inner.wakers[0].Wake()
	inner.wakers[1].Wake()
	assert.Equal(t, 2, woken)
}

func TestErrorPassedThrough(t *testing.T) {
	expected := errors.New("not found")
	c := &fakeClock{now: time.Unix(100, 0)}
	inner := &stepped[int]{n: 2, v: -1, err: expected}
	f := New[int](inner, WithClock(c.Now))

	f.Poll(noopWaker())
	c.Advance(5 * time.Millisecond)
	r, err := f.Poll(noopWaker()).Get()
	assert.Same(t, expected, err)
	assert.Equal(t, -1, r.Result)
	assert.Equal(t, 5*time.Millisecond, r.Elapsed)
}

func TestNegativeElapsedClamped(t *testing.T) {
	c := &fakeClock{now: time.Unix(100, 0)}
	inner := &stepped[int]{n: 2, v: 1}
	f := New[int](inner, WithClock(c.Now))

	f.Poll(noopWaker())
	c.Advance(-time.Second)
	r, _ := f.Poll(noopWaker()).Get()
	assert.Equal(t, time.Duration(0), r.Elapsed)
}

func TestAbandonForwarded(t *testing.T) {
	inner := &stepped[int]{n: 10}
	f := New[int](inner)
	f.Poll(noopWaker())
	f.Abandon()
	assert.True(t, inner.abandoned)
}

func TestMeasureSleep(t *testing.T) {
	const d = 50 * time.Millisecond
	r, err := Measure(context.Background(), async.After(d, "done"))
	require.NoError(t, err)
	assert.Equal(t, "done", r.Result)
	assert.GreaterOrEqual(t, r.Elapsed, d)
	assert.Less(t, r.Elapsed, d+time.Second)
	t.Logf("elapsed: %v", r.Elapsed)
}

func TestMeasureLazy(t *testing.T) {
	const d = 20 * time.Millisecond
	r, err := Measure(context.Background(), async.Lazy(func(ctx context.Context) (int, error) {
		time.Sleep(d)
		return 42, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 42, r.Result)
	assert.GreaterOrEqual(t, r.Elapsed, d)
}

func TestMeasureCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	r, err := Measure(ctx, async.Sleep(time.Hour))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, r)
}
