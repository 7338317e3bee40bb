package async

import (
	"sync"
	"time"
)

var (
	_ Future[any] = (*delayed[any])(nil)
	_ Abandoner   = (*delayed[any])(nil)
)

// Create Future that suspends for d, the timer is started on the first poll.
func Sleep(d time.Duration) Future[struct{}] {
	return After(d, struct{}{})
}

// Create Future that yields v after d, the timer is started on the first poll.
func After[T any](d time.Duration, v T) Future[T] {
	return &delayed[T]{d: d, v: v, fired: NewSignalOnce()}
}

type delayed[T any] struct {
	d     time.Duration
	v     T
	fired *SignalOnce

	mu    sync.Mutex
	timer *time.Timer
	waker Waker
}

func (s *delayed[T]) Poll(w Waker) Poll[T] {
	s.mu.Lock()
	s.waker = w
	if s.timer == nil && !s.fired.Closed() {
		s.timer = time.AfterFunc(s.d, s.fire)
	}
	s.mu.Unlock()

	if s.fired.Closed() {
		return Ready(s.v, nil)
	}
	return Pending[T]()
}

func (s *delayed[T]) fire() {
	s.mu.Lock()
	s.fired.Notify()
	w := s.waker
	s.mu.Unlock()
	if w != nil {
		w.Wake()
	}
}

// Stop the timer. Polling an abandoned Future yields v immediately.
func (s *delayed[T]) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.fired.Notify()
}
