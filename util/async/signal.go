package async

import (
	"sync"
)

// One-time signal.
//
// Use [NewSignalOnce] to create one.
type SignalOnce struct {
	c    chan struct{}
	once sync.Once
}

func (s *SignalOnce) Closed() bool {
	select {
	case <-s.c:
		return true
	default:
		return false
	}
}

func (s *SignalOnce) Notify() {
	s.once.Do(func() { close(s.c) })
}

func NewSignalOnce() *SignalOnce {
	return &SignalOnce{
		c: make(chan struct{}),
	}
}
