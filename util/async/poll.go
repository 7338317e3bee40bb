package async

var (
	_ Future[any] = (FutureFunc[any])(nil)
)

// Waker is notified by a pending [Future] when it may be able to make progress.
//
// Calling Wake more than once, or after the Future is completed, is harmless.
type Waker interface {
	Wake()
}

// WakerFunc adapts a plain func into a [Waker].
type WakerFunc func()

func (f WakerFunc) Wake() {
	f()
}

// Asynchronous computation that is driven by repeated calls to Poll.
//
// A Future does nothing until it is first polled. Each call to Poll is a resumption attempt,
// the Future either reports that it's still pending, in which case it arranges for w to be woken up
// when it may progress, or it reports the final result.
//
// A Future is owned by a single caller, Poll must not be called concurrently.
type Future[T any] interface {
	Poll(w Waker) Poll[T]
}

// Abandoner is implemented by Futures that should release their resources when the owner drops
// the Future before it's completed.
type Abandoner interface {
	Abandon()
}

// Abandon the future, the future is only abandoned if it implements [Abandoner].
func Abandon(f any) {
	if ab, ok := f.(Abandoner); ok {
		ab.Abandon()
	}
}

// FutureFunc adapts a poll func into a [Future].
type FutureFunc[T any] func(w Waker) Poll[T]

func (f FutureFunc[T]) Poll(w Waker) Poll[T] {
	return f(w)
}

// Outcome of a single resumption attempt.
//
// Use [Pending] or [Ready] to create one.
type Poll[T any] struct {
	ready bool
	val   T
	err   error
}

// Check if the Future is completed.
func (p Poll[T]) IsReady() bool {
	return p.ready
}

// Get result of the completed Future.
//
// For pending Poll, zero value is returned.
func (p Poll[T]) Get() (T, error) {
	return p.val, p.err
}

func Pending[T any]() Poll[T] {
	return Poll[T]{}
}

func Ready[T any](v T, err error) Poll[T] {
	return Poll[T]{ready: true, val: v, err: err}
}

// Create Future that is completed immediately without suspension.
func Completed[T any](v T, err error) Future[T] {
	return FutureFunc[T](func(w Waker) Poll[T] {
		return Ready(v, err)
	})
}

// Map result of Future once it's completed.
//
// The returned Future abandons f when it's abandoned.
func Map[T any, V any](f Future[T], mf func(T, error) (V, error)) Future[V] {
	return &mapped[T, V]{inner: f, mf: mf}
}

type mapped[T any, V any] struct {
	inner Future[T]
	mf    func(T, error) (V, error)
}

func (m *mapped[T, V]) Poll(w Waker) Poll[V] {
	p := m.inner.Poll(w)
	if !p.IsReady() {
		return Pending[V]()
	}
	return Ready(m.mf(p.Get()))
}

func (m *mapped[T, V]) Abandon() {
	Abandon(m.inner)
}
