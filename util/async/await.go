package async

import (
	"context"
)

// Drive Future to completion on the calling goroutine.
//
// Between polls, the caller is parked until the Future wakes it up. If ctx is done before the Future
// is completed, the Future is abandoned and ctx.Err() is returned.
func Await[T any](ctx context.Context, f Future[T]) (T, error) {
	var t T
	if err := ctx.Err(); err != nil {
		return t, err
	}

	wake := make(chan struct{}, 1)
	w := WakerFunc(func() {
		select {
		case wake <- struct{}{}:
		default: // already woken up
		}
	})

	for {
		if p := f.Poll(w); p.IsReady() {
			return p.Get()
		}
		select {
		case <-wake:
		case <-ctx.Done():
			Abandon(f)
			return t, ctx.Err()
		}
	}
}

// Same as [Await] without cancellation.
func Block[T any](f Future[T]) (T, error) {
	return Await(context.Background(), f)
}
