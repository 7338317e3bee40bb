// package for poll-based asynchronous computations.
//
// Core types in this package are: [Future], [Poll] and [Waker].
//
// A [Future] does nothing until it's polled. Each call to [Future.Poll] is a resumption attempt that either yields [Pending]
// or [Ready]. A pending Future arranges for the [Waker] to be woken up when it may progress.
//
// Use [Lazy] or [LazyCtx] to create a Future for a plain func, the func is only started on the first poll.
// Use [Completed] for results that are already available, [Sleep] or [After] for timers, and [Map] to transform results.
//
// Use [Await] or [Block] to drive a Future to completion on the calling goroutine.
// A Future that is no longer needed can be released with [Abandon].
package async
