// package for timing asynchronous computations at call site.
//
// [Instrument], [InstrumentMsg] and [InstrumentFunc] wrap an unstarted [async.Future] and return a new Future.
// Once the returned Future is awaited and completed, exactly one debug record is emitted to the [Sink] with
// the elapsed time, e.g.,
//
//	res, err := async.Await(ctx, instrument.Instrument(async.Lazy(loadUser)))
//	// DEBUG service/user.go:42 completed in 12.3ms
//
// [DbgInstrument], [DbgInstrumentMsg] and [DbgInstrumentFunc] behave the same only when [Debug] is true,
// otherwise the given Future is returned as is.
//
// Records are written to logrus's standard logger by default, use [SetDefaultSink] or [WithSink] to change it,
// and [AddDefaultObserver] or [WithObserver] to collect metrics, e.g., [NewHistogramObserver].
package instrument
