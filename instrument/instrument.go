package instrument

import (
	"time"

	"github.com/curtisnewbie/instrument/util/async"
	"github.com/curtisnewbie/instrument/util/src"
	"github.com/curtisnewbie/instrument/util/timed"
)

var (
	_ async.Future[any] = (*instrumented[any])(nil)
	_ async.Abandoner   = (*instrumented[any])(nil)
)

type Option func(o *options)

type options struct {
	sink      Sink
	observers []Observer
	now       func() time.Time
}

// Emit records to s instead of the default Sink.
func WithSink(s Sink) Option {
	return func(o *options) {
		o.sink = s
	}
}

// Notify ob with the record, in addition to the default observers.
func WithObserver(ob Observer) Option {
	return func(o *options) {
		if ob != nil {
			o.observers = append(o.observers, ob)
		}
	}
}

// Use custom clock source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Time f and log how long it takes.
//
// Instrument returns a new Future that must be awaited, f is not polled until then. Once f is completed,
// a debug record is emitted with the call site and the elapsed time, e.g., 'service/user.go:42 completed in 1.2ms'.
//
// Results and errors of f are returned unchanged. Nothing is logged if the Future is abandoned
// or if f panics.
//
//	user, err := async.Await(ctx, instrument.Instrument(loadUserFuture))
func Instrument[T any](f async.Future[T], op ...Option) async.Future[T] {
	return wrap(src.Caller(0), f, nil, op)
}

// Same as [Instrument] but logs with message template.
//
// The template must reference [ElapsedPlaceholder], it panics otherwise.
//
//	instrument.InstrumentMsg("loading user took {elapsed}", loadUserFuture)
func InstrumentMsg[T any](tpl string, f async.Future[T], op ...Option) async.Future[T] {
	t := MustTemplate(tpl)
	return wrap(src.Caller(0), f, t.Render, op)
}

// Same as [Instrument] but logs the message returned by msgf.
func InstrumentFunc[T any](msgf func(elapsed time.Duration) string, f async.Future[T], op ...Option) async.Future[T] {
	return wrap(src.Caller(0), f, msgf, op)
}

func wrap[T any](loc src.Location, f async.Future[T], msgf func(time.Duration) string, op []Option) async.Future[T] {
	o := options{now: time.Now}
	for _, fn := range op {
		fn(&o)
	}
	if o.now == nil {
		o.now = time.Now
	}
	return &instrumented[T]{inner: f, loc: loc, msgf: msgf, opts: o}
}

type instrumented[T any] struct {
	inner async.Future[T]
	timed *timed.Future[T]
	loc   src.Location
	msgf  func(time.Duration) string
	opts  options

	done bool
	res  T
	err  error
}

func (i *instrumented[T]) Poll(w async.Waker) async.Poll[T] {
	if i.done {
		return async.Ready(i.res, i.err)
	}
	if i.timed == nil {
		i.timed = timed.New(i.inner, timed.WithClock(i.opts.now))
	}

	p := i.timed.Poll(w)
	if !p.IsReady() {
		return async.Pending[T]()
	}

	r, err := p.Get()
	i.done = true
	i.res = r.Result
	i.err = err
	i.timed = nil
	i.emit(r.Elapsed)
	return async.Ready(i.res, i.err)
}

func (i *instrumented[T]) Abandon() {
	if !i.done {
		async.Abandon(i.inner)
	}
}

func (i *instrumented[T]) emit(elapsed time.Duration) {
	rec := Record{
		Location: i.loc,
		Elapsed:  elapsed,
	}
	if i.msgf != nil {
		rec.Message = i.msgf(elapsed)
		rec.Templated = true
	} else {
		rec.Message = defaultMessage(i.loc.String(), elapsed)
	}

	sink := i.opts.sink
	if sink == nil {
		sink = DefaultSink()
	}
	sink.Emit(rec)

	for _, ob := range i.opts.observers {
		ob.Observe(rec)
	}
	for _, ob := range loadDefaultObservers() {
		ob.Observe(rec)
	}
}
