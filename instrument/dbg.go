package instrument

import (
	"time"

	"github.com/curtisnewbie/instrument/util/async"
	"github.com/curtisnewbie/instrument/util/src"
)

// Same as [Instrument], but only when [Debug] is true.
//
// Otherwise f itself is returned, nothing is timed and nothing is logged.
func DbgInstrument[T any](f async.Future[T], op ...Option) async.Future[T] {
	if !Debug() {
		return f
	}
	return wrap(src.Caller(0), f, nil, op)
}

// Same as [InstrumentMsg], but only when [Debug] is true.
func DbgInstrumentMsg[T any](tpl string, f async.Future[T], op ...Option) async.Future[T] {
	if !Debug() {
		return f
	}
	t := MustTemplate(tpl)
	return wrap(src.Caller(0), f, t.Render, op)
}

// Same as [InstrumentFunc], but only when [Debug] is true.
func DbgInstrumentFunc[T any](msgf func(elapsed time.Duration) string, f async.Future[T], op ...Option) async.Future[T] {
	if !Debug() {
		return f
	}
	return wrap(src.Caller(0), f, msgf, op)
}
