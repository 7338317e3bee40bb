package instrument

import (
	"github.com/rs/zerolog"
)

var _ Sink = ZerologSink{}

// ZerologSink writes records at debug level through a zerolog logger.
type ZerologSink struct {
	Logger zerolog.Logger
}

func (z ZerologSink) Emit(r Record) {
	z.Logger.Debug().
		Str(FieldLocation, r.Location.String()).
		Str(FieldFunc, r.Location.Func).
		Dur(FieldElapsed, r.Elapsed).
		Msg(r.Message)
}
