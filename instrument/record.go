package instrument

import (
	"sync/atomic"
	"time"

	"github.com/curtisnewbie/instrument/util/src"
	"github.com/sirupsen/logrus"
)

// Record emitted once an instrumented Future is completed.
type Record struct {
	Message   string        // formatted message
	Location  src.Location  // call site where the Future is instrumented
	Elapsed   time.Duration // time between the first poll and completion
	Templated bool          // whether Message is produced by a caller supplied template or func
}

// Sink accepts debug-level records.
type Sink interface {
	Emit(r Record)
}

// Observer is notified with every record after it is emitted to the Sink.
type Observer interface {
	Observe(r Record)
}

// SinkFunc adapts a plain func into a [Sink].
type SinkFunc func(r Record)

func (f SinkFunc) Emit(r Record) {
	f(r)
}

// ObserverFunc adapts a plain func into an [Observer].
type ObserverFunc func(r Record)

func (f ObserverFunc) Observe(r Record) {
	f(r)
}

type sinkHolder struct{ s Sink }

type observersHolder struct{ obs []Observer }

var (
	defaultSink      atomic.Pointer[sinkHolder]
	defaultObservers atomic.Pointer[observersHolder]
)

func init() {
	SetDefaultSink(NewLogrusSink(logrus.StandardLogger()))
}

// Replace the Sink used when no [WithSink] option is provided.
//
// nil resets it to a Sink that writes to logrus's standard logger.
func SetDefaultSink(s Sink) {
	if s == nil {
		s = NewLogrusSink(logrus.StandardLogger())
	}
	defaultSink.Store(&sinkHolder{s: s})
}

func DefaultSink() Sink {
	return defaultSink.Load().s
}

// Add Observer that is notified for every instrumented Future.
func AddDefaultObserver(o Observer) {
	for {
		old := defaultObservers.Load()
		var obs []Observer
		if old != nil {
			obs = append(obs, old.obs...)
		}
		obs = append(obs, o)
		if defaultObservers.CompareAndSwap(old, &observersHolder{obs: obs}) {
			return
		}
	}
}

// Remove all observers added by [AddDefaultObserver].
func ClearDefaultObservers() {
	defaultObservers.Store(nil)
}

func loadDefaultObservers() []Observer {
	if h := defaultObservers.Load(); h != nil {
		return h.obs
	}
	return nil
}
