package instrument

import "sync/atomic"

const (
	debugUnset int32 = iota
	debugOn
	debugOff
)

var debugOverride atomic.Int32

// Override the build flag at runtime.
func SetDebug(on bool) {
	if on {
		debugOverride.Store(debugOn)
	} else {
		debugOverride.Store(debugOff)
	}
}

// Drop the runtime override, [DebugBuild] is used again.
func ResetDebug() {
	debugOverride.Store(debugUnset)
}

// Check whether debug instrumentation is enabled.
//
// The runtime override set by [SetDebug] takes precedence over [DebugBuild].
func Debug() bool {
	switch debugOverride.Load() {
	case debugOn:
		return true
	case debugOff:
		return false
	}
	return DebugBuild
}
