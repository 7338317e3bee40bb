package async

import (
	"runtime/debug"

	"github.com/curtisnewbie/instrument/util/utillog"
)

// Panic captured on a goroutine that must be re-raised on the goroutine that owns the task.
type capturedPanic struct {
	val   any
	stack []byte
}

// Run op and capture panic if any.
func capturePanic(op func()) (cp *capturedPanic) {
	defer func() {
		if v := recover(); v != nil {
			cp = &capturedPanic{val: v, stack: debug.Stack()}
		}
	}()
	op()
	return nil
}

// Re-raise the captured panic value unchanged.
func (c *capturedPanic) repanic() {
	utillog.DebugLog("re-raising panic captured in async task, %v\n%s", c.val, c.stack)
	panic(c.val)
}
