package src

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
)

const (
	fnWidth = 30
)

// Source location of a call site.
type Location struct {
	File string // file name with its parent dir, e.g., service/user.go
	Line int
	Func string // short func name, e.g., (*U).Load
}

// Format as file:line.
func (l Location) String() string {
	if l.File == "" {
		return "???"
	}
	return l.File + ":" + strconv.Itoa(l.Line)
}

// reduce alloc, callers may capture location on every call.
var callerUintptrPool = sync.Pool{
	New: func() any {
		p := make([]uintptr, 1)
		return &p
	},
}

// Get location of the caller of the function that calls Caller.
//
// skip is the number of additional frames to skip, e.g., Caller(1) returns the caller's caller.
func Caller(skip int) Location {
	pcs := callerUintptrPool.Get().(*[]uintptr)
	defer putCallerUintptrPool(pcs)

	// skip runtime.Callers, Caller and the function that calls Caller
	depth := runtime.Callers(3+skip, *pcs)
	if depth < 1 {
		return Location{}
	}
	frames := runtime.CallersFrames((*pcs)[:depth])
	f, _ := frames.Next()
	return Location{
		File: shortFile(f.File),
		Line: f.Line,
		Func: shortFnName(f.Function),
	}
}

func putCallerUintptrPool(pcs *[]uintptr) {
	for i := range *pcs {
		(*pcs)[i] = 0
	}
	callerUintptrPool.Put(pcs)
}

// keep the last dir and the file name.
func shortFile(file string) string {
	i := strings.LastIndexByte(file, '/')
	if i < 0 {
		return file
	}
	j := strings.LastIndexByte(file[:i], '/')
	return file[j+1:]
}

func shortFnName(fn string) string {
	if fn == "" {
		return fn
	}

	trimLengthyName := func(s string) string {
		const maxDotCnt = 2
		if len(s) > fnWidth {
			dcnt := 0
			for i := len(s) - 1; i >= 0; i-- {
				if s[i] == '.' && (i-1 < 0 || s[i-1] != '.') {
					dcnt += 1
					if dcnt > maxDotCnt {
						return s[i+1:]
					}
				}
			}
		}
		return s
	}

	jb := -1
	for i := len(fn) - 1; i >= 0; i-- {
		switch fn[i] {
		case '/':
			if i+1 < len(fn) {
				return trimLengthyName(fn[i+1:])
			}
			return trimLengthyName(fn[i:])
		case '(':
			if jb > -1 && i < len(fn)-1 {
				var lastTwo string
				if i < len(fn)-2 {
					lastTwo = fn[i+1 : i+3]
				} else {
					lastTwo = fn[i+1 : i+2]
				}
				return trimLengthyName("(" + lastTwo + ")" + fn[jb+1:])
			}
			return trimLengthyName(fn[i:])
		case ')':
			jb = i
		}
	}
	return fn
}
