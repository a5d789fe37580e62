// Package stacktrace reports the frames of this module found on the current stack.
package stacktrace

import (
	"runtime"
	"strconv"
	"strings"
)

const maxDepth = 64

// modulePrefix is the import path prefix shared by every package of this
// module, e.g. "github.com/acme/app/".
var modulePrefix = func() string {
	pc, _, _, _ := runtime.Caller(0)
	name := runtime.FuncForPC(pc).Name()
	if i := strings.Index(name, "/internal/"); i >= 0 {
		return name[:i+1]
	}
	return ""
}()

// Capture returns the module frames of the calling goroutine, innermost first,
// formatted as "internal/<pkg>/<file>.go:<line>".
//
// skip is the number of frames to skip above the caller of Capture. Called
// from a deferred recover, the frames include the one that panicked.
func Capture(skip int) []string {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	paths := make([]string, 0, n)
	for {
		f, more := frames.Next()
		if p, ok := modulePath(f); ok {
			paths = append(paths, p+":"+strconv.Itoa(f.Line))
		}
		if !more {
			break
		}
	}

	return paths
}

func modulePath(f runtime.Frame) (string, bool) {
	if modulePrefix == "" || !strings.HasPrefix(f.Function, modulePrefix) {
		return "", false
	}
	i := strings.LastIndex(f.File, "/internal/")
	if i < 0 {
		return "", false
	}
	return f.File[i+1:], true
}
