package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

// stackDepth bounds the frames kept in a PanicError trace.
const stackDepth = 32

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler = &LogHandler{}
)

// Handler returns the handler that receives binding failures and recovered
// setter or build panics.
func Handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// SetHandler installs h as the process-wide handler and returns the one it
// replaced, so tests can restore it with defer. A nil h installs a quiet
// LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	defer handlerMu.Unlock()
	prev := handler
	handler = h
	return prev
}

// Report stamps err if needed and hands it to the installed handler.
func Report(err *BindError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic stamps err if needed and hands it to the installed handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in the deferring function as a PanicError for op
// and lets the function return normally. It must be deferred directly:
//
//	defer errors.Recover("profile.Build")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(panicked(op, r))
	}
}

// RecoverInto is Recover for functions with a named error result: the
// reported PanicError is also stored in *dst.
func RecoverInto(op string, dst *error) {
	if r := recover(); r != nil {
		perr := panicked(op, r)
		ReportPanic(perr)
		if dst != nil {
			*dst = perr
		}
	}
}

func panicked(op string, value any) *PanicError {
	// Skip runtime.Callers, captureStack, panicked and the deferred
	// Recover so the trace starts in the runtime panic frames.
	return &PanicError{
		Op:         op,
		Value:      value,
		StackTrace: captureStack(4),
		Timestamp:  time.Now(),
	}
}

// CaptureStack formats the caller's stack, one "function\n\tfile:line" entry
// per frame.
func CaptureStack() string {
	return captureStack(3)
}

func captureStack(skip int) string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			return sb.String()
		}
	}
}
