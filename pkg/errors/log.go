package errors

import (
	"log/slog"
	"os"
)

// LogHandler is an ErrorHandler that logs errors through slog.
type LogHandler struct {
	// Logger receives the records. Nil logs to stderr with a text handler.
	Logger *slog.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// HandleError logs a BindError.
func (h *LogHandler) HandleError(err *BindError) {
	if err == nil {
		return
	}
	attrs := []any{slog.String("op", err.Op), slog.Any("error", err.Err)}
	if h.Verbose {
		attrs = append(attrs, slog.String("kind", err.Kind.String()))
		if err.Type != "" {
			attrs = append(attrs, slog.String("type", err.Type))
		}
	}
	h.logger().Error("bind error", attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{slog.Any("value", err.Value)}
	if err.Op != "" {
		attrs = append(attrs, slog.String("op", err.Op))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().Error("bind panic", attrs...)
}
