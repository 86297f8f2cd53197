// Package errors provides structured error handling for drift bindings.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfiguration indicates a binding that can never work, such as a
	// value type with no coercion strategy or an invalid format pattern.
	KindConfiguration
	// KindParsing indicates an event payload that could not be coerced.
	KindParsing
	// KindInvoke indicates a failure reported by the invocation hook.
	KindInvoke
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindParsing:
		return "parsing"
	case KindInvoke:
		return "invoke"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// BindError represents a structured error raised while constructing or
// running a binding.
type BindError struct {
	// Op is the operation that failed (e.g., "bind.MakeHandler").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Type is the Go type of the bound value, if known.
	Type string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BindError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s [%s] type=%s: %v", e.Op, e.Kind, e.Type, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a binding declaration that no event can
// satisfy. It is raised when the binding is constructed.
type ConfigurationError struct {
	// Type is the fully qualified name of the offending Go type.
	Type string
	// Reason overrides the default message when set.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("bind: %s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("bind does not accept values of type %s; register a strategy for it or bind through a string field with explicit conversion", e.Type)
}

// ParseError represents a failure to coerce an event payload.
type ParseError struct {
	// DataType is the target type name.
	DataType string
	// Input is the raw payload received.
	Input any
	// Format is the format pattern in effect, if any.
	Format string
	// Err is the underlying parser error, if any.
	Err error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("cannot parse %s from %T %q", e.DataType, e.Input, fmt.Sprint(e.Input))
	if e.Format != "" {
		msg += fmt.Sprintf(" (format %q)", e.Format)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.InvokeHandler").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the framework side of a binding.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *BindError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
