package errors

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestBindErrorString(t *testing.T) {
	err := &BindError{
		Op:   "bind.Handle",
		Kind: KindParsing,
		Err:  &ParseError{DataType: "int32", Input: "abc"},
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
	if !strings.HasPrefix(got, "bind.Handle [parsing]: ") {
		t.Errorf("error string %q should start with op and kind", got)
	}
}

func TestBindErrorWithType(t *testing.T) {
	err := &BindError{
		Op:   "bind.MakeHandler",
		Kind: KindConfiguration,
		Type: "geom.Point",
		Err:  &ConfigurationError{Type: "geom.Point"},
	}
	want := "type=geom.Point"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestBindErrorUnwrap(t *testing.T) {
	inner := &ParseError{DataType: "float64", Input: "1.2.3"}
	err := error(&BindError{Op: "bind.Handle", Kind: KindParsing, Err: inner})

	var perr *ParseError
	if !stderrors.As(err, &perr) {
		t.Fatal("expected errors.As to find the ParseError")
	}
	if perr != inner {
		t.Errorf("As returned %p, want %p", perr, inner)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfiguration, "configuration"},
		{KindParsing, "parsing"},
		{KindInvoke, "invoke"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestConfigurationErrorString(t *testing.T) {
	err := &ConfigurationError{Type: "geom.Point"}
	if got := err.Error(); !strings.Contains(got, "geom.Point") {
		t.Errorf("ConfigurationError.Error() = %q, should name the type", got)
	}

	withReason := &ConfigurationError{Type: "time.Time", Reason: "unsupported format token \"g\""}
	want := `bind: time.Time: unsupported format token "g"`
	if got := withReason.Error(); got != want {
		t.Errorf("ConfigurationError.Error() = %q, want %q", got, want)
	}
}

func TestParseErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "plain",
			err:  &ParseError{DataType: "int32", Input: "abc"},
			want: `cannot parse int32 from string "abc"`,
		},
		{
			name: "with format",
			err:  &ParseError{DataType: "time.Time", Input: "nope", Format: "yyyy-MM-dd"},
			want: `cannot parse time.Time from string "nope" (format "yyyy-MM-dd")`,
		},
		{
			name: "with cause",
			err:  &ParseError{DataType: "bool", Input: "yes", Err: stderrors.New("payload is not a bool")},
			want: `cannot parse bool from string "yes": payload is not a bool`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ParseError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	want := "panic: test panic"
	if got := err.Error(); got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "core.InvokeHandler"
	want = "panic in core.InvokeHandler: test panic"
	if got := err.Error(); got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var capturedErr *BindError
	handler := &testHandler{
		onError: func(err *BindError) {
			capturedErr = err
		},
	}

	defer SetHandler(SetHandler(handler))

	Report(&BindError{
		Op:   "test.op",
		Kind: KindInvoke,
		Err:  stderrors.New("boom"),
	})

	if capturedErr == nil {
		t.Fatal("expected error to be captured")
	}
	if capturedErr.Op != "test.op" {
		t.Errorf("Op = %q, want %q", capturedErr.Op, "test.op")
	}
	if capturedErr.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var capturedPanic *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			capturedPanic = err
		},
	}

	defer SetHandler(SetHandler(handler))

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if capturedPanic == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if capturedPanic.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", capturedPanic.Value, "intentional test panic")
	}
	if capturedPanic.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", capturedPanic.Op, "test.recover")
	}
	if !strings.Contains(capturedPanic.StackTrace, "TestRecover") {
		t.Errorf("stack trace should include the panicking test, got: %s", capturedPanic.StackTrace)
	}
}

func TestRecoverInto(t *testing.T) {
	defer SetHandler(SetHandler(&testHandler{}))

	run := func() (err error) {
		defer RecoverInto("test.into", &err)
		panic("setter exploded")
	}

	err := run()
	var perr *PanicError
	if !stderrors.As(err, &perr) {
		t.Fatalf("err = %v, want *PanicError", err)
	}
	if perr.Op != "test.into" {
		t.Errorf("Op = %q, want %q", perr.Op, "test.into")
	}
	if perr.StackTrace == "" {
		t.Error("expected stack trace to be captured")
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandler(t *testing.T) {
	first := &testHandler{}
	defer SetHandler(SetHandler(first))

	if got := SetHandler(nil); got != first {
		t.Errorf("SetHandler returned %T, want the installed handler", got)
	}
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should install LogHandler, got %T", Handler())
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{
		Logger:  slog.New(slog.NewTextHandler(&buf, nil)),
		Verbose: true,
	}

	h.HandleError(&BindError{Op: "bind.Handle", Kind: KindParsing, Type: "int32", Err: stderrors.New("bad digit")})
	h.HandlePanic(&PanicError{Op: "core.InvokeHandler", Value: "boom", StackTrace: "frame"})

	out := buf.String()
	for _, want := range []string{"op=bind.Handle", "kind=parsing", "type=int32", "op=core.InvokeHandler", "stack=frame"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}

type testHandler struct {
	onError func(*BindError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *BindError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
