package bind

import (
	"context"
	"fmt"
	"reflect"
)

// HandlerShape lists the handler signatures templates may attach to an
// event of type E.
type HandlerShape[E Event] interface {
	func() | func(E) | func(context.Context) error | func(context.Context, E) error
}

// Delegate stores a handler of any HandlerShape behind one type. The
// wrapped function is kept as given.
type Delegate struct {
	fn     any
	async  bool
	invoke func(ctx context.Context, ev Event) error
}

// EventHandlerValue wraps h without changing it so templates can store
// handlers of different shapes together. A nil h yields the zero Delegate.
func EventHandlerValue[E Event, H HandlerShape[E]](h H) Delegate {
	switch fn := any(h).(type) {
	case func():
		if fn == nil {
			return Delegate{}
		}
		return Delegate{fn: fn, invoke: func(context.Context, Event) error {
			fn()
			return nil
		}}
	case func(E):
		if fn == nil {
			return Delegate{}
		}
		return Delegate{fn: fn, invoke: func(_ context.Context, ev Event) error {
			typed, err := eventAs[E](ev)
			if err != nil {
				return err
			}
			fn(typed)
			return nil
		}}
	case func(context.Context) error:
		if fn == nil {
			return Delegate{}
		}
		return Delegate{fn: fn, async: true, invoke: func(ctx context.Context, _ Event) error {
			return fn(ctx)
		}}
	case func(context.Context, E) error:
		if fn == nil {
			return Delegate{}
		}
		return Delegate{fn: fn, async: true, invoke: func(ctx context.Context, ev Event) error {
			typed, err := eventAs[E](ev)
			if err != nil {
				return err
			}
			return fn(ctx, typed)
		}}
	}
	panic("unreachable")
}

// EventHandlerText returns a handler given as literal attribute text
// unchanged.
func EventHandlerText(value string) string {
	return value
}

// Func returns the wrapped function, or nil for the zero Delegate.
func (d Delegate) Func() any { return d.fn }

// IsNil reports whether d wraps no handler.
func (d Delegate) IsNil() bool { return d.invoke == nil }

// Async reports whether the wrapped handler takes a context and returns an
// error.
func (d Delegate) Async() bool { return d.async }

// Invoke runs the wrapped handler. The zero Delegate does nothing.
func (d Delegate) Invoke(ctx context.Context, ev Event) error {
	if d.invoke == nil {
		return nil
	}
	return d.invoke(ctx, ev)
}

func eventAs[E Event](ev Event) (E, error) {
	typed, ok := ev.(E)
	if !ok {
		var zero E
		return zero, fmt.Errorf("bind: handler expects %s, got %T", reflect.TypeFor[E](), ev)
	}
	return typed, nil
}
