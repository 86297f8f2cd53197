package bind

import (
	"fmt"
	"reflect"
	"time"

	drifterrors "github.com/go-drift/bind/pkg/errors"
)

// HandlerOption configures a single binding.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	format string
}

// WithFormat sets the format pattern used to parse and display the bound
// value. Only time.Time bindings consult it.
func WithFormat(pattern string) HandlerOption {
	return func(c *handlerConfig) {
		c.format = pattern
	}
}

// Adapter turns change events into setter calls for one bound value. It is
// immutable after construction.
type Adapter[T any] struct {
	typ      reflect.Type
	setter   func(T)
	existing T
	format   string
	strategy Strategy[T]
	invoker  Invoker
}

// NewAdapter binds setter to the coercion strategy for T. Unsupported types
// and invalid format patterns fail here, before any event is delivered.
func NewAdapter[T any](b *Binder, setter func(T), existing T, opts ...HandlerOption) (*Adapter[T], error) {
	var cfg handlerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	typ := reflect.TypeFor[T]()
	fail := func(err error) error {
		return &drifterrors.BindError{
			Op:        "bind.MakeHandler",
			Kind:      drifterrors.KindConfiguration,
			Type:      typeName(typ),
			Err:       err,
			Timestamp: time.Now(),
		}
	}

	if setter == nil {
		return nil, fail(&drifterrors.ConfigurationError{Type: typeName(typ), Reason: "setter is nil"})
	}
	strategy, err := lookup[T](b.registry)
	if err != nil {
		return nil, fail(err)
	}
	if cfg.format != "" && strategy.CheckFormat != nil {
		if err := strategy.CheckFormat(cfg.format); err != nil {
			return nil, fail(&drifterrors.ConfigurationError{Type: typeName(typ), Reason: err.Error()})
		}
	}

	return &Adapter[T]{
		typ:      typ,
		setter:   setter,
		existing: existing,
		format:   cfg.format,
		strategy: *strategy,
		invoker:  b.invoker,
	}, nil
}

// MakeHandler is NewAdapter returning only the event handler.
func MakeHandler[T any](b *Binder, setter func(T), existing T, opts ...HandlerOption) (EventHandler, error) {
	a, err := NewAdapter(b, setter, existing, opts...)
	if err != nil {
		return nil, err
	}
	return a.Handle, nil
}

// Type returns the bound Go type.
func (a *Adapter[T]) Type() reflect.Type { return a.typ }

// Format returns the format pattern, or "" when none was given.
func (a *Adapter[T]) Format() string { return a.format }

// Existing returns the value the bound property held at construction.
func (a *Adapter[T]) Existing() T { return a.existing }

// Handle coerces the event payload and forwards it to the setter through
// the invocation hook. Coercion failures and hook errors are returned
// unchanged to the caller delivering the event; the setter is not called.
func (a *Adapter[T]) Handle(ev Event) error {
	payload, err := payloadOf(ev)
	if err != nil {
		return a.parseFailure(nil, err)
	}
	value, err := a.Coerce(payload)
	if err != nil {
		return err
	}
	return a.invoker.InvokeHandler(Invocation{
		Setter: a.setter,
		Value:  value,
		call:   func() { a.setter(value) },
	})
}

// Coerce converts a raw payload without invoking the setter.
func (a *Adapter[T]) Coerce(payload any) (T, error) {
	var zero T
	switch a.strategy.Shape() {
	case ShapeBool:
		flag, ok := payload.(bool)
		if !ok {
			return zero, a.parseFailure(payload, errShape(ShapeBool, payload))
		}
		v, err := a.strategy.ParseFlag(flag)
		if err != nil {
			return zero, a.parseFailure(payload, err)
		}
		return v, nil
	default:
		var text string
		switch p := payload.(type) {
		case nil:
		case string:
			text = p
		default:
			return zero, a.parseFailure(payload, errShape(ShapeString, payload))
		}
		v, err := a.strategy.ParseText(text, a.format)
		if err != nil {
			return zero, a.parseFailure(payload, err)
		}
		return v, nil
	}
}

func (a *Adapter[T]) parseFailure(payload any, err error) error {
	return &drifterrors.BindError{
		Op:   "bind.Handle",
		Kind: drifterrors.KindParsing,
		Type: typeName(a.typ),
		Err: &drifterrors.ParseError{
			DataType: typeName(a.typ),
			Input:    payload,
			Format:   a.format,
			Err:      err,
		},
		Timestamp: time.Now(),
	}
}

func errShape(want Shape, got any) error {
	return fmt.Errorf("payload is %T, want %s", got, want)
}
