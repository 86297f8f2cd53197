package bind

import (
	"fmt"
	"time"

	"github.com/woodsbury/decimal128"
)

// Binder creates adapters that share one invocation hook and one strategy
// registry. The typed Bind methods cover the built-in types and panic only
// when given a nil setter; use MakeHandler for enums and registered types.
type Binder struct {
	invoker  Invoker
	registry *Registry
}

// Option configures a Binder.
type Option func(*Binder)

// WithRegistry replaces the default strategy registry.
func WithRegistry(r *Registry) Option {
	return func(b *Binder) {
		if r != nil {
			b.registry = r
		}
	}
}

// NewBinder creates a binder that routes every setter call through invoker.
// A nil invoker falls back to DirectInvoker.
func NewBinder(invoker Invoker, opts ...Option) *Binder {
	if invoker == nil {
		invoker = DirectInvoker
	}
	b := &Binder{invoker: invoker, registry: DefaultRegistry()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Registry returns the strategy registry used by b.
func (b *Binder) Registry() *Registry { return b.registry }

// Invoker returns the invocation hook used by b.
func (b *Binder) Invoker() Invoker { return b.invoker }

// BindString binds a text input to a string setter.
func (b *Binder) BindString(setter func(string), existing string) EventHandler {
	return mustHandler(b, setter, existing)
}

// BindBool binds a toggle to a bool setter.
func (b *Binder) BindBool(setter func(bool), existing bool) EventHandler {
	return mustHandler(b, setter, existing)
}

// BindInt32 binds a text input to an int32 setter.
func (b *Binder) BindInt32(setter func(int32), existing int32) EventHandler {
	return mustHandler(b, setter, existing)
}

// BindInt64 binds a text input to an int64 setter.
func (b *Binder) BindInt64(setter func(int64), existing int64) EventHandler {
	return mustHandler(b, setter, existing)
}

// BindFloat32 binds a text input to a float32 setter.
func (b *Binder) BindFloat32(setter func(float32), existing float32) EventHandler {
	return mustHandler(b, setter, existing)
}

// BindFloat64 binds a text input to a float64 setter.
func (b *Binder) BindFloat64(setter func(float64), existing float64) EventHandler {
	return mustHandler(b, setter, existing)
}

// BindDecimal binds a text input to a decimal setter.
func (b *Binder) BindDecimal(setter func(decimal128.Decimal), existing decimal128.Decimal) EventHandler {
	return mustHandler(b, setter, existing)
}

// BindTime binds a text input to a time setter. format may be "" to use
// general date parsing; an invalid pattern is reported here.
func (b *Binder) BindTime(setter func(time.Time), existing time.Time, format string) (EventHandler, error) {
	return MakeHandler(b, setter, existing, WithFormat(format))
}

// mustHandler builds an adapter for a built-in type, which only fails for a
// nil setter.
func mustHandler[T any](b *Binder, setter func(T), existing T) EventHandler {
	h, err := MakeHandler(b, setter, existing)
	if err != nil {
		panic(fmt.Sprintf("bind: %v", err))
	}
	return h
}
