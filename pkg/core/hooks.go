package core

import "github.com/go-drift/bind/pkg/bind"

// UseBinder returns a binder whose setters run through the state's
// InvokeHandler, so bound inputs trigger rebuilds of this component.
//
// Example:
//
//	func (s *formState) InitState() {
//	    b := core.UseBinder(s)
//	    s.onName = b.BindString(func(v string) { s.name = v }, s.name)
//	}
func UseBinder(s stateBase, opts ...bind.Option) *bind.Binder {
	return bind.NewBinder(s.state(), opts...)
}

// Managed holds a value and triggers rebuilds when it changes.
// It is tied to a specific StateBase.
//
// Managed is NOT thread-safe. It must only be accessed from the UI goroutine.
//
// Example:
//
//	type myState struct {
//	    core.StateBase
//	    count *core.Managed[int]
//	}
//
//	func (s *myState) InitState() {
//	    s.count = core.NewManaged(s, 0)
//	}
type Managed[T any] struct {
	base  *StateBase
	value T
}

// NewManaged creates a new managed state value.
// Changes to this value will automatically trigger a rebuild.
func NewManaged[T any](s stateBase, initial T) *Managed[T] {
	return &Managed[T]{
		base:  s.state(),
		value: initial,
	}
}

// Value returns the current value.
func (m *Managed[T]) Value() T {
	return m.value
}

// Set updates the value and triggers a rebuild.
func (m *Managed[T]) Set(value T) {
	m.value = value
	m.base.SetState(nil)
}

// Update applies a transformation to the current value and triggers a rebuild.
func (m *Managed[T]) Update(transform func(T) T) {
	m.value = transform(m.value)
	m.base.SetState(nil)
}

// BindManaged binds m to a change handler through the state's invocation
// hook. It fails like bind.MakeHandler when T cannot be bound.
func BindManaged[T any](m *Managed[T], opts ...bind.HandlerOption) (bind.EventHandler, error) {
	return bind.MakeHandler(bind.NewBinder(m.base), m.Set, m.value, opts...)
}
