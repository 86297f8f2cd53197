package core

import (
	"sync"

	"github.com/go-drift/bind/pkg/bind"
	"github.com/go-drift/bind/pkg/errors"
)

// stateBase is satisfied by any struct that embeds StateBase, so UseBinder
// and NewManaged take the component state itself.
type stateBase interface {
	state() *StateBase
}

func (s *StateBase) state() *StateBase { return s }

// StateBase is the invocation hook for a component's bindings. Embed it in a
// state and pass the state to UseBinder: each bound setter then runs inside
// SetState, and the element rebuilds once the change has been applied.
//
// After Dispose the bindings stay callable but their setters no longer run.
//
//	type profileState struct {
//	    core.StateBase
//	    age   int32
//	    onAge bind.EventHandler
//	}
//
//	func (s *profileState) InitState() {
//	    s.onAge = core.UseBinder(s).BindInt32(func(v int32) { s.age = v }, s.age)
//	}
type StateBase struct {
	element *StatefulElement

	mu       sync.Mutex
	disposed bool
	cleanups []func()
}

// SetElement attaches the element that SetState marks dirty. Mount calls it.
func (s *StateBase) SetElement(element *StatefulElement) {
	s.element = element
}

// Element is the mounted element, or nil before Mount.
func (s *StateBase) Element() *StatefulElement {
	return s.element
}

// SetState applies fn and marks the element dirty. It does nothing once the
// state is disposed. Call it from the goroutine that flushes the BuildOwner.
func (s *StateBase) SetState(fn func()) {
	if s.IsDisposed() {
		return
	}
	if fn != nil {
		fn()
	}
	if s.element != nil {
		s.element.MarkNeedsBuild()
	}
}

// InvokeHandler applies a coerced value by running inv.Call inside SetState.
// Invocations delivered after Dispose are dropped without error. A panicking
// setter is reported and returned as *errors.PanicError.
func (s *StateBase) InvokeHandler(inv bind.Invocation) (err error) {
	if s.IsDisposed() {
		return nil
	}
	defer errors.RecoverInto("core.InvokeHandler", &err)
	s.SetState(inv.Call)
	return nil
}

// OnDispose queues fn to run when the state is disposed, most recent first.
// On a disposed state fn runs at once.
func (s *StateBase) OnDispose(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// Dispose detaches the state's bindings and runs the OnDispose queue. States
// that override Dispose must call s.StateBase.Dispose.
func (s *StateBase) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// InitState is a no-op default implementation.
func (s *StateBase) InitState() {}

// Build is a no-op default implementation.
func (s *StateBase) Build() {}

// IsDisposed reports whether Dispose has run.
func (s *StateBase) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
