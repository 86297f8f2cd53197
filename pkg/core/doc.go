// Package core provides the component state and rebuild scheduling that
// bindings report to.
//
// A StatefulElement hosts a State in the component tree. Calling SetState on
// the state marks the element dirty and queues it with the BuildOwner, which
// rebuilds dirty elements in depth order on FlushBuild.
//
// # Bindings
//
// StateBase implements bind.Invoker. Binders created with UseBinder route
// every setter call through StateBase.InvokeHandler, so a bound input change
// updates the field and schedules a rebuild in one step:
//
//	type myState struct {
//	    core.StateBase
//	    volume float64
//	    onVolume bind.EventHandler
//	}
//
//	func (s *myState) InitState() {
//	    s.onVolume = core.UseBinder(s).BindFloat64(func(v float64) { s.volume = v }, s.volume)
//	}
//
// Managed values can be bound directly with BindManaged.
package core
