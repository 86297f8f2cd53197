package core

import (
	"reflect"

	"github.com/go-drift/bind/pkg/errors"
)

// Element is a node the BuildOwner can schedule and rebuild.
type Element interface {
	Depth() int
	MarkNeedsBuild()
	RebuildIfNeeded()
}

// State is the mutable part of a component. Embed StateBase to get default
// implementations.
type State interface {
	InitState()
	Build()
	Dispose()
}

// StatefulElement hosts one State in the component tree.
type StatefulElement struct {
	state      State
	parent     Element
	depth      int
	buildOwner *BuildOwner
	dirty      bool
	mounted    bool
	builds     int
}

// NewStatefulElement creates an element for state, scheduled by owner.
func NewStatefulElement(state State, owner *BuildOwner) *StatefulElement {
	return &StatefulElement{state: state, buildOwner: owner}
}

// Mount attaches the element below parent, initializes its state and runs
// the first build.
func (e *StatefulElement) Mount(parent Element) {
	e.parent = parent
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true
	if setter, ok := e.state.(interface{ SetElement(*StatefulElement) }); ok {
		setter.SetElement(e)
	}
	e.state.InitState()
	e.dirty = true
	e.RebuildIfNeeded()
}

// Unmount detaches the element and disposes its state.
func (e *StatefulElement) Unmount() {
	e.mounted = false
	if e.state != nil {
		e.state.Dispose()
	}
}

// State returns the hosted state.
func (e *StatefulElement) State() State {
	return e.state
}

// Depth returns the distance from the root element.
func (e *StatefulElement) Depth() int {
	return e.depth
}

// BuildCount returns how many times the state has been built.
func (e *StatefulElement) BuildCount() int {
	return e.builds
}

// MarkNeedsBuild schedules a rebuild with the build owner.
func (e *StatefulElement) MarkNeedsBuild() {
	if e.dirty {
		return
	}
	e.dirty = true
	if e.buildOwner != nil {
		e.buildOwner.ScheduleBuild(e)
	}
}

// RebuildIfNeeded builds the state if the element is dirty and mounted.
func (e *StatefulElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	e.builds++
	e.safeBuild()
}

func (e *StatefulElement) isMounted() bool {
	return e.mounted
}

// safeBuild runs Build, reporting a panic to the error handler instead of
// unwinding the owner's flush.
func (e *StatefulElement) safeBuild() {
	defer errors.Recover(reflect.TypeOf(e.state).String() + ".Build")
	e.state.Build()
}
