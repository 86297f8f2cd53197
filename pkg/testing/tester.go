package testing

import (
	"testing"

	"github.com/go-drift/bind/pkg/bind"
	"github.com/go-drift/bind/pkg/core"
)

// Tester mounts one component state under its own BuildOwner and delivers
// input events to its bound handlers.
type Tester struct {
	tb      testing.TB
	owner   *core.BuildOwner
	element *core.StatefulElement
	frames  int
}

// NewTester mounts state and returns a tester driving it. Call Cleanup when
// done, or use NewTesterWithT instead.
func NewTester(state core.State) *Tester {
	tester := &Tester{owner: core.NewBuildOwner()}
	tester.owner.OnNeedsFrame = func() { tester.frames++ }
	tester.element = core.NewStatefulElement(state, tester.owner)
	tester.element.Mount(nil)
	return tester
}

// NewTesterWithT mounts state and unmounts it when the test finishes.
func NewTesterWithT(t testing.TB, state core.State) *Tester {
	t.Helper()
	tester := NewTester(state)
	tester.tb = t
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the state, disposing it.
func (t *Tester) Cleanup() {
	t.element.Unmount()
}

// Element returns the element hosting the state.
func (t *Tester) Element() *core.StatefulElement {
	return t.element
}

// Change delivers a change event carrying value to h.
func (t *Tester) Change(h bind.EventHandler, value any) error {
	return h(bind.NewChangeEvent(value))
}

// MustChange is Change that fails the test on error.
func (t *Tester) MustChange(h bind.EventHandler, value any) {
	if t.tb != nil {
		t.tb.Helper()
	}
	if err := t.Change(h, value); err != nil {
		if t.tb == nil {
			panic(err)
		}
		t.tb.Fatalf("change %v: %v", value, err)
	}
}

// Pump rebuilds dirty elements and reports whether anything was dirty.
func (t *Tester) Pump() bool {
	if !t.owner.NeedsWork() {
		return false
	}
	t.owner.FlushBuild()
	return true
}

// NeedsPump reports whether a bound change has scheduled a rebuild.
func (t *Tester) NeedsPump() bool {
	return t.owner.NeedsWork()
}

// Frames returns how many frames the state has requested since mounting.
func (t *Tester) Frames() int {
	return t.frames
}

// BuildCount returns how many times the state has been built, including the
// initial build on mount.
func (t *Tester) BuildCount() int {
	return t.element.BuildCount()
}
