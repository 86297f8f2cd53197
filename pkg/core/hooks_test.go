package core

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/bind/pkg/bind"
	"github.com/go-drift/bind/pkg/errors"
)

type profileState struct {
	StateBase
	age      int32
	birthday time.Time
	builds   int
}

func (s *profileState) Build() {
	s.builds++
}

func mountProfile(t *testing.T) (*profileState, *StatefulElement, *BuildOwner) {
	t.Helper()
	owner := NewBuildOwner()
	state := &profileState{}
	element := NewStatefulElement(state, owner)
	element.Mount(nil)
	return state, element, owner
}

func TestUseBinder_SetterRunsThroughSetState(t *testing.T) {
	state, element, owner := mountProfile(t)

	onAge := UseBinder(state).BindInt32(func(v int32) { state.age = v }, state.age)
	if err := onAge(bind.NewChangeEvent("42")); err != nil {
		t.Fatalf("handler returned %v", err)
	}

	if state.age != 42 {
		t.Errorf("age = %d, want 42", state.age)
	}
	if !owner.NeedsWork() {
		t.Fatal("expected the owning element to be scheduled for rebuild")
	}
	owner.FlushBuild()
	if element.BuildCount() != 2 {
		t.Errorf("BuildCount = %d, want 2", element.BuildCount())
	}
}

func TestUseBinder_ParseFailureSkipsRebuild(t *testing.T) {
	state, _, owner := mountProfile(t)

	onAge := UseBinder(state).BindInt32(func(v int32) { state.age = v }, state.age)
	err := onAge(bind.NewChangeEvent("forty-two"))

	var perr *errors.ParseError
	if !stderrors.As(err, &perr) {
		t.Fatalf("err = %v, want *errors.ParseError", err)
	}
	if owner.NeedsWork() {
		t.Error("a failed coercion must not schedule a rebuild")
	}
}

func TestInvokeHandler_RecoversSetterPanic(t *testing.T) {
	var reported *errors.PanicError
	defer errors.SetHandler(errors.SetHandler(&panicCapture{fn: func(err *errors.PanicError) { reported = err }}))

	state, _, _ := mountProfile(t)
	onAge := UseBinder(state).BindInt32(func(int32) { panic("setter exploded") }, 0)

	err := onAge(bind.NewChangeEvent("1"))

	var perr *errors.PanicError
	if !stderrors.As(err, &perr) {
		t.Fatalf("err = %v, want *errors.PanicError", err)
	}
	if perr.Op != "core.InvokeHandler" {
		t.Errorf("Op = %q, want %q", perr.Op, "core.InvokeHandler")
	}
	if reported != perr {
		t.Error("expected the panic to be reported to the global handler")
	}
}

func TestInvokeHandler_DisposedStateDropsCall(t *testing.T) {
	state, element, owner := mountProfile(t)
	onAge := UseBinder(state).BindInt32(func(v int32) { state.age = v }, state.age)

	element.Unmount()
	if err := onAge(bind.NewChangeEvent("9")); err != nil {
		t.Fatalf("handler returned %v", err)
	}
	if state.age != 0 {
		t.Errorf("age = %d, want 0 after disposal", state.age)
	}
	if owner.NeedsWork() {
		t.Error("disposed state should not schedule work")
	}
}

func TestUseBinder_TimeWithFormat(t *testing.T) {
	state, _, _ := mountProfile(t)

	onBirthday, err := UseBinder(state).BindTime(func(v time.Time) { state.birthday = v }, state.birthday, "yyyy-MM-dd")
	if err != nil {
		t.Fatalf("BindTime: %v", err)
	}
	if err := onBirthday(bind.NewChangeEvent("1990-06-15")); err != nil {
		t.Fatalf("handler returned %v", err)
	}
	want := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	if !state.birthday.Equal(want) {
		t.Errorf("birthday = %v, want %v", state.birthday, want)
	}
}

func TestStateBase_OnDispose(t *testing.T) {
	base := &StateBase{}
	var order []int
	base.OnDispose(func() { order = append(order, 1) })
	base.OnDispose(func() { order = append(order, 2) })

	base.Dispose()
	base.Dispose()

	if diff := cmp.Diff([]int{2, 1}, order); diff != "" {
		t.Errorf("dispose order mismatch (-want +got):\n%s", diff)
	}
	ran := false
	base.OnDispose(func() { ran = true })
	if !ran {
		t.Error("disposer registered after disposal should run immediately")
	}
}

func TestManaged_Value(t *testing.T) {
	base := &StateBase{}
	m := NewManaged(base, 10)

	if m.Value() != 10 {
		t.Errorf("Expected 10, got %d", m.Value())
	}

	m.Set(20)
	if m.Value() != 20 {
		t.Errorf("Expected 20, got %d", m.Value())
	}

	m.Update(func(v int) int { return v * 2 })
	if m.Value() != 40 {
		t.Errorf("Expected 40, got %d", m.Value())
	}
}

func TestBindManaged(t *testing.T) {
	state, _, owner := mountProfile(t)
	volume := NewManaged(state, 0.5)

	onVolume, err := BindManaged(volume)
	if err != nil {
		t.Fatalf("BindManaged: %v", err)
	}
	if err := onVolume(bind.NewChangeEvent("0.75")); err != nil {
		t.Fatalf("handler returned %v", err)
	}
	if volume.Value() != 0.75 {
		t.Errorf("volume = %v, want 0.75", volume.Value())
	}
	if !owner.NeedsWork() {
		t.Error("expected rebuild to be scheduled")
	}
}

func TestBindManaged_UnsupportedType(t *testing.T) {
	type point struct{ X, Y int }
	state, _, _ := mountProfile(t)

	h, err := BindManaged(NewManaged(state, point{}))
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if h != nil {
		t.Error("no handler should be returned on failure")
	}
	var cerr *errors.ConfigurationError
	if !stderrors.As(err, &cerr) {
		t.Fatalf("err = %v, want *errors.ConfigurationError", err)
	}
}
