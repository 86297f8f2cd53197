// Package testing provides test doubles for code that binds UI inputs.
//
// # Quick Start
//
// Record setter invocations without a component tree:
//
//	func TestAgeInput(t *testing.T) {
//	    rec := bindtest.NewRecordingInvoker()
//	    var age int32
//	    h := bind.NewBinder(rec).BindInt32(func(v int32) { age = v }, age)
//
//	    if err := h(bind.NewChangeEvent("42")); err != nil {
//	        t.Fatal(err)
//	    }
//	    if rec.Len() != 1 || age != 42 {
//	        t.Errorf("age = %d after %d invocations", age, rec.Len())
//	    }
//	}
//
// # Component Testing
//
// Tester mounts a state under a fresh BuildOwner and delivers events the way
// a renderer would:
//
//	tester := bindtest.NewTesterWithT(t, &formState{})
//	tester.MustChange(state.onName, "Ada")
//	tester.Pump()
//
// # Deferred Invocations
//
// A deferred RecordingInvoker queues setter calls until Flush, which lets a
// test observe the state between coercion and assignment.
package testing
