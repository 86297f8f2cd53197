package testing

import (
	"sync"

	"github.com/go-drift/bind/pkg/bind"
)

// RecordingInvoker is an invocation hook that records every invocation it
// receives. All methods are safe for concurrent use.
type RecordingInvoker struct {
	mu       sync.Mutex
	calls    []bind.Invocation
	pending  []bind.Invocation
	deferred bool
	err      error
}

// NewRecordingInvoker returns a hook that records invocations and runs each
// setter immediately.
func NewRecordingInvoker() *RecordingInvoker {
	return &RecordingInvoker{}
}

// NewDeferredInvoker returns a hook that records invocations and queues the
// setters until Flush.
func NewDeferredInvoker() *RecordingInvoker {
	return &RecordingInvoker{deferred: true}
}

// FailWith makes subsequent invocations return err without calling the
// setter. A nil err restores normal behavior.
func (r *RecordingInvoker) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// InvokeHandler implements bind.Invoker.
func (r *RecordingInvoker) InvokeHandler(inv bind.Invocation) error {
	r.mu.Lock()
	r.calls = append(r.calls, inv)
	if r.err != nil {
		err := r.err
		r.mu.Unlock()
		return err
	}
	if r.deferred {
		r.pending = append(r.pending, inv)
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	inv.Call()
	return nil
}

// Flush runs queued setters in arrival order and returns how many ran.
func (r *RecordingInvoker) Flush() int {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, inv := range pending {
		inv.Call()
	}
	return len(pending)
}

// Pending returns the number of queued setters.
func (r *RecordingInvoker) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Len returns the number of recorded invocations.
func (r *RecordingInvoker) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Calls returns a copy of the recorded invocations.
func (r *RecordingInvoker) Calls() []bind.Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]bind.Invocation, len(r.calls))
	copy(out, r.calls)
	return out
}

// Values returns the coerced value of each recorded invocation.
func (r *RecordingInvoker) Values() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]any, len(r.calls))
	for i, inv := range r.calls {
		out[i] = inv.Value
	}
	return out
}

// Last returns the most recent invocation.
func (r *RecordingInvoker) Last() (bind.Invocation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return bind.Invocation{}, false
	}
	return r.calls[len(r.calls)-1], true
}

// Reset discards recorded and queued invocations.
func (r *RecordingInvoker) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.pending = nil
}
