package bind

// Invocation is one pending setter call. The invocation hook decides when
// to run it; Call is the only path from an adapter to its setter.
type Invocation struct {
	// Setter is the bound func(T), for hooks that key work on the callback.
	Setter any
	// Value is the coerced value the setter will receive.
	Value any

	call func()
}

// Call runs the setter with Value.
func (inv Invocation) Call() {
	if inv.call != nil {
		inv.call()
	}
}

// Invoker is the framework hook that calls a setter and performs any
// post-invocation work, such as scheduling a rebuild of the owning component.
// It must run synchronously.
type Invoker interface {
	InvokeHandler(inv Invocation) error
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(inv Invocation) error

// InvokeHandler calls f(inv).
func (f InvokerFunc) InvokeHandler(inv Invocation) error {
	return f(inv)
}

// DirectInvoker calls the setter and does nothing else.
var DirectInvoker Invoker = InvokerFunc(func(inv Invocation) error {
	inv.Call()
	return nil
})
