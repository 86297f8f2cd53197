// Package bind converts UI event payloads into typed component state for
// two-way bindings.
//
// A binding pairs a setter with a coercion strategy chosen from the Go type
// of the bound value. When an input element reports a change, the adapter
// parses the raw payload (a string, or a bool for toggles) and hands the
// typed value to the framework's invocation hook, which calls the setter and
// schedules a rebuild of the owning component.
//
// # Supported Types
//
// The built-in strategies cover string, bool, int, int32, int64, float32,
// float64, decimal128.Decimal and time.Time. Numbers use invariant-culture
// rules: optional sign, ',' group separators before the '.' decimal point,
// and exponents for floating point types.
//
// Enums are named types that list their members:
//
//	type Color int
//
//	func (c Color) String() string { return [...]string{"Red", "Green"}[c] }
//	func (Color) EnumValues() []Color { return []Color{Red, Green} }
//
// Types with no strategy and no members cannot be bound. The failure is
// reported when the binding is made, never when an event arrives:
//
//	_, err := bind.MakeHandler(b, func(p Point) {}, Point{})
//	// err names Point
//
// # Dates
//
// time.Time bindings accept an optional pattern such as "yyyy-MM-dd" or the
// standard pattern "o". An empty payload sets the zero time. A payload that
// does not match the pattern falls back to general date parsing, so the
// pattern constrains display more strictly than input.
//
// # Invocation Hook
//
// Adapters never call setters directly. Every call goes through an Invoker,
// usually a component's state:
//
//	b := bind.NewBinder(&s.StateBase)
//	onChange := b.BindInt32(func(v int32) { s.age = v }, s.age)
//
// # Handler Values
//
// EventHandlerValue stores handlers of different signatures behind a single
// Delegate type for templates that attach them to elements.
package bind
