package bind

import (
	"fmt"
	"reflect"
	"sync"

	drifterrors "github.com/go-drift/bind/pkg/errors"
)

// Shape is the structural form of a raw event payload.
type Shape int

const (
	// ShapeString payloads carry the text of an input element.
	ShapeString Shape = iota
	// ShapeBool payloads carry the checked state of a toggle element.
	ShapeBool
)

func (s Shape) String() string {
	switch s {
	case ShapeString:
		return "string"
	case ShapeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Strategy is the parse/format pair for one target type.
//
// Exactly one of ParseText and ParseFlag must be set; it decides the payload
// shape the strategy accepts.
type Strategy[T any] struct {
	// ParseText converts a string payload. format is "" when the binding
	// declares none.
	ParseText func(raw string, format string) (T, error)
	// ParseFlag converts a boolean payload.
	ParseFlag func(raw bool) (T, error)
	// Format renders a value for display.
	Format func(value T, format string) (string, error)
	// CheckFormat validates a format pattern when a binding is constructed.
	// Nil means the strategy ignores format patterns.
	CheckFormat func(format string) error
}

// Shape reports the payload shape the strategy accepts.
func (s *Strategy[T]) Shape() Shape {
	if s.ParseFlag != nil {
		return ShapeBool
	}
	return ShapeString
}

func (s *Strategy[T]) validate() error {
	if (s.ParseText == nil) == (s.ParseFlag == nil) {
		return fmt.Errorf("exactly one of ParseText and ParseFlag must be set")
	}
	if s.Format == nil {
		return fmt.Errorf("Format must be set")
	}
	return nil
}

// Registry maps Go types to coercion strategies.
//
// Every registry starts with the built-in strategies for string, bool, int,
// int32, int64, float32, float64, decimal128.Decimal and time.Time. Enum types
// are resolved on first use and cached.
type Registry struct {
	mu         sync.RWMutex
	strategies map[reflect.Type]any
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by binders created
// without WithRegistry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// NewRegistry creates a registry holding only the built-in strategies.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[reflect.Type]any)}
	put(r, textStrategy())
	put(r, flagStrategy())
	put(r, intStrategy[int](strconvIntBits))
	put(r, intStrategy[int32](32))
	put(r, intStrategy[int64](64))
	put(r, floatStrategy[float32](32))
	put(r, floatStrategy[float64](64))
	put(r, decimalStrategy())
	put(r, timeStrategy())
	return r
}

func put[T any](r *Registry, s Strategy[T]) {
	r.strategies[reflect.TypeFor[T]()] = &s
}

// Register adds a strategy for T. Registering a type twice is an error, so
// built-in strategies cannot be replaced.
func Register[T any](r *Registry, s Strategy[T]) error {
	typ := reflect.TypeFor[T]()
	if err := s.validate(); err != nil {
		return &drifterrors.ConfigurationError{Type: typeName(typ), Reason: err.Error()}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.strategies[typ]; exists {
		return &drifterrors.ConfigurationError{Type: typeName(typ), Reason: "strategy already registered"}
	}
	r.strategies[typ] = &s
	return nil
}

// Lookup resolves the strategy for T, deriving and caching an enum strategy
// when T enumerates its members. A type with neither yields a
// *errors.ConfigurationError naming it. The result is a copy; assigning to
// its fields does not affect r or adapters built from it.
func Lookup[T any](r *Registry) (*Strategy[T], error) {
	s, err := lookup[T](r)
	if err != nil {
		return nil, err
	}
	cp := *s
	return &cp, nil
}

func lookup[T any](r *Registry) (*Strategy[T], error) {
	typ := reflect.TypeFor[T]()

	r.mu.RLock()
	cached, ok := r.strategies[typ]
	r.mu.RUnlock()
	if ok {
		return cached.(*Strategy[T]), nil
	}

	s, err := deriveEnum[T](typ)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.strategies[typ]; ok {
		return existing.(*Strategy[T]), nil
	}
	r.strategies[typ] = s
	return s, nil
}

// Supports reports whether T can be bound through r.
func Supports[T any](r *Registry) bool {
	_, err := lookup[T](r)
	return err == nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
