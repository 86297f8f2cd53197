package bind

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	drifterrors "github.com/go-drift/bind/pkg/errors"
)

// Enum is implemented by named types that enumerate their declared members.
// Member names come from the String method, so types generated with the
// stringer tool only need to add EnumValues:
//
//	type Color int
//
//	const (
//	    Red Color = iota
//	    Green
//	)
//
//	func (Color) EnumValues() []Color { return []Color{Red, Green} }
type Enum[T any] interface {
	fmt.Stringer
	EnumValues() []T
}

var errUnknownMember = errors.New("not a declared member")

// enumTable is the name lookup built once per enum type.
type enumTable[T any] struct {
	typ     reflect.Type
	byName  map[string]T
	members []T
	names   []string
}

// RegisterEnum declares the members of T by name, for enum types that do
// not implement Enum.
func RegisterEnum[T comparable](r *Registry, members map[string]T) error {
	typ := reflect.TypeFor[T]()
	if len(members) == 0 {
		return &drifterrors.ConfigurationError{Type: typeName(typ), Reason: "enum has no members"}
	}
	names := make([]string, 0, len(members))
	for name := range members {
		if name == "" || strings.TrimSpace(name) != name {
			return &drifterrors.ConfigurationError{Type: typeName(typ), Reason: fmt.Sprintf("invalid member name %q", name)}
		}
		names = append(names, name)
	}
	sort.Strings(names)

	table := &enumTable[T]{typ: typ, byName: make(map[string]T, len(members))}
	for _, name := range names {
		table.add(name, members[name])
	}
	return Register(r, table.strategy())
}

// deriveEnum builds the strategy for a type implementing Enum, or reports
// that T cannot be bound. Members are listed through the zero value, so
// pointer types are refused and a panicking EnumValues or String becomes a
// configuration error.
func deriveEnum[T any](typ reflect.Type) (_ *Strategy[T], err error) {
	var zero T
	e, ok := any(zero).(Enum[T])
	if !ok || !typ.Comparable() {
		return nil, &drifterrors.ConfigurationError{Type: typeName(typ)}
	}
	if typ.Kind() == reflect.Pointer {
		return nil, &drifterrors.ConfigurationError{Type: typeName(typ), Reason: "enum must not be a pointer type"}
	}
	defer func() {
		if r := recover(); r != nil {
			err = &drifterrors.ConfigurationError{Type: typeName(typ), Reason: fmt.Sprintf("listing members panicked: %v", r)}
		}
	}()

	values := e.EnumValues()
	if len(values) == 0 {
		return nil, &drifterrors.ConfigurationError{Type: typeName(typ), Reason: "enum has no members"}
	}

	table := &enumTable[T]{typ: typ, byName: make(map[string]T, len(values))}
	for _, v := range values {
		name := any(v).(fmt.Stringer).String()
		if _, dup := table.byName[name]; dup {
			continue
		}
		table.add(name, v)
	}
	s := table.strategy()
	return &s, nil
}

func (t *enumTable[T]) add(name string, value T) {
	t.byName[name] = value
	t.members = append(t.members, value)
	t.names = append(t.names, name)
}

func (t *enumTable[T]) strategy() Strategy[T] {
	return Strategy[T]{
		ParseText: func(raw, _ string) (T, error) { return t.parse(raw) },
		Format: func(value T, _ string) (string, error) {
			return t.format(value), nil
		},
	}
}

// parse matches a member name exactly after trimming whitespace. Integer
// enums also accept a numeric literal, declared or not.
func (t *enumTable[T]) parse(raw string) (T, error) {
	var zero T
	text := strings.TrimSpace(raw)
	if text == "" {
		return zero, errEmptyNumber
	}
	if v, ok := t.byName[text]; ok {
		return v, nil
	}

	out := reflect.New(t.typ).Elem()
	switch t.typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := parseInvariantInt(text, t.typ.Bits())
		if err != nil {
			return zero, errUnknownMember
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if strings.HasPrefix(text, "-") {
			return zero, errUnknownMember
		}
		n, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), 10, t.typ.Bits())
		if err != nil {
			return zero, errUnknownMember
		}
		out.SetUint(n)
	default:
		return zero, errUnknownMember
	}
	return out.Interface().(T), nil
}

func (t *enumTable[T]) format(value T) string {
	if s, ok := any(value).(fmt.Stringer); ok {
		return s.String()
	}
	for i, m := range t.members {
		if any(m) == any(value) {
			return t.names[i]
		}
	}
	return fmt.Sprint(value)
}
