package bind_test

import (
	stderrors "errors"
	"strconv"
	"sync"
	"testing"

	"github.com/go-drift/bind/pkg/bind"
	"github.com/go-drift/bind/pkg/errors"
)

type Color int

const (
	Red Color = iota
	Green
	Blue
)

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	default:
		return "Color(" + strconv.Itoa(int(c)) + ")"
	}
}

func (Color) EnumValues() []Color { return []Color{Red, Green, Blue} }

type Size string

// Mode has members but no String method, so it cannot be derived.
type Mode int

func (Mode) EnumValues() []Mode { return []Mode{0, 1} }

// Level enumerates through pointer receivers, so its zero value is nil.
type Level struct{ name string }

func (l *Level) String() string { return l.name }

func (l *Level) EnumValues() []*Level { return []*Level{{name: l.name}} }

// Shade cannot list its members.
type Shade int

func (Shade) String() string { return "Shade" }

func (Shade) EnumValues() []Shade { panic("members unavailable") }

func TestEnum_ParseByName(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"Red", Red},
		{" Green ", Green},
		{"Blue", Blue},
		{"2", Blue},
		{"7", Color(7)},
		{"-1", Color(-1)},
	}

	for _, tt := range tests {
		var got Color = -100
		h, err := bind.MakeHandler(bind.NewBinder(nil, bind.WithRegistry(bind.NewRegistry())), func(v Color) { got = v }, Red)
		if err != nil {
			t.Fatalf("MakeHandler: %v", err)
		}
		if err := h(bind.NewChangeEvent(tt.input)); err != nil {
			t.Errorf("h(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("h(%q) set %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestEnum_RejectsUnknownNames(t *testing.T) {
	called := false
	h, err := bind.MakeHandler(bind.NewBinder(nil), func(Color) { called = true }, Red)
	if err != nil {
		t.Fatalf("MakeHandler: %v", err)
	}

	for _, input := range []string{"NotAMember", "red", "", "1.5", "Red,Green"} {
		err := h(bind.NewChangeEvent(input))
		var perr *errors.ParseError
		if !stderrors.As(err, &perr) {
			t.Errorf("h(%q) = %v, want *errors.ParseError", input, err)
			continue
		}
		if perr.DataType != "bind_test.Color" {
			t.Errorf("DataType = %q, want %q", perr.DataType, "bind_test.Color")
		}
	}
	if called {
		t.Error("setter should not run for rejected input")
	}
}

func TestRegisterEnum(t *testing.T) {
	r := bind.NewRegistry()
	err := bind.RegisterEnum(r, map[string]Size{"Small": "S", "Large": "L"})
	if err != nil {
		t.Fatalf("RegisterEnum: %v", err)
	}

	var got Size
	h, err := bind.MakeHandler(bind.NewBinder(nil, bind.WithRegistry(r)), func(v Size) { got = v }, "S")
	if err != nil {
		t.Fatalf("MakeHandler: %v", err)
	}
	if err := h(bind.NewChangeEvent("Large")); err != nil {
		t.Fatalf("h(Large) = %v", err)
	}
	if got != "L" {
		t.Errorf("got %q, want %q", got, "L")
	}
	if err := h(bind.NewChangeEvent("1")); err == nil {
		t.Error("string-kinded enums should not accept numeric literals")
	}

	text, err := bind.Format(r, Size("L"), "")
	if err != nil || text != "Large" {
		t.Errorf("Format(L) = %q, %v; want Large", text, err)
	}

	if err := bind.RegisterEnum(r, map[string]Size{"Medium": "M"}); err == nil {
		t.Error("registering an enum twice should fail")
	}
}

func TestRegisterEnum_Invalid(t *testing.T) {
	r := bind.NewRegistry()
	if err := bind.RegisterEnum(r, map[string]Size{}); err == nil {
		t.Error("expected error for an enum with no members")
	}
	if err := bind.RegisterEnum(r, map[string]Size{" Small": "S"}); err == nil {
		t.Error("expected error for an untrimmed member name")
	}
	if bind.Supports[Size](r) {
		t.Error("failed registrations should leave the type unsupported")
	}
}

func TestEnum_FormatUsesString(t *testing.T) {
	text, err := bind.Format(bind.NewRegistry(), Green, "")
	if err != nil {
		t.Fatal(err)
	}
	if text != "Green" {
		t.Errorf("Format(Green) = %q, want %q", text, "Green")
	}
}

func TestEnum_WithoutStringerIsUnsupported(t *testing.T) {
	_, err := bind.MakeHandler(bind.NewBinder(nil), func(Mode) {}, 0)
	var cerr *errors.ConfigurationError
	if !stderrors.As(err, &cerr) {
		t.Fatalf("err = %v, want *errors.ConfigurationError", err)
	}
	if cerr.Type != "bind_test.Mode" {
		t.Errorf("Type = %q, want %q", cerr.Type, "bind_test.Mode")
	}
}

func TestEnum_ConcurrentDerivation(t *testing.T) {
	r := bind.NewRegistry()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !bind.Supports[Color](r) {
				t.Error("Color should be supported")
			}
		}()
	}
	wg.Wait()
}

func TestEnum_UnlistableTypesAreUnsupported(t *testing.T) {
	tests := []struct {
		name     string
		bind     func(b *bind.Binder) error
		wantType string
	}{
		{
			name: "pointer receiver",
			bind: func(b *bind.Binder) error {
				_, err := bind.MakeHandler(b, func(*Level) {}, nil)
				return err
			},
			wantType: "*bind_test.Level",
		},
		{
			name: "panicking members",
			bind: func(b *bind.Binder) error {
				_, err := bind.MakeHandler(b, func(Shade) {}, 0)
				return err
			},
			wantType: "bind_test.Shade",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bind(bind.NewBinder(nil))
			var cerr *errors.ConfigurationError
			if !stderrors.As(err, &cerr) {
				t.Fatalf("err = %v, want *errors.ConfigurationError", err)
			}
			if cerr.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", cerr.Type, tt.wantType)
			}
		})
	}
}
