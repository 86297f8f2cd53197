package manifest

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/woodsbury/decimal128"

	"github.com/go-drift/bind/pkg/bind"
	"github.com/go-drift/bind/pkg/errors"
)

// Result is the outcome of one case.
type Result struct {
	Case   string
	Type   string
	Got    string
	Err    error
	Passed bool
	Reason string
}

// Runner executes manifest cases through real bindings.
type Runner struct {
	// Format applies to time cases that declare no format.
	Format string
	Logger *slog.Logger
}

// member is the runtime type behind enum cases.
type member int

// unsupported has no coercion strategy.
type unsupported struct{}

// Run executes every case in m, in order.
func (r *Runner) Run(m *Manifest) []Result {
	results := make([]Result, 0, len(m.Cases))
	for _, c := range m.Cases {
		res := r.runCase(c)
		r.logger().Debug("case finished",
			slog.String("manifest", m.Name),
			slog.String("case", res.Case),
			slog.Bool("passed", res.Passed),
		)
		results = append(results, res)
	}
	return results
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) runCase(c Case) Result {
	if c.Type == "time" && c.Format == "" {
		c.Format = r.Format
	}
	registry := bind.NewRegistry()

	var got string
	var err error
	switch c.Type {
	case "string":
		got, err = runTyped[string](r, registry, c)
	case "bool":
		got, err = runTyped[bool](r, registry, c)
	case "int":
		got, err = runTyped[int](r, registry, c)
	case "int32":
		got, err = runTyped[int32](r, registry, c)
	case "int64":
		got, err = runTyped[int64](r, registry, c)
	case "float32":
		got, err = runTyped[float32](r, registry, c)
	case "float64":
		got, err = runTyped[float64](r, registry, c)
	case "decimal":
		got, err = runTyped[decimal128.Decimal](r, registry, c)
	case "time":
		got, err = runTyped[time.Time](r, registry, c)
	case "enum":
		members := make(map[string]member, len(c.Members))
		for i, name := range c.Members {
			members[name] = member(i)
		}
		if err = bind.RegisterEnum(registry, members); err == nil {
			got, err = runTyped[member](r, registry, c)
		}
	default:
		got, err = runTyped[unsupported](r, registry, c)
	}
	return evaluate(c, got, err)
}

// runTyped binds a fresh setter of type T, delivers the payload and returns
// the received value formatted back to text.
func runTyped[T any](r *Runner, registry *bind.Registry, c Case) (string, error) {
	var (
		received T
		calls    int
	)
	invoker := bind.InvokerFunc(func(inv bind.Invocation) error {
		calls++
		r.logger().Debug("invoke setter", slog.String("case", c.Name), slog.Any("value", inv.Value))
		inv.Call()
		return nil
	})

	var zero T
	h, err := bind.MakeHandler(bind.NewBinder(invoker, bind.WithRegistry(registry)),
		func(v T) { received = v }, zero, bind.WithFormat(c.Format))
	if err != nil {
		return "", err
	}
	if err := h(bind.NewChangeEvent(c.PayloadValue())); err != nil {
		return "", err
	}
	if calls != 1 {
		return "", fmt.Errorf("setter invoked %d times, want 1", calls)
	}
	return bind.Format(registry, received, c.Format)
}

func evaluate(c Case, got string, err error) Result {
	res := Result{Case: c.Name, Type: c.Type, Got: got, Err: err}
	if err != nil {
		kind := kindOf(err)
		switch {
		case c.ExpectError == "parse" && kind == errors.KindParsing,
			c.ExpectError == "configuration" && kind == errors.KindConfiguration:
			res.Passed = true
		case c.ExpectError != "":
			res.Reason = fmt.Sprintf("expected %s error, got %s: %v", c.ExpectError, kind, err)
		default:
			res.Reason = err.Error()
		}
		return res
	}
	switch {
	case c.ExpectError != "":
		res.Reason = fmt.Sprintf("expected %s error, got %q", c.ExpectError, got)
	case c.Expect != "" && got != c.Expect:
		res.Reason = fmt.Sprintf("got %q, want %q", got, c.Expect)
	default:
		res.Passed = true
	}
	return res
}

// kindOf classifies err. Registry errors raised outside a binding count as
// configuration errors.
func kindOf(err error) errors.ErrorKind {
	var berr *errors.BindError
	if stderrors.As(err, &berr) {
		return berr.Kind
	}
	var cerr *errors.ConfigurationError
	if stderrors.As(err, &cerr) {
		return errors.KindConfiguration
	}
	return errors.KindUnknown
}

// Failed counts the results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if !res.Passed {
			n++
		}
	}
	return n
}
