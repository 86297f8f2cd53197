package bind

import (
	"time"

	drifterrors "github.com/go-drift/bind/pkg/errors"
)

// GetValue returns value unchanged. Templates call it to read a bound
// property for display.
func GetValue[T any](value T) T {
	return value
}

// GetTimeValue renders a bound time for display. The zero time renders as
// "" so an unset date does not show a sentinel; otherwise format is applied,
// or DefaultTimeLayout when format is "".
func GetTimeValue(value time.Time, format string) (string, error) {
	s, err := formatTime(value, format)
	if err != nil {
		return "", &drifterrors.BindError{
			Op:        "bind.GetTimeValue",
			Kind:      drifterrors.KindConfiguration,
			Type:      "time.Time",
			Err:       &drifterrors.ConfigurationError{Type: "time.Time", Reason: err.Error()},
			Timestamp: time.Now(),
		}
	}
	return s, nil
}

// Format renders value with the strategy registered for T.
func Format[T any](r *Registry, value T, format string) (string, error) {
	s, err := lookup[T](r)
	if err != nil {
		return "", err
	}
	return s.Format(value, format)
}
