package radhydro

import (
	"errors"
	"testing"
)

func TestInvariantErrorMessage(t *testing.T) {
	err := &InvariantError{Field: "DEN", Value: 1e-30, Bound: 1e-24}
	if err.Error() == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestCatastrophicErrorReportsCellCount(t *testing.T) {
	cells := []*GridCell{{}, {}, {}}
	err := &CatastrophicError{Component: "hydro", Cells: cells}
	msg := err.Error()
	if msg == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestConfigErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &ConfigError{Key: "dtmax", Err: inner}
	if errors.Unwrap(err) != inner {
		t.Error("ConfigError.Unwrap did not return the wrapped error")
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is did not match through ConfigError")
	}
}
