package radhydro

import "fmt"

// InvariantError reports a cell field that GridCell.CheckInvariants
// found outside its floor or range (spec §7's "Numerical floor hit"
// case is not an error — this type is a caller-facing report of which
// field violates which bound, used by tests and diagnostics, not for
// aborting a run).
type InvariantError struct {
	Field string
	Value float64
	Bound float64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("radhydro: invariant violated: %s=%g violates bound %g", e.Field, e.Value, e.Bound)
}

// CatastrophicError reports the spec §7 "catastrophic numerical
// failure" condition: NaN/Inf in U, or zero DEN/PRE after a subStep.
// The orchestrator aborts the run when this is returned.
type CatastrophicError struct {
	Component string
	Cells     []*GridCell
}

func (e *CatastrophicError) Error() string {
	return fmt.Sprintf("radhydro: %s produced a catastrophic numerical failure in %d cell(s)", e.Component, len(e.Cells))
}

// ConfigError reports an unrecognised configuration value. Per spec
// §7, unknown solver/limiter names are a warning with fallback to
// default, not a fatal error; ConfigError is used for values that
// have no sensible default (e.g. a malformed config file).
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("radhydro: configuration error for %q: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
