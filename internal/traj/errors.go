package traj

import (
	"errors"
	"fmt"
)

var (
	// ErrNilField indicates integration was requested without a field accessor.
	ErrNilField = errors.New("traj: nil velocity field")

	// ErrNegativeSteps indicates a negative step count.
	ErrNegativeSteps = errors.New("traj: step count must be non-negative")
)

// IntegrationError reports a failed field sample. Step is the index of the
// step being computed when sampling failed, so callers can distinguish a bad
// initial condition (step 0) from a mid-trajectory collaborator failure.
type IntegrationError struct {
	Step int
	Err  error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("traj: step %d: %v", e.Step, e.Err)
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

// DomainExit is an advisory warning: the trajectory left the field's known
// coverage extent at the given step. Integration continues on clamped edge
// values; nothing is fatal about this.
type DomainExit struct {
	Step int
	Lat  float64
	Lon  float64
}

func (w DomainExit) String() string {
	return fmt.Sprintf("step %d left field extent at lat=%.4f, lon=%.4f", w.Step, w.Lat, w.Lon)
}
