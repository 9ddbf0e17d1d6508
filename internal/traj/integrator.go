package traj

import (
	"context"
	"fmt"
)

// Integrate advances a particle from start through field for numSteps forward
// Euler steps with an implicit unit time step. The field is treated as
// steady-state: the same accessor is sampled at every step.
//
// numSteps == 0 yields a single-point trajectory equal to start with no field
// access performed. NaN or Inf returned by the field propagates into the
// positions so downstream consumers can detect divergence.
//
// The context is checked between steps; on cancellation the partial result is
// returned alongside the context's error.
func Integrate(ctx context.Context, start Position, field Field, numSteps int) (*Result, error) {
	if numSteps < 0 {
		return nil, ErrNegativeSteps
	}
	if field == nil {
		return nil, &IntegrationError{Step: 0, Err: ErrNilField}
	}

	result := &Result{
		Positions: make([]Position, 1, numSteps+1),
	}
	result.Positions[0] = start
	result.AppendHistory(fmt.Sprintf("trajectory started from lat=%s, lon=%s",
		formatCoord(start.Lat), formatCoord(start.Lon)))

	var extent *Extent
	if b, ok := field.(Bounded); ok {
		e := b.Bounds()
		extent = &e
	}

	pos := start
	for i := 0; i < numSteps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		u, v, err := field.Sample(pos.Lat, pos.Lon)
		if err != nil {
			return result, &IntegrationError{Step: i, Err: err}
		}

		pos = Position{Lat: pos.Lat + v, Lon: pos.Lon + u}
		result.Positions = append(result.Positions, pos)

		if extent != nil && !extent.Contains(pos.Lat, pos.Lon) {
			result.Warnings = append(result.Warnings, DomainExit{Step: i + 1, Lat: pos.Lat, Lon: pos.Lon})
		}
	}

	return result, nil
}
