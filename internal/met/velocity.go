package met

import (
	"errors"
	"fmt"

	"github.com/windkit/airtraj/internal/grid"
	"github.com/windkit/airtraj/internal/traj"
)

// ErrMissingWind indicates the dataset lacks the canonical u/v wind
// components; run Normalize before building a velocity field.
var ErrMissingWind = errors.New("met: dataset has no canonical u/v wind components")

// VelocityField freezes one time slice of the canonical u/v variables into an
// immutable velocity grid. The integrator treats the field as steady-state,
// so the time dimension is consulted exactly once, here.
//
// Archives often store latitude descending (north first); the slice is
// reordered so the grid's axes ascend.
func (d *Dataset) VelocityField(timeIndex int, interp traj.Interp) (*grid.VelocityGrid, error) {
	u, uok := d.Vars["u"]
	v, vok := d.Vars["v"]
	if !uok || !vok {
		return nil, ErrMissingWind
	}
	if timeIndex < 0 || timeIndex >= len(d.Times) {
		return nil, fmt.Errorf("met: time index %d outside axis of length %d", timeIndex, len(d.Times))
	}

	lats := d.Lats
	uPlane := u[timeIndex]
	vPlane := v[timeIndex]
	if len(lats) > 1 && lats[0] > lats[len(lats)-1] {
		lats = reversed(lats)
		uPlane = reversedRows(uPlane)
		vPlane = reversedRows(vPlane)
	}

	return grid.New(lats, d.Lons, uPlane, vPlane, interp)
}

func reversed(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, x := range s {
		out[len(s)-1-i] = x
	}
	return out
}

func reversedRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}
