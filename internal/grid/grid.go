// Package grid implements the velocity field accessor over a regular
// latitude/longitude grid.
package grid

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/windkit/airtraj/internal/traj"
)

var (
	ErrEmptyAxis    = errors.New("grid: coordinate axis is empty")
	ErrUnsortedAxis = errors.New("grid: coordinate axis must be strictly ascending")
)

// VelocityGrid is a discretized (u, v) field indexed by grid coordinates.
// It is immutable after construction; Sample never mutates state, so a single
// grid can back any number of trajectory runs.
type VelocityGrid struct {
	lats   []float64
	lons   []float64
	u      [][]float64 // [lat][lon]
	v      [][]float64
	interp traj.Interp
}

// New validates the axes and component arrays and builds a grid. Axes must be
// strictly ascending; u and v must both be len(lats) rows of len(lons) values.
func New(lats, lons []float64, u, v [][]float64, interp traj.Interp) (*VelocityGrid, error) {
	if len(lats) == 0 || len(lons) == 0 {
		return nil, ErrEmptyAxis
	}
	if !ascending(lats) || !ascending(lons) {
		return nil, ErrUnsortedAxis
	}
	for name, comp := range map[string][][]float64{"u": u, "v": v} {
		if len(comp) != len(lats) {
			return nil, fmt.Errorf("grid: %s has %d rows, want %d", name, len(comp), len(lats))
		}
		for i, row := range comp {
			if len(row) != len(lons) {
				return nil, fmt.Errorf("grid: %s row %d has %d values, want %d", name, i, len(row), len(lons))
			}
		}
	}
	return &VelocityGrid{lats: lats, lons: lons, u: u, v: v, interp: interp}, nil
}

// Sample returns the interpolated (u, v) at a continuous position under the
// grid's configured strategy. Queries outside the covered extent clamp to the
// nearest edge value rather than failing.
func (g *VelocityGrid) Sample(lat, lon float64) (float64, float64, error) {
	if g.interp == traj.Bilinear {
		return g.bilinear(lat, lon)
	}
	return g.nearest(lat, lon)
}

// Bounds returns the inclusive coverage extent.
func (g *VelocityGrid) Bounds() traj.Extent {
	return traj.Extent{
		LatMin: g.lats[0],
		LatMax: g.lats[len(g.lats)-1],
		LonMin: g.lons[0],
		LonMax: g.lons[len(g.lons)-1],
	}
}

func (g *VelocityGrid) nearest(lat, lon float64) (float64, float64, error) {
	i := nearestIndex(g.lats, lat)
	j := nearestIndex(g.lons, lon)
	return g.u[i][j], g.v[i][j], nil
}

func (g *VelocityGrid) bilinear(lat, lon float64) (float64, float64, error) {
	i0, i1, ft := bracket(g.lats, lat)
	j0, j1, fu := bracket(g.lons, lon)

	u := lerp(lerp(g.u[i0][j0], g.u[i0][j1], fu), lerp(g.u[i1][j0], g.u[i1][j1], fu), ft)
	v := lerp(lerp(g.v[i0][j0], g.v[i0][j1], fu), lerp(g.v[i1][j0], g.v[i1][j1], fu), ft)
	return u, v, nil
}

// nearestIndex returns the index of the axis value closest to x, clamping to
// the edges outside the axis range. Ties snap to the lower index.
func nearestIndex(axis []float64, x float64) int {
	i := sort.SearchFloat64s(axis, x)
	if i == 0 {
		return 0
	}
	if i == len(axis) {
		return len(axis) - 1
	}
	if x-axis[i-1] <= axis[i]-x {
		return i - 1
	}
	return i
}

// bracket returns the indices surrounding x and the interpolation fraction,
// clamped to [0, 1] at the domain edges.
func bracket(axis []float64, x float64) (int, int, float64) {
	i := sort.SearchFloat64s(axis, x)
	switch {
	case i == 0:
		return 0, 0, 0
	case i == len(axis):
		last := len(axis) - 1
		return last, last, 0
	}
	lo, hi := i-1, i
	f := (x - axis[lo]) / (axis[hi] - axis[lo])
	return lo, hi, f
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

func ascending(axis []float64) bool {
	for i := 1; i < len(axis); i++ {
		if axis[i] <= axis[i-1] {
			return false
		}
	}
	return true
}

// SolidBodyRotation builds the reference rotation field used for demos and
// tests: u = -sin(lat)*cos(lon), v = sin(lon), with lat/lon in radians, over
// a 10-degree latitude by 20-degree longitude global grid.
func SolidBodyRotation(interp traj.Interp) *VelocityGrid {
	lats := stepRange(-90, 90, 10)
	lons := stepRange(-180, 180, 20)

	u := make([][]float64, len(lats))
	v := make([][]float64, len(lats))
	for i, lat := range lats {
		u[i] = make([]float64, len(lons))
		v[i] = make([]float64, len(lons))
		for j, lon := range lons {
			latRad := lat * math.Pi / 180
			lonRad := lon * math.Pi / 180
			u[i][j] = -math.Sin(latRad) * math.Cos(lonRad)
			v[i][j] = math.Sin(lonRad)
		}
	}

	g, err := New(lats, lons, u, v, interp)
	if err != nil {
		panic(err) // static axes, cannot fail
	}
	return g
}

func stepRange(lo, hi, step float64) []float64 {
	var out []float64
	for x := lo; x <= hi; x += step {
		out = append(out, x)
	}
	return out
}
