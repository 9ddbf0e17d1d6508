package traj

// Position is a particle location in degrees. Values are unbounded: nothing
// wraps at the date line or clamps at the poles.
type Position struct {
	Lat float64
	Lon float64
}

// Interp selects the sampling strategy a field accessor applies when a query
// point falls between grid nodes.
type Interp int

const (
	// Nearest snaps to the closest grid node. Default.
	Nearest Interp = iota
	// Bilinear blends the four surrounding nodes.
	Bilinear
)

func (i Interp) String() string {
	switch i {
	case Bilinear:
		return "bilinear"
	default:
		return "nearest"
	}
}

// ParseInterp maps a config/CLI name to an Interp, defaulting to Nearest.
func ParseInterp(name string) Interp {
	if name == "bilinear" {
		return Bilinear
	}
	return Nearest
}

// Field is the capability the integrator needs from a velocity field: point
// sampling of (u, v) at a continuous position. Implementations must be
// deterministic and side-effect-free; Sample must not mutate field state.
type Field interface {
	Sample(lat, lon float64) (u, v float64, err error)
}

// FieldFunc adapts a plain function to the Field interface.
type FieldFunc func(lat, lon float64) (u, v float64, err error)

func (f FieldFunc) Sample(lat, lon float64) (float64, float64, error) {
	return f(lat, lon)
}

// Bounded is an optional Field extension exposing the coverage extent, used
// only for advisory domain-exit detection.
type Bounded interface {
	Bounds() Extent
}

// Extent is an inclusive lat/lon bounding box.
type Extent struct {
	LatMin, LatMax float64
	LonMin, LonMax float64
}

func (e Extent) Contains(lat, lon float64) bool {
	return lat >= e.LatMin && lat <= e.LatMax && lon >= e.LonMin && lon <= e.LonMax
}
