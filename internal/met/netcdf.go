package met

import (
	"fmt"
	"time"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Reanalysis archives encode the time axis as hours since 1900-01-01.
//
// TZ=UTC date --date="1900-01-01 00:00:00" +%s
const unixSecs1900 = -2208988800

var latNames = []string{"latitude", "lat"}
var lonNames = []string{"longitude", "lon"}
var timeNames = []string{"time", "valid_time"}

func openNetCDF(path string) (*Dataset, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer nc.Close()

	lats, latName, err := axisValues(nc, latNames)
	if err != nil {
		return nil, err
	}
	lons, lonName, err := axisValues(nc, lonNames)
	if err != nil {
		return nil, err
	}
	times, timeName, err := timeValues(nc, timeNames)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Times: times,
		Lats:  lats,
		Lons:  lons,
		Vars:  make(map[string]Var),
	}

	coords := map[string]bool{latName: true, lonName: true, timeName: true}
	for _, name := range nc.ListVariables() {
		if coords[name] {
			continue
		}
		vg, err := nc.GetVarGetter(name)
		if err != nil {
			return nil, err
		}
		raw, err := vg.Values()
		if err != nil {
			return nil, err
		}
		v, ok := toVar(raw)
		if !ok {
			// not a time x lat x lon variable; skip
			continue
		}
		if err := checkShape(name, v, len(times), len(lats), len(lons)); err != nil {
			return nil, err
		}
		ds.Vars[name] = v
	}

	ds.History = append(ds.History, fmt.Sprintf("opened %s with netcdf engine", path))
	return ds, nil
}

// axisValues reads the first present coordinate variable among names.
func axisValues(nc api.Group, names []string) ([]float64, string, error) {
	for _, name := range names {
		vg, err := nc.GetVarGetter(name)
		if err != nil {
			continue
		}
		raw, err := vg.Values()
		if err != nil {
			return nil, "", err
		}
		vals, ok := toFloat64s(raw)
		if !ok {
			return nil, "", fmt.Errorf("met: coordinate %q has unsupported type %T", name, raw)
		}
		return vals, name, nil
	}
	return nil, "", fmt.Errorf("met: no coordinate found among %v", names)
}

func timeValues(nc api.Group, names []string) ([]time.Time, string, error) {
	hours, name, err := axisValues(nc, names)
	if err != nil {
		return nil, "", err
	}
	times := make([]time.Time, len(hours))
	for i, h := range hours {
		times[i] = time.Unix(int64(h)*3600+unixSecs1900, 0).UTC()
	}
	return times, name, nil
}

func toFloat64s(raw any) ([]float64, bool) {
	switch v := raw.(type) {
	case []float64:
		return v, true
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, true
	case []int32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, true
	case []int64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, true
	default:
		return nil, false
	}
}

func toVar(raw any) (Var, bool) {
	switch v := raw.(type) {
	case [][][]float64:
		return Var(v), true
	case [][][]float32:
		return convertVar(v, func(x float32) float64 { return float64(x) }), true
	case [][][]int16:
		return convertVar(v, func(x int16) float64 { return float64(x) }), true
	case [][][]int32:
		return convertVar(v, func(x int32) float64 { return float64(x) }), true
	default:
		return nil, false
	}
}

func convertVar[T float32 | int16 | int32](src [][][]T, conv func(T) float64) Var {
	out := make(Var, len(src))
	for i, plane := range src {
		out[i] = make([][]float64, len(plane))
		for j, row := range plane {
			vals := make([]float64, len(row))
			for k, x := range row {
				vals[k] = conv(x)
			}
			out[i][j] = vals
		}
	}
	return out
}

func checkShape(name string, v Var, nt, nlat, nlon int) error {
	if len(v) != nt {
		return fmt.Errorf("met: %s has %d time planes, want %d", name, len(v), nt)
	}
	for _, plane := range v {
		if len(plane) != nlat {
			return fmt.Errorf("met: %s has %d latitude rows, want %d", name, len(plane), nlat)
		}
		for _, row := range plane {
			if len(row) != nlon {
				return fmt.Errorf("met: %s has %d longitude values, want %d", name, len(row), nlon)
			}
		}
	}
	return nil
}
