package met

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonGrid is the generic fallback format: a plain JSON document carrying the
// three coordinate axes and a map of 3D data variables.
type jsonGrid struct {
	Time      []string       `json:"time"`
	Latitude  []float64      `json:"latitude"`
	Longitude []float64      `json:"longitude"`
	Variables map[string]Var `json:"variables"`
}

func openJSON(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var g jsonGrid
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	if len(g.Time) == 0 || len(g.Latitude) == 0 || len(g.Longitude) == 0 {
		return nil, fmt.Errorf("met: %s: grid document missing coordinate axes", path)
	}

	times := make([]time.Time, len(g.Time))
	for i, s := range g.Time {
		t, err := parseStamp(s)
		if err != nil {
			return nil, err
		}
		times[i] = t
	}

	ds := &Dataset{
		Times: times,
		Lats:  g.Latitude,
		Lons:  g.Longitude,
		Vars:  make(map[string]Var, len(g.Variables)),
	}
	for name, v := range g.Variables {
		if err := checkShape(name, v, len(times), len(g.Latitude), len(g.Longitude)); err != nil {
			return nil, err
		}
		ds.Vars[name] = v
	}

	ds.History = append(ds.History, fmt.Sprintf("opened %s with generic json decoder", path))
	return ds, nil
}
