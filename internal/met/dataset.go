package met

import (
	"strings"
	"time"
)

// Var is one data variable, indexed [time][lat][lon].
type Var [][][]float64

// Dataset is a grid dataset with named dimensional coordinates and named data
// variables. Transformations never mutate a dataset in place; they return a
// new one with the provenance history extended.
type Dataset struct {
	Times   []time.Time
	Lats    []float64
	Lons    []float64
	Vars    map[string]Var
	History []string
}

// HasVar reports whether a data variable with the given name is present.
func (d *Dataset) HasVar(name string) bool {
	_, ok := d.Vars[name]
	return ok
}

// VarNames returns the data variable names in no particular order.
func (d *Dataset) VarNames() []string {
	names := make([]string, 0, len(d.Vars))
	for name := range d.Vars {
		names = append(names, name)
	}
	return names
}

// HistoryString joins the provenance entries into the single append-only log
// string used at presentation time.
func (d *Dataset) HistoryString() string {
	return strings.Join(d.History, "\n")
}

// Summary returns dataset shape information suitable for structured logging.
func (d *Dataset) Summary() []any {
	return []any{
		"dims", []string{"time", "latitude", "longitude"},
		"vars", d.VarNames(),
		"timeCnt", len(d.Times),
		"latCnt", len(d.Lats),
		"lonCnt", len(d.Lons),
	}
}

// shallowClone copies the dataset envelope (coords, var map, history) while
// sharing the underlying data arrays. Data arrays are treated as read-only
// everywhere in this package, so sharing is safe.
func (d *Dataset) shallowClone() *Dataset {
	vars := make(map[string]Var, len(d.Vars))
	for name, v := range d.Vars {
		vars[name] = v
	}
	history := make([]string, len(d.History))
	copy(history, d.History)
	return &Dataset{
		Times:   d.Times,
		Lats:    d.Lats,
		Lons:    d.Lons,
		Vars:    vars,
		History: history,
	}
}
