package met

import (
	"fmt"
	"strconv"
	"time"
)

// timeStamp is the layout subset provenance and range parsing use.
const timeStamp = "2006-01-02T15:04"

// TimeRange is an inclusive time interval.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// ParseTimeRange parses start/end stamps like "2023-01-01T02:00", accepting
// RFC 3339 as a fallback.
func ParseTimeRange(start, end string) (TimeRange, error) {
	s, err := parseStamp(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := parseStamp(end)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: s, End: e}, nil
}

func parseStamp(s string) (time.Time, error) {
	if t, err := time.Parse(timeStamp, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("met: cannot parse time %q: %w", s, err)
	}
	return t, nil
}

// Bounds is an inclusive numeric interval on a spatial axis.
type Bounds struct {
	Min float64
	Max float64
}

func (b Bounds) contains(x float64) bool {
	return x >= b.Min && x <= b.Max
}

// Subset selects the inclusive time/lat/lon ranges independently on each axis
// and returns a new dataset. One provenance line describing the requested
// bounds is appended to the existing history; prior entries are preserved, so
// repeating an identical call grows the log by one identical line while the
// data stays unchanged.
func (d *Dataset) Subset(tr TimeRange, latBounds, lonBounds Bounds) *Dataset {
	timeIdx := make([]int, 0, len(d.Times))
	for i, t := range d.Times {
		if !t.Before(tr.Start) && !t.After(tr.End) {
			timeIdx = append(timeIdx, i)
		}
	}
	latIdx := selectAxis(d.Lats, latBounds)
	lonIdx := selectAxis(d.Lons, lonBounds)

	out := &Dataset{
		Times: make([]time.Time, len(timeIdx)),
		Lats:  make([]float64, len(latIdx)),
		Lons:  make([]float64, len(lonIdx)),
		Vars:  make(map[string]Var, len(d.Vars)),
	}
	for i, ti := range timeIdx {
		out.Times[i] = d.Times[ti]
	}
	for i, li := range latIdx {
		out.Lats[i] = d.Lats[li]
	}
	for i, li := range lonIdx {
		out.Lons[i] = d.Lons[li]
	}

	for name, v := range d.Vars {
		sub := make(Var, len(timeIdx))
		for i, ti := range timeIdx {
			sub[i] = make([][]float64, len(latIdx))
			for j, li := range latIdx {
				row := make([]float64, len(lonIdx))
				for k, lo := range lonIdx {
					row[k] = v[ti][li][lo]
				}
				sub[i][j] = row
			}
		}
		out.Vars[name] = sub
	}

	out.History = append(out.History, d.History...)
	out.History = append(out.History, fmt.Sprintf("subset time=[%s, %s] lat=[%s, %s] lon=[%s, %s]",
		tr.Start.Format(timeStamp), tr.End.Format(timeStamp),
		formatBound(latBounds.Min), formatBound(latBounds.Max),
		formatBound(lonBounds.Min), formatBound(lonBounds.Max)))
	return out
}

func selectAxis(axis []float64, b Bounds) []int {
	idx := make([]int, 0, len(axis))
	for i, x := range axis {
		if b.contains(x) {
			idx = append(idx, i)
		}
	}
	return idx
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
