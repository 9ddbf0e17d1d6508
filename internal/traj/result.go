package traj

import (
	"strconv"
	"strings"
)

// Result is an immutable trajectory: positions indexed by integer step plus a
// provenance log. Positions[0] is always the exact starting point.
type Result struct {
	Positions []Position
	History   []string
	Warnings  []DomainExit
}

// Len returns the number of samples in the trajectory (steps + 1).
func (r *Result) Len() int { return len(r.Positions) }

// HistoryString joins the provenance entries into the single append-only log
// string used at export time. Entries are kept as an ordered list internally
// so downstream transformations can append without string parsing.
func (r *Result) HistoryString() string {
	return strings.Join(r.History, "\n")
}

// AppendHistory records one more provenance entry.
func (r *Result) AppendHistory(line string) {
	r.History = append(r.History, line)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
