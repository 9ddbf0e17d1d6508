package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/windkit/airtraj/internal/traj"
)

// RunData is the flat JSON export shape for one trajectory run.
type RunData struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Interp   string    `json:"interp"`
	Steps    int       `json:"steps"`
	Lats     []float64 `json:"lats"`
	Lons     []float64 `json:"lons"`
	History  string    `json:"history"`
	Warnings []string  `json:"warnings,omitempty"`
}

// NewRunData flattens a result into the export shape.
func NewRunData(id, source string, interp traj.Interp, result *traj.Result) RunData {
	data := RunData{
		ID:      id,
		Source:  source,
		Interp:  interp.String(),
		Steps:   result.Len() - 1,
		Lats:    make([]float64, result.Len()),
		Lons:    make([]float64, result.Len()),
		History: result.HistoryString(),
	}
	for i, p := range result.Positions {
		data.Lats[i] = p.Lat
		data.Lons[i] = p.Lon
	}
	for _, w := range result.Warnings {
		data.Warnings = append(data.Warnings, w.String())
	}
	return data
}

// WriteJSON encodes the run as indented JSON.
func WriteJSON(w io.Writer, data RunData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// SaveJSON writes the run to a file.
func SaveJSON(path string, data RunData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
