package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/windkit/airtraj/internal/traj"
)

// Store persists trajectory runs under a data directory, one subdirectory per
// run with metadata.json and track.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	StartLat  float64   `json:"start_lat"`
	StartLon  float64   `json:"start_lon"`
	Steps     int       `json:"steps"`
	Interp    string    `json:"interp"`
	Warnings  int       `json:"warnings"`
	History   string    `json:"history"`
}

// Save writes one run to disk and returns its generated ID. Source names the
// velocity field origin ("reference" or the met file path).
func (s *Store) Save(source string, start traj.Position, interp traj.Interp, result *traj.Result) (string, error) {
	runID := fmt.Sprintf("traj_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Source:    source,
		StartLat:  start.Lat,
		StartLon:  start.Lon,
		Steps:     result.Len() - 1,
		Interp:    interp.String(),
		Warnings:  len(result.Warnings),
		History:   result.HistoryString(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "track.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"step", "lat", "lon"}); err != nil {
		return "", err
	}
	for i, p := range result.Positions {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.Lat, 'f', 6, 64),
			strconv.FormatFloat(p.Lon, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrack reads a saved trajectory back as ordered positions.
func (s *Store) LoadTrack(runID string) ([]traj.Position, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "track.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []traj.Position{}, nil
	}

	track := make([]traj.Position, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		lat, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		track = append(track, traj.Position{Lat: lat, Lon: lon})
	}

	return track, nil
}
