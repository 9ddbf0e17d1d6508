package viz

import (
	"strings"
	"testing"

	"github.com/windkit/airtraj/internal/traj"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected pixel set at origin")
	}

	// out of range is a no-op
	c.Set(-1, 0)
	c.Set(100, 100)

	c.Clear()
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatalf("cell (%d,%d) not cleared", i, j)
			}
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)

	if c.Grid[0][0] == 0x2800 {
		t.Error("line start not drawn")
	}
	if c.Grid[4][9] == 0x2800 {
		t.Error("line end not drawn")
	}
}

func TestTrackMap(t *testing.T) {
	track := []traj.Position{
		{Lat: 0, Lon: 0},
		{Lat: 5, Lon: 5},
		{Lat: 10, Lon: 15},
	}

	out := TrackMap(track, 20, 8)

	if out == "" {
		t.Fatal("expected rendered map")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 9 {
		t.Errorf("expected 8 canvas rows plus label line, got %d", len(lines))
	}
	if !strings.Contains(lines[8], "lat:") || !strings.Contains(lines[8], "lon:") {
		t.Errorf("missing extent labels: %q", lines[8])
	}
}

func TestTrackMapEmpty(t *testing.T) {
	if out := TrackMap(nil, 10, 5); out != "" {
		t.Error("empty track should render nothing")
	}
}

func TestTrackMapSinglePoint(t *testing.T) {
	out := TrackMap([]traj.Position{{Lat: 45, Lon: 90}}, 10, 5)
	if out == "" {
		t.Error("single point should still render a map")
	}
}
