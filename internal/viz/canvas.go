package viz

import (
	"fmt"
	"strings"

	"github.com/windkit/airtraj/internal/traj"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set marks a pixel at (x, y) in sub-pixel coordinates. The canvas size in
// sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// projection maps lat/lon onto canvas sub-pixel coordinates, longitude east
// on x and latitude north up.
type projection struct {
	extent traj.Extent
	w, h   int
}

func newProjection(extent traj.Extent, c *Canvas) projection {
	return projection{extent: extent, w: c.Width * 2, h: c.Height * 4}
}

func (p projection) point(pos traj.Position) (int, int) {
	rangeLon := p.extent.LonMax - p.extent.LonMin
	rangeLat := p.extent.LatMax - p.extent.LatMin
	if rangeLon == 0 {
		rangeLon = 1
	}
	if rangeLat == 0 {
		rangeLat = 1
	}
	x := int(float64(p.w-1) * (pos.Lon - p.extent.LonMin) / rangeLon)
	y := int(float64(p.h-1) * (1 - (pos.Lat-p.extent.LatMin)/rangeLat))
	return x, y
}

// trackExtent pads the track's bounding box so the path never hugs the frame.
func trackExtent(track []traj.Position) traj.Extent {
	e := traj.Extent{
		LatMin: track[0].Lat, LatMax: track[0].Lat,
		LonMin: track[0].Lon, LonMax: track[0].Lon,
	}
	for _, p := range track {
		if p.Lat < e.LatMin {
			e.LatMin = p.Lat
		}
		if p.Lat > e.LatMax {
			e.LatMax = p.Lat
		}
		if p.Lon < e.LonMin {
			e.LonMin = p.Lon
		}
		if p.Lon > e.LonMax {
			e.LonMax = p.Lon
		}
	}
	padLat := (e.LatMax - e.LatMin) * 0.1
	padLon := (e.LonMax - e.LonMin) * 0.1
	if padLat == 0 {
		padLat = 0.5
	}
	if padLon == 0 {
		padLon = 0.5
	}
	e.LatMin -= padLat
	e.LatMax += padLat
	e.LonMin -= padLon
	e.LonMax += padLon
	return e
}

// TrackMap renders a trajectory as a braille map with the extent labeled on
// the corners.
func TrackMap(track []traj.Position, width, height int) string {
	if len(track) == 0 {
		return ""
	}

	c := NewCanvas(width, height)
	extent := trackExtent(track)
	proj := newProjection(extent, c)

	x0, y0 := proj.point(track[0])
	for _, pos := range track[1:] {
		x1, y1 := proj.point(pos)
		c.DrawLine(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}

	var b strings.Builder
	b.WriteString(c.String())
	b.WriteString(strings.TrimRight(strings.Join([]string{
		formatCorner("lat", extent.LatMin, extent.LatMax),
		formatCorner("lon", extent.LonMin, extent.LonMax),
	}, "  "), " "))
	b.WriteString("\n")
	return b.String()
}

func formatCorner(axis string, min, max float64) string {
	return fmt.Sprintf("%s: [%.2f, %.2f]", axis, min, max)
}
