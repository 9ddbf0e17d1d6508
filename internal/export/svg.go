package export

import (
	"fmt"
	"strings"

	"github.com/windkit/airtraj/internal/traj"
)

// TrackToSVG renders a trajectory as an SVG polyline, longitude on x and
// latitude on y, with 10% padding around the track's bounding box.
func TrackToSVG(track []traj.Position, width, height int, strokeColor string) string {
	if len(track) < 2 {
		return ""
	}

	minLon, maxLon := track[0].Lon, track[0].Lon
	minLat, maxLat := track[0].Lat, track[0].Lat
	for _, p := range track {
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
	}

	rangeLon := maxLon - minLon
	rangeLat := maxLat - minLat
	if rangeLon == 0 {
		rangeLon = 1
	}
	if rangeLat == 0 {
		rangeLat = 1
	}
	minLon -= rangeLon * 0.1
	maxLon += rangeLon * 0.1
	minLat -= rangeLat * 0.1
	maxLat += rangeLat * 0.1
	rangeLon = maxLon - minLon
	rangeLat = maxLat - minLat

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range track {
		x := (p.Lon - minLon) / rangeLon * float64(width)
		y := float64(height) - (p.Lat-minLat)/rangeLat*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
