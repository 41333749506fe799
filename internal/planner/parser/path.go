package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"floorplan-engine/internal/planner/models"
)

// ============================================================
// Path Parser
// ============================================================

var (
	commandRe = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)
	numberRe  = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
)

// ParsePath разбирает SVG path из прямых сегментов (M, L, H, V, Z) в список
// точек. Повторяющиеся пары координат после команды трактуются как
// неявные LineTo.
func ParsePath(d string) ([]models.Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	matches := commandRe.FindAllStringSubmatch(d, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no path commands in %q", d)
	}

	var points []models.Point
	var cur, start models.Point

	for _, match := range matches {
		cmd := match[1]
		coords := parseCoords(match[2])
		relative := strings.ToLower(cmd) == cmd

		switch strings.ToUpper(cmd) {
		case "M", "L":
			for i := 0; i+1 < len(coords); i += 2 {
				next := models.Point{X: coords[i], Y: coords[i+1]}
				if relative {
					next.X += cur.X
					next.Y += cur.Y
				}
				cur = next
				if strings.ToUpper(cmd) == "M" && i == 0 {
					start = cur
				}
				points = append(points, cur)
			}

		case "H":
			for _, x := range coords {
				if relative {
					cur.X += x
				} else {
					cur.X = x
				}
				points = append(points, cur)
			}

		case "V":
			for _, y := range coords {
				if relative {
					cur.Y += y
				} else {
					cur.Y = y
				}
				points = append(points, cur)
			}

		case "Z":
			// Замыкаем контур, возвращаясь к началу подпути
			if len(points) > 0 {
				points = append(points, start)
				cur = start
			}
		}
	}

	return points, nil
}

func parseCoords(s string) []float64 {
	var coords []float64
	for _, part := range numberRe.FindAllString(s, -1) {
		val, err := strconv.ParseFloat(part, 64)
		if err == nil {
			coords = append(coords, val)
		}
	}
	return coords
}

// ParsePoints разбирает атрибут points у <polygon>/<polyline>.
func ParsePoints(s string) []models.Point {
	coords := parseCoords(s)
	points := make([]models.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, models.Point{X: coords[i], Y: coords[i+1]})
	}
	return points
}
