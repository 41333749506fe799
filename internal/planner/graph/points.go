package graph

import (
	"math"

	"floorplan-engine/internal/planner/geometry"
	"floorplan-engine/internal/planner/models"

	"github.com/paulmach/orb"
)

// ============================================================
// Connection points
// ============================================================

// ConnectionPoints возвращает точки фигуры, через которые она может
// соединяться с соседями: концы линий, углы прямоугольников, вершины
// полигонов, центр окружности, опорные точки кривой Безье.
func ConnectionPoints(shape models.Shape) []orb.Point {
	var out []orb.Point

	switch {
	case shape.Line != nil:
		l := shape.Line
		out = []orb.Point{{l.X1, l.Y1}, {l.X2, l.Y2}}
	case shape.Rect != nil:
		r := shape.Rect
		out = rectanglePoints(r.X+r.Width/2, r.Y+r.Height/2, r.Width, r.Height, r.Rotation)
	case len(shape.Points) > 0:
		out = make([]orb.Point, 0, len(shape.Points))
		for _, p := range shape.Points {
			out = append(out, orb.Point{p.X, p.Y})
		}
	case shape.Circle != nil:
		out = []orb.Point{{shape.Circle.CX, shape.Circle.CY}}
	case shape.Bezier != nil:
		b := shape.Bezier
		out = []orb.Point{{b.Start.X, b.Start.Y}, {b.Control.X, b.Control.Y}, {b.End.X, b.End.Y}}
	case shape.Placement != nil && shape.Dimensions != nil:
		p := shape.Placement
		out = rectanglePoints(p.X, p.Y, shape.Dimensions.Width, shape.Dimensions.Depth, p.Rotation)
	}

	valid := out[:0]
	for _, p := range out {
		if geometry.Finite(p[0], p[1]) {
			valid = append(valid, p)
		}
	}
	return valid
}

// rectanglePoints возвращает углы прямоугольника с центром (cx, cy), повернутого на
// rotationDeg градусов.
func rectanglePoints(cx, cy, width, height, rotationDeg float64) []orb.Point {
	halfW := width / 2
	halfH := height / 2

	points := []orb.Point{
		{cx - halfW, cy - halfH},
		{cx + halfW, cy - halfH},
		{cx + halfW, cy + halfH},
		{cx - halfW, cy + halfH},
	}

	if rotationDeg == 0 {
		return points
	}

	rad := rotationDeg * math.Pi / 180
	sin := math.Sin(rad)
	cos := math.Cos(rad)

	for i, p := range points {
		dx := p[0] - cx
		dy := p[1] - cy
		points[i] = orb.Point{
			cx + dx*cos - dy*sin,
			cy + dx*sin + dy*cos,
		}
	}

	return points
}
