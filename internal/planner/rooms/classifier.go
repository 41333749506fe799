package rooms

import (
	"math"

	"floorplan-engine/internal/planner/geometry"
	"floorplan-engine/internal/planner/models"
)

// ============================================================
// Edge Direction Classifier
// ============================================================

// EdgeDirection классифицирует ребро комнаты в две стадии: сначала по
// ориентации (горизонтальное / вертикальное), затем по положению середины
// ребра относительно центра комнаты. Горизонтальное ребро всегда north/south,
// вертикальное всегда east/west, в том числе для Г-образных комнат.
// Ось Y экрана направлена вниз.
func EdgeDirection(start, end, center models.Point) models.Direction {
	angle := math.Atan2(end.Y-start.Y, end.X-start.X) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}

	horizontal := angle <= 45 || angle >= 315 || (angle >= 135 && angle <= 225)
	mid := models.Point{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}

	if horizontal {
		if mid.Y < center.Y {
			return models.North
		}
		return models.South
	}

	if mid.X > center.X {
		return models.East
	}
	return models.West
}

// Centroid возвращает среднее арифметическое вершин (не центр масс площади).
func Centroid(points []models.Point) models.Point {
	if len(points) == 0 {
		return models.Point{}
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	return models.Point{
		X: sumX / float64(len(points)),
		Y: sumY / float64(len(points)),
	}
}

// ClassifyEdges возвращает все ребра замкнутого полигона по порядку:
// ребро i соединяет вершину i с вершиной (i+1) mod n.
func ClassifyEdges(points []models.Point) []models.RoomEdge {
	n := len(points)
	if n < 3 {
		return nil
	}

	center := Centroid(points)
	edges := make([]models.RoomEdge, 0, n)

	for i := 0; i < n; i++ {
		start := points[i]
		end := points[(i+1)%n]
		edges = append(edges, models.RoomEdge{
			Direction:    EdgeDirection(start, end, center),
			Start:        start,
			End:          end,
			LengthPixels: geometry.Distance(start, end),
			EdgeIndex:    i,
		})
	}

	return edges
}

// roomPoints достает вершины комнаты, убирая дубль замыкания.
func roomPoints(room models.Shape) ([]models.Point, bool) {
	if room.Type != models.ShapeRoom && room.Type != models.ShapePolygon {
		return nil, false
	}

	points := room.Points
	if len(points) > 1 {
		first := points[0]
		last := points[len(points)-1]
		if first.X == last.X && first.Y == last.Y {
			points = points[:len(points)-1]
		}
	}

	if len(points) < 3 {
		return nil, false
	}
	for _, p := range points {
		if !geometry.Finite(p.X, p.Y) {
			return nil, false
		}
	}

	return points, true
}
