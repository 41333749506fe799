package geometry

import (
	"math"

	"floorplan-engine/internal/planner/models"
)

// ============================================================
// Wall Geometry
// ============================================================

// MinWallLength: стены короче одной единицы считаются вырожденными.
const MinWallLength = 1.0

// WallGeometryOf строит каноническую систему координат стены.
// Возвращает false, если у фигуры нет концов, координаты не числа
// или стена вырождена.
func WallGeometryOf(wall models.Shape) (models.WallGeometry, bool) {
	if wall.Line == nil {
		return models.WallGeometry{}, false
	}
	l := wall.Line
	return FromSegment(l.X1, l.Y1, l.X2, l.Y2)
}

// FromSegment строит систему координат по двум точкам.
func FromSegment(x1, y1, x2, y2 float64) (models.WallGeometry, bool) {
	if !Finite(x1, y1, x2, y2) {
		return models.WallGeometry{}, false
	}

	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length < MinWallLength {
		return models.WallGeometry{}, false
	}

	unitX := dx / length
	unitY := dy / length

	return models.WallGeometry{
		X1:      x1,
		Y1:      y1,
		X2:      x2,
		Y2:      y2,
		Length:  length,
		Angle:   math.Atan2(dy, dx),
		UnitX:   unitX,
		UnitY:   unitY,
		NormalX: -unitY,
		NormalY: unitX,
	}, true
}

// Project возвращает координаты точки в системе стены:
// вдоль касательной и вдоль нормали, от первого конца.
func Project(g models.WallGeometry, x, y float64) (along, perp float64) {
	px := x - g.X1
	py := y - g.Y1
	along = px*g.UnitX + py*g.UnitY
	perp = px*g.NormalX + py*g.NormalY
	return along, perp
}

// PointAt переводит координаты стены обратно в мировые.
func PointAt(g models.WallGeometry, along, perp float64) models.Point {
	return models.Point{
		X: g.X1 + g.UnitX*along + g.NormalX*perp,
		Y: g.Y1 + g.UnitY*along + g.NormalY*perp,
	}
}

// ============================================================
// Helpers
// ============================================================

// Finite сообщает, что все значения конечны.
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func Distance(a, b models.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// AngleDiff возвращает разницу направлений без учета ориентации, в [0, π/2].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), math.Pi)
	if d > math.Pi/2 {
		d = math.Pi - d
	}
	return d
}

// ClosestOnSegment проецирует точку на отрезок и возвращает параметр t в [0,1]
// и расстояние до ближайшей точки отрезка.
func ClosestOnSegment(p, a, b models.Point) (t, dist float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy

	if lenSq == 0 {
		return 0, Distance(p, a)
	}

	t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = Clamp(t, 0, 1)

	proj := models.Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return t, Distance(p, proj)
}
