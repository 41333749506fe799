package attach

import (
	"math"

	"floorplan-engine/internal/planner/geometry"
	"floorplan-engine/internal/planner/models"
)

// ============================================================
// Wall Attachment
// ============================================================

// DefaultSnapThreshold: максимальное расстояние до стены для привязки, в мировых единицах.
const DefaultSnapThreshold = 500.0

type NearestWall struct {
	Wall     models.Shape
	Distance float64
	T        float64
}

// FindNearestWallForPoint ищет ближайшую стену в пределах maxDistance.
// Проекция точки на отрезок ограничена t ∈ [0,1].
func FindNearestWallForPoint(x, y float64, walls []models.Shape, maxDistance float64) (NearestWall, bool) {
	if !geometry.Finite(x, y) {
		return NearestWall{}, false
	}

	p := models.Point{X: x, Y: y}
	best := NearestWall{Distance: math.MaxFloat64}
	found := false

	for _, wall := range walls {
		if wall.Type != models.ShapeWall {
			continue
		}
		g, ok := geometry.WallGeometryOf(wall)
		if !ok {
			continue
		}

		t, dist := geometry.ClosestOnSegment(p, models.Point{X: g.X1, Y: g.Y1}, models.Point{X: g.X2, Y: g.Y2})
		if dist > maxDistance || dist >= best.Distance {
			continue
		}

		best = NearestWall{Wall: wall, Distance: dist, T: t}
		found = true
	}

	return best, found
}

// CalculateWallAttachment вычисляет позицию объекта на стене. Центр объекта
// ограничен отрезком [width/2, length-width/2], чтобы объект не выходил
// за концы стены. Смещение от стены берется из existing, иначе 0.
func CalculateWallAttachment(centerX, centerY, width, depth float64, wall models.Shape, existing *models.WallRelativePosition) (models.WallRelativePosition, bool) {
	g, ok := geometry.WallGeometryOf(wall)
	if !ok || !geometry.Finite(centerX, centerY, width, depth) {
		return models.WallRelativePosition{}, false
	}

	along, _ := geometry.Project(g, centerX, centerY)

	var center float64
	if width >= g.Length {
		center = g.Length / 2
	} else {
		center = geometry.Clamp(along, width/2, g.Length-width/2)
	}

	wr := models.WallRelativePosition{
		WallID:                wall.ID,
		DistanceFromWallStart: center - width/2,
		Width:                 width,
		Depth:                 depth,
	}

	if existing != nil {
		wr.PerpendicularOffset = existing.PerpendicularOffset
		wr.Height = existing.Height
		wr.ElevationBottom = math.Max(0, existing.ElevationBottom)
	}

	return wr, true
}

// SnapObjectToWall привязывает объект к ближайшей стене. Возвращает false,
// если стены рядом нет или объект уже стоит на этой стене в той же позиции.
func SnapObjectToWall(shape models.Shape, walls []models.Shape, snapThreshold float64) (models.ShapeUpdate, bool) {
	if snapThreshold <= 0 {
		snapThreshold = DefaultSnapThreshold
	}

	center, ok := objectCenter(shape)
	if !ok {
		return models.ShapeUpdate{}, false
	}

	nearest, ok := FindNearestWallForPoint(center.X, center.Y, walls, snapThreshold)
	if !ok {
		return models.ShapeUpdate{}, false
	}

	dims := fillDimensions(shape)
	defaults := DefaultsFor(shape.Category)

	var existing *models.WallRelativePosition
	if shape.WallRelative != nil && shape.WallRelative.WallID == nearest.Wall.ID {
		existing = shape.WallRelative
	}

	wr, ok := CalculateWallAttachment(center.X, center.Y, dims.Width, dims.Depth, nearest.Wall, existing)
	if !ok {
		return models.ShapeUpdate{}, false
	}

	wr.Height = dims.Height
	if existing == nil {
		wr.ElevationBottom = defaults.ElevationBottom
		if shape.ElevationBottomMM > 0 {
			wr.ElevationBottom = shape.ElevationBottomMM
		}
	}

	pos, ok := geometry.WallRelativeToWorld(wr, nearest.Wall)
	if !ok {
		return models.ShapeUpdate{}, false
	}

	placement := models.Placement{X: pos.X, Y: pos.Y, Rotation: pos.Rotation}
	if existing != nil && *existing == wr && shape.Placement != nil && samePlacement(*shape.Placement, placement) {
		return models.ShapeUpdate{}, false
	}

	return models.ShapeUpdate{
		Placement:    &placement,
		Dimensions:   &dims,
		WallRelative: &wr,
	}, true
}

// ============================================================
// Helpers
// ============================================================

func objectCenter(shape models.Shape) (models.Point, bool) {
	switch {
	case shape.Placement != nil:
		return models.Point{X: shape.Placement.X, Y: shape.Placement.Y}, geometry.Finite(shape.Placement.X, shape.Placement.Y)
	case shape.Rect != nil:
		r := shape.Rect
		return models.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}, geometry.Finite(r.X, r.Y, r.Width, r.Height)
	}
	return models.Point{}, false
}

func samePlacement(a, b models.Placement) bool {
	const eps = 1e-6
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Rotation-b.Rotation) < eps
}
