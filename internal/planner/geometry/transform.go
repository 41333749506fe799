package geometry

import (
	"math"

	"floorplan-engine/internal/planner/models"
)

// ============================================================
// World <-> Wall-relative
// ============================================================

// WorldToWallRelative переводит центр объекта в позицию относительно стены.
// Хранимая позиция отсчитывается от переднего края, поэтому из проекций
// вычитается половина ширины и глубины.
func WorldToWallRelative(worldX, worldY float64, wall models.Shape, width, depth, height, elevationBottom float64) (models.WallRelativePosition, bool) {
	g, ok := WallGeometryOf(wall)
	if !ok || !Finite(worldX, worldY, width, depth, height, elevationBottom) {
		return models.WallRelativePosition{}, false
	}

	along, perp := Project(g, worldX, worldY)

	return models.WallRelativePosition{
		WallID:                wall.ID,
		DistanceFromWallStart: along - width/2,
		PerpendicularOffset:   perp - depth/2,
		ElevationBottom:       elevationBottom,
		Width:                 width,
		Height:                height,
		Depth:                 depth,
	}, true
}

// WallRelativeToWorld восстанавливает центр объекта и его поворот в градусах.
func WallRelativeToWorld(wr models.WallRelativePosition, wall models.Shape) (models.WorldPosition, bool) {
	g, ok := WallGeometryOf(wall)
	if !ok || !Finite(wr.DistanceFromWallStart, wr.PerpendicularOffset, wr.Width, wr.Depth) {
		return models.WorldPosition{}, false
	}

	center := PointAt(g, wr.DistanceFromWallStart+wr.Width/2, wr.PerpendicularOffset+wr.Depth/2)

	return models.WorldPosition{
		X:        center.X,
		Y:        center.Y,
		Rotation: g.Angle * 180 / math.Pi,
	}, true
}

// ============================================================
// Wall-relative <-> Elevation
// ============================================================

// WallRelativeToElevation переводит позицию в мм в пиксели вида развертки.
// Ось X идет вдоль стены от wallXOffset, ось Y отсчитывается от пола.
func WallRelativeToElevation(wr models.WallRelativePosition, wall models.Shape, wallHeightMM, effectiveScale, wallXOffset, wallYOffset float64) (models.ScreenRect, bool) {
	if !validScale(effectiveScale) || !Finite(wallHeightMM, wallXOffset, wallYOffset) {
		return models.ScreenRect{}, false
	}
	if _, ok := WallGeometryOf(wall); !ok {
		return models.ScreenRect{}, false
	}
	if !Finite(wr.DistanceFromWallStart, wr.ElevationBottom, wr.Width, wr.Height) {
		return models.ScreenRect{}, false
	}

	wallBottomY := wallYOffset + wallHeightMM*effectiveScale

	return models.ScreenRect{
		X:      wallXOffset + wr.DistanceFromWallStart*effectiveScale,
		Y:      wallBottomY - (wr.ElevationBottom+wr.Height)*effectiveScale,
		Width:  wr.Width * effectiveScale,
		Height: wr.Height * effectiveScale,
	}, true
}

// ElevationToWallRelative выполняет обратное преобразование. Объект не может
// опуститься ниже пола: ElevationBottom ограничен снизу нулем.
// PerpendicularOffset и Depth в развертке не видны и остаются нулевыми.
func ElevationToWallRelative(screen models.ScreenRect, wall models.Shape, wallHeightMM, effectiveScale, wallXOffset, wallYOffset float64) (models.WallRelativePosition, bool) {
	if !validScale(effectiveScale) || !Finite(wallHeightMM, wallXOffset, wallYOffset) {
		return models.WallRelativePosition{}, false
	}
	if _, ok := WallGeometryOf(wall); !ok {
		return models.WallRelativePosition{}, false
	}
	if !Finite(screen.X, screen.Y, screen.Width, screen.Height) {
		return models.WallRelativePosition{}, false
	}

	wallBottomY := wallYOffset + wallHeightMM*effectiveScale
	height := screen.Height / effectiveScale
	elevationBottom := (wallBottomY-screen.Y)/effectiveScale - height

	return models.WallRelativePosition{
		WallID:                wall.ID,
		DistanceFromWallStart: (screen.X - wallXOffset) / effectiveScale,
		ElevationBottom:       math.Max(0, elevationBottom),
		Width:                 screen.Width / effectiveScale,
		Height:                height,
	}, true
}

func validScale(scale float64) bool {
	return Finite(scale) && scale > 0
}
