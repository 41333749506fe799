package importer

import (
	"fmt"
	"io"
	"math"

	"floorplan-engine/internal/planner/attach"
	"floorplan-engine/internal/planner/geometry"
	"floorplan-engine/internal/planner/models"
	"floorplan-engine/internal/planner/parser"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Importer
// ============================================================

// Importer превращает размеченный SVG план в список фигур: стены в осевые
// линии с толщиной, комнаты в полигоны, двери и окна в отрезки на стенах.
type Importer struct {
	pixelsPerMM   float64
	wallHeightMM  float64
	snapThreshold float64
	log           *zap.Logger
}

func New(pixelsPerMM, wallHeightMM, snapThreshold float64, log *zap.Logger) *Importer {
	if !(pixelsPerMM > 0) {
		pixelsPerMM = 1
	}
	if snapThreshold <= 0 {
		snapThreshold = attach.DefaultSnapThreshold
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		pixelsPerMM:   pixelsPerMM,
		wallHeightMM:  wallHeightMM,
		snapThreshold: snapThreshold,
		log:           log,
	}
}

// Import SVG → plan
func (im *Importer) Import(r io.Reader) (*models.Plan, error) {
	elements, err := parser.ParseSVG(r)
	if err != nil {
		return nil, fmt.Errorf("parse SVG: %w", err)
	}

	var walls, openings, rooms []models.Shape
	for _, elem := range elements {
		switch {
		case elem.Type == models.ShapeWall:
			if wall, ok := im.wallFromElement(elem); ok {
				walls = append(walls, wall)
			}
		case elem.Type.IsOpening():
			if op, ok := im.segmentFromElement(elem); ok {
				openings = append(openings, op)
			}
		case elem.Type == models.ShapeRoom:
			if room, ok := im.roomFromElement(elem); ok {
				rooms = append(rooms, room)
			}
		}
	}

	walls = weldWalls(walls, WeldTolerance, AxisSnapTolerance)

	shapes := make([]models.Shape, 0, len(walls)+len(openings)+len(rooms))
	shapes = append(shapes, walls...)
	for _, op := range openings {
		shapes = append(shapes, im.placeOpening(op, walls))
	}
	shapes = append(shapes, rooms...)

	plan := &models.Plan{
		ID:     uuid.NewString(),
		Unit:   "mm",
		Shapes: uniqueIDs(shapes),
	}

	im.log.Info("plan imported",
		zap.String("plan_id", plan.ID),
		zap.Int("walls", len(walls)),
		zap.Int("openings", len(openings)),
		zap.Int("rooms", len(rooms)),
		zap.Int("skipped", len(elements)-len(walls)-len(openings)-len(rooms)),
	)

	return plan, nil
}

// ============================================================
// Element conversion
// ============================================================

// wallFromElement строит осевую линию стены по длинной стороне ее контура;
// короткая сторона становится толщиной.
func (im *Importer) wallFromElement(elem parser.Element) (models.Shape, bool) {
	shape, ok := im.segmentFromElement(elem)
	if !ok {
		return models.Shape{}, false
	}
	shape.HeightMM = im.wallHeightMM
	return shape, true
}

func (im *Importer) segmentFromElement(elem parser.Element) (models.Shape, bool) {
	var line models.Line
	var thickness float64

	switch geom := elem.Geometry.(type) {
	case parser.LineGeometry:
		line = models.Line{X1: geom.X1, Y1: geom.Y1, X2: geom.X2, Y2: geom.Y2}
	case parser.RectGeometry:
		line, thickness = centerLine(geom.X, geom.Y, geom.Width, geom.Height)
	case parser.PathGeometry:
		points, err := parser.ParsePath(geom.D)
		if err != nil || len(points) < 2 {
			im.log.Debug("skip path element", zap.String("id", elem.ID), zap.Error(err))
			return models.Shape{}, false
		}
		minX, minY, maxX, maxY := bounds(points)
		if maxX-minX == 0 && maxY-minY == 0 {
			return models.Shape{}, false
		}
		line, thickness = centerLine(minX, minY, maxX-minX, maxY-minY)
	case parser.PolygonGeometry:
		if len(geom.Points) < 2 {
			return models.Shape{}, false
		}
		minX, minY, maxX, maxY := bounds(geom.Points)
		line, thickness = centerLine(minX, minY, maxX-minX, maxY-minY)
	default:
		return models.Shape{}, false
	}

	shape := models.Shape{
		ID:          elem.ID,
		Type:        elem.Type,
		Name:        elem.ID,
		Line:        &line,
		ThicknessMM: thickness / im.pixelsPerMM,
	}
	if _, ok := geometry.WallGeometryOf(shape); !ok {
		im.log.Debug("skip degenerate segment", zap.String("id", elem.ID))
		return models.Shape{}, false
	}
	return shape, true
}

func (im *Importer) roomFromElement(elem parser.Element) (models.Shape, bool) {
	var points []models.Point

	switch geom := elem.Geometry.(type) {
	case parser.PathGeometry:
		parsed, err := parser.ParsePath(geom.D)
		if err != nil {
			im.log.Debug("skip room path", zap.String("id", elem.ID), zap.Error(err))
			return models.Shape{}, false
		}
		points = parsed
	case parser.PolygonGeometry:
		points = geom.Points
	case parser.RectGeometry:
		points = []models.Point{
			{X: geom.X, Y: geom.Y},
			{X: geom.X + geom.Width, Y: geom.Y},
			{X: geom.X + geom.Width, Y: geom.Y + geom.Height},
			{X: geom.X, Y: geom.Y + geom.Height},
		}
	}

	// убираем дубль замыкания
	if len(points) > 1 {
		first := points[0]
		last := points[len(points)-1]
		if first.X == last.X && first.Y == last.Y {
			points = points[:len(points)-1]
		}
	}
	if len(points) < 3 {
		return models.Shape{}, false
	}

	return models.Shape{
		ID:     elem.ID,
		Type:   models.ShapeRoom,
		Name:   elem.ID,
		Points: points,
	}, true
}

// placeOpening переносит проем на осевую линию ближайшей стены, сохраняя
// его ширину и положение центра вдоль стены.
func (im *Importer) placeOpening(op models.Shape, walls []models.Shape) models.Shape {
	g, _ := geometry.WallGeometryOf(op)
	mid := g.Midpoint()

	nearest, ok := attach.FindNearestWallForPoint(mid.X, mid.Y, walls, im.snapThreshold)
	if !ok {
		im.log.Debug("opening has no wall nearby", zap.String("id", op.ID))
		return op
	}

	wg, _ := geometry.WallGeometryOf(nearest.Wall)
	along, _ := geometry.Project(wg, mid.X, mid.Y)
	half := math.Min(g.Length, wg.Length) / 2
	along = geometry.Clamp(along, half, wg.Length-half)

	start := geometry.PointAt(wg, along-half, 0)
	end := geometry.PointAt(wg, along+half, 0)
	op.Line = &models.Line{X1: start.X, Y1: start.Y, X2: end.X, Y2: end.Y}

	def := attach.DefaultsFor(string(op.Type))
	op.HeightMM = def.Height
	op.ElevationBottomMM = def.ElevationBottom
	if op.ThicknessMM == 0 {
		op.ThicknessMM = nearest.Wall.ThicknessMM
	}
	return op
}

// ============================================================
// Helpers
// ============================================================

func centerLine(x, y, width, height float64) (models.Line, float64) {
	if width >= height {
		midY := y + height/2
		return models.Line{X1: x, Y1: midY, X2: x + width, Y2: midY}, height
	}
	midX := x + width/2
	return models.Line{X1: midX, Y1: y, X2: midX, Y2: y + height}, width
}

func bounds(points []models.Point) (minX, minY, maxX, maxY float64) {
	minX, maxX = points[0].X, points[0].X
	minY, maxY = points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// uniqueIDs подставляет новый id фигурам с повторяющимся или пустым id.
func uniqueIDs(shapes []models.Shape) []models.Shape {
	seen := make(map[string]bool, len(shapes))
	for i := range shapes {
		if shapes[i].ID == "" || seen[shapes[i].ID] {
			shapes[i].ID = uuid.NewString()
		}
		seen[shapes[i].ID] = true
	}
	return shapes
}
