package rooms

import (
	"math"
	"sort"

	"floorplan-engine/internal/planner/geometry"
	"floorplan-engine/internal/planner/models"

	"go.uber.org/zap"
)

// ============================================================
// Tolerances
// ============================================================

// Tolerances содержит эмпирические допуски сопоставления ребер комнаты со стенами
// и проемами. Значения в мм пересчитываются в единицы плана через масштаб.
type Tolerances struct {
	WallMatchMM     float64
	OpeningMatchMM  float64
	AngleRad        float64
	OpeningAngleRad float64
	MinEdgeLengthMM float64
}

const (
	WallMatchToleranceMM     = 200.0
	OpeningMatchToleranceMM  = 150.0
	AngleMatchToleranceRad   = 0.2
	OpeningAngleToleranceRad = 0.3
	MinEdgeLengthMM          = 10.0
	WallFaceMarginMM         = 100.0

	DefaultWallHeightMM = 2400.0
)

func DefaultTolerances() Tolerances {
	return Tolerances{
		WallMatchMM:     WallMatchToleranceMM,
		OpeningMatchMM:  OpeningMatchToleranceMM,
		AngleRad:        AngleMatchToleranceRad,
		OpeningAngleRad: OpeningAngleToleranceRad,
		MinEdgeLengthMM: MinEdgeLengthMM,
	}
}

// ============================================================
// Analyzer
// ============================================================

// Analyzer строит данные для развертки стен комнаты. Только читает
// переданные фигуры.
type Analyzer struct {
	tol                 Tolerances
	pixelsPerMM         float64
	defaultWallHeightMM float64
	log                 *zap.Logger
}

type Option func(*Analyzer)

func WithTolerances(tol Tolerances) Option {
	return func(a *Analyzer) { a.tol = tol }
}

// WithScale задает масштаб плана: единиц на миллиметр.
func WithScale(pixelsPerMM float64) Option {
	return func(a *Analyzer) {
		if pixelsPerMM > 0 && geometry.Finite(pixelsPerMM) {
			a.pixelsPerMM = pixelsPerMM
		}
	}
}

func WithDefaultWallHeight(mm float64) Option {
	return func(a *Analyzer) {
		if mm > 0 {
			a.defaultWallHeightMM = mm
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(a *Analyzer) {
		if log != nil {
			a.log = log
		}
	}
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		tol:                 DefaultTolerances(),
		pixelsPerMM:         1,
		defaultWallHeightMM: DefaultWallHeightMM,
		log:                 zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeRoomSegments возвращает по одному элементу на каждое ребро комнаты
// длиннее минимального порога. Для некорректной комнаты результат пустой.
func (a *Analyzer) AnalyzeRoomSegments(room models.Shape, shapes []models.Shape) (result []models.SegmentData) {
	result = []models.SegmentData{}
	defer a.recoverAnalysis("room segment analysis failed", room.ID, func() {
		result = []models.SegmentData{}
	})

	points, ok := roomPoints(room)
	if !ok {
		a.log.Debug("room has no usable polygon", zap.String("room_id", room.ID))
		return result
	}

	walls, openings := partitionShapes(shapes)

	for _, edge := range a.usableEdges(points) {
		seg := models.SegmentData{
			SegmentIndex: len(result),
			Label:        SegmentLabel(len(result)),
			Direction:    edge.Direction,
			Edge:         edge,
			LengthPixels: edge.LengthPixels,
			LengthMM:     edge.LengthPixels / a.pixelsPerMM,
			WallHeightMM: a.defaultWallHeightMM,
			Openings:     a.openingsOnEdge(edge, openings),
		}

		if matches := a.wallsOnEdge(edge, walls); len(matches) > 0 {
			wall := matches[0].wall
			seg.HasWall = true
			seg.Wall = &wall
			seg.WallHeightMM = a.wallHeight(wall)
		}

		result = append(result, seg)
	}

	a.log.Debug("room segments analyzed",
		zap.String("room_id", room.ID),
		zap.Int("segments", len(result)),
	)
	return result
}

// AnalyzeRoomDirections группирует ребра по сторонам света и агрегирует
// стены, покрытие и проемы по каждой стороне. Порядок: north, east, south, west.
func (a *Analyzer) AnalyzeRoomDirections(room models.Shape, shapes []models.Shape) (result []models.DirectionData) {
	result = []models.DirectionData{}
	defer a.recoverAnalysis("room direction analysis failed", room.ID, func() {
		result = []models.DirectionData{}
	})

	points, ok := roomPoints(room)
	if !ok {
		a.log.Debug("room has no usable polygon", zap.String("room_id", room.ID))
		return result
	}

	walls, openings := partitionShapes(shapes)

	groups := make(map[models.Direction][]models.RoomEdge)
	for _, edge := range a.usableEdges(points) {
		groups[edge.Direction] = append(groups[edge.Direction], edge)
	}

	for _, dir := range models.Directions {
		edges := groups[dir]
		if len(edges) == 0 {
			continue
		}
		result = append(result, a.aggregateDirection(dir, edges, walls, openings))
	}

	return result
}

// recoverAnalysis вызывается только через defer: гасит панику анализа,
// пишет предупреждение и сбрасывает результат.
func (a *Analyzer) recoverAnalysis(msg, roomID string, reset func()) {
	if r := recover(); r != nil {
		a.log.Warn(msg,
			zap.String("room_id", roomID),
			zap.Any("panic", r),
		)
		reset()
	}
}

func (a *Analyzer) aggregateDirection(dir models.Direction, edges []models.RoomEdge, walls, openings []models.Shape) models.DirectionData {
	total := 0.0
	for _, e := range edges {
		total += e.LengthPixels
	}

	data := models.DirectionData{
		Direction:    dir,
		Edges:        edges,
		LengthPixels: total,
		LengthMM:     total / a.pixelsPerMM,
		Walls:        []models.DirectionWall{},
		Openings:     []models.EdgeOpening{},
	}

	var spans []span
	maxHeight := 0.0
	offset := 0.0

	for _, edge := range edges {
		for _, m := range a.wallsOnEdge(edge, walls) {
			start := (offset + m.startT*edge.LengthPixels) / total
			end := (offset + m.endT*edge.LengthPixels) / total
			height := a.wallHeight(m.wall)

			data.Walls = append(data.Walls, models.DirectionWall{
				Wall:     m.wall,
				StartT:   start,
				EndT:     end,
				HeightMM: height,
			})
			spans = append(spans, span{start: start, end: end})
			maxHeight = math.Max(maxHeight, height)
		}

		for _, op := range a.openingsOnEdge(edge, openings) {
			op.PositionT = (offset + op.PositionT*edge.LengthPixels) / total
			data.Openings = append(data.Openings, op)
		}

		offset += edge.LengthPixels
	}

	data.CoveragePercent = math.Min(100, coveredLength(spans)*100)
	data.HasWall = len(data.Walls) > 0
	data.WallHeightMM = a.defaultWallHeightMM
	if maxHeight > 0 {
		data.WallHeightMM = maxHeight
	}

	return data
}

// ============================================================
// Matching
// ============================================================

type edgeWall struct {
	wall   models.Shape
	startT float64
	endT   float64
	dist   float64
}

func (a *Analyzer) usableEdges(points []models.Point) []models.RoomEdge {
	minLen := a.tol.MinEdgeLengthMM * a.pixelsPerMM

	var out []models.RoomEdge
	for _, edge := range ClassifyEdges(points) {
		if edge.LengthPixels < minLen || edge.LengthPixels < geometry.MinWallLength {
			continue
		}
		out = append(out, edge)
	}
	return out
}

// wallsOnEdge ищет стены, лежащие на ребре: угол совпадает с точностью до
// направления, середина стены близко к линии ребра, а проекция стены
// действительно перекрывает ребро. Ближайшие стены идут первыми.
func (a *Analyzer) wallsOnEdge(edge models.RoomEdge, walls []models.Shape) []edgeWall {
	eg, ok := geometry.FromSegment(edge.Start.X, edge.Start.Y, edge.End.X, edge.End.Y)
	if !ok {
		return nil
	}

	minOverlap := a.tol.MinEdgeLengthMM * a.pixelsPerMM

	var out []edgeWall
	for _, wall := range walls {
		wg, ok := geometry.WallGeometryOf(wall)
		if !ok {
			continue
		}
		if geometry.AngleDiff(wg.Angle, eg.Angle) > a.tol.AngleRad {
			continue
		}

		mid := wg.Midpoint()
		_, perp := geometry.Project(eg, mid.X, mid.Y)
		if math.Abs(perp) > a.wallTolerance(wall) {
			continue
		}

		a1, _ := geometry.Project(eg, wg.X1, wg.Y1)
		a2, _ := geometry.Project(eg, wg.X2, wg.Y2)
		lo := math.Max(0, math.Min(a1, a2))
		hi := math.Min(eg.Length, math.Max(a1, a2))
		if hi-lo <= minOverlap {
			continue
		}

		out = append(out, edgeWall{
			wall:   wall,
			startT: lo / eg.Length,
			endT:   hi / eg.Length,
			dist:   math.Abs(perp),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].dist < out[j].dist })
	return out
}

// wallTolerance: ось толстой стены отстоит от ребра на половину толщины,
// поэтому допуск не меньше ThicknessMM/2 + WallFaceMarginMM.
func (a *Analyzer) wallTolerance(wall models.Shape) float64 {
	tol := a.tol.WallMatchMM
	if wall.ThicknessMM > 0 && geometry.Finite(wall.ThicknessMM) {
		tol = math.Max(tol, wall.ThicknessMM/2+WallFaceMarginMM)
	}
	return tol * a.pixelsPerMM
}

// openingsOnEdge ищет двери и окна на ребре, с более строгим допуском.
func (a *Analyzer) openingsOnEdge(edge models.RoomEdge, openings []models.Shape) []models.EdgeOpening {
	out := []models.EdgeOpening{}

	eg, ok := geometry.FromSegment(edge.Start.X, edge.Start.Y, edge.End.X, edge.End.Y)
	if !ok {
		return out
	}

	tolerance := a.tol.OpeningMatchMM * a.pixelsPerMM
	const eps = 1e-9

	for _, op := range openings {
		og, ok := geometry.WallGeometryOf(op)
		if !ok {
			continue
		}
		if geometry.AngleDiff(og.Angle, eg.Angle) > a.tol.OpeningAngleRad {
			continue
		}

		mid := og.Midpoint()
		along, perp := geometry.Project(eg, mid.X, mid.Y)
		if math.Abs(perp) > tolerance {
			continue
		}

		t := along / eg.Length
		if t < -eps || t > 1+eps {
			continue
		}

		out = append(out, models.EdgeOpening{
			Shape:       op,
			PositionT:   geometry.Clamp(t, 0, 1),
			WidthPixels: og.Length,
			Type:        op.Type,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].PositionT < out[j].PositionT })
	return out
}

func (a *Analyzer) wallHeight(wall models.Shape) float64 {
	if wall.HeightMM > 0 {
		return wall.HeightMM
	}
	return a.defaultWallHeightMM
}

func partitionShapes(shapes []models.Shape) (walls, openings []models.Shape) {
	for _, s := range shapes {
		switch {
		case s.Type == models.ShapeWall:
			walls = append(walls, s)
		case s.Type.IsOpening():
			openings = append(openings, s)
		}
	}
	return walls, openings
}

// SegmentLabel возвращает буквенную метку сегмента: A..Z, AA, AB, ...
func SegmentLabel(i int) string {
	label := ""
	for n := i; n >= 0; n = n/26 - 1 {
		label = string(rune('A'+n%26)) + label
	}
	return label
}
