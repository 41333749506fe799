package graph

import (
	"math"
	"sort"

	"floorplan-engine/internal/planner/attach"
	"floorplan-engine/internal/planner/geometry"
	"floorplan-engine/internal/planner/models"
)

// ============================================================
// Logical walls
// ============================================================

const (
	// ParallelDot: минимальный |cos| угла между стенами одной линии.
	ParallelDot = 0.995
	// LineToleranceMM: насколько концы стены могут отходить от линии соседа.
	LineToleranceMM = 50.0
	// MinOverlapMM: минимальное перекрытие, чтобы считать стены дублями.
	MinOverlapMM = 10.0
)

// SameLogicalLine сообщает, что две стены лежат на одной линии и их проекции
// действительно перекрываются больше чем на minOverlap. Стены, которые только
// касаются в точке, сюда не попадают.
func SameLogicalLine(a, b models.Shape, tolerance, minOverlap float64) bool {
	ga, gb, ok := collinear(a, b, tolerance)
	if !ok {
		return false
	}

	lo, hi := interval(ga, gb)
	overlap := math.Min(hi, ga.Length) - math.Max(lo, 0)
	return overlap > minOverlap
}

// Adjacent сообщает, что стены лежат на одной линии и их проекции
// перекрываются или сходятся с зазором не больше tolerance.
func Adjacent(a, b models.Shape, tolerance float64) bool {
	ga, gb, ok := collinear(a, b, tolerance)
	if !ok {
		return false
	}

	lo, hi := interval(ga, gb)
	gap := math.Max(lo-ga.Length, -hi)
	return gap <= tolerance
}

func collinear(a, b models.Shape, tolerance float64) (models.WallGeometry, models.WallGeometry, bool) {
	ga, okA := geometry.WallGeometryOf(a)
	gb, okB := geometry.WallGeometryOf(b)
	if !okA || !okB {
		return ga, gb, false
	}

	if math.Abs(ga.UnitX*gb.UnitX+ga.UnitY*gb.UnitY) < ParallelDot {
		return ga, gb, false
	}
	if !onLine(ga, gb.X1, gb.Y1, tolerance) || !onLine(ga, gb.X2, gb.Y2, tolerance) {
		return ga, gb, false
	}
	if !onLine(gb, ga.X1, ga.Y1, tolerance) || !onLine(gb, ga.X2, ga.Y2, tolerance) {
		return ga, gb, false
	}
	return ga, gb, true
}

func onLine(g models.WallGeometry, x, y, tolerance float64) bool {
	_, perp := geometry.Project(g, x, y)
	return math.Abs(perp) <= tolerance
}

// interval проецирует стену b на ось стены a.
func interval(a, b models.WallGeometry) (float64, float64) {
	s, _ := geometry.Project(a, b.X1, b.Y1)
	e, _ := geometry.Project(a, b.X2, b.Y2)
	return math.Min(s, e), math.Max(s, e)
}

// CollectLogicalWall собирает стены, продолжающие startID по одной линии,
// включая саму стартовую стену. Проемы на линии связывают стены, между
// которыми стоит дверь или окно, но в результат не попадают.
func CollectLogicalWall(startID string, shapes []models.Shape, tolerance float64) []models.Shape {
	var lines []models.Shape
	start := -1
	for _, s := range shapes {
		if s.Type != models.ShapeWall && !s.Type.IsOpening() {
			continue
		}
		if _, ok := geometry.WallGeometryOf(s); !ok {
			continue
		}
		if s.ID == startID && s.Type == models.ShapeWall {
			start = len(lines)
		}
		lines = append(lines, s)
	}
	if start < 0 {
		return nil
	}

	visited := make([]bool, len(lines))
	visited[start] = true
	queue := []int{start}
	result := []models.Shape{lines[start]}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i := range lines {
			if visited[i] || !Adjacent(lines[cur], lines[i], tolerance) {
				continue
			}
			visited[i] = true
			queue = append(queue, i)
			if lines[i].Type == models.ShapeWall {
				result = append(result, lines[i])
			}
		}
	}

	return result
}

// ============================================================
// Combined wall builder
// ============================================================

type CombineOptions struct {
	PixelsPerMM     float64
	LineToleranceMM float64
	DefaultHeightMM float64
}

func DefaultCombineOptions() CombineOptions {
	return CombineOptions{
		PixelsPerMM:     1,
		LineToleranceMM: LineToleranceMM,
		DefaultHeightMM: 2400,
	}
}

type piece struct {
	lo, hi    float64
	kind      models.SegmentType
	sourceID  string
	height    float64
	elevation float64
}

// BuildCombinedWall строит развертку логической стены: участки стен, проемов
// и разрывов слева направо вдоль линии, в мм от начала линии.
func BuildCombinedWall(startID string, shapes []models.Shape, opts CombineOptions) []models.CombinedWallSegment {
	if !(opts.PixelsPerMM > 0) {
		opts.PixelsPerMM = 1
	}
	tolerance := opts.LineToleranceMM * opts.PixelsPerMM

	walls := CollectLogicalWall(startID, shapes, tolerance)
	if len(walls) == 0 {
		return nil
	}

	axis, _ := geometry.WallGeometryOf(walls[0])

	var pieces []piece
	for _, w := range walls {
		g, _ := geometry.WallGeometryOf(w)
		lo, hi := interval(axis, g)
		height := w.HeightMM
		if height <= 0 {
			height = opts.DefaultHeightMM
		}
		pieces = append(pieces, piece{lo: lo, hi: hi, kind: models.SegmentWall, sourceID: w.ID, height: height})
	}

	runLo, runHi := pieces[0].lo, pieces[0].hi
	for _, p := range pieces[1:] {
		runLo = math.Min(runLo, p.lo)
		runHi = math.Max(runHi, p.hi)
	}

	for _, s := range shapes {
		if !s.Type.IsOpening() {
			continue
		}
		g, ok := geometry.WallGeometryOf(s)
		if !ok || math.Abs(axis.UnitX*g.UnitX+axis.UnitY*g.UnitY) < ParallelDot {
			continue
		}
		mid := g.Midpoint()
		if !onLine(axis, mid.X, mid.Y, tolerance) {
			continue
		}
		lo, hi := interval(axis, g)
		lo, hi = math.Max(lo, runLo), math.Min(hi, runHi)
		if hi <= lo {
			continue
		}
		height, elevation := openingSize(s)
		pieces = append(pieces, piece{lo: lo, hi: hi, kind: models.SegmentType(s.Type), sourceID: s.ID, height: height, elevation: elevation})
	}

	return combine(pieces, runLo, opts.PixelsPerMM)
}

func openingSize(s models.Shape) (height, elevation float64) {
	def := attach.DefaultsFor(string(s.Type))
	height, elevation = def.Height, def.ElevationBottom
	if s.HeightMM > 0 {
		height = s.HeightMM
	}
	if s.ElevationBottomMM > 0 {
		elevation = s.ElevationBottomMM
	}
	return height, elevation
}

// combine режет линию по всем границам и для каждого участка выбирает, что
// его покрывает: проем важнее стены, стена важнее разрыва.
func combine(pieces []piece, origin, pixelsPerMM float64) []models.CombinedWallSegment {
	var cuts []float64
	for _, p := range pieces {
		cuts = append(cuts, p.lo, p.hi)
	}
	sort.Float64s(cuts)
	cuts = uniquePoints(cuts)

	var out []models.CombinedWallSegment
	var prev piece

	for i := 0; i+1 < len(cuts); i++ {
		lo, hi := cuts[i], cuts[i+1]
		cover := coverOf(pieces, (lo+hi)/2)

		if len(out) > 0 && sameCover(prev, cover) {
			out[len(out)-1].LengthMM += (hi - lo) / pixelsPerMM
			continue
		}

		seg := models.CombinedWallSegment{
			Type:            cover.kind,
			StartPositionMM: (lo - origin) / pixelsPerMM,
			LengthMM:        (hi - lo) / pixelsPerMM,
		}
		if cover.kind != models.SegmentGap {
			height := cover.height
			seg.HeightMM = &height
		}
		if cover.kind != models.SegmentWall && cover.kind != models.SegmentGap {
			elevation := cover.elevation
			seg.ElevationBottom = &elevation
		}

		out = append(out, seg)
		prev = cover
	}

	return out
}

func coverOf(pieces []piece, at float64) piece {
	best := piece{kind: models.SegmentGap}
	for _, p := range pieces {
		if at < p.lo || at > p.hi {
			continue
		}
		switch {
		case p.kind != models.SegmentWall:
			if best.kind == models.SegmentWall || best.kind == models.SegmentGap {
				best = p
			}
		case best.kind == models.SegmentGap:
			best = p
		case best.kind == models.SegmentWall && p.height > best.height:
			best = p
		}
	}
	return best
}

func sameCover(a, b piece) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case models.SegmentGap:
		return true
	case models.SegmentWall:
		return a.height == b.height
	default:
		return a.sourceID == b.sourceID
	}
}

func uniquePoints(points []float64) []float64 {
	if len(points) == 0 {
		return points
	}
	out := points[:1]
	for i := 1; i < len(points); i++ {
		if !almostEqual(points[i], points[i-1]) {
			out = append(out, points[i])
		}
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
