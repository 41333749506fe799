package importer

import (
	"math"

	"floorplan-engine/internal/planner/geometry"
	"floorplan-engine/internal/planner/models"
)

// ============================================================
// Wall welding
// ============================================================

const (
	WeldTolerance     = 8.0 // радиус склейки концов стен, в единицах плана
	AxisSnapTolerance = 4.0 // насколько стена может отклониться от оси, чтобы ее выпрямили
)

// weldWalls склеивает близкие концы стен и выпрямляет почти
// горизонтальные и почти вертикальные стены. Кластер концов получает
// координату первого встреченного конца. Стены, выродившиеся в точку,
// отбрасываются.
func weldWalls(walls []models.Shape, weldTol, axisTol float64) []models.Shape {
	if len(walls) == 0 {
		return walls
	}

	points := make([]models.Point, 0, len(walls)*2)
	for _, w := range walls {
		points = append(points, models.Point{X: w.Line.X1, Y: w.Line.Y1}, models.Point{X: w.Line.X2, Y: w.Line.Y2})
	}

	cluster := make([]int, len(points))
	for i := range cluster {
		cluster[i] = -1
	}
	// points[2i] и points[2i+1] хранят концы стены i
	var centers []models.Point
	for i, p := range points {
		if cluster[i] >= 0 {
			continue
		}
		id := len(centers)
		centers = append(centers, p)
		cluster[i] = id
		for j := i + 1; j < len(points); j++ {
			if cluster[j] < 0 && geometry.Distance(p, points[j]) <= weldTol {
				cluster[j] = id
			}
		}
	}

	type agg struct {
		sumX, sumY float64
		cntX, cntY int
	}
	aggs := make([]agg, len(centers))
	for i := range walls {
		a, b := cluster[2*i], cluster[2*i+1]
		p1, p2 := centers[a], centers[b]
		switch {
		case math.Abs(p1.Y-p2.Y) <= axisTol:
			y := (p1.Y + p2.Y) / 2
			aggs[a].sumY += y
			aggs[a].cntY++
			aggs[b].sumY += y
			aggs[b].cntY++
		case math.Abs(p1.X-p2.X) <= axisTol:
			x := (p1.X + p2.X) / 2
			aggs[a].sumX += x
			aggs[a].cntX++
			aggs[b].sumX += x
			aggs[b].cntX++
		}
	}
	for i, a := range aggs {
		if a.cntX > 0 {
			centers[i].X = a.sumX / float64(a.cntX)
		}
		if a.cntY > 0 {
			centers[i].Y = a.sumY / float64(a.cntY)
		}
	}

	out := make([]models.Shape, 0, len(walls))
	for i, w := range walls {
		start, end := centers[cluster[2*i]], centers[cluster[2*i+1]]
		w.Line = &models.Line{X1: start.X, Y1: start.Y, X2: end.X, Y2: end.Y}
		if _, ok := geometry.WallGeometryOf(w); !ok {
			continue
		}
		out = append(out, w)
	}
	return out
}
