package graph

import (
	"math"

	"floorplan-engine/internal/planner/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ============================================================
// Connected shapes
// ============================================================

const (
	// ConnectToleranceMM задает базовый допуск совпадения точек при масштабе 1.
	ConnectToleranceMM = 150.0
	// MinZoom ограничивает рост допуска при сильном отдалении и не дает ему
	// исчезнуть при приближении.
	MinZoom = 0.3
)

// ConnectionTolerance возвращает допуск в единицах плана для текущего зума.
func ConnectionTolerance(zoom, pixelsPerMM float64) float64 {
	return ConnectToleranceWith(ConnectToleranceMM, zoom, pixelsPerMM)
}

// ConnectToleranceWith считает то же с заданным базовым допуском.
func ConnectToleranceWith(baseMM, zoom, pixelsPerMM float64) float64 {
	if !(pixelsPerMM > 0) {
		pixelsPerMM = 1
	}
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		zoom = 1
	}
	return baseMM * pixelsPerMM / math.Max(MinZoom, zoom)
}

type node struct {
	id     string
	points []orb.Point
	bound  orb.Bound
}

// FindConnectedWalls обходит граф фигур от startID: две фигуры связаны, если
// какие-то их точки соединения ближе tolerance. Обход итеративный.
// Результат начинается со startID и идет в порядке обнаружения.
func FindConnectedWalls(startID string, shapes []models.Shape, zoom, pixelsPerMM float64) []string {
	return FindConnected(startID, shapes, ConnectionTolerance(zoom, pixelsPerMM))
}

// FindConnected обходит фигуры с явно заданным допуском.
func FindConnected(startID string, shapes []models.Shape, tolerance float64) []string {
	nodes := make([]node, 0, len(shapes))
	start := -1

	for _, s := range shapes {
		pts := ConnectionPoints(s)
		if s.ID == startID && start < 0 {
			start = len(nodes)
		} else if len(pts) == 0 {
			continue
		}
		nodes = append(nodes, node{
			id:     s.ID,
			points: pts,
			bound:  orb.MultiPoint(pts).Bound(),
		})
	}

	if start < 0 {
		return nil
	}

	visited := make([]bool, len(nodes))
	visited[start] = true
	queue := []int{start}
	result := []string{nodes[start].id}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for i := range nodes {
			if visited[i] || !touches(nodes[cur], nodes[i], tolerance) {
				continue
			}
			visited[i] = true
			queue = append(queue, i)
			result = append(result, nodes[i].id)
		}
	}

	return result
}

func touches(a, b node, tolerance float64) bool {
	if len(a.points) == 0 || len(b.points) == 0 {
		return false
	}
	if !a.bound.Pad(tolerance).Intersects(b.bound) {
		return false
	}

	for _, p := range a.points {
		for _, q := range b.points {
			if planar.Distance(p, q) <= tolerance {
				return true
			}
		}
	}
	return false
}
