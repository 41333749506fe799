package attach

import (
	"math"
	"testing"

	"floorplan-engine/internal/planner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wall(id string, x1, y1, x2, y2 float64) models.Shape {
	return models.Shape{ID: id, Type: models.ShapeWall, Line: &models.Line{X1: x1, Y1: y1, X2: x2, Y2: y2}}
}

func TestFindNearestWallForPoint(t *testing.T) {
	walls := []models.Shape{
		wall("top", 0, 0, 1000, 0),
		wall("right", 1000, 0, 1000, 1000),
		{ID: "door", Type: models.ShapeDoor, Line: &models.Line{X1: 400, Y1: 5, X2: 600, Y2: 5}},
		wall("tiny", 500, 40, 500.2, 40),
	}

	nearest, ok := FindNearestWallForPoint(500, 60, walls, 500)
	require.True(t, ok)
	assert.Equal(t, "top", nearest.Wall.ID)
	assert.InDelta(t, 60, nearest.Distance, 1e-9)
	assert.InDelta(t, 0.5, nearest.T, 1e-9)

	nearest, ok = FindNearestWallForPoint(980, 700, walls, 500)
	require.True(t, ok)
	assert.Equal(t, "right", nearest.Wall.ID)
	assert.InDelta(t, 0.7, nearest.T, 1e-9)
}

func TestFindNearestWallForPoint_ClampsToEndpoint(t *testing.T) {
	walls := []models.Shape{wall("w", 0, 0, 1000, 0)}

	nearest, ok := FindNearestWallForPoint(-300, 400, walls, 600)
	require.True(t, ok)
	assert.Equal(t, 0.0, nearest.T)
	assert.InDelta(t, 500, nearest.Distance, 1e-9)
}

func TestFindNearestWallForPoint_NoneInRange(t *testing.T) {
	walls := []models.Shape{wall("w", 0, 0, 1000, 0)}

	_, ok := FindNearestWallForPoint(500, 800, walls, 500)
	assert.False(t, ok)

	_, ok = FindNearestWallForPoint(500, 10, nil, 500)
	assert.False(t, ok)
}

func TestCalculateWallAttachment_Clamps(t *testing.T) {
	w := wall("w", 0, 0, 1000, 0)

	tests := []struct {
		name     string
		centerX  float64
		width    float64
		expected float64
	}{
		{"inside", 500, 200, 400},
		{"past start", -100, 200, 0},
		{"past end", 1200, 200, 800},
		{"touching end", 950, 100, 900},
		{"wider than wall", 300, 1500, -250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wr, ok := CalculateWallAttachment(tt.centerX, 120, tt.width, 60, w, nil)
			require.True(t, ok)
			assert.InDelta(t, tt.expected, wr.DistanceFromWallStart, 1e-9)
			assert.Equal(t, 0.0, wr.PerpendicularOffset)
			assert.Equal(t, "w", wr.WallID)
		})
	}
}

func TestCalculateWallAttachment_BoundsProperty(t *testing.T) {
	walls := []models.Shape{
		wall("a", 0, 0, 1000, 0),
		wall("b", 100, 100, 100, 2500),
		wall("c", -400, 300, 900, -650),
	}
	widths := []float64{0, 10, 300, 999}
	centers := []models.Point{{X: -5000, Y: 0}, {X: 0, Y: 0}, {X: 450, Y: 900}, {X: 5000, Y: -5000}}

	for _, w := range walls {
		for _, width := range widths {
			for _, c := range centers {
				wr, ok := CalculateWallAttachment(c.X, c.Y, width, 50, w, nil)
				require.True(t, ok)

				g := lengthOf(w)
				center := wr.DistanceFromWallStart + width/2
				assert.GreaterOrEqual(t, center, width/2-1e-9)
				assert.LessOrEqual(t, center, g-width/2+1e-9)
			}
		}
	}
}

func TestCalculateWallAttachment_PreservesOffset(t *testing.T) {
	w := wall("w", 0, 0, 1000, 0)
	existing := &models.WallRelativePosition{WallID: "w", PerpendicularOffset: 35, ElevationBottom: 900, Height: 700}

	wr, ok := CalculateWallAttachment(500, 300, 100, 50, w, existing)
	require.True(t, ok)
	assert.Equal(t, 35.0, wr.PerpendicularOffset)
	assert.Equal(t, 900.0, wr.ElevationBottom)
	assert.Equal(t, 700.0, wr.Height)
}

func TestCalculateWallAttachment_DegenerateWall(t *testing.T) {
	_, ok := CalculateWallAttachment(0, 0, 10, 10, wall("w", 0, 0, 0.5, 0), nil)
	assert.False(t, ok)
}

func TestSnapObjectToWall(t *testing.T) {
	walls := []models.Shape{wall("w", 0, 0, 2000, 0), wall("far", 0, 3000, 2000, 3000)}
	cabinet := models.Shape{
		ID:        "cab",
		Type:      models.ShapeObject,
		Category:  "wall_cabinet",
		Placement: &models.Placement{X: 700, Y: 250},
	}

	update, ok := SnapObjectToWall(cabinet, walls, DefaultSnapThreshold)
	require.True(t, ok)
	require.NotNil(t, update.WallRelative)
	require.NotNil(t, update.Placement)
	require.NotNil(t, update.Dimensions)

	assert.Equal(t, "w", update.WallRelative.WallID)
	assert.InDelta(t, 400, update.WallRelative.DistanceFromWallStart, 1e-9)
	assert.Equal(t, 0.0, update.WallRelative.PerpendicularOffset)
	assert.Equal(t, 1400.0, update.WallRelative.ElevationBottom)
	assert.Equal(t, models.Dimensions{Width: 600, Depth: 350, Height: 700}, *update.Dimensions)

	// центр сдвигается к стене на половину глубины
	assert.InDelta(t, 700, update.Placement.X, 1e-9)
	assert.InDelta(t, 175, update.Placement.Y, 1e-9)
	assert.InDelta(t, 0, update.Placement.Rotation, 1e-9)
}

func TestSnapObjectToWall_NoWallNearby(t *testing.T) {
	walls := []models.Shape{wall("w", 0, 0, 2000, 0)}
	obj := models.Shape{ID: "o", Type: models.ShapeObject, Placement: &models.Placement{X: 700, Y: 1200}}

	_, ok := SnapObjectToWall(obj, walls, DefaultSnapThreshold)
	assert.False(t, ok)
}

func TestSnapObjectToWall_AlreadyAttached(t *testing.T) {
	walls := []models.Shape{wall("w", 0, 0, 2000, 0)}
	obj := models.Shape{ID: "o", Type: models.ShapeObject, Category: "base_cabinet", Placement: &models.Placement{X: 700, Y: 250}}

	update, ok := SnapObjectToWall(obj, walls, DefaultSnapThreshold)
	require.True(t, ok)

	obj.Placement = update.Placement
	obj.Dimensions = update.Dimensions
	obj.WallRelative = update.WallRelative

	_, ok = SnapObjectToWall(obj, walls, DefaultSnapThreshold)
	assert.False(t, ok)
}

func TestSnapObjectToWall_KeepsUserOffset(t *testing.T) {
	walls := []models.Shape{wall("w", 0, 0, 2000, 0)}
	obj := models.Shape{
		ID:           "o",
		Type:         models.ShapeObject,
		Placement:    &models.Placement{X: 1000, Y: 200},
		Dimensions:   &models.Dimensions{Width: 400, Depth: 200, Height: 500},
		WallRelative: &models.WallRelativePosition{WallID: "w", PerpendicularOffset: 50, ElevationBottom: 300},
	}

	update, ok := SnapObjectToWall(obj, walls, 0)
	require.True(t, ok)
	assert.Equal(t, 50.0, update.WallRelative.PerpendicularOffset)
	assert.Equal(t, 300.0, update.WallRelative.ElevationBottom)
	assert.InDelta(t, 150, update.Placement.Y, 1e-9)
}

func TestDefaultsFor(t *testing.T) {
	assert.Equal(t, 1400.0, DefaultsFor("wall_cabinet").ElevationBottom)
	assert.Equal(t, fallbackDefaults, DefaultsFor("unknown"))
}

func lengthOf(s models.Shape) float64 {
	dx := s.Line.X2 - s.Line.X1
	dy := s.Line.Y2 - s.Line.Y1
	return math.Hypot(dx, dy)
}

func TestSnapObjectToWall_RectSize(t *testing.T) {
	walls := []models.Shape{wall("w", 0, 0, 2000, 0)}
	table := models.Shape{
		ID:   "table",
		Type: models.ShapeRectangle,
		Rect: &models.Rect{X: 500, Y: 100, Width: 800, Height: 300},
	}

	update, ok := SnapObjectToWall(table, walls, DefaultSnapThreshold)
	require.True(t, ok)
	require.NotNil(t, update.Dimensions)

	// ширина и глубина берутся из прямоугольника, высота из категории
	assert.Equal(t, models.Dimensions{Width: 800, Depth: 300, Height: 900}, *update.Dimensions)
	assert.InDelta(t, 500, update.WallRelative.DistanceFromWallStart, 1e-9)
	assert.InDelta(t, 900, update.Placement.X, 1e-9)
	assert.InDelta(t, 150, update.Placement.Y, 1e-9)

	// явные Dimensions сильнее прямоугольника
	table.Dimensions = &models.Dimensions{Width: 400}
	update, ok = SnapObjectToWall(table, walls, DefaultSnapThreshold)
	require.True(t, ok)
	assert.Equal(t, models.Dimensions{Width: 400, Depth: 300, Height: 900}, *update.Dimensions)
}
