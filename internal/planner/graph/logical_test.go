package graph

import (
	"testing"

	"floorplan-engine/internal/planner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameLogicalLine(t *testing.T) {
	a := wall("a", 0, 0, 1000, 0)

	tests := []struct {
		name     string
		b        models.Shape
		expected bool
	}{
		{"shared corner only", wall("b", 1000, 0, 1800, 0), false},
		{"overlapping duplicate", wall("b", 500, 5, 1500, 5), true},
		{"reversed duplicate", wall("b", 900, 0, 100, 0), true},
		{"parallel offset", wall("b", 0, 200, 1000, 200), false},
		{"perpendicular", wall("b", 500, -500, 500, 500), false},
		{"tiny overlap", wall("b", 995, 0, 1800, 0), false},
		{"degenerate", wall("b", 10, 0, 10.2, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SameLogicalLine(a, tt.b, LineToleranceMM, MinOverlapMM))
			assert.Equal(t, tt.expected, SameLogicalLine(tt.b, a, LineToleranceMM, MinOverlapMM))
		})
	}
}

func TestAdjacent(t *testing.T) {
	a := wall("a", 0, 0, 1000, 0)

	assert.True(t, Adjacent(a, wall("b", 1000, 0, 1800, 0), LineToleranceMM))
	assert.True(t, Adjacent(a, wall("b", 1030, 0, 1800, 0), LineToleranceMM))
	assert.True(t, Adjacent(a, wall("b", -800, 0, 0, 0), LineToleranceMM))
	assert.False(t, Adjacent(a, wall("b", 1900, 0, 2800, 0), LineToleranceMM))
	assert.False(t, Adjacent(a, wall("b", 1000, 0, 1000, 800), LineToleranceMM))
}

func TestCollectLogicalWall(t *testing.T) {
	shapes := []models.Shape{
		wall("a", 0, 0, 1000, 0),
		wall("b", 1000, 0, 1800, 0),
		wall("c", 2700, 0, 1800, 0),
		wall("corner", 2700, 0, 2700, 900),
		wall("gap", 3500, 0, 4000, 0),
	}

	got := CollectLogicalWall("b", shapes, LineToleranceMM)
	ids := make([]string, 0, len(got))
	for _, w := range got {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
	assert.Nil(t, CollectLogicalWall("missing", shapes, LineToleranceMM))
}

func TestBuildCombinedWall_AdjacentSegments(t *testing.T) {
	shapes := []models.Shape{
		wall("a", 0, 0, 1000, 0),
		wall("b", 1000, 0, 1800, 0),
	}

	segments := BuildCombinedWall("a", shapes, DefaultCombineOptions())
	require.Len(t, segments, 1)
	assert.Equal(t, models.SegmentWall, segments[0].Type)
	assert.InDelta(t, 0, segments[0].StartPositionMM, 1e-9)
	assert.InDelta(t, 1800, segments[0].LengthMM, 1e-9)
	require.NotNil(t, segments[0].HeightMM)
	assert.Equal(t, 2400.0, *segments[0].HeightMM)
}

func TestBuildCombinedWall_DoorSplit(t *testing.T) {
	left := wall("left", 0, 0, 1000, 0)
	left.HeightMM = 2500
	right := wall("right", 1900, 0, 4000, 0)
	right.HeightMM = 2500
	door := models.Shape{ID: "door", Type: models.ShapeDoor, Line: &models.Line{X1: 1000, Y1: 0, X2: 1900, Y2: 0}}
	window := models.Shape{ID: "win", Type: models.ShapeWindow, HeightMM: 1000, ElevationBottomMM: 1000,
		Line: &models.Line{X1: 2500, Y1: 10, X2: 3300, Y2: 10}}
	elsewhere := models.Shape{ID: "other", Type: models.ShapeWindow, Line: &models.Line{X1: 0, Y1: 900, X2: 800, Y2: 900}}

	segments := BuildCombinedWall("right", []models.Shape{left, right, door, window, elsewhere}, DefaultCombineOptions())
	require.Len(t, segments, 5)

	// ось берется по стартовой стене, поэтому позиции считаются от x=0
	expected := []struct {
		typ    models.SegmentType
		start  float64
		length float64
	}{
		{models.SegmentWall, 0, 1000},
		{models.SegmentDoor, 1000, 900},
		{models.SegmentWall, 1900, 600},
		{models.SegmentWindow, 2500, 800},
		{models.SegmentWall, 3300, 700},
	}
	for i, e := range expected {
		assert.Equal(t, e.typ, segments[i].Type, "segment %d", i)
		assert.InDelta(t, e.start, segments[i].StartPositionMM, 1e-9, "segment %d", i)
		assert.InDelta(t, e.length, segments[i].LengthMM, 1e-9, "segment %d", i)
	}

	require.NotNil(t, segments[1].HeightMM)
	assert.Equal(t, 2100.0, *segments[1].HeightMM)
	require.NotNil(t, segments[1].ElevationBottom)
	assert.Equal(t, 0.0, *segments[1].ElevationBottom)
	assert.Equal(t, 1000.0, *segments[3].HeightMM)
	assert.Equal(t, 1000.0, *segments[3].ElevationBottom)
	assert.Nil(t, segments[0].ElevationBottom)
}

func TestBuildCombinedWall_Gap(t *testing.T) {
	shapes := []models.Shape{
		wall("a", 0, 0, 1000, 0),
		wall("b", 1040, 0, 2000, 0),
	}

	segments := BuildCombinedWall("a", shapes, DefaultCombineOptions())
	require.Len(t, segments, 3)
	assert.Equal(t, models.SegmentGap, segments[1].Type)
	assert.InDelta(t, 40, segments[1].LengthMM, 1e-9)
	assert.Nil(t, segments[1].HeightMM)
}

func TestBuildCombinedWall_Scale(t *testing.T) {
	shapes := []models.Shape{wall("a", 0, 0, 100, 0)}
	opts := DefaultCombineOptions()
	opts.PixelsPerMM = 0.1

	segments := BuildCombinedWall("a", shapes, opts)
	require.Len(t, segments, 1)
	assert.InDelta(t, 1000, segments[0].LengthMM, 1e-9)
}

func TestBuildCombinedWall_Missing(t *testing.T) {
	assert.Nil(t, BuildCombinedWall("nope", nil, DefaultCombineOptions()))
}

func TestCollectLogicalWall_BridgesOpenings(t *testing.T) {
	shapes := []models.Shape{
		wall("left", 0, 0, 1000, 0),
		{ID: "door", Type: models.ShapeDoor, Line: &models.Line{X1: 1000, Y1: 0, X2: 1900, Y2: 0}},
		wall("right", 1900, 0, 4000, 0),
	}

	got := CollectLogicalWall("left", shapes, LineToleranceMM)
	require.Len(t, got, 2)
	assert.Equal(t, "left", got[0].ID)
	assert.Equal(t, "right", got[1].ID)

	assert.Nil(t, CollectLogicalWall("door", shapes, LineToleranceMM))
}
