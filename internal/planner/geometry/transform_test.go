package geometry

import (
	"math"
	"testing"

	"floorplan-engine/internal/planner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldToWallRelative_Scenario(t *testing.T) {
	wall := wallShape("w1", 0, 0, 1000, 0)

	wr, ok := WorldToWallRelative(500, 0, wall, 100, 50, 0, 0)
	require.True(t, ok)
	assert.Equal(t, "w1", wr.WallID)
	assert.InDelta(t, 450, wr.DistanceFromWallStart, 1e-9)
	assert.InDelta(t, -25, wr.PerpendicularOffset, 1e-9)

	pos, ok := WallRelativeToWorld(wr, wall)
	require.True(t, ok)
	assert.InDelta(t, 500, pos.X, 1e-9)
	assert.InDelta(t, 0, pos.Y, 1e-9)
	assert.InDelta(t, 0, pos.Rotation, 1e-9)
}

func TestWorldWallRelative_RoundTrip(t *testing.T) {
	walls := []models.Shape{
		wallShape("a", 0, 0, 1000, 0),
		wallShape("b", 200, 300, 200, -900),
		wallShape("c", -50, 75, 640, 812),
	}
	points := []models.Point{{X: 0, Y: 0}, {X: 333, Y: -120}, {X: -800, Y: 1500}, {X: 12.5, Y: 7.75}}

	for _, w := range walls {
		for _, p := range points {
			wr, ok := WorldToWallRelative(p.X, p.Y, w, 0, 0, 0, 0)
			require.True(t, ok)

			back, ok := WallRelativeToWorld(wr, w)
			require.True(t, ok)
			assert.InDelta(t, p.X, back.X, 1e-6, w.ID)
			assert.InDelta(t, p.Y, back.Y, 1e-6, w.ID)
		}
	}
}

func TestWallRelativeToWorld_Rotation(t *testing.T) {
	pos, ok := WallRelativeToWorld(models.WallRelativePosition{}, wallShape("v", 0, 0, 0, 100))
	require.True(t, ok)
	assert.InDelta(t, 90, pos.Rotation, 1e-9)
}

func TestTransforms_MissingWall(t *testing.T) {
	missing := models.Shape{ID: "x", Type: models.ShapeWall}

	_, ok := WorldToWallRelative(1, 1, missing, 0, 0, 0, 0)
	assert.False(t, ok)

	_, ok = WallRelativeToWorld(models.WallRelativePosition{}, missing)
	assert.False(t, ok)

	_, ok = WallRelativeToElevation(models.WallRelativePosition{}, missing, 2400, 0.2, 0, 0)
	assert.False(t, ok)

	_, ok = ElevationToWallRelative(models.ScreenRect{}, missing, 2400, 0.2, 0, 0)
	assert.False(t, ok)
}

func TestWallRelativeToElevation(t *testing.T) {
	wall := wallShape("w1", 0, 0, 4000, 0)
	wr := models.WallRelativePosition{
		DistanceFromWallStart: 1000,
		ElevationBottom:       900,
		Width:                 600,
		Height:                700,
	}

	rect, ok := WallRelativeToElevation(wr, wall, 2400, 0.1, 50, 20)
	require.True(t, ok)

	// wallBottomY = 20 + 240 = 260; top = 260 - 160 = 100
	assert.InDelta(t, 150, rect.X, 1e-9)
	assert.InDelta(t, 100, rect.Y, 1e-9)
	assert.InDelta(t, 60, rect.Width, 1e-9)
	assert.InDelta(t, 70, rect.Height, 1e-9)
}

func TestElevation_RoundTrip(t *testing.T) {
	wall := wallShape("w1", 10, 10, 2500, 1800)
	cases := []models.WallRelativePosition{
		{DistanceFromWallStart: 0, ElevationBottom: 0, Width: 800, Height: 2100},
		{DistanceFromWallStart: 1234.5, ElevationBottom: 900, Width: 1000, Height: 1200},
		{DistanceFromWallStart: -50, ElevationBottom: 2300, Width: 10, Height: 100},
	}
	scales := []float64{0.05, 0.1, 1, 3.7}

	for _, wr := range cases {
		for _, scale := range scales {
			rect, ok := WallRelativeToElevation(wr, wall, 2600, scale, 40, 15)
			require.True(t, ok)

			back, ok := ElevationToWallRelative(rect, wall, 2600, scale, 40, 15)
			require.True(t, ok)
			assert.InDelta(t, wr.DistanceFromWallStart, back.DistanceFromWallStart, 1e-6)
			assert.InDelta(t, wr.ElevationBottom, back.ElevationBottom, 1e-6)
			assert.InDelta(t, wr.Width, back.Width, 1e-6)
			assert.InDelta(t, wr.Height, back.Height, 1e-6)
		}
	}
}

func TestElevationToWallRelative_ClampsToFloor(t *testing.T) {
	wall := wallShape("w1", 0, 0, 3000, 0)

	// нижний край ниже линии пола (260)
	wr, ok := ElevationToWallRelative(models.ScreenRect{X: 0, Y: 250, Width: 10, Height: 30}, wall, 2400, 0.1, 0, 20)
	require.True(t, ok)
	assert.Equal(t, 0.0, wr.ElevationBottom)
	assert.InDelta(t, 300, wr.Height, 1e-9)
}

func TestElevation_InvalidScale(t *testing.T) {
	wall := wallShape("w1", 0, 0, 3000, 0)

	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, ok := WallRelativeToElevation(models.WallRelativePosition{Width: 1, Height: 1}, wall, 2400, scale, 0, 0)
		assert.False(t, ok)

		_, ok = ElevationToWallRelative(models.ScreenRect{Width: 1, Height: 1}, wall, 2400, scale, 0, 0)
		assert.False(t, ok)
	}
}

func TestTransforms_Deterministic(t *testing.T) {
	wall := wallShape("w1", 13, 17, 977, 431)

	a, okA := WorldToWallRelative(400, 200, wall, 60, 40, 720, 100)
	b, okB := WorldToWallRelative(400, 200, wall, 60, 40, 720, 100)
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, a, b)
}
