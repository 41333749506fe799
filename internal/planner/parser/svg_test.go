package parser

import (
	"strings"
	"testing"

	"floorplan-engine/internal/planner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="500" height="400">
  <rect id="Wall_1" x="0" y="0" width="400" height="10"/>
  <rect id="Unnamed" x="0" y="0" width="10" height="10"/>
  <path id="Kitchen_room" d="M 0 0 L 400 0 L 400 300 L 0 300 Z"/>
  <g>
    <line id="Door_1" x1="100" y1="5" x2="180" y2="5"/>
    <g>
      <polygon id="Room_2" points="400,0 500,0 500,300 400,300"/>
    </g>
  </g>
  <rect id="SlidingDoor_1" x="200" y="0" width="150" height="10"/>
</svg>`

func TestParseSVG(t *testing.T) {
	elements, err := ParseSVG(strings.NewReader(planSVG))
	require.NoError(t, err)
	require.Len(t, elements, 5)

	byID := make(map[string]Element)
	for _, e := range elements {
		byID[e.ID] = e
	}

	assert.Equal(t, models.ShapeWall, byID["Wall_1"].Type)
	assert.Equal(t, RectGeometry{X: 0, Y: 0, Width: 400, Height: 10}, byID["Wall_1"].Geometry)
	assert.Equal(t, models.ShapeRoom, byID["Kitchen_room"].Type)
	assert.Equal(t, models.ShapeDoor, byID["Door_1"].Type)
	assert.Equal(t, LineGeometry{X1: 100, Y1: 5, X2: 180, Y2: 5}, byID["Door_1"].Geometry)
	assert.Equal(t, models.ShapeRoom, byID["Room_2"].Type)
	assert.Len(t, byID["Room_2"].Geometry.(PolygonGeometry).Points, 4)
	assert.Equal(t, models.ShapeSlidingDoor, byID["SlidingDoor_1"].Type)
}

func TestParseSVG_Invalid(t *testing.T) {
	_, err := ParseSVG(strings.NewReader("<svg><rect"))
	assert.Error(t, err)
}

func TestClassifyElementByID(t *testing.T) {
	tests := map[string]models.ShapeType{
		"Wall_12":        models.ShapeWall,
		"Hui_Wall_3":     models.ShapeWall,
		"Door_1":         models.ShapeDoor,
		"Window_7":       models.ShapeWindow,
		"SlidingDoor_2":  models.ShapeSlidingDoor,
		"Sliding_Door_2": models.ShapeSlidingDoor,
		"Room_1":         models.ShapeRoom,
		"Toilet_room":    models.ShapeRoom,
		"Hall_Room":      models.ShapeRoom,
		"Balcony_1":      models.ShapeRoom,
		"text_1":         "",
	}

	for id, expected := range tests {
		assert.Equal(t, expected, ClassifyElementByID(id), id)
	}
}
