package handlers

import (
	"errors"

	"floorplan-engine/internal/planner/attach"
	"floorplan-engine/internal/planner/geometry"
	"floorplan-engine/internal/planner/graph"
	"floorplan-engine/internal/planner/models"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Wall Handlers
// ============================================================

type snapRequest struct {
	Shape     models.Shape   `json:"shape"`
	Shapes    []models.Shape `json:"shapes"`
	Threshold float64        `json:"threshold"`
}

// SnapToWall притягивает объект к ближайшей стене.
func (h *Handler) SnapToWall(c fiber.Ctx) error {
	var req snapRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	threshold := req.Threshold
	if threshold <= 0 {
		threshold = h.settings.SnapThreshold
	}

	update, ok := attach.SnapObjectToWall(req.Shape, req.Shapes, threshold)
	if !ok {
		return c.JSON(fiber.Map{"snapped": false})
	}
	return c.JSON(fiber.Map{
		"snapped": true,
		"update":  update,
	})
}

type connectedRequest struct {
	StartID string         `json:"startId"`
	Shapes  []models.Shape `json:"shapes"`
	Zoom    float64        `json:"zoom"`
}

// ConnectedWalls возвращает id фигур, связанных с начальной через общие точки.
func (h *Handler) ConnectedWalls(c fiber.Ctx) error {
	var req connectedRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	zoom := req.Zoom
	if zoom == 0 {
		zoom = 1
	}
	tolerance := graph.ConnectToleranceWith(h.settings.ConnectToleranceMM, zoom, h.settings.PixelsPerMM)

	ids := graph.FindConnected(req.StartID, req.Shapes, tolerance)
	if ids == nil {
		return notFound(c, "shape", req.StartID)
	}
	return c.JSON(fiber.Map{"ids": ids})
}

type combinedRequest struct {
	StartID string         `json:"startId"`
	Shapes  []models.Shape `json:"shapes"`
}

// CombinedWall отдает логическую стену и ее развертку.
func (h *Handler) CombinedWall(c fiber.Ctx) error {
	var req combinedRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	tolerance := h.settings.LogicalLineMM * h.settings.PixelsPerMM
	walls := graph.CollectLogicalWall(req.StartID, req.Shapes, tolerance)
	if walls == nil {
		return notFound(c, "wall", req.StartID)
	}

	ids := make([]string, 0, len(walls))
	for _, w := range walls {
		ids = append(ids, w.ID)
	}

	segments := graph.BuildCombinedWall(req.StartID, req.Shapes, graph.CombineOptions{
		PixelsPerMM:     h.settings.PixelsPerMM,
		LineToleranceMM: h.settings.LogicalLineMM,
		DefaultHeightMM: h.settings.DefaultWallHeightMM,
	})
	return c.JSON(fiber.Map{
		"wallIds":  ids,
		"segments": segments,
	})
}

// ============================================================
// Elevation
// ============================================================

// worldObject задает объект в мировых координатах: центр и размеры.
type worldObject struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Width           float64 `json:"width"`
	Depth           float64 `json:"depth"`
	Height          float64 `json:"height"`
	ElevationBottom float64 `json:"elevationBottom"`
}

// elevationRequest: ровно один из world, position, screen задает объект.
type elevationRequest struct {
	WallID       string         `json:"wallId"`
	Shapes       []models.Shape `json:"shapes"`
	WallHeightMM float64        `json:"wallHeightMM"`
	Scale        *float64       `json:"scale"`
	OffsetX      float64        `json:"offsetX"`
	OffsetY      float64        `json:"offsetY"`

	World    *worldObject                 `json:"world"`
	Position *models.WallRelativePosition `json:"position"`
	Screen   *models.ScreenRect           `json:"screen"`
}

var (
	errNoObject         = errors.New("one of world, position or screen is required")
	errInvalidTransform = errors.New("transform is undefined for the given input")
	errInvalidScale     = errors.New("scale must be positive")
)

// Elevation переводит объект между мировыми координатами, позицией
// на стене и прямоугольником развертки и возвращает все три формы.
func (h *Handler) Elevation(c fiber.Ctx) error {
	var req elevationRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	wall, ok := findShape(req.Shapes, req.WallID, isWall)
	if !ok {
		return notFound(c, "wall", req.WallID)
	}

	wallHeight := req.WallHeightMM
	if wallHeight <= 0 {
		wallHeight = wall.HeightMM
	}
	if wallHeight <= 0 {
		wallHeight = h.settings.DefaultWallHeightMM
	}
	scale := 1.0
	if req.Scale != nil {
		scale = *req.Scale
	}
	if !(scale > 0) {
		return badRequest(c, errInvalidScale)
	}

	var position models.WallRelativePosition
	switch {
	case req.World != nil:
		w := req.World
		position, ok = geometry.WorldToWallRelative(w.X, w.Y, wall, w.Width, w.Depth, w.Height, w.ElevationBottom)
	case req.Position != nil:
		position, ok = *req.Position, true
		position.WallID = wall.ID
	case req.Screen != nil:
		position, ok = geometry.ElevationToWallRelative(*req.Screen, wall, wallHeight, scale, req.OffsetX, req.OffsetY)
	default:
		return badRequest(c, errNoObject)
	}
	if !ok {
		return badRequest(c, errInvalidTransform)
	}

	world, okWorld := geometry.WallRelativeToWorld(position, wall)
	screen, okScreen := geometry.WallRelativeToElevation(position, wall, wallHeight, scale, req.OffsetX, req.OffsetY)
	if !okWorld || !okScreen {
		h.log.Debug("elevation transform rejected",
			zap.String("wall_id", wall.ID),
			zap.Float64("scale", scale),
		)
		return badRequest(c, errInvalidTransform)
	}

	return c.JSON(fiber.Map{
		"position": position,
		"world":    world,
		"screen":   screen,
	})
}
