package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"floorplan-engine/internal/planner/attach"
	"floorplan-engine/internal/planner/graph"
	"floorplan-engine/internal/planner/importer"
	"floorplan-engine/internal/planner/models"
	"floorplan-engine/internal/planner/rooms"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Planner Handler
// ============================================================

// Settings хранит масштаб и допуски, общие для всех запросов.
type Settings struct {
	PixelsPerMM         float64
	DefaultWallHeightMM float64
	ConnectToleranceMM  float64
	LogicalLineMM       float64
	SnapThreshold       float64
}

func DefaultSettings() Settings {
	return Settings{
		PixelsPerMM:         1,
		DefaultWallHeightMM: rooms.DefaultWallHeightMM,
		ConnectToleranceMM:  graph.ConnectToleranceMM,
		LogicalLineMM:       graph.LineToleranceMM,
		SnapThreshold:       attach.DefaultSnapThreshold,
	}
}

type Handler struct {
	analyzer *rooms.Analyzer
	importer *importer.Importer
	settings Settings
	log      *zap.Logger
}

func New(analyzer *rooms.Analyzer, im *importer.Importer, settings Settings, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if !(settings.PixelsPerMM > 0) {
		settings.PixelsPerMM = 1
	}
	return &Handler{
		analyzer: analyzer,
		importer: im,
		settings: settings,
		log:      log,
	}
}

// Register вешает маршруты движка на app.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/import", h.Import)

	app.Post("/rooms/segments", h.RoomSegments)
	app.Post("/rooms/directions", h.RoomDirections)

	app.Post("/walls/snap", h.SnapToWall)
	app.Post("/walls/connected", h.ConnectedWalls)
	app.Post("/walls/combined", h.CombinedWall)
	app.Post("/walls/elevation", h.Elevation)
}

// ============================================================
// Helpers
// ============================================================

var errEmptyBody = errors.New("request body is empty")

func decodeBody(c fiber.Ctx, v interface{}) error {
	if len(c.Body()) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func badRequest(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func notFound(c fiber.Ctx, what, id string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": fmt.Sprintf("%s %q not found", what, id),
	})
}

func findShape(shapes []models.Shape, id string, match func(models.ShapeType) bool) (models.Shape, bool) {
	for _, s := range shapes {
		if s.ID == id && match(s.Type) {
			return s, true
		}
	}
	return models.Shape{}, false
}

func isWall(t models.ShapeType) bool { return t == models.ShapeWall }

func isRoom(t models.ShapeType) bool { return t == models.ShapeRoom || t == models.ShapePolygon }
