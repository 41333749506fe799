package handlers

import (
	"floorplan-engine/internal/planner/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Room Handlers
// ============================================================

// roomRequest: комната задается целиком (room) или по id среди shapes.
type roomRequest struct {
	RoomID string         `json:"roomId"`
	Room   *models.Shape  `json:"room"`
	Shapes []models.Shape `json:"shapes"`
}

func (h *Handler) resolveRoom(c fiber.Ctx) (models.Shape, []models.Shape, bool, error) {
	var req roomRequest
	if err := decodeBody(c, &req); err != nil {
		return models.Shape{}, nil, false, badRequest(c, err)
	}
	if req.Room != nil {
		return *req.Room, req.Shapes, true, nil
	}
	room, ok := findShape(req.Shapes, req.RoomID, isRoom)
	if !ok {
		return models.Shape{}, nil, false, notFound(c, "room", req.RoomID)
	}
	return room, req.Shapes, true, nil
}

// RoomSegments отдает развертку комнаты по ребрам.
func (h *Handler) RoomSegments(c fiber.Ctx) error {
	room, shapes, ok, err := h.resolveRoom(c)
	if !ok {
		return err
	}

	segments := h.analyzer.AnalyzeRoomSegments(room, shapes)
	return c.JSON(fiber.Map{
		"roomId":   room.ID,
		"segments": segments,
	})
}

// RoomDirections отдает развертку комнаты по сторонам света.
func (h *Handler) RoomDirections(c fiber.Ctx) error {
	room, shapes, ok, err := h.resolveRoom(c)
	if !ok {
		return err
	}

	directions := h.analyzer.AnalyzeRoomDirections(room, shapes)
	return c.JSON(fiber.Map{
		"roomId":     room.ID,
		"directions": directions,
	})
}
