package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// RegisterHealth вешает пробы; startedAt задает момент запуска сервиса.
func (h *Handler) RegisterHealth(app *fiber.App, startedAt time.Time) {
	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", h.ReadinessProbe)
	app.Get("/health/startup", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":        "started",
			"uptimeSeconds": int(time.Since(startedAt).Seconds()),
		})
	})
}

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe проверяет, что движок собран и принимает запросы
func (h *Handler) ReadinessProbe(c fiber.Ctx) error {
	if h.analyzer == nil || h.importer == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "not ready",
		})
	}
	return c.JSON(fiber.Map{
		"status":      "ready",
		"pixelsPerMM": h.settings.PixelsPerMM,
	})
}
