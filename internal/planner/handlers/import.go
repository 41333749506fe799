package handlers

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Import Handler
// ============================================================

// Import принимает SVG плана файлом в multipart/form-data (поле file)
// или телом запроса и возвращает план.
func (h *Handler) Import(c fiber.Ctx) error {
	var data []byte

	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to open file",
			})
		}
		defer f.Close()

		data, err = io.ReadAll(f)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to read file",
			})
		}
	} else {
		data = c.Body()
	}

	if len(data) == 0 {
		return badRequest(c, errEmptyBody)
	}

	plan, err := h.importer.Import(bytes.NewReader(data))
	if err != nil {
		h.log.Warn("import failed", zap.Int("size", len(data)), zap.Error(err))
		return badRequest(c, err)
	}

	return c.JSON(plan)
}
