package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"seguimiento/metas-api/internal/models"
	"seguimiento/metas-api/internal/services"
)

type ArchivoHandler struct {
	archivoService services.ArchivoService
	maxFileSize    int64
}

func NewArchivoHandler(archivoService services.ArchivoService, maxFileSize int64) *ArchivoHandler {
	return &ArchivoHandler{
		archivoService: archivoService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /evidencias/archivo: stores the file and returns
// the reference tuple the draft endpoint expects.
func (h *ArchivoHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "archivo requerido en el campo 'archivo'",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("archivo demasiado grande. Máximo: %d bytes", h.maxFileSize),
		})
	}

	ref, err := h.archivoService.SaveFile(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("no se pudo guardar el archivo: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.ArchivoResponse{
		URL:    ref.URL,
		Nombre: ref.Nombre,
		Tipo:   ref.Tipo,
		Tamano: ref.Tamano,
	})
}
