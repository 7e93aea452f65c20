package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"seguimiento/metas-api/internal/middlewares"
	"seguimiento/metas-api/internal/models"
	"seguimiento/metas-api/internal/services"
)

type CalificacionHandler struct {
	calificaciones services.CalificacionService
}

func NewCalificacionHandler(calificaciones services.CalificacionService) *CalificacionHandler {
	return &CalificacionHandler{
		calificaciones: calificaciones,
	}
}

// HandleSet handles PUT /admin/calificaciones: upsert of the quarter-level
// score, automatic or reviewer-asserted.
func (h *CalificacionHandler) HandleSet(c *fiber.Ctx) error {
	revisorID, ok := middlewares.UsuarioID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req models.CalificacionTrimestreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cuerpo de la petición inválido",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	usuarioID, err := uuid.Parse(req.UsuarioID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "usuario_id inválido",
		})
	}
	areaID, err := uuid.Parse(req.AreaID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "area_id inválido",
		})
	}

	calificacion, err := h.calificaciones.SetQuarterScore(revisorID, usuarioID, areaID, req.Trimestre, &req)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(calificacion)
}
