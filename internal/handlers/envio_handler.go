package handlers

import (
	"github.com/gofiber/fiber/v2"

	"seguimiento/metas-api/internal/middlewares"
	"seguimiento/metas-api/internal/models"
	"seguimiento/metas-api/internal/services"
)

type EnvioHandler struct {
	envios services.EnvioService
}

func NewEnvioHandler(envios services.EnvioService) *EnvioHandler {
	return &EnvioHandler{
		envios: envios,
	}
}

// HandleSubmit handles POST /envios: the one-time batch submission of the
// quarter's evidence for the authenticated user's area.
func (h *EnvioHandler) HandleSubmit(c *fiber.Ctx) error {
	usuarioID, ok := middlewares.UsuarioID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	areaID, ok := middlewares.AreaID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req models.EnvioTrimestreRequest
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

	envio, err := h.envios.SubmitQuarter(usuarioID, areaID, req.Trimestre)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(envio)
}
