package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"seguimiento/metas-api/internal/middlewares"
	"seguimiento/metas-api/internal/models"
	"seguimiento/metas-api/internal/services"
)

type EvidenciaHandler struct {
	evidencias services.EvidenciaService
}

func NewEvidenciaHandler(evidencias services.EvidenciaService) *EvidenciaHandler {
	return &EvidenciaHandler{
		evidencias: evidencias,
	}
}

// HandleUpsertDraft handles PUT /evidencias/draft: first-time drafts before
// the quarter submission and row-scoped rewrites of rejected evidence after.
func (h *EvidenciaHandler) HandleUpsertDraft(c *fiber.Ctx) error {
	usuarioID, ok := middlewares.UsuarioID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req models.DraftEvidenciaRequest
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

	metaID, err := uuid.Parse(req.MetaID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "meta_id inválido",
		})
	}

	ev, err := h.evidencias.UpsertDraft(usuarioID, metaID, req.Trimestre, req.Descripcion, req.Archivo)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(ev)
}

// HandleGet handles GET /evidencias?meta_id=&trimestre=. A goal/quarter with
// no row reads as estado no_enviada.
func (h *EvidenciaHandler) HandleGet(c *fiber.Ctx) error {
	metaID, err := uuid.Parse(c.Query("meta_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "meta_id inválido",
		})
	}

	trimestre := c.QueryInt("trimestre")
	if trimestre < 1 || trimestre > 4 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "trimestre debe estar entre 1 y 4",
		})
	}

	ev, err := h.evidencias.Get(metaID, trimestre)
	if err != nil {
		return renderError(c, err)
	}
	if ev == nil {
		return c.JSON(fiber.Map{
			"estado": models.EstadoNoEnviada,
		})
	}
	return c.JSON(ev)
}
