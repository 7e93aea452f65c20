package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"seguimiento/metas-api/internal/middlewares"
	"seguimiento/metas-api/internal/models"
	"seguimiento/metas-api/internal/services"
)

type RevisionHandler struct {
	revisiones services.RevisionService
}

func NewRevisionHandler(revisiones services.RevisionService) *RevisionHandler {
	return &RevisionHandler{
		revisiones: revisiones,
	}
}

// HandleList handles GET /admin/evidencias?area_id=&trimestre=&estado=
func (h *RevisionHandler) HandleList(c *fiber.Ctx) error {
	var areaID *uuid.UUID
	if raw := c.Query("area_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "area_id inválido",
			})
		}
		areaID = &id
	}

	var trimestre *int
	if raw := c.QueryInt("trimestre"); raw != 0 {
		if raw < 1 || raw > 4 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "trimestre debe estar entre 1 y 4",
			})
		}
		trimestre = &raw
	}

	var estado *models.EstadoEvidencia
	if raw := c.Query("estado"); raw != "" {
		e := models.EstadoEvidencia(raw)
		if !e.Valida() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "estado desconocido",
			})
		}
		estado = &e
	}

	evidencias, err := h.revisiones.ListByFilter(areaID, trimestre, estado)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{
		"evidencias": evidencias,
	})
}

// HandleRevisar handles POST /admin/evidencias/:id/revision
func (h *RevisionHandler) HandleRevisar(c *fiber.Ctx) error {
	revisorID, ok := middlewares.UsuarioID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	evidenciaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id inválido",
		})
	}

	var req models.RevisionRequest
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

	ev, err := h.revisiones.Revisar(revisorID, evidenciaID, req.Calificacion, req.Comentario, models.EstadoEvidencia(req.Decision))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(ev)
}

// HandleEditarRevision handles PUT /admin/evidencias/:id/revision
func (h *RevisionHandler) HandleEditarRevision(c *fiber.Ctx) error {
	revisorID, ok := middlewares.UsuarioID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	evidenciaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id inválido",
		})
	}

	var req models.EditarRevisionRequest
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

	ev, err := h.revisiones.EditarRevision(revisorID, evidenciaID, req.Calificacion, req.Comentario)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(ev)
}

// HandleEliminar handles DELETE /admin/evidencias/:id
func (h *RevisionHandler) HandleEliminar(c *fiber.Ctx) error {
	revisorID, ok := middlewares.UsuarioID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	evidenciaID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id inválido",
		})
	}

	if err := h.revisiones.Eliminar(revisorID, evidenciaID); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "evidencia eliminada",
	})
}
