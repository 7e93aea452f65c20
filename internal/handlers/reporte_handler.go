package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"seguimiento/metas-api/internal/services"
)

type ReporteHandler struct {
	reportes services.ReporteService
}

func NewReporteHandler(reportes services.ReporteService) *ReporteHandler {
	return &ReporteHandler{
		reportes: reportes,
	}
}

// HandleAnual handles GET /reportes/anual?usuario_id=&area_id=
func (h *ReporteHandler) HandleAnual(c *fiber.Ctx) error {
	usuarioID, err := uuid.Parse(c.Query("usuario_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "usuario_id inválido",
		})
	}
	areaID, err := uuid.Parse(c.Query("area_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "area_id inválido",
		})
	}

	promedio, err := h.reportes.ComputeAnnualAverage(usuarioID, areaID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(promedio)
}

// HandleAprobadas handles GET /reportes/aprobadas?area_id=&q=
func (h *ReporteHandler) HandleAprobadas(c *fiber.Ctx) error {
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

	evidencias, err := h.reportes.ListApprovedEvidence(areaID, c.Query("q"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{
		"evidencias": evidencias,
	})
}
