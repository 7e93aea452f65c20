package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"seguimiento/metas-api/internal/models"
	"seguimiento/metas-api/internal/repositories"
)

type MetaHandler struct {
	metaRepo      repositories.MetaRepository
	evidenciaRepo repositories.EvidenciaRepository
}

func NewMetaHandler(
	metaRepo repositories.MetaRepository,
	evidenciaRepo repositories.EvidenciaRepository,
) *MetaHandler {
	return &MetaHandler{
		metaRepo:      metaRepo,
		evidenciaRepo: evidenciaRepo,
	}
}

// HandleList handles GET /metas?area_id=&trimestre=
func (h *MetaHandler) HandleList(c *fiber.Ctx) error {
	areaID, err := uuid.Parse(c.Query("area_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "area_id inválido",
		})
	}

	trimestre := c.QueryInt("trimestre")
	if trimestre < 1 || trimestre > 4 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "trimestre debe estar entre 1 y 4",
		})
	}

	metas, err := h.metaRepo.ListForQuarter(areaID, trimestre)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"metas": metas,
	})
}

// HandleCreate handles POST /metas (admin plan editing)
func (h *MetaHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CrearMetaRequest
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

	areaID, err := uuid.Parse(req.AreaID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "area_id inválido",
		})
	}

	meta := &models.Meta{
		ID:          uuid.New(),
		AreaID:      areaID,
		Anio:        req.Anio,
		Meta:        req.Meta,
		Indicador:   req.Indicador,
		Accion:      req.Accion,
		Presupuesto: req.Presupuesto,
		T1:          req.T1,
		T2:          req.T2,
		T3:          req.T3,
		T4:          req.T4,
	}
	if err := h.metaRepo.Create(meta); err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(meta)
}

// HandleUpdate handles PUT /metas/:id
func (h *MetaHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id inválido",
		})
	}

	var req models.CrearMetaRequest
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

	meta, err := h.metaRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "meta no encontrada",
		})
	}

	meta.Anio = req.Anio
	meta.Meta = req.Meta
	meta.Indicador = req.Indicador
	meta.Accion = req.Accion
	meta.Presupuesto = req.Presupuesto
	meta.T1 = req.T1
	meta.T2 = req.T2
	meta.T3 = req.T3
	meta.T4 = req.T4

	if err := h.metaRepo.Update(meta); err != nil {
		return renderError(c, err)
	}
	return c.JSON(meta)
}

// HandleDelete handles DELETE /metas/:id. A goal that already has evidence
// rows cannot be removed.
func (h *MetaHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id inválido",
		})
	}

	count, err := h.evidenciaRepo.CountByMeta(id)
	if err != nil {
		return renderError(c, err)
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "la meta tiene evidencias registradas y no puede eliminarse",
		})
	}

	if err := h.metaRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "meta no encontrada",
		})
	}
	return c.JSON(fiber.Map{
		"message": "meta eliminada",
	})
}
