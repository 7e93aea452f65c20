package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"seguimiento/metas-api/internal/services"
)

var validate = validator.New()

// renderError maps the engine's error taxonomy onto HTTP responses with
// enough structure for the caller to act on.
func renderError(c *fiber.Ctx, err error) error {
	var incompleta *services.IncompleteSubmissionError
	if errors.As(err, &incompleta) {
		faltantes := make([]string, len(incompleta.MissingMetaIDs))
		for i, id := range incompleta.MissingMetaIDs {
			faltantes[i] = id.String()
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":           incompleta.Error(),
			"metas_faltantes": faltantes,
		})
	}

	var yaEnviado *services.AlreadySubmittedError
	if errors.As(err, &yaEnviado) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     yaEnviado.Error(),
			"trimestre": yaEnviado.Trimestre,
		})
	}

	var estadoInvalido *services.InvalidStateError
	if errors.As(err, &estadoInvalido) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  estadoInvalido.Error(),
			"estado": estadoInvalido.Estado,
		})
	}

	var noEncontrada *services.NotFoundError
	if errors.As(err, &noEncontrada) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": noEncontrada.Error(),
		})
	}

	var fueraDeRango *services.OutOfRangeError
	if errors.As(err, &fueraDeRango) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fueraDeRango.Error(),
			"valor": fueraDeRango.Valor,
		})
	}

	if errors.Is(err, services.ErrNoAutorizado) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
