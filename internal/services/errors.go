package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"seguimiento/metas-api/internal/models"
)

// ErrNoAutorizado rejects reviewer operations on areas or quarters the
// capability check does not cover.
var ErrNoAutorizado = errors.New("revisor no autorizado para esta área")

// IncompleteSubmissionError rejects a quarter submission that does not cover
// every required goal. Recoverable: the caller completes the missing drafts
// and retries.
type IncompleteSubmissionError struct {
	MissingMetaIDs []uuid.UUID
}

func (e *IncompleteSubmissionError) Error() string {
	ids := make([]string, len(e.MissingMetaIDs))
	for i, id := range e.MissingMetaIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("faltan evidencias para las metas: %s", strings.Join(ids, ", "))
}

// AlreadySubmittedError rejects a second batch submission for the same
// user, area and quarter.
type AlreadySubmittedError struct {
	UsuarioID uuid.UUID
	AreaID    uuid.UUID
	Trimestre int
}

func (e *AlreadySubmittedError) Error() string {
	return fmt.Sprintf("el trimestre %d ya fue enviado", e.Trimestre)
}

// InvalidStateError rejects an operation the row's current estado forbids.
type InvalidStateError struct {
	Estado models.EstadoEvidencia
	Motivo string
}

func (e *InvalidStateError) Error() string {
	if e.Motivo != "" {
		return fmt.Sprintf("estado %q no permite la operación: %s", e.Estado, e.Motivo)
	}
	return fmt.Sprintf("estado %q no permite la operación", e.Estado)
}

// NotFoundError reports an unknown goal, evidence, area or score id.
type NotFoundError struct {
	Recurso string
	ID      string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s no encontrada: %s", e.Recurso, e.ID)
	}
	return fmt.Sprintf("%s no encontrada", e.Recurso)
}

// OutOfRangeError rejects a calificacion outside [0, 100].
type OutOfRangeError struct {
	Valor int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("calificación fuera de rango [0, 100]: %d", e.Valor)
}

func validarCalificacion(valor int) error {
	if valor < 0 || valor > 100 {
		return &OutOfRangeError{Valor: valor}
	}
	return nil
}
