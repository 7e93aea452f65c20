package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seguimiento/metas-api/internal/models"
	"seguimiento/metas-api/internal/repositories"
)

// CapabilityCheck decides whether a reviewer may grade evidence for an
// area/quarter. Authorization policy lives outside this service; main wires
// in whatever the deployment uses.
type CapabilityCheck func(revisorID, areaID uuid.UUID, trimestre int) bool

// RevisionService is thin orchestration over the evidence operations plus
// the reviewer capability gate and the dashboard listing.
type RevisionService interface {
	Revisar(revisorID, evidenciaID uuid.UUID, calificacion int, comentario *string, decision models.EstadoEvidencia) (*models.Evidencia, error)
	EditarRevision(revisorID, evidenciaID uuid.UUID, calificacion int, comentario *string) (*models.Evidencia, error)
	Eliminar(revisorID, evidenciaID uuid.UUID) error
	ListByFilter(areaID *uuid.UUID, trimestre *int, estado *models.EstadoEvidencia) ([]models.Evidencia, error)
}

type revisionService struct {
	evidencias    EvidenciaService
	evidenciaRepo repositories.EvidenciaRepository
	puedeRevisar  CapabilityCheck
}

func NewRevisionService(
	evidencias EvidenciaService,
	evidenciaRepo repositories.EvidenciaRepository,
	puedeRevisar CapabilityCheck,
) RevisionService {
	return &revisionService{
		evidencias:    evidencias,
		evidenciaRepo: evidenciaRepo,
		puedeRevisar:  puedeRevisar,
	}
}

func (s *revisionService) Revisar(revisorID, evidenciaID uuid.UUID, calificacion int, comentario *string, decision models.EstadoEvidencia) (*models.Evidencia, error) {
	if err := s.autorizar(revisorID, evidenciaID); err != nil {
		return nil, err
	}
	return s.evidencias.Revisar(evidenciaID, revisorID, calificacion, comentario, decision)
}

func (s *revisionService) EditarRevision(revisorID, evidenciaID uuid.UUID, calificacion int, comentario *string) (*models.Evidencia, error) {
	if err := s.autorizar(revisorID, evidenciaID); err != nil {
		return nil, err
	}
	return s.evidencias.EditarRevision(evidenciaID, calificacion, comentario)
}

func (s *revisionService) Eliminar(revisorID, evidenciaID uuid.UUID) error {
	if err := s.autorizar(revisorID, evidenciaID); err != nil {
		return err
	}
	return s.evidencias.Eliminar(evidenciaID)
}

// ListByFilter is a pure read projection for reviewer dashboards.
func (s *revisionService) ListByFilter(areaID *uuid.UUID, trimestre *int, estado *models.EstadoEvidencia) ([]models.Evidencia, error) {
	return s.evidenciaRepo.ListByFilter(areaID, trimestre, estado)
}

func (s *revisionService) autorizar(revisorID, evidenciaID uuid.UUID) error {
	ev, err := s.evidenciaRepo.FindByID(evidenciaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Recurso: "evidencia", ID: evidenciaID.String()}
		}
		return err
	}
	if !s.puedeRevisar(revisorID, ev.AreaID, ev.Trimestre) {
		return ErrNoAutorizado
	}
	return nil
}
